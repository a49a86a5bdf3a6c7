package engine

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

type EventLogEntry struct {
	IntendedMS  uint64
	TimestampMS uint64
	Type        string
	Label       string
}

type EventLog struct {
	Entries []EventLogEntry
}

func (l *EventLog) Log(intended, actual uint64, etype, label string) {
	l.Entries = append(l.Entries, EventLogEntry{
		IntendedMS:  intended,
		TimestampMS: actual,
		Type:        etype,
		Label:       label,
	})
}

func (l *EventLog) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"intended_ms", "actual_ms", "type", "label"})
	for _, e := range l.Entries {
		w.Write([]string{
			strconv.FormatUint(e.IntendedMS, 10),
			strconv.FormatUint(e.TimestampMS, 10),
			e.Type,
			e.Label,
		})
	}
	w.Flush()
	return w.Error()
}

var trialLogHeader = []string{
	"index", "bar_ori", "bar_dir", "bar_step", "bar_pos",
	"dot_dir_0", "dot_dir_1", "dot_dir_2", "odd_segment",
	"onset_ms", "offset_ms", "frames", "responses",
}

// SaveTrials writes one CSV row per completed trial.
func SaveTrials(path string, trials []TrialInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write(trialLogHeader)
	for _, t := range trials {
		w.Write([]string{
			strconv.Itoa(t.Index),
			string(t.BarOri),
			string(t.BarDir),
			strconv.Itoa(t.BarStep),
			strconv.FormatFloat(float64(t.BarPos), 'f', 4, 32),
			strconv.FormatFloat(t.DotDirs[0], 'f', -1, 64),
			strconv.FormatFloat(t.DotDirs[1], 'f', -1, 64),
			strconv.FormatFloat(t.DotDirs[2], 'f', -1, 64),
			strconv.Itoa(t.OddSegment),
			strconv.FormatUint(t.OnsetMS, 10),
			strconv.FormatUint(t.OffsetMS, 10),
			strconv.Itoa(t.Frames),
			strings.Join(t.Responses, " "),
		})
	}
	w.Flush()
	return w.Error()
}

// Experiment ties the parameters and stimuli to a display for one run.
type Experiment struct {
	P       *Params
	S       *Stimuli
	Display Display
	Events  *EventLog
	DLP     *DLPIO8G
	Log     *Logger

	startMS uint64
}

// FrameRange returns the number of frames covering seconds at the display
// refresh rate. At least one frame is always shown.
func (e *Experiment) FrameRange(seconds float64) int {
	n := int(math.Round(seconds * float64(e.Display.RefreshRate())))
	if n < 1 {
		n = 1
	}
	return n
}

// Draw clears the display, draws the named stimuli in order and flips.
func (e *Experiment) Draw(names ...string) (uint64, error) {
	e.Display.Clear()
	for _, name := range names {
		s, err := e.S.Lookup(name)
		if err != nil {
			return 0, err
		}
		s.Draw(e.Display)
	}
	return e.Display.Flip(), nil
}

// RunTrial shows one traversal step. The returned info carries the same
// design fields as info, with onset, offset, frame count and responses set.
// Onset and offset are the flip times of the first and last frame.
//
// The step lasts StepDuration of wall-clock time from the first flip: frames
// are drawn until the next flip is predicted to land within half a frame of
// the step's end, so the length holds whether or not Flip waits for vsync.
func (e *Experiment) RunTrial(info TrialInfo) (TrialInfo, error) {
	if e.Events == nil {
		e.Events = &EventLog{}
	}
	if err := e.S.Dots.SetPosition(info.BarOri, info.BarPos); err != nil {
		return info, err
	}
	e.S.Dots.Reset()

	label := fmt.Sprintf("%s%s_%d", info.BarOri, info.BarDir, info.BarStep)
	durMS := e.P.StepDuration() * 1000
	nominalMS := 1000 / float64(e.Display.RefreshRate())
	intended := e.startMS + uint64(float64(info.Index)*durMS)

	var t, prev uint64
	for {
		e.S.Dots.Update(info.DotDirs, e.P.Coherence)
		var err error
		prev = t
		t, err = e.Draw("dots", "fix")
		if err != nil {
			return info, err
		}
		info.Frames++

		if info.Frames == 1 {
			info.OnsetMS = t
			e.Events.Log(intended, t, "TRIAL_ONSET", label)
			e.trigger(true, LineTrialOnset)
		}

		keys, quit := e.Display.PollKeys()
		for _, k := range keys {
			info.Responses = append(info.Responses, k)
			e.Events.Log(t, t, "RESPONSE", k)
			e.pulse(LineResponse)
		}
		if quit {
			e.trigger(false, LineTrialOnset)
			return info, ErrAborted
		}

		period := nominalMS
		if info.Frames > 1 && t > prev {
			period = float64(t - prev)
		}
		if float64(t-info.OnsetMS)+period >= durMS-period/2 {
			break
		}
	}

	info.OffsetMS = t
	e.Events.Log(intended+uint64(durMS), info.OffsetMS, "TRIAL_OFFSET", label)
	e.trigger(false, LineTrialOnset)
	return info, nil
}

// PulseWidth is how long a response trigger line is held high.
const PulseWidth = 5 * time.Millisecond

func (e *Experiment) pulse(lines string) {
	if e.DLP == nil {
		return
	}
	if err := e.DLP.Pulse(lines, PulseWidth); err != nil {
		e.Log.Warn("%v", err)
	}
}

func (e *Experiment) trigger(on bool, lines string) {
	if e.DLP == nil {
		return
	}
	var err error
	if on {
		err = e.DLP.Set(lines)
	} else {
		err = e.DLP.Unset(lines)
	}
	if err != nil {
		e.Log.Warn("%v", err)
	}
}

// RunExperiment runs every trial from gen in order and returns the completed
// trials. On ErrAborted, or when the generator stops on an error, the trials
// completed so far are returned with it.
func (e *Experiment) RunExperiment(gen *TrialGenerator) ([]TrialInfo, error) {
	if e.Events == nil {
		e.Events = &EventLog{}
	}
	start, err := e.Draw("fix")
	if err != nil {
		return nil, err
	}
	e.startMS = start

	total := gen.Len()
	done := make([]TrialInfo, 0, total)
	for {
		info, ok := gen.Next()
		if !ok {
			break
		}
		out, err := e.RunTrial(info)
		if err != nil {
			return done, err
		}
		done = append(done, out)
		fmt.Printf("\rTrial: %d/%d ", len(done), total)
		os.Stdout.Sync()
	}
	fmt.Println()
	return done, gen.Err()
}
