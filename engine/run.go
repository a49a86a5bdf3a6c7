package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"
)

// Prepare resolves parameters and the trial sequence. Everything that can
// fail because of bad input fails here, before a window is opened.
func Prepare(cfg *Config) (*Params, *TrialGenerator, *rand.Rand, error) {
	p, err := cfg.Params()
	if err != nil {
		return nil, nil, nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	gen, err := GenerateTrials(p, cfg.ScheduleFile, rng)
	if err != nil {
		return nil, nil, nil, err
	}
	return p, gen, rng, nil
}

func Run(cfg *Config) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	log := NewLogger(os.Stdout, level, "dotbar")

	p, gen, rng, err := Prepare(cfg)
	if err != nil {
		log.Error("failed to prepare experiment: %v", err)
		os.Exit(1)
	}
	log.Info("schedule %q: %d trials, %.2fs per step", p.Schedule, gen.Len(), p.StepDuration())

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.Error("SDL_Init: %v", err)
		os.Exit(1)
	}
	defer sdl.Quit()

	if err := ttf.Init(); err != nil {
		log.Error("TTF_Init: %v", err)
		os.Exit(1)
	}
	defer ttf.Quit()

	window, renderer, err := sdl.CreateWindowAndRenderer("dotbar", cfg.ScreenWidth, cfg.ScreenHeight, sdl.WINDOW_RESIZABLE)
	if err != nil {
		log.Error("CreateWindowAndRenderer: %v", err)
		os.Exit(1)
	}
	defer window.Destroy()
	defer renderer.Destroy()

	if err := placeWindow(window, cfg.DisplayIndex, cfg.ScreenWidth, cfg.ScreenHeight); err != nil {
		log.Error("failed to place window: %v", err)
		os.Exit(1)
	}
	if cfg.Fullscreen {
		if err := window.SetFullscreen(true); err != nil {
			log.Warn("failed to enter fullscreen: %v", err)
		}
	}

	if cfg.VSync {
		renderer.SetVSync(1)
	} else {
		renderer.SetVSync(0)
	}

	fontPath := cfg.FontFile
	if fontPath == "" {
		fontPath = FindFont("fonts")
	}
	var font *ttf.Font
	if fontPath != "" {
		font, err = ttf.OpenFont(fontPath, float32(cfg.FontSize))
		if err != nil {
			log.Warn("failed to load font %s: %v", fontPath, err)
		}
	}
	defer func() {
		if font != nil {
			font.Close()
		}
	}()

	display := newSDLDisplay(renderer, cfg, p)
	log.Debug("%dx%d px at %.1f Hz, %.1f px/deg", display.monitor.WidthPx, display.monitor.HeightPx,
		display.RefreshRate(), display.monitor.PixelsPerDegree())

	exp := &Experiment{
		P:       p,
		S:       CreateStimuli(p, display.RefreshRate(), rng),
		Display: display,
		Events:  &EventLog{},
		Log:     log,
	}

	log.Info("%d frames per step at %.1f Hz", exp.FrameRange(p.StepDuration()), display.RefreshRate())

	if cfg.DLPDevice != "" {
		dlp, err := NewDLPIO8G(cfg.DLPDevice, 9600)
		if err != nil {
			log.Warn("failed to initialize DLP device: %v", err)
		} else {
			defer dlp.Close()
			exp.DLP = dlp
		}
	}

	if !display.Splash(cfg.StartSplash, cfg.StartText, font, cfg.TextColor) {
		return
	}

	done := log.Step("run")
	trials, err := exp.RunExperiment(gen)
	done()
	switch {
	case errors.Is(err, ErrAborted):
		log.Warn("aborted after %d trials", len(trials))
	case err != nil:
		log.Error("run failed after %d trials: %v", len(trials), err)
	default:
		display.Splash(cfg.EndSplash, "", font, cfg.TextColor)
	}

	timestamp := time.Now().Format("20060102-150405")
	trialsName := OutputName(cfg.OutputFile, "trials", timestamp)
	if err := SaveTrials(trialsName, trials); err != nil {
		log.Error("failed to save trial log: %v", err)
	} else {
		log.Info("trials saved to %s", trialsName)
	}
	eventsName := OutputName(cfg.OutputFile, "events", timestamp)
	if err := exp.Events.Save(eventsName); err != nil {
		log.Error("failed to save event log: %v", err)
	} else {
		log.Info("events saved to %s", eventsName)
	}
}
