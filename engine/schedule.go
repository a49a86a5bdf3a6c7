package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

type Orientation string

const (
	Horizontal Orientation = "h"
	Vertical   Orientation = "v"
)

func (o Orientation) Valid() bool {
	return o == Horizontal || o == Vertical
}

type Direction string

const (
	Positive Direction = "p"
	Negative Direction = "n"
)

func (d Direction) Valid() bool {
	return d == Positive || d == Negative
}

// ScheduleEntry is one traversal of the bar across the field.
type ScheduleEntry struct {
	Ori Orientation
	Dir Direction
}

type Schedule []ScheduleEntry

// Schedules maps schedule names to traversal lists, as read from a
// schedule file such as {"A": [["h", "p"], ["v", "n"]]}.
type Schedules map[string]Schedule

func LoadSchedules(path string) (Schedules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchedules(data)
}

func ParseSchedules(data []byte) (Schedules, error) {
	var raw map[string][][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSchedule, err)
	}

	schedules := make(Schedules, len(raw))
	for name, entries := range raw {
		sched := make(Schedule, 0, len(entries))
		for i, e := range entries {
			if len(e) != 2 {
				return nil, fmt.Errorf("%w: schedule %q entry %d: want [orientation, direction], got %d values",
					ErrMalformedSchedule, name, i, len(e))
			}
			entry := ScheduleEntry{Ori: Orientation(e[0]), Dir: Direction(e[1])}
			if !entry.Ori.Valid() {
				return nil, fmt.Errorf("%w: schedule %q entry %d: %q", ErrInvalidOrientation, name, i, e[0])
			}
			if !entry.Dir.Valid() {
				return nil, fmt.Errorf("%w: schedule %q entry %d: %q", ErrInvalidDirection, name, i, e[1])
			}
			sched = append(sched, entry)
		}
		schedules[name] = sched
	}
	return schedules, nil
}

func (s Schedules) Get(name string) (Schedule, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: no schedule name given", ErrUnknownSchedule)
	}
	sched, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownSchedule, name, s.Names())
	}
	return sched, nil
}

func (s Schedules) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
