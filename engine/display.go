package engine

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Display is the drawing and timing surface stimuli render to. Positions
// are in degrees of visual angle relative to the screen center, y up.
type Display interface {
	RefreshRate() float32
	Clear()
	DrawDots(centers []mgl32.Vec2, sizePx float32, c Color)
	FillCircle(center mgl32.Vec2, radius float32, c Color)
	// Flip presents the frame and returns the time it was shown, in
	// milliseconds since the display was opened.
	Flip() uint64
	// PollKeys drains pending input. quit is set when the participant asked
	// to stop the run.
	PollKeys() (keys []string, quit bool)
}

// Monitor converts degrees of visual angle to screen pixels.
type Monitor struct {
	WidthCM    float32
	DistanceCM float32
	WidthPx    int
	HeightPx   int
}

func (m Monitor) PixelsPerDegree() float32 {
	cmPerDeg := float64(m.DistanceCM) * math.Tan(math.Pi/180)
	return float32(cmPerDeg) * float32(m.WidthPx) / m.WidthCM
}

// WithSize returns m for a window of w by h pixels. Non-positive sizes
// leave m unchanged.
func (m Monitor) WithSize(w, h int) Monitor {
	if w > 0 && h > 0 {
		m.WidthPx, m.HeightPx = w, h
	}
	return m
}

// ToPixels maps a point in degrees to window pixel coordinates.
func (m Monitor) ToPixels(v mgl32.Vec2) mgl32.Vec2 {
	ppd := m.PixelsPerDegree()
	center := mgl32.Vec2{float32(m.WidthPx) / 2, float32(m.HeightPx) / 2}
	return center.Add(mgl32.Vec2{v.X() * ppd, -v.Y() * ppd})
}

// selectDisplay picks the display at index from those the system reports.
func selectDisplay[T any](displays []T, index int) (T, error) {
	var zero T
	if index < 0 || index >= len(displays) {
		return zero, fmt.Errorf("display %d not found (%d connected)", index, len(displays))
	}
	return displays[index], nil
}
