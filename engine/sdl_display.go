package engine

import (
	"math"

	"github.com/Zyko0/go-sdl3/img"
	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"
	"github.com/go-gl/mathgl/mgl32"
)

// sdlDisplay renders stimuli with an SDL renderer. Frame pacing comes from
// vsync, so Flip blocks until the next refresh when it is enabled.
type sdlDisplay struct {
	renderer *sdl.Renderer
	monitor  Monitor
	bg       Color
	refresh  float32
	start    uint64
	vsync    bool
}

func newSDLDisplay(renderer *sdl.Renderer, cfg *Config, p *Params) *sdlDisplay {
	d := &sdlDisplay{
		renderer: renderer,
		monitor: Monitor{
			WidthCM:    p.MonitorWidth,
			DistanceCM: p.MonitorDistance,
			WidthPx:    cfg.ScreenWidth,
			HeightPx:   cfg.ScreenHeight,
		},
		bg:      cfg.BGColor,
		refresh: 60,
		start:   sdl.Ticks(),
		vsync:   cfg.VSync,
	}

	d.syncSize()

	win, err := renderer.Window()
	if err == nil {
		display := sdl.GetDisplayForWindow(win)
		mode, err := display.CurrentDisplayMode()
		if err == nil && mode.RefreshRate > 0 {
			d.refresh = mode.RefreshRate
		}
	}
	return d
}

func (d *sdlDisplay) RefreshRate() float32 { return d.refresh }

// syncSize takes the pixel size from the renderer output, which can differ
// from the requested window size in fullscreen or on high-DPI screens.
func (d *sdlDisplay) syncSize() {
	w, h, err := d.renderer.CurrentOutputSize()
	if err != nil {
		return
	}
	d.monitor = d.monitor.WithSize(int(w), int(h))
}

// placeWindow moves window to the display at index, centered in its bounds.
func placeWindow(window *sdl.Window, index, w, h int) error {
	displays, err := sdl.GetDisplays()
	if err != nil {
		return err
	}
	id, err := selectDisplay(displays, index)
	if err != nil {
		return err
	}
	bounds, err := id.Bounds()
	if err != nil {
		return err
	}
	x := bounds.X + (bounds.W-int32(w))/2
	y := bounds.Y + (bounds.H-int32(h))/2
	return window.SetPosition(x, y)
}

func (d *sdlDisplay) Clear() {
	c := d.bg.SDL()
	d.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	d.renderer.Clear()
}

func (d *sdlDisplay) DrawDots(centers []mgl32.Vec2, sizePx float32, c Color) {
	sc := c.SDL()
	d.renderer.SetDrawColor(sc.R, sc.G, sc.B, sc.A)
	half := sizePx / 2
	for _, v := range centers {
		px := d.monitor.ToPixels(v)
		r := sdl.FRect{X: px.X() - half, Y: px.Y() - half, W: sizePx, H: sizePx}
		d.renderer.RenderFillRect(&r)
	}
}

func (d *sdlDisplay) FillCircle(center mgl32.Vec2, radius float32, c Color) {
	sc := c.SDL()
	d.renderer.SetDrawColor(sc.R, sc.G, sc.B, sc.A)
	px := d.monitor.ToPixels(center)
	r := radius * d.monitor.PixelsPerDegree()
	for dy := -r; dy <= r; dy++ {
		hw := float32(math.Sqrt(float64(r*r - dy*dy)))
		row := sdl.FRect{X: px.X() - hw, Y: px.Y() + dy, W: 2 * hw, H: 1}
		d.renderer.RenderFillRect(&row)
	}
}

func (d *sdlDisplay) Flip() uint64 {
	d.renderer.Present()
	if !d.vsync {
		sdl.Delay(1)
	}
	return sdl.Ticks() - d.start
}

func (d *sdlDisplay) PollKeys() ([]string, bool) {
	var keys []string
	quit := false
	for {
		var ev sdl.Event
		if !sdl.PollEvent(&ev) {
			break
		}
		switch ev.Type {
		case sdl.EVENT_QUIT:
			quit = true
		case sdl.EVENT_WINDOW_PIXEL_SIZE_CHANGED:
			d.syncSize()
		case sdl.EVENT_KEY_DOWN:
			key := ev.KeyboardEvent().Key
			if key == sdl.K_ESCAPE {
				quit = true
			} else {
				keys = append(keys, key.KeyName())
			}
		}
	}
	return keys, quit
}

// Splash shows an image, or text when no image is given, and waits for a
// key press. It returns false if the participant quit instead.
func (d *sdlDisplay) Splash(imagePath, text string, font *ttf.Font, textColor Color) bool {
	var tex *sdl.Texture
	var w, h float32
	if imagePath != "" {
		t, err := img.LoadTexture(d.renderer, imagePath)
		if err == nil {
			tex = t
			w, h, _ = t.Size()
		}
	} else if text != "" && font != nil {
		surf, err := font.RenderTextBlended(text, textColor.SDL())
		if err == nil && surf != nil {
			t, err := d.renderer.CreateTextureFromSurface(surf)
			if err == nil {
				tex = t
				w, h = float32(surf.W), float32(surf.H)
			}
			surf.Destroy()
		}
	}
	if tex == nil {
		return true
	}
	defer tex.Destroy()

	dst := sdl.FRect{
		X: (float32(d.monitor.WidthPx) - w) / 2.0,
		Y: (float32(d.monitor.HeightPx) - h) / 2.0,
		W: w,
		H: h,
	}
	d.Clear()
	d.renderer.RenderTexture(tex, nil, &dst)
	d.renderer.Present()

	for {
		var event sdl.Event
		if err := sdl.WaitEvent(&event); err != nil {
			break
		}
		if event.Type == sdl.EVENT_QUIT {
			return false
		}
		if event.Type == sdl.EVENT_KEY_DOWN {
			return event.KeyboardEvent().Key != sdl.K_ESCAPE
		}
	}
	return true
}
