package engine

import "github.com/go-gl/mathgl/mgl32"

type Point struct {
	Pos    mgl32.Vec2
	Radius float32
	Color  Color
}

func NewPoint(p *Params) *Point {
	return &Point{Pos: p.FixPos, Radius: p.FixRadius, Color: p.FixColor}
}

func (f *Point) Draw(d Display) {
	d.FillCircle(f.Pos, f.Radius, f.Color)
}
