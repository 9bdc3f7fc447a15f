// Package debug draws collider outlines and collision counters with ebiten.
package debug

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/milk9111/collide/ecs/system"
	"github.com/milk9111/collide/geom"
	"golang.org/x/image/colornames"
)

const (
	circleSegments = 24
	strokeWidth    = 1
	normalLength   = 12
)

// View maps world coordinates to the screen.
type View struct {
	OffsetX float64
	OffsetY float64
	Zoom    float64
}

func (v View) toScreen(p cp.Vector) (float32, float32) {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return float32((p.X - v.OffsetX) * zoom), float32((p.Y - v.OffsetY) * zoom)
}

// DrawColliders outlines every collider, colored by mode, and draws the
// contact normals of the last completed tick.
func DrawColliders(w *ecs.World, screen *ebiten.Image, view View) {
	if w == nil || screen == nil {
		return
	}
	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Collider, tr *component.Transform) {
		shape := c.Shape.World(*tr)
		clr := modeColor(c)
		switch shape.Kind {
		case geom.KindCircle:
			drawCircle(screen, view, shape.Center, shape.Radius, clr)
		case geom.KindRect:
			drawPolygon(screen, view, shape.Vertices(), clr)
		}
		for _, contact := range c.Collisions() {
			end := shape.Center.Add(contact.Normal.Mult(normalLength))
			drawLine(screen, view, shape.Center, end, colornames.Red)
		}
	})
}

// DrawStats prints the counters of the latest pass.
func DrawStats(screen *ebiten.Image, stats system.Stats, x, y int) {
	if screen == nil {
		return
	}
	text := fmt.Sprintf("Tick: %d\nCandidates: %d\nIntersections: %d\nOverlaps: %d\nSweeps: %d (hits %d)\nSeparations: %d\nRejected: %d\nCallbacks: %d",
		stats.Ticks, stats.Candidates, stats.Intersections, stats.Overlaps, stats.Sweeps, stats.SweepHits, stats.Separations, stats.Rejected, stats.Callbacks)
	ebitenutil.DebugPrintAt(screen, text, x, y)
}

func modeColor(c *component.Collider) color.Color {
	var clr color.RGBA
	switch c.Mode {
	case component.CollisionModeOverlap:
		clr = colornames.Gold
	case component.CollisionModeContinuous:
		clr = colornames.Deepskyblue
	case component.CollisionModeDiscrete:
		clr = colornames.Limegreen
	default:
		clr = colornames.Gray
	}
	if !c.Enabled {
		clr = colornames.Dimgray
	}
	return clr
}

func drawLine(screen *ebiten.Image, view View, a, b cp.Vector, clr color.Color) {
	x0, y0 := view.toScreen(a)
	x1, y1 := view.toScreen(b)
	vector.StrokeLine(screen, x0, y0, x1, y1, strokeWidth, clr, true)
}

func drawPolygon(screen *ebiten.Image, view View, verts []cp.Vector, clr color.Color) {
	for i := range verts {
		drawLine(screen, view, verts[i], verts[(i+1)%len(verts)], clr)
	}
}

func drawCircle(screen *ebiten.Image, view View, center cp.Vector, radius float64, clr color.Color) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(circleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	drawPolygon(screen, view, points, clr)
}
