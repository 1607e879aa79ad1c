package object

import (
	"math"

	"github.com/tomz197/rocket/internal/draw"
	"github.com/tomz197/rocket/internal/physics"
)

// Ship is the player's rocket: it drives a physics.Ship and draws it.
// Drawing reads only the ship's snapshot.
type Ship struct {
	Physics *physics.Ship
	Size    float64 // distance from center to nose in world pixels
}

// NewShip creates a rocket at rest at the start position.
func NewShip() *Ship {
	return &Ship{
		Physics: physics.NewShip(),
		Size:    physics.ShipHeight / 2,
	}
}

// State returns the ship's current snapshot.
func (s *Ship) State() physics.State {
	return s.Physics.ReadState()
}

// Update advances the physics by the frame delta and emits exhaust while
// the engine is burning.
func (s *Ship) Update(ctx UpdateContext) (bool, error) {
	s.Physics.Update(ctx.DeltaMillis(), ctx.Input)

	st := s.Physics.ReadState()
	if st.Thrust > 0 {
		heading := headingRadians(st.RotationAngle)
		backX := st.Position.X - math.Sin(heading)*s.Size*0.7
		backY := st.Position.Y + math.Cos(heading)*s.Size*0.7
		SpawnExhaust(backX, backY, heading, st.Thrust/physics.MaxThrust, ctx.Spawner)
	}

	return false, nil
}

// Draw renders the rocket as a triangle pointing along its heading.
func (s *Ship) Draw(ctx DrawContext) error {
	st := s.Physics.ReadState()
	heading := headingRadians(st.RotationAngle)

	// Nose along the heading, wings ~143° to either side.
	pts := ctx.Canvas.BorrowPoints(3)
	pts[0] = vertex(st.Position, heading, s.Size, ctx.World)
	pts[1] = vertex(st.Position, heading+2.5, s.Size*0.7, ctx.World)
	pts[2] = vertex(st.Position, heading-2.5, s.Size*0.7, ctx.World)

	ctx.Canvas.DrawPolygon(pts, true)
	return nil
}

// headingRadians converts degrees clockwise from up into radians.
func headingRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// vertex returns the canvas point at distance r from center along a heading
// measured clockwise from up (screen Y grows downward).
func vertex(center physics.Vector2, heading, r float64, world physics.Bounds) draw.Point {
	return draw.Point{
		X: center.X + math.Sin(heading)*r - world.Left,
		Y: center.Y - math.Cos(heading)*r - world.Top,
	}
}
