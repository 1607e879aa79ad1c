package physics

import (
	"math"

	"github.com/tomz197/rocket/internal/input"
)

// Tuning constants. Distances are pixels, times milliseconds.
const (
	// MeterConversion scales a real-world acceleration (m/s²) into px/ms².
	MeterConversion = 1.0 / 500_000

	Gravity          = 9.81 * MeterConversion
	MaxThrust        = 0.00015
	ThrustRampFactor = 0.002 // fraction of MaxThrust gained per ms while thrusting
	RotationThrust   = 90 * 0.5 * MeterConversion

	// IntegrationFactor scales the position and angle terms only; velocities
	// get the full step. Changing it changes how the ship flies.
	IntegrationFactor = 0.5

	ShipWidth  = 40.0
	ShipHeight = 40.0
)

// StartPosition is where a new ship spawns.
var StartPosition = Vector2{X: 500, Y: 500}

// Keyboard answers whether a named key is held.
type Keyboard interface {
	IsPressed(key input.Key) bool
}

// Body is the ship's complete mutable kinematic state.
type Body struct {
	Position     Vector2
	Velocity     Vector2
	Acceleration Vector2
	Thrust       float64

	RotationAngle        float64 // degrees clockwise from up, in (-180, 180]
	RotationVelocity     float64
	RotationAcceleration float64
}

// State is a read-only snapshot handed to rendering.
type State struct {
	Position      Vector2
	Velocity      Vector2
	Acceleration  Vector2
	Thrust        float64
	RotationAngle float64
}

// NormalizeAngle maps degrees into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// Step advances b by dt milliseconds given the held keys and returns the new
// body. b is not modified. half is the ship's half extent used for clamping.
func Step(b Body, dt float64, kb Keyboard, bounds Bounds, half Vector2) Body {
	b.Acceleration = Vector2{}
	b.RotationAcceleration = 0

	b.RotationAngle = NormalizeAngle(b.RotationAngle)

	// Right wins when both are held.
	if kb.IsPressed(input.ArrowRight) {
		b.RotationAcceleration = RotationThrust
	} else if kb.IsPressed(input.ArrowLeft) {
		b.RotationAcceleration = -RotationThrust
	}

	// Engine spools up gradually and cuts out instantly.
	if kb.IsPressed(input.ArrowUp) {
		b.Thrust = math.Min(MaxThrust, b.Thrust+dt*(MaxThrust*ThrustRampFactor))
	} else {
		b.Thrust = 0
	}

	if b.Thrust > 0 {
		rad := b.RotationAngle * math.Pi / 180
		b.Acceleration.X = b.Thrust * math.Sin(rad)
		b.Acceleration.Y = -b.Thrust * math.Cos(rad)
	}

	b.Acceleration.Y += Gravity

	b.RotationVelocity += dt * b.RotationAcceleration
	b.RotationAngle += IntegrationFactor * dt * b.RotationVelocity
	b.RotationAngle = NormalizeAngle(b.RotationAngle)

	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	b.Position = b.Position.Add(b.Velocity.Scale(IntegrationFactor * dt))

	b.Position, b.Velocity = Clamp(b.Position, b.Velocity, bounds, half)

	return b
}

// Ship owns one body and the world it is confined to.
// It is not safe for concurrent use; one frame loop drives it.
type Ship struct {
	body   Body
	bounds Bounds
	half   Vector2
}

// NewShip creates a ship at rest at StartPosition in WorldBounds.
func NewShip() *Ship {
	return NewShipAt(Body{Position: StartPosition})
}

// NewShipAt creates a ship in WorldBounds with the given initial body.
func NewShipAt(b Body) *Ship {
	return &Ship{
		body:   b,
		bounds: WorldBounds,
		half:   Vector2{X: ShipWidth / 2, Y: ShipHeight / 2},
	}
}

// Update advances the ship by dt milliseconds.
func (s *Ship) Update(dt float64, kb Keyboard) {
	s.body = Step(s.body, dt, kb, s.bounds, s.half)
}

// ReadState returns a copy of the ship's renderable state.
func (s *Ship) ReadState() State {
	return State{
		Position:      s.body.Position,
		Velocity:      s.body.Velocity,
		Acceleration:  s.body.Acceleration,
		Thrust:        s.body.Thrust,
		RotationAngle: s.body.RotationAngle,
	}
}

// Body returns a copy of the full kinematic state, including rotation rates.
func (s *Ship) Body() Body {
	return s.body
}

// Bounds returns the world the ship is confined to.
func (s *Ship) Bounds() Bounds {
	return s.bounds
}
