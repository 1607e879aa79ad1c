package object

import (
	"math"
	"math/rand"
	"sync"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived exhaust puff. Units are world pixels and seconds.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 1/60 s (1.0 = no drag)
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.85
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the flight.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExhaust creates particles streaming out behind a ship whose nose
// points along heading (radians clockwise from up). intensity in [0, 1]
// scales how many particles are emitted.
func SpawnExhaust(x, y, heading, intensity float64, spawner Spawner) {
	if spawner == nil || intensity <= 0 {
		return
	}

	count := 1 + int(math.Round(intensity*float64(rand.Intn(2)+1)))

	for i := 0; i < count; i++ {
		// Opposite direction of ship facing, with spread
		angle := heading + math.Pi + (rand.Float64()-0.5)*0.6
		speed := (150 + rand.Float64()*100) * intensity
		lifetime := 0.1 + rand.Float64()*0.15

		vx := math.Sin(angle) * speed
		vy := -math.Cos(angle) * speed

		spawner.Spawn(NewParticle(x, y, vx, vy, lifetime))
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor

	p.X += p.VX * dt
	p.Y += p.VY * dt

	// Particles do not bounce; they vanish at the world edge.
	w := ctx.World
	if p.X < w.Left || p.X > w.Right || p.Y < w.Top || p.Y > w.Down {
		return true, nil
	}

	return false, nil
}

// Draw renders the particle as a pixel on the canvas.
func (p *Particle) Draw(ctx DrawContext) error {
	// Skip faded particles (< 25% lifetime)
	if p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return nil
	}
	ctx.Canvas.SetFloat(p.X-ctx.World.Left, p.Y-ctx.World.Top)
	return nil
}
