// Package object holds the drawable, updatable entities of a flight.
package object

import (
	"time"

	"github.com/tomz197/rocket/internal/draw"
	"github.com/tomz197/rocket/internal/input"
	"github.com/tomz197/rocket/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Input   input.Input
	World   physics.Bounds
	Spawner Spawner
}

// DeltaMillis returns the frame delta in (fractional) milliseconds.
func (ctx UpdateContext) DeltaMillis() float64 {
	return float64(ctx.Delta) / float64(time.Millisecond)
}

// DrawContext provides drawing resources for objects.
// Canvas logical coordinates are world coordinates.
type DrawContext struct {
	Canvas *draw.Canvas // Half-block canvas, two sub-pixels per cell
	Frame  *draw.Frame  // Terminal output for text drawn over the canvas
	World  physics.Bounds
}

// Object is a drawable and updatable entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Frame for text.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}
