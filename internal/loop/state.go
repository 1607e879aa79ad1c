package loop

import (
	"time"

	"github.com/tomz197/rocket/internal/input"
	"github.com/tomz197/rocket/internal/object"
	"github.com/tomz197/rocket/internal/physics"
)

// State holds everything one flight owns. Each Run creates its own State;
// nothing is shared between sessions.
type State struct {
	Objects []object.Object
	toSpawn []object.Object // Objects to add after current update cycle
	Ship    *object.Ship
	World   physics.Bounds
	Input   input.Input
	Delta   time.Duration // Frame delta fed to the physics
	Running bool

	lastInput  time.Time
	isInactive bool
}

// NewState creates a flight with one ship at the start position.
func NewState() *State {
	ship := object.NewShip()
	return &State{
		Objects:   []object.Object{ship},
		Ship:      ship,
		World:     ship.Physics.Bounds(),
		Running:   true,
		lastInput: time.Now(),
	}
}

// AddObject adds an object to the flight.
func (s *State) AddObject(obj object.Object) {
	s.Objects = append(s.Objects, obj)
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (s *State) Spawn(obj object.Object) {
	s.toSpawn = append(s.toSpawn, obj)
}

// FlushSpawned adds all queued objects and clears the queue.
func (s *State) FlushSpawned() {
	s.Objects = append(s.Objects, s.toSpawn...)
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
}

// UpdateContext creates an UpdateContext from the current state.
func (s *State) UpdateContext() object.UpdateContext {
	return object.UpdateContext{
		Delta:   s.Delta,
		Input:   s.Input,
		World:   s.World,
		Spawner: s,
	}
}

// Update advances every object by delta, drops the ones that asked to be
// removed, and adds whatever was spawned during the cycle.
func (s *State) Update(delta time.Duration) error {
	s.Delta = delta
	ctx := s.UpdateContext()

	kept := s.Objects[:0]
	for _, obj := range s.Objects {
		remove, err := obj.Update(ctx)
		if err != nil {
			return err
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(s.Objects[len(kept):])
	s.Objects = kept

	s.FlushSpawned()
	return nil
}
