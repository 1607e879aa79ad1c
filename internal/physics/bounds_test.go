package physics

import "testing"

func TestClamp(t *testing.T) {
	half := Vector2{X: 20, Y: 20}
	tests := []struct {
		name    string
		pos     Vector2
		vel     Vector2
		wantPos Vector2
		wantVel Vector2
	}{
		{"inside", Vector2{X: 500, Y: 500}, Vector2{X: 1, Y: -1}, Vector2{X: 500, Y: 500}, Vector2{X: 1, Y: -1}},
		{"exactly on bound keeps velocity", Vector2{X: 20, Y: 980}, Vector2{X: -1, Y: 1}, Vector2{X: 20, Y: 980}, Vector2{X: -1, Y: 1}},
		{"left", Vector2{X: 5, Y: 500}, Vector2{X: -2, Y: 3}, Vector2{X: 20, Y: 500}, Vector2{X: 0, Y: 3}},
		{"right", Vector2{X: 999, Y: 500}, Vector2{X: 2, Y: 3}, Vector2{X: 980, Y: 500}, Vector2{X: 0, Y: 3}},
		{"top", Vector2{X: 500, Y: -40}, Vector2{X: 2, Y: -3}, Vector2{X: 500, Y: 20}, Vector2{X: 2, Y: 0}},
		{"floor", Vector2{X: 500, Y: 1200}, Vector2{X: 2, Y: 3}, Vector2{X: 500, Y: 980}, Vector2{X: 2, Y: 0}},
		{"corner", Vector2{X: -1, Y: 1001}, Vector2{X: -2, Y: 3}, Vector2{X: 20, Y: 980}, Vector2{X: 0, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, vel := Clamp(tt.pos, tt.vel, WorldBounds, half)
			if pos != tt.wantPos {
				t.Errorf("pos = %+v, want %+v", pos, tt.wantPos)
			}
			if vel != tt.wantVel {
				t.Errorf("vel = %+v, want %+v", vel, tt.wantVel)
			}
		})
	}
}

func TestBoundsSize(t *testing.T) {
	if WorldBounds.Width() != 1000 || WorldBounds.Height() != 1000 {
		t.Fatalf("world size = %gx%g, want 1000x1000", WorldBounds.Width(), WorldBounds.Height())
	}
}

func TestVectorOps(t *testing.T) {
	v := Vector2{X: 3, Y: -4}
	if got := v.Add(Vector2{X: 1, Y: 1}); got != (Vector2{X: 4, Y: -3}) {
		t.Errorf("Add = %+v", got)
	}
	if got := v.Scale(0.5); got != (Vector2{X: 1.5, Y: -2}) {
		t.Errorf("Scale = %+v", got)
	}
	if got := v.Length(); got != 5 {
		t.Errorf("Length = %g, want 5", got)
	}
}
