package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomz197/rocket/internal/input"
	"github.com/tomz197/rocket/internal/object"
	"github.com/tomz197/rocket/internal/physics"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

// lockedBuffer lets the test read output while Run may still be writing.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func runAsync(ctx context.Context, r io.Reader, w io.Writer, opts Options) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, bufio.NewReader(r), w, opts)
	}()
	return done
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestRunQuitsOnQ(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	out := &lockedBuffer{}

	done := runAsync(context.Background(), pr, out, Options{TermSizeFunc: fixedSize(80, 24)})
	time.Sleep(50 * time.Millisecond)
	pw.Write([]byte("q"))

	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run: %v", err)
	}

	s := out.String()
	if !strings.Contains(s, "\033[?25l") || !strings.Contains(s, "\033[?25h") {
		t.Fatalf("cursor not hidden and restored: %q", s)
	}
	if !strings.Contains(s, "60 FPS") {
		t.Fatalf("HUD label not drawn: %q", s)
	}
	if !strings.Contains(s, helpText) {
		t.Fatalf("help text not drawn")
	}
}

func TestRunEndsWhenInputCloses(t *testing.T) {
	out := &lockedBuffer{}
	done := runAsync(context.Background(), strings.NewReader(""), out, Options{TermSizeFunc: fixedSize(80, 24)})
	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, pr, &lockedBuffer{}, Options{TermSizeFunc: fixedSize(80, 24)})
	time.Sleep(50 * time.Millisecond)
	cancel()

	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunIdleTimeout(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	done := runAsync(context.Background(), pr, &lockedBuffer{}, Options{
		TermSizeFunc: fixedSize(80, 24),
		IdleTimeout:  100 * time.Millisecond,
	})
	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunTerminalSizeError(t *testing.T) {
	sizeErr := errors.New("no tty")
	err := Run(context.Background(), bufio.NewReader(strings.NewReader("")), io.Discard, Options{
		TermSizeFunc: func() (int, int, error) { return 0, 0, sizeErr },
	})
	if !errors.Is(err, sizeErr) {
		t.Fatalf("Run error = %v, want %v", err, sizeErr)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestRunReturnsWriteErrors(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	done := runAsync(context.Background(), pr, failingWriter{}, Options{TermSizeFunc: fixedSize(80, 24)})
	if err := waitRun(t, done); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("Run error = %v, want %v", err, io.ErrClosedPipe)
	}
}

func TestStateUpdateAdvancesShip(t *testing.T) {
	s := NewState()
	for i := 0; i < 5; i++ {
		if err := s.Update(16 * time.Millisecond); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}

	ref := physics.NewShip()
	for i := 0; i < 5; i++ {
		ref.Update(16, s.Input)
	}
	if s.Ship.State() != ref.ReadState() {
		t.Fatalf("ship state = %+v, want %+v", s.Ship.State(), ref.ReadState())
	}
}

func TestStateExhaustLifecycle(t *testing.T) {
	s := NewState()
	s.Input.Up = true
	for i := 0; i < 10; i++ {
		s.Update(16 * time.Millisecond)
	}
	if len(s.Objects) <= 1 {
		t.Fatal("expected exhaust particles while thrusting")
	}

	s.Input.Up = false
	for i := 0; i < 40; i++ {
		s.Update(16 * time.Millisecond)
	}
	if len(s.Objects) != 1 {
		t.Fatalf("%d objects left after exhaust faded, want only the ship", len(s.Objects))
	}
	if _, ok := s.Objects[0].(*object.Ship); !ok {
		t.Fatalf("remaining object is %T, want *object.Ship", s.Objects[0])
	}
}

type failingObject struct{}

func (failingObject) Update(object.UpdateContext) (bool, error) { return false, errors.New("boom") }
func (failingObject) Draw(object.DrawContext) error             { return nil }

func TestStateUpdatePropagatesErrors(t *testing.T) {
	s := NewState()
	s.AddObject(failingObject{})
	if err := s.Update(16 * time.Millisecond); err == nil {
		t.Fatal("expected update error")
	}
}

// Holding the up arrow in a terminal sends one byte, then nothing until the
// keyboard's repeat delay, then a byte every repeat interval. Thrust must
// ramp through all of it without cutting out.
func TestHeldThrustSurvivesKeyRepeatGaps(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	stream := input.StartStream(bufio.NewReader(pr), input.Hold{})
	defer stream.Close()

	pw.Write([]byte("\x1b[A"))
	go func() {
		time.Sleep(500 * time.Millisecond)
		for i := 0; i < 35; i++ {
			if _, err := pw.Write([]byte("\x1b[A")); err != nil {
				return
			}
			time.Sleep(40 * time.Millisecond)
		}
	}()

	ship := physics.NewShip()
	cutoffs := 0
	maxThrust := 0.0
	for i := 0; i < 100; i++ {
		time.Sleep(16 * time.Millisecond)
		ship.Update(16, input.ReadInput(stream))
		st := ship.ReadState()
		if st.Thrust == 0 {
			cutoffs++
		}
		maxThrust = max(maxThrust, st.Thrust)
	}

	st := ship.ReadState()
	if cutoffs != 0 {
		t.Errorf("thrust cut out on %d frames while the key was held", cutoffs)
	}
	if maxThrust != physics.MaxThrust {
		t.Errorf("max thrust %g, want %g", maxThrust, physics.MaxThrust)
	}
	if st.Position.Y >= physics.StartPosition.Y {
		t.Errorf("ship did not climb: y %g", st.Position.Y)
	}
}
