// Package loop provides the main flight loop: input, physics update, draw.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/rocket/internal/draw"
	"github.com/tomz197/rocket/internal/hud"
	"github.com/tomz197/rocket/internal/input"
	"github.com/tomz197/rocket/internal/loop/config"
	"github.com/tomz197/rocket/internal/object"
)

const helpText = "←/→ rotate  ↑ thrust  q quit"

// Options configures a flight.
type Options struct {
	// TermSizeFunc reports the terminal size; defaults to the local stdout.
	TermSizeFunc draw.TermSizeFunc
	// KeyHold sets how long a key counts as held after its last byte; zero
	// fields mean input.DefaultHold.
	KeyHold input.Hold
	// HUDInterval is how often the FPS readout refreshes; zero means
	// hud.DefaultInterval.
	HUDInterval time.Duration
	// IdleTimeout ends the flight after this long without a key press.
	// Zero disables it.
	IdleTimeout time.Duration
	// Logger receives lifecycle messages; nil discards them.
	Logger *log.Logger
}

// flight is the per-run rendering and input plumbing around a State.
type flight struct {
	state        *State
	opts         Options
	stream       *input.Stream
	hud          *hud.HUD
	canvas       *draw.Canvas
	frame        *draw.Frame
	termSizeFunc draw.TermSizeFunc
	wasInactive  bool
}

// Run starts the flight loop with the standard Input → Update → Draw cycle.
// It returns when the player quits, the input ends, ctx is cancelled, or
// writing to w fails.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.StdoutSize
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	state := NewState()
	world := state.World

	termWidth, termHeight, err := opts.TermSizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitSquare(termWidth, termHeight, config.MaxTermWidth)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, world.Width(), world.Height())
	frame := draw.NewFrame(w)
	frame.SetOrigin(offsetCol, offsetRow)

	f := &flight{
		state:        state,
		opts:         opts,
		stream:       input.StartStream(r, opts.KeyHold),
		hud:          hud.New(opts.HUDInterval),
		canvas:       canvas,
		frame:        frame,
		termSizeFunc: opts.TermSizeFunc,
	}

	defer f.stream.Close()
	cleanup := f.hud.ScheduleUpdates(ctx)
	defer cleanup()

	// Leave the terminal usable however the flight ends.
	defer func() {
		frame.ClearScreen()
		frame.ShowCursor()
		_ = frame.Flush()
	}()

	frame.HideCursor()
	frame.ClearScreen()
	canvas.RenderBorder(frame)
	if err := frame.Flush(); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}

	opts.Logger.Debug("flight started", "term", fmt.Sprintf("%dx%d", termWidth, termHeight),
		"render", fmt.Sprintf("%dx%d", renderWidth, renderHeight))

	lastTime := time.Now()

	for state.Running {
		select {
		case <-ctx.Done():
			state.Running = false
			continue
		default:
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		f.processInput(frameStart)
		if !state.Running {
			break
		}

		// ===== UPDATE PHASE =====
		f.updateScreen()
		f.hud.CalculateFPS(delta)
		if err := state.Update(min(delta, config.MaxFrameDelta)); err != nil {
			return err
		}

		// ===== DRAW PHASE =====
		if err := f.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	st := state.Ship.State()
	opts.Logger.Debug("flight ended", "x", st.Position.X, "y", st.Position.Y, "angle", st.RotationAngle)
	return nil
}

// processInput reads all pending input and tracks inactivity.
func (f *flight) processInput(now time.Time) {
	s := f.state
	s.Input = input.ReadInput(f.stream)

	if s.Input.Quit {
		s.Running = false
		return
	}

	if len(s.Input.Pressed) > 0 {
		s.lastInput = now
		s.isInactive = false
		return
	}

	if f.opts.IdleTimeout <= 0 {
		return
	}
	idle := now.Sub(s.lastInput)
	switch {
	case idle > f.opts.IdleTimeout:
		f.opts.Logger.Info("disconnecting idle flight", "idle", idle.Round(time.Second))
		s.Running = false
	case idle > f.opts.IdleTimeout*3/4:
		s.isInactive = true
	}
}

// updateScreen handles terminal resize, keeping the render area square.
// On actual size changes the terminal is cleared so no residue of the old
// layout remains.
func (f *flight) updateScreen() {
	termWidth, termHeight, err := f.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitSquare(termWidth, termHeight, config.MaxTermWidth)

	c := f.canvas
	originCol, originRow := f.frame.Origin()
	if renderWidth == c.Cols() && renderHeight == c.Rows() &&
		offsetCol == originCol && offsetRow == originRow {
		return
	}

	f.frame.ClearScreen()
	f.frame.SetOrigin(offsetCol, offsetRow)
	c.Resize(renderWidth, renderHeight)
	c.ForceRedraw()
	c.RenderBorder(f.frame)
}

// drawFrame draws all objects and the overlays, then flushes the frame.
func (f *flight) drawFrame() error {
	// The idle banner is not part of the canvas; wipe it on transitions.
	if f.state.isInactive != f.wasInactive {
		f.wasInactive = f.state.isInactive
		f.frame.ClearScreen()
		f.canvas.ForceRedraw()
		f.canvas.RenderBorder(f.frame)
	}

	f.canvas.Clear()

	ctx := object.DrawContext{
		Canvas: f.canvas,
		Frame:  f.frame,
		World:  f.state.World,
	}

	for _, obj := range f.state.Objects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}

	// Render canvas, then text on top of it.
	f.canvas.Render(f.frame)
	for _, t := range f.overlays() {
		if err := t.Draw(ctx); err != nil {
			return err
		}
	}

	return f.frame.Flush()
}

// overlays returns the text drawn over the canvas this frame.
func (f *flight) overlays() []object.Text {
	height := f.canvas.Rows()
	texts := []object.Text{
		{X: 1, Y: 1, Value: f.hud.Padded()},
		{X: 1, Y: height, Value: helpText},
	}
	if f.state.isInactive {
		msg := "idle - press any key to keep flying"
		texts = append(texts, object.Text{
			X:     (f.canvas.Cols() - len(msg)) / 2,
			Y:     height / 2,
			Value: msg,
		})
	}
	return texts
}
