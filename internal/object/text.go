package object

// Text is a line of text drawn over the canvas.
// Coordinates are 1-based cells of the render area.
type Text struct {
	X     int
	Y     int
	Value string
}

// Draw queues the text on the frame. Positions below 1 are pulled back
// into the render area.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" || ctx.Frame == nil {
		return nil
	}
	ctx.Frame.Text(max(t.X, 1), max(t.Y, 1), t.Value)
	return nil
}

// Update is a no-op for static text.
func (t Text) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}
