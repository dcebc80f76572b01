package render

import (
	"github.com/matzehuels/seqgram/pkg/errors"
	"github.com/matzehuels/seqgram/pkg/seq/canvas"
	"github.com/matzehuels/seqgram/pkg/seq/layout"
)

// RenderOption configures Render and Lines.
type RenderOption func(*renderer)

type renderer struct {
	glyphs Glyphs
}

// WithGlyphs draws with g instead of the Unicode set.
func WithGlyphs(g Glyphs) RenderOption { return func(r *renderer) { r.glyphs = g } }

// WithASCII draws with the ASCII set.
func WithASCII() RenderOption { return WithGlyphs(ASCII) }

func newRenderer(opts ...RenderOption) renderer {
	r := renderer{glyphs: Unicode}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Render paints g onto a new canvas of g.Width by g.Height cells.
//
// A geometry that places anything outside its own bounds is a programming
// error in the layout stage and is reported as [errors.ErrCodeInternal].
func Render(g *layout.Geometry, opts ...RenderOption) (*canvas.Canvas, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInternal, "render: nil geometry")
	}
	r := newRenderer(opts...)
	c := canvas.New(g.Width, g.Height)

	for _, p := range g.Participants {
		r.box(c, p, p.TopY)
		r.box(c, p, p.BottomY)
	}
	for i, l := range g.Lifelines {
		c.VLine(l.X, l.StartY, l.EndY, r.glyphs.Vertical)
		p := g.Participants[i]
		c.Set(l.X, p.TopY+layout.ParticipantHeight-1, r.glyphs.TeeDown)
		c.Set(l.X, p.BottomY, r.glyphs.TeeUp)
	}
	for _, m := range g.Messages {
		if m.Direction == layout.DirectionSelf {
			r.selfMessage(c, g, m)
		} else {
			r.message(c, g, m)
		}
		if m.HasLabel() {
			c.Text(m.LabelX, m.LabelY, m.Label)
		}
	}

	if err := c.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render: geometry exceeds canvas")
	}
	return c, nil
}

// Lines renders g and returns the serialized rows.
func Lines(g *layout.Geometry, opts ...RenderOption) ([]string, error) {
	c, err := Render(g, opts...)
	if err != nil {
		return nil, err
	}
	return c.Lines(), nil
}

func (r renderer) box(c *canvas.Canvas, p layout.ParticipantGeometry, top int) {
	gl := r.glyphs
	mid, bottom := top+1, top+2

	c.HLine(p.Left+1, p.Right-1, top, gl.Horizontal)
	c.HLine(p.Left+1, p.Right-1, bottom, gl.Horizontal)
	c.Set(p.Left, top, gl.TopLeft)
	c.Set(p.Right, top, gl.TopRight)
	c.Set(p.Left, bottom, gl.BottomLeft)
	c.Set(p.Right, bottom, gl.BottomRight)
	c.Set(p.Left, mid, gl.Vertical)
	c.Set(p.Right, mid, gl.Vertical)
	c.Text(p.NameX(), mid, p.Name)
}

func (r renderer) message(c *canvas.Canvas, g *layout.Geometry, m layout.MessageGeometry) {
	gl := r.glyphs
	c.HLine(m.StartX, m.EndX, m.ArrowY, gl.Horizontal)

	lo, hi := min(m.From, m.To), max(m.From, m.To)
	for i := lo + 1; i < hi; i++ {
		c.Set(g.Participants[i].CenterX, m.ArrowY, gl.Cross)
	}

	if m.Direction == layout.DirectionLeft {
		c.Set(m.StartX, m.ArrowY, gl.ArrowLeft)
	} else {
		c.Set(m.EndX, m.ArrowY, gl.ArrowRight)
	}
}

// selfMessage draws a loop that leaves the lifeline, turns down one row and
// points back at it.
func (r renderer) selfMessage(c *canvas.Canvas, g *layout.Geometry, m layout.MessageGeometry) {
	gl := r.glyphs
	x := g.Participants[m.From].CenterX
	y := m.ArrowY

	c.Set(x, y, gl.TeeRight)
	c.HLine(m.StartX, m.EndX-1, y, gl.Horizontal)
	c.Set(m.EndX, y, gl.TopRight)

	c.Set(m.StartX, y+1, gl.ArrowLeft)
	c.HLine(m.StartX+1, m.EndX-1, y+1, gl.Horizontal)
	c.Set(m.EndX, y+1, gl.BottomRight)
}
