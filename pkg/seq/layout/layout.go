// Package layout computes the character-grid geometry of a sequence diagram.
//
// Layout is a pure function of a [model.Diagram] and a [Config]:
//
//  1. Box widths follow from name display widths.
//  2. A left-to-right sweep places column centers so that adjacent boxes do
//     not overlap and every label between two adjacent columns fits.
//  3. A second pass widens spans of messages that skip over columns.
//  4. Rows are allocated top to bottom in message order.
//
// Labels are never truncated; spans grow instead.
package layout

import (
	"github.com/matzehuels/seqgram/pkg/errors"
	"github.com/matzehuels/seqgram/pkg/seq/canvas"
	"github.com/matzehuels/seqgram/pkg/seq/model"
)

// Compute lays out d using cfg.
func Compute(d *model.Diagram, cfg Config) (*Geometry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if d == nil || len(d.Participants) == 0 {
		return nil, errors.New(errors.ErrCodeNoParticipants, "diagram has no participants")
	}

	n := len(d.Participants)
	nameWidths := make([]int, n)
	boxWidths := make([]int, n)
	for i, p := range d.Participants {
		nameWidths[i] = canvas.StringWidth(p.Name)
		boxWidths[i] = cfg.boxWidth(nameWidths[i])
	}

	selfExtents := selfLoopExtents(d)
	centers := columnCenters(d, cfg, boxWidths, selfExtents)
	widenSkippingSpans(d, cfg, centers)

	g := &Geometry{
		Participants: make([]ParticipantGeometry, n),
		Messages:     make([]MessageGeometry, 0, len(d.Messages)),
		Lifelines:    make([]Lifeline, n),
	}

	last := n - 1
	g.Width = centers[last] + boxWidths[last]/2 + cfg.MarginRight + 1
	if ext := selfExtents[last]; ext > 0 {
		g.Width = max(g.Width, centers[last]+ext+cfg.MarginRight+1)
	}

	bottomY := placeMessages(g, d, cfg, centers)
	g.Height = bottomY + ParticipantHeight + cfg.MarginBottom

	for i, p := range d.Participants {
		g.Participants[i] = ParticipantGeometry{
			Name:      p.Name,
			NameWidth: nameWidths[i],
			CenterX:   centers[i],
			Left:      centers[i] - (boxWidths[i]-1)/2,
			Right:     centers[i] + boxWidths[i]/2,
			BoxWidth:  boxWidths[i],
			TopY:      cfg.MarginTop,
			BottomY:   bottomY,
		}
		g.Lifelines[i] = Lifeline{
			X:      centers[i],
			StartY: cfg.MarginTop + ParticipantHeight,
			EndY:   bottomY - 1,
		}
	}

	if err := checkColumns(g); err != nil {
		return nil, err
	}
	return g, nil
}

// columnCenters performs the left-to-right sweep. Each gap is the largest of
// the box adjacency distance, the widest label exchanged between the two
// neighbours, and the self-loop extent of the left neighbour.
func columnCenters(d *model.Diagram, cfg Config, boxWidths, selfExtents []int) []int {
	n := len(boxWidths)

	labelGaps := make([]int, n)
	for _, m := range d.Messages {
		lo, hi := min(m.From, m.To), max(m.From, m.To)
		if hi-lo != 1 || m.Label == "" {
			continue
		}
		labelGaps[hi] = max(labelGaps[hi], labelSpan(m.Label, cfg))
	}

	centers := make([]int, n)
	centers[0] = cfg.MarginLeft + (boxWidths[0]-1)/2
	for i := 1; i < n; i++ {
		gap := boxWidths[i-1]/2 + (boxWidths[i]-1)/2 + 1 + cfg.BoxGap
		gap = max(gap, labelGaps[i])
		if ext := selfExtents[i-1]; ext > 0 {
			gap = max(gap, ext+cfg.MessagePaddingX+1)
		}
		centers[i] = centers[i-1] + gap
	}
	return centers
}

// widenSkippingSpans shifts columns right until the label of every message
// that skips over at least one column fits between its endpoints.
func widenSkippingSpans(d *model.Diagram, cfg Config, centers []int) {
	for _, m := range d.Messages {
		lo, hi := min(m.From, m.To), max(m.From, m.To)
		if hi-lo < 2 || m.Label == "" {
			continue
		}
		deficit := labelSpan(m.Label, cfg) - (centers[hi] - centers[lo])
		if deficit <= 0 {
			continue
		}
		for i := hi; i < len(centers); i++ {
			centers[i] += deficit
		}
	}
}

// labelSpan is the minimum distance between two column centers for a label
// to fit between them with padding on both sides.
func labelSpan(label string, cfg Config) int {
	return canvas.StringWidth(label) + 2*cfg.MessagePaddingX + 1
}

// selfLoopExtents returns, per participant, how many cells to the right of
// the lifeline its self-messages occupy (0 when it has none).
func selfLoopExtents(d *model.Diagram) []int {
	ext := make([]int, len(d.Participants))
	for _, m := range d.Messages {
		if !m.IsSelf() {
			continue
		}
		ext[m.From] = max(ext[m.From], 2, 1+canvas.StringWidth(m.Label))
	}
	return ext
}

// placeMessages allocates rows for every message and returns the row of the
// bottom boxes' top border.
func placeMessages(g *Geometry, d *model.Diagram, cfg Config, centers []int) int {
	y := cfg.MarginTop + ParticipantHeight + cfg.EdgeSpacing
	for k, m := range d.Messages {
		mg := MessageGeometry{
			Row:    k,
			From:   m.From,
			To:     m.To,
			Label:  m.Label,
			LabelY: -1,
		}
		if m.Label != "" {
			mg.LabelY = y
			y++
		}
		mg.ArrowY = y

		if m.IsSelf() {
			c := centers[m.From]
			mg.Direction = DirectionSelf
			mg.StartX, mg.EndX = c+1, c+2
			mg.LabelX = c + 2
			y += 2
		} else {
			from, to := centers[m.From], centers[m.To]
			mg.Direction = DirectionRight
			if to < from {
				mg.Direction = DirectionLeft
			}
			mg.StartX, mg.EndX = min(from, to)+1, max(from, to)-1
			// A label exactly as wide as an even span starts at StartX.
			mg.LabelX = max(mg.StartX, (mg.StartX+mg.EndX)/2-canvas.StringWidth(m.Label)/2)
			y++
		}

		g.Messages = append(g.Messages, mg)
		y += cfg.EdgeSpacing
	}
	return y
}

// checkColumns verifies that columns are strictly ordered and boxes do not
// overlap.
func checkColumns(g *Geometry) error {
	for i := 1; i < len(g.Participants); i++ {
		prev, cur := g.Participants[i-1], g.Participants[i]
		if cur.CenterX <= prev.CenterX || cur.Left <= prev.Right {
			return errors.New(errors.ErrCodeDegenerateSpan,
				"participants %q and %q overlap (columns %d and %d)", prev.Name, cur.Name, prev.CenterX, cur.CenterX)
		}
	}
	return nil
}
