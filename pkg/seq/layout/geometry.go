package layout

import (
	"encoding/json"
	"fmt"
)

// Direction is the horizontal direction of a message arrow.
type Direction string

const (
	DirectionRight Direction = "right"
	DirectionLeft  Direction = "left"
	DirectionSelf  Direction = "self"
)

// Geometry is the fully computed position of every diagram element.
// All coordinates are zero-based cell indices into the canvas.
type Geometry struct {
	Width        int                   `json:"width"`
	Height       int                   `json:"height"`
	Participants []ParticipantGeometry `json:"participants"`
	Messages     []MessageGeometry     `json:"messages"`
	Lifelines    []Lifeline            `json:"lifelines"`
}

// ParticipantGeometry positions one participant's top and bottom boxes.
type ParticipantGeometry struct {
	Name      string `json:"name"`
	NameWidth int    `json:"name_width"`
	CenterX   int    `json:"center_x"`
	Left      int    `json:"left"`
	Right     int    `json:"right"`
	BoxWidth  int    `json:"box_width"`
	TopY      int    `json:"top_y"`
	BottomY   int    `json:"bottom_y"`
}

// NameX returns the column of the first name cell, centered on CenterX.
func (p ParticipantGeometry) NameX() int {
	return p.CenterX - (p.NameWidth-1)/2
}

// MessageGeometry positions one message row.
//
// StartX and EndX are the outermost cells of the connecting line with
// StartX <= EndX. For DirectionSelf they delimit the loop drawn to the right
// of the lifeline and the arrow occupies rows ArrowY and ArrowY+1.
type MessageGeometry struct {
	Row       int       `json:"row"`
	From      int       `json:"from"`
	To        int       `json:"to"`
	Direction Direction `json:"direction"`
	StartX    int       `json:"start_x"`
	EndX      int       `json:"end_x"`
	ArrowY    int       `json:"arrow_y"`
	Label     string    `json:"label,omitempty"`
	LabelX    int       `json:"label_x"`
	LabelY    int       `json:"label_y"` // -1 when Label is empty
}

// HasLabel reports whether a label row was allocated.
func (m MessageGeometry) HasLabel() bool { return m.LabelY >= 0 }

// Lifeline is a vertical run of lifeline glyphs below a participant.
type Lifeline struct {
	X      int `json:"x"`
	StartY int `json:"start_y"`
	EndY   int `json:"end_y"`
}

// Marshal serializes geometry to JSON.
func Marshal(g *Geometry) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// Unmarshal parses geometry produced by Marshal.
func Unmarshal(data []byte) (*Geometry, error) {
	var g Geometry
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("unmarshal geometry: %w", err)
	}
	return &g, nil
}
