package layout

import (
	"github.com/matzehuels/seqgram/pkg/errors"
)

// Fixed geometry that is not configurable: boxes are drawn with one-cell
// borders and are three rows tall (border, name, border).
const (
	BorderWidth       = 1
	ParticipantHeight = 3
)

// Config holds every spacing value used by the layout engine.
// The zero value is not useful; start from DefaultConfig.
type Config struct {
	// ParticipantPaddingX is the number of blank cells between a name and
	// the box border on each side.
	ParticipantPaddingX int `json:"participant_padding_x" toml:"participant_padding_x" yaml:"participant_padding_x"`

	// MessagePaddingX is the number of blank cells kept on each side of a
	// message label.
	MessagePaddingX int `json:"message_padding_x" toml:"message_padding_x" yaml:"message_padding_x"`

	// MinNameWidth widens boxes of short names.
	MinNameWidth int `json:"min_name_width" toml:"min_name_width" yaml:"min_name_width"`

	// BoxGap is the minimum number of blank cells between adjacent boxes.
	BoxGap int `json:"box_gap" toml:"box_gap" yaml:"box_gap"`

	// EdgeSpacing is the number of spacer rows around each message.
	EdgeSpacing int `json:"edge_spacing" toml:"edge_spacing" yaml:"edge_spacing"`

	MarginLeft   int `json:"margin_left" toml:"margin_left" yaml:"margin_left"`
	MarginRight  int `json:"margin_right" toml:"margin_right" yaml:"margin_right"`
	MarginTop    int `json:"margin_top" toml:"margin_top" yaml:"margin_top"`
	MarginBottom int `json:"margin_bottom" toml:"margin_bottom" yaml:"margin_bottom"`
}

// DefaultConfig returns the spacing used by the reference diagrams.
func DefaultConfig() Config {
	return Config{
		ParticipantPaddingX: 1,
		MessagePaddingX:     1,
		MinNameWidth:        0,
		BoxGap:              0,
		EdgeSpacing:         1,
		MarginLeft:          1,
		MarginRight:         1,
		MarginTop:           1,
		MarginBottom:        1,
	}
}

// Validate rejects negative values.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"participant_padding_x", c.ParticipantPaddingX},
		{"message_padding_x", c.MessagePaddingX},
		{"min_name_width", c.MinNameWidth},
		{"box_gap", c.BoxGap},
		{"edge_spacing", c.EdgeSpacing},
		{"margin_left", c.MarginLeft},
		{"margin_right", c.MarginRight},
		{"margin_top", c.MarginTop},
		{"margin_bottom", c.MarginBottom},
	}
	for _, f := range fields {
		if f.value < 0 {
			return errors.New(errors.ErrCodeInvalidLayout, "%s must not be negative (got %d)", f.name, f.value)
		}
	}
	return nil
}

// boxWidth returns the full box width, borders included, for a name of the
// given display width.
func (c Config) boxWidth(nameWidth int) int {
	return max(nameWidth, c.MinNameWidth) + 2*c.ParticipantPaddingX + 2*BorderWidth
}
