package render

// Glyphs is the set of runes a diagram is drawn with.
type Glyphs struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	TeeDown     rune // lifeline leaving the bottom of a top box
	TeeUp       rune // lifeline entering the top of a bottom box
	TeeRight    rune // self-message leaving its lifeline
	Cross       rune // arrow passing over a lifeline
	ArrowRight  rune
	ArrowLeft   rune
}

// Unicode draws with box-drawing characters.
var Unicode = Glyphs{
	Horizontal:  '─',
	Vertical:    '│',
	TopLeft:     '┌',
	TopRight:    '┐',
	BottomLeft:  '└',
	BottomRight: '┘',
	TeeDown:     '┬',
	TeeUp:       '┴',
	TeeRight:    '├',
	Cross:       '┼',
	ArrowRight:  '>',
	ArrowLeft:   '<',
}

// ASCII draws with printable ASCII only.
var ASCII = Glyphs{
	Horizontal:  '-',
	Vertical:    '|',
	TopLeft:     '+',
	TopRight:    '+',
	BottomLeft:  '+',
	BottomRight: '+',
	TeeDown:     '+',
	TeeUp:       '+',
	TeeRight:    '+',
	Cross:       '+',
	ArrowRight:  '>',
	ArrowLeft:   '<',
}
