package errors

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// MaxNameWidth is the widest participant name accepted, in display cells.
const MaxNameWidth = 80

// nameCells counts ambiguous-width runes as one cell, matching the canvas.
var nameCells = &runewidth.Condition{EastAsianWidth: false}

// ValidateParticipantName validates a trimmed participant name found on line.
// The position describes which side of the arrow the name was on ("source"
// or "destination") and is only used in the message.
//
// The validation rules are:
//   - No empty names
//   - No control characters (tabs included)
//   - No zero-width characters, such as combining marks left over after
//     NFC normalization, since every rune must own a canvas cell
//   - Maximum display width of MaxNameWidth cells
func ValidateParticipantName(name string, line int, position string) error {
	if name == "" {
		return Syntax(ErrCodeEmptyParticipant, line, "%s participant is empty; expected %s", position, ExpectedPattern)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return Syntax(ErrCodeInvalidCharacter, line, "%s participant contains control character %q; expected %s", position, r, ExpectedPattern)
		}
		if nameCells.RuneWidth(r) == 0 {
			return Syntax(ErrCodeInvalidCharacter, line, "%s participant contains zero-width character %U; expected %s", position, r, ExpectedPattern)
		}
	}

	if w := nameCells.StringWidth(name); w > MaxNameWidth {
		return Syntax(ErrCodeParticipantTooLong, line, "%s participant is too long (%d cells, max %d); expected %s", position, w, MaxNameWidth, ExpectedPattern)
	}

	return nil
}

// ValidateLabel validates a trimmed message label.
// Labels may be empty but must not contain control or zero-width characters,
// which would break the character grid.
func ValidateLabel(label string, line int) error {
	for _, r := range label {
		if unicode.IsControl(r) {
			return Syntax(ErrCodeInvalidCharacter, line, "message text contains control character %q; expected %s", r, ExpectedPattern)
		}
		if nameCells.RuneWidth(r) == 0 {
			return Syntax(ErrCodeInvalidCharacter, line, "message text contains zero-width character %U; expected %s", r, ExpectedPattern)
		}
	}
	return nil
}
