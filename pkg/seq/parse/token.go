package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/seqgram/pkg/errors"
)

// Kind identifies the syntactic role of a token.
type Kind int

const (
	TokenName Kind = iota
	TokenArrow
	TokenColon
	TokenText
)

func (k Kind) String() string {
	switch k {
	case TokenName:
		return "name"
	case TokenArrow:
		return "arrow"
	case TokenColon:
		return "colon"
	case TokenText:
		return "text"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Arrow is the direction of an arrow token: ArrowRight for "->" and
// ArrowLeft for "<-".
type Arrow int

const (
	ArrowNone Arrow = iota
	ArrowRight
	ArrowLeft
)

// Token is a single lexical element of a statement line.
type Token struct {
	Kind  Kind
	Text  string // trimmed text for names and message text
	Arrow Arrow  // set for TokenArrow
	Col   int    // 1-based rune column where the token starts
}

const (
	rightArrow = "->"
	leftArrow  = "<-"
)

// Tokenize splits one statement line into tokens. The line number is only
// used for error reporting.
//
// A well-formed line always yields exactly five tokens:
// name, arrow, name, colon, text. Names are returned trimmed but are not
// validated here; empty names are reported by [Parse].
func Tokenize(line string, lineNo int) ([]Token, error) {
	arrowAt, arrow := findArrow(line)
	colonAt := strings.IndexByte(line, ':')

	if arrowAt < 0 {
		return nil, malformed(lineNo, "missing arrow ('->' or '<-')")
	}
	if colonAt >= 0 && colonAt < arrowAt {
		return nil, malformed(lineNo, "colon appears before the arrow")
	}
	if arrow == ArrowLeft && strings.HasPrefix(line[arrowAt+len(leftArrow):], ">") {
		return nil, malformed(lineNo, "bidirectional arrows are not supported")
	}

	afterArrow := arrowAt + len(rightArrow)
	rest := line[afterArrow:]
	sep := strings.IndexByte(rest, ':')
	if sep < 0 {
		return nil, malformed(lineNo, "missing ':' separator before the message text")
	}
	if at, _ := findArrow(rest[:sep]); at >= 0 {
		return nil, malformed(lineNo, "multiple arrows found; expected exactly one arrow per line")
	}

	colonAt = afterArrow + sep
	return []Token{
		trimmedToken(TokenName, line, 0, arrowAt),
		{Kind: TokenArrow, Text: line[arrowAt:afterArrow], Arrow: arrow, Col: column(line, arrowAt)},
		trimmedToken(TokenName, line, afterArrow, colonAt),
		{Kind: TokenColon, Text: ":", Col: column(line, colonAt)},
		trimmedToken(TokenText, line, colonAt+1, len(line)),
	}, nil
}

// findArrow returns the byte offset and direction of the first arrow in s.
func findArrow(s string) (int, Arrow) {
	r := strings.Index(s, rightArrow)
	l := strings.Index(s, leftArrow)
	switch {
	case r < 0 && l < 0:
		return -1, ArrowNone
	case l < 0 || (r >= 0 && r < l):
		return r, ArrowRight
	default:
		return l, ArrowLeft
	}
}

// trimmedToken builds a token from line[start:end] with surrounding
// whitespace removed. Col points at the first non-blank rune, or at start
// when the slice is blank.
func trimmedToken(kind Kind, line string, start, end int) Token {
	raw := line[start:end]
	text := strings.TrimSpace(raw)
	offset := start
	if text != "" {
		offset += strings.Index(raw, text)
	}
	return Token{Kind: kind, Text: text, Col: column(line, offset)}
}

func column(line string, offset int) int {
	return utf8.RuneCountInString(line[:offset]) + 1
}

func malformed(line int, reason string) error {
	return errors.Syntax(errors.ErrCodeMalformedLine, line, "%s; expected %s", reason, errors.ExpectedPattern)
}
