package parse

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/seqgram/pkg/errors"
)

// Statement is one parsed message line.
type Statement struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
	Line  int    `json:"line"`
}

// Parse parses the full diagram source. Blank lines are skipped; line
// numbers in statements and errors are physical 1-based line numbers.
func Parse(input string) ([]Statement, error) {
	var stmts []Statement
	for i, line := range strings.Split(input, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		s, err := ParseLine(line, i+1)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// Read reads all of r and parses it.
func Read(r io.Reader) ([]Statement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read diagram source")
	}
	return Parse(string(data))
}

// ParseLine parses a single non-blank line. The line is brought to NFC first
// so that decomposed accents become single precomposed runes.
func ParseLine(line string, lineNo int) (Statement, error) {
	toks, err := Tokenize(norm.NFC.String(line), lineNo)
	if err != nil {
		return Statement{}, err
	}
	if err := expect(toks, lineNo, TokenName, TokenArrow, TokenName, TokenColon, TokenText); err != nil {
		return Statement{}, err
	}

	first, arrow, second, text := toks[0], toks[1], toks[2], toks[4]
	if err := errors.ValidateParticipantName(first.Text, lineNo, "source"); err != nil {
		return Statement{}, err
	}
	if err := errors.ValidateParticipantName(second.Text, lineNo, "destination"); err != nil {
		return Statement{}, err
	}
	if err := errors.ValidateLabel(text.Text, lineNo); err != nil {
		return Statement{}, err
	}

	s := Statement{From: first.Text, To: second.Text, Label: text.Text, Line: lineNo}
	if arrow.Arrow == ArrowLeft {
		s.From, s.To = s.To, s.From
	}
	return s, nil
}

func expect(toks []Token, lineNo int, kinds ...Kind) error {
	if len(toks) != len(kinds) {
		return malformed(lineNo, fmt.Sprintf("expected %d tokens, found %d", len(kinds), len(toks)))
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			return malformed(lineNo, fmt.Sprintf("expected %s at column %d, found %s", k, toks[i].Col, toks[i].Kind))
		}
	}
	return nil
}
