// Package model binds parsed statements to an ordered participant list.
//
// A [Diagram] is the immutable input of the layout engine: participants in
// first-seen order and messages that reference participants by index.
package model

import (
	"github.com/matzehuels/seqgram/pkg/errors"
	"github.com/matzehuels/seqgram/pkg/seq/parse"
)

// Participant is a named column of the diagram.
type Participant struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

// Message is a directed, labeled exchange between two participants.
type Message struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Label string `json:"label,omitempty"`
	Line  int    `json:"line"`
}

// IsSelf reports whether the message starts and ends on the same participant.
func (m Message) IsSelf() bool { return m.From == m.To }

// Diagram is the participant list plus index-bound messages.
type Diagram struct {
	Participants []Participant `json:"participants"`
	Messages     []Message     `json:"messages"`

	index map[string]int
}

// Build collects participants in first-seen order (source before
// destination within a statement, statements top to bottom) and rewrites
// each statement to participant indices.
func Build(stmts []parse.Statement) (*Diagram, error) {
	if len(stmts) == 0 {
		return nil, errors.New(errors.ErrCodeNoParticipants, "diagram has no messages; nothing to render")
	}

	d := &Diagram{
		Messages: make([]Message, 0, len(stmts)),
		index:    make(map[string]int),
	}
	for _, s := range stmts {
		from := d.add(s.From)
		to := d.add(s.To)
		d.Messages = append(d.Messages, Message{From: from, To: to, Label: s.Label, Line: s.Line})
	}
	return d, nil
}

func (d *Diagram) add(name string) int {
	if i, ok := d.index[name]; ok {
		return i
	}
	i := len(d.Participants)
	d.Participants = append(d.Participants, Participant{Name: name, Index: i})
	d.index[name] = i
	return i
}

// Index returns the participant index for name.
func (d *Diagram) Index(name string) (int, bool) {
	if d.index == nil {
		for _, p := range d.Participants {
			if p.Name == name {
				return p.Index, true
			}
		}
		return 0, false
	}
	i, ok := d.index[name]
	return i, ok
}

// Names returns participant names in column order.
func (d *Diagram) Names() []string {
	names := make([]string, len(d.Participants))
	for i, p := range d.Participants {
		names[i] = p.Name
	}
	return names
}
