// Package parse turns sequence diagram source text into statements.
//
// The grammar is line oriented. Each non-blank line holds exactly one
// statement:
//
//	<participant> -> <participant> : <message text>
//	<participant> <- <participant> : <message text>
//
// Participant names are trimmed and may contain inner spaces. The message
// text is everything after the first colon that follows the arrow, trimmed;
// it may be empty and may itself contain arrows or colons.
//
// Lines are normalized to Unicode NFC before tokenizing. Zero-width runes
// that survive normalization, such as a combining mark with no precomposed
// form, are rejected because every rune must occupy a canvas cell.
//
// # Stages
//
// Parsing happens in two steps:
//
//  1. [Tokenize] splits one line into a closed set of token kinds
//     ([TokenName], [TokenArrow], [TokenColon], [TokenText]).
//  2. [Parse] checks the token sequence, validates names and produces a
//     [Statement] per line. A left arrow is normalized so that
//     [Statement.From] is always the sender.
//
// # Errors
//
// All failures are *errors.Error values from pkg/errors with the 1-based
// line number set. Parsing stops at the first offending line and returns
// no statements.
package parse
