package board

import "fmt"

// InvalidMoveError reports a move that cannot be played in the current
// position: no piece on the origin, a destination outside the legal set,
// an ambiguous or unmatched notation string, or an undo with no history.
type InvalidMoveError struct {
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return "invalid move: " + e.Reason
}

// InvalidBoardError reports a position that violates a structural
// requirement of the rules, such as a side with zero or multiple kings.
type InvalidBoardError struct {
	Reason string
}

func (e *InvalidBoardError) Error() string {
	return "invalid board: " + e.Reason
}

// ParseError reports malformed notation text (FEN, UCI or SAN).
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Reason)
}

func invalidMovef(format string, args ...interface{}) error {
	return &InvalidMoveError{Reason: fmt.Sprintf(format, args...)}
}

func parseErrf(input, format string, args ...interface{}) error {
	return &ParseError{Input: input, Reason: fmt.Sprintf(format, args...)}
}
