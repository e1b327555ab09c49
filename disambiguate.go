package chess

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoLegalMove is returned when no legal move matches the description.
	ErrNoLegalMove = errors.New("chess: no legal move matches")
	// ErrAmbiguousMove is returned when more than one legal move matches.
	ErrAmbiguousMove = errors.New("chess: ambiguous move")
	// ErrAnnotationMismatch is returned in strict mode when the written
	// capture or check marker disagrees with the resolved move.
	ErrAnnotationMismatch = errors.New("chess: move annotation does not match position")
)

// DisambiguationError reports why an AmbiguousMove could not be resolved
// to exactly one legal move.
type DisambiguationError struct {
	Err        error
	Move       AmbiguousMove
	Candidates []Move // matching legal moves, empty for ErrNoLegalMove
}

func (e *DisambiguationError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Move)
	}
	names := make([]string, len(e.Candidates))
	for i, m := range e.Candidates {
		names[i] = m.String()
	}
	return fmt.Sprintf("%s: %s (candidates %s)", e.Err.Error(), e.Move, strings.Join(names, ", "))
}

func (e *DisambiguationError) Unwrap() error {
	return e.Err
}

// ResolveOptions controls how markers in the move text are treated.
type ResolveOptions struct {
	// StrictAnnotations requires the "x", "+" and "#" markers to agree
	// with the resolved move. By default they are accepted as written.
	StrictAnnotations bool
}

// Resolve matches an ambiguous move against a list of legal moves and
// returns the single move it describes. Piece type, origin file and rank,
// destination, promotion and castling side are all constraints. A move
// without a promotion never matches a promoting move.
func Resolve(am AmbiguousMove, legal []Move, opts *ResolveOptions) (Move, error) {
	if opts == nil {
		opts = &ResolveOptions{}
	}

	var candidates []Move
	for _, m := range legal {
		if matches(am, m) {
			candidates = append(candidates, m)
		}
	}

	switch len(candidates) {
	case 0:
		return Move{}, &DisambiguationError{Err: ErrNoLegalMove, Move: am}
	case 1:
	default:
		return Move{}, &DisambiguationError{Err: ErrAmbiguousMove, Move: am, Candidates: candidates}
	}

	m := candidates[0]
	if opts.StrictAnnotations {
		if err := checkAnnotations(am, m); err != nil {
			return Move{}, &DisambiguationError{Err: err, Move: am, Candidates: candidates}
		}
	}
	return m, nil
}

func matches(am AmbiguousMove, m Move) bool {
	switch am.castle {
	case KingSide:
		return m.HasTag(KingSideCastle)
	case QueenSide:
		return m.HasTag(QueenSideCastle)
	}
	if m.HasTag(KingSideCastle | QueenSideCastle) {
		return false
	}
	if m.piece.Type() != am.piece || m.s2 != am.dest || m.promo != am.promo {
		return false
	}
	if am.srcFile != NoFile && m.s1.File() != am.srcFile {
		return false
	}
	if am.srcRank != NoRank && m.s1.Rank() != am.srcRank {
		return false
	}
	return true
}

func checkAnnotations(am AmbiguousMove, m Move) error {
	if am.castle == NoCastle && am.capture != m.HasTag(Capture) {
		return fmt.Errorf("%w: capture marker", ErrAnnotationMismatch)
	}
	want := NoAnnotation
	switch {
	case m.HasTag(Mate):
		want = CheckmateAnnotation
	case m.HasTag(Check):
		want = CheckAnnotation
	}
	if am.annotation != want {
		return fmt.Errorf("%w: expected %q, got %q", ErrAnnotationMismatch, want.String(), am.annotation.String())
	}
	return nil
}
