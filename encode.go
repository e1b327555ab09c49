package chess

import (
	"fmt"
	"strings"
)

// Notation is the interface implemented by move encodings.
type Notation interface {
	// Encode writes the move in the notation, relative to the position
	// the move is played from.
	Encode(pos *Position, m Move) string
	// Decode reads a move written in the notation and returns the legal
	// move it denotes in the position.
	Decode(pos *Position, s string) (Move, error)
}

// AlgebraicNotation (or Standard Algebraic Notation) is the
// official chess notation used by FIDE. Examples: e4, e5,
// O-O (short castling), e8=Q (promotion)
type AlgebraicNotation struct {
	// Options is used when decoding. A nil value accepts markers as written.
	Options *ResolveOptions
}

// String implements the fmt.Stringer interface and returns
// the notation's name.
func (AlgebraicNotation) String() string {
	return "Algebraic Notation"
}

// Encode implements the Notation interface. The move is written in its
// minimal disambiguated form.
func (AlgebraicNotation) Encode(pos *Position, m Move) string {
	var sb strings.Builder
	switch {
	case m.HasTag(KingSideCastle):
		sb.WriteString(KingSide.String())
	case m.HasTag(QueenSideCastle):
		sb.WriteString(QueenSide.String())
	default:
		p := pos.board.Piece(m.s1)
		if p.Type() == Pawn {
			if m.HasTag(Capture) {
				sb.WriteByte(m.s1.File().Byte())
			}
		} else {
			sb.WriteString(p.Type().Letter())
			sb.WriteString(formS1(pos, m, p))
		}
		if m.HasTag(Capture) {
			sb.WriteByte('x')
		}
		sb.WriteString(m.s2.String())
		if m.promo != NoPieceType {
			sb.WriteByte('=')
			sb.WriteString(m.promo.Letter())
		}
	}
	switch {
	case m.HasTag(Mate):
		sb.WriteByte('#')
	case m.HasTag(Check):
		sb.WriteByte('+')
	}
	return sb.String()
}

// formS1 returns the shortest origin qualifier that separates m from other
// legal moves of the same piece type to the same square.
func formS1(pos *Position, m Move, p Piece) string {
	var rivals []Move
	for _, mv := range pos.ValidMoves() {
		if mv.s2 == m.s2 && mv.s1 != m.s1 && pos.board.Piece(mv.s1) == p {
			rivals = append(rivals, mv)
		}
	}
	if len(rivals) == 0 {
		return ""
	}
	sameFile, sameRank := false, false
	for _, r := range rivals {
		if r.s1.File() == m.s1.File() {
			sameFile = true
		}
		if r.s1.Rank() == m.s1.Rank() {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return m.s1.File().String()
	case !sameRank:
		return m.s1.Rank().String()
	}
	return m.s1.String()
}

// Decode implements the Notation interface.
func (n AlgebraicNotation) Decode(pos *Position, s string) (Move, error) {
	am, err := ParseMove(s)
	if err != nil {
		return Move{}, err
	}
	return Resolve(am, pos.ValidMoves(), n.Options)
}

// UCINotation is a more computer friendly alternative to algebraic
// notation. This notation uses the same format as the UCI (Universal Chess
// Interface). Examples: e2e4, e7e5, e1g1 (white short castling), e7e8q (for promotion)
type UCINotation struct{}

// String implements the fmt.Stringer interface and returns
// the notation's name.
func (UCINotation) String() string {
	return "UCI Notation"
}

// Encode implements the Notation interface.
func (UCINotation) Encode(_ *Position, m Move) string {
	return m.String()
}

// Decode implements the Notation interface.
func (UCINotation) Decode(pos *Position, s string) (Move, error) {
	tok := strings.TrimSpace(s)
	if !isCoordinateMoveToken(tok) {
		return Move{}, &ParseError{Err: ErrInvalidSquare, Input: tok, Token: tok}
	}
	s1 := parseSquare(tok[0:2])
	s2 := parseSquare(tok[2:4])

	promo := NoPieceType
	if len(tok) == 5 {
		promo = PieceTypeFromByte(strings.ToUpper(tok[4:5])[0])
	}

	for _, m := range pos.ValidMoves() {
		if m.s1 == s1 && m.s2 == s2 && m.promo == promo {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %q", ErrNoLegalMove, tok)
}

func isCoordinateMoveToken(t string) bool {
	if len(t) != 4 && len(t) != 5 {
		return false
	}
	if !isFile(t[0]) || !isRank(t[1]) || !isFile(t[2]) || !isRank(t[3]) {
		return false
	}
	if len(t) == 5 {
		switch t[4] {
		case 'q', 'r', 'b', 'n', 'Q', 'R', 'B', 'N':
			return true
		default:
			return false
		}
	}
	return true
}
