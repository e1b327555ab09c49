package chess

// A MoveTag represents a notable consequence of a move.
type MoveTag uint16

const (
	// KingSideCastle indicates that the move is a king side castle.
	KingSideCastle MoveTag = 1 << iota
	// QueenSideCastle indicates that the move is a queen side castle.
	QueenSideCastle
	// Capture indicates that the move captures a piece.
	Capture
	// EnPassant indicates that the move captures via en passant.
	EnPassant
	// Check indicates that the move puts the opposing player in check.
	Check
	// Mate indicates that the move checkmates the opposing player.
	Mate
)

// A Move is a fully resolved movement of a piece from one square to another.
// Moves are produced by the legal move generator or by resolving an
// AmbiguousMove against a position.
type Move struct {
	s1       Square
	s2       Square
	piece    Piece
	captured Piece
	promo    PieceType
	tags     MoveTag
}

// NewMove returns a move from s1 to s2 with an optional promotion. The moving
// piece and tags are filled in when the move is matched against a position.
func NewMove(s1, s2 Square, promo PieceType) Move {
	return Move{s1: s1, s2: s2, promo: promo}
}

// String returns the move in coordinate form, e.g. "e2e4" or "e7e8q".
// String doesn't return algebraic notation.
func (m Move) String() string {
	return m.s1.String() + m.s2.String() + m.promo.String()
}

// S1 returns the origin square of the move.
func (m Move) S1() Square {
	return m.s1
}

// S2 returns the destination square of the move.
func (m Move) S2() Square {
	return m.s2
}

// Piece returns the moving piece.
func (m Move) Piece() Piece {
	return m.piece
}

// Captured returns the captured piece or NoPiece.
func (m Move) Captured() Piece {
	return m.captured
}

// Promo returns promotion piece type of the move.
func (m Move) Promo() PieceType {
	return m.promo
}

// HasTag returns true if the move contains the MoveTag given.
func (m Move) HasTag(tag MoveTag) bool {
	return (tag & m.tags) > 0
}

// AddTag adds the given MoveTag to the move's tags.
func (m *Move) AddTag(tag MoveTag) {
	m.tags |= tag
}

// sameMove reports whether two moves describe the same transition.
func (m Move) sameMove(o Move) bool {
	return m.s1 == o.s1 && m.s2 == o.s2 && m.promo == o.promo
}
