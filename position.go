package chess

import (
	"strconv"
	"strings"
)

// CastleRights holds the castling rights still available in a position.
type CastleRights uint8

const (
	// WhiteKingSide allows white to castle king side.
	WhiteKingSide CastleRights = 1 << iota
	// WhiteQueenSide allows white to castle queen side.
	WhiteQueenSide
	// BlackKingSide allows black to castle king side.
	BlackKingSide
	// BlackQueenSide allows black to castle queen side.
	BlackQueenSide

	// AllCastleRights is the set of rights held in the starting position.
	AllCastleRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// CastleSide identifies the side of the board a castle happens on.
type CastleSide uint8

const (
	// NoCastle means the move is not a castle.
	NoCastle CastleSide = iota
	// KingSide is castling with the h-file rook (O-O).
	KingSide
	// QueenSide is castling with the a-file rook (O-O-O).
	QueenSide
)

func (s CastleSide) String() string {
	switch s {
	case KingSide:
		return "O-O"
	case QueenSide:
		return "O-O-O"
	}
	return ""
}

func castleRight(c Color, side CastleSide) CastleRights {
	switch {
	case c == White && side == KingSide:
		return WhiteKingSide
	case c == White && side == QueenSide:
		return WhiteQueenSide
	case c == Black && side == KingSide:
		return BlackKingSide
	case c == Black && side == QueenSide:
		return BlackQueenSide
	}
	return 0
}

// CanCastle returns true if the given color and side combination
// can be castled by rights. It does not consider pieces in the way
// or squares under attack.
func (cr CastleRights) CanCastle(c Color, side CastleSide) bool {
	r := castleRight(c, side)
	return r != 0 && cr&r == r
}

// String implements the fmt.Stringer interface and returns
// a FEN compatible string. Ex. KQq
func (cr CastleRights) String() string {
	var sb strings.Builder
	for _, r := range []struct {
		right  CastleRights
		letter byte
	}{{WhiteKingSide, 'K'}, {WhiteQueenSide, 'Q'}, {BlackKingSide, 'k'}, {BlackQueenSide, 'q'}} {
		if cr&r.right != 0 {
			sb.WriteByte(r.letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// Position represents the state of the game without regard to its history.
// Positions are immutable; Update returns a new Position.
type Position struct {
	board           *Board
	turn            Color
	castleRights    CastleRights
	enPassantSquare Square
	halfMoveClock   int
	moveCount       int
}

// StartingPosition returns the standard initial arrangement with White to move.
func StartingPosition() *Position {
	return &Position{
		board:           startingBoard(),
		turn:            White,
		castleRights:    AllCastleRights,
		enPassantSquare: NoSquare,
		moveCount:       1,
	}
}

// NewPosition returns a position for an arbitrary board. The board is copied.
func NewPosition(b *Board, turn Color, cr CastleRights, enPassant Square) *Position {
	return &Position{
		board:           b.copy(),
		turn:            turn,
		castleRights:    cr,
		enPassantSquare: enPassant,
		moveCount:       1,
	}
}

// Board returns a copy of the position's board.
func (pos *Position) Board() *Board {
	return pos.board.copy()
}

// Turn returns the color to move next.
func (pos *Position) Turn() Color {
	return pos.turn
}

// CastleRights returns the castling rights of the position.
func (pos *Position) CastleRights() CastleRights {
	return pos.castleRights
}

// EnPassantSquare returns the en-passant square or NoSquare.
func (pos *Position) EnPassantSquare() Square {
	return pos.enPassantSquare
}

// HalfMoveClock returns the half-move clock (50-rule).
func (pos *Position) HalfMoveClock() int {
	return pos.halfMoveClock
}

// MoveCount returns the full move number.
func (pos *Position) MoveCount() int {
	return pos.moveCount
}

// InCheck returns true if the side to move is in check.
func (pos *Position) InCheck() bool {
	return pos.board.isAttacked(pos.board.kingSquare(pos.turn), pos.turn.Other())
}

// Status returns the position's status as one of the outcome methods.
// Possible returns values include Checkmate, Stalemate, and NoMethod.
func (pos *Position) Status() Method {
	if pos.hasLegalMove() {
		return NoMethod
	}
	if pos.InCheck() {
		return Checkmate
	}
	return Stalemate
}

// Update returns a new position resulting from the given move.
// The move itself isn't validated, if validation is needed use
// Game's Move method.
func (pos *Position) Update(m Move) *Position {
	p := pos.board.Piece(m.s1)
	captured := pos.board.Piece(m.s2)

	cr := pos.castleRights
	if p.Type() == King {
		cr &^= castleRight(pos.turn, KingSide) | castleRight(pos.turn, QueenSide)
	}
	for _, sq := range [2]Square{m.s1, m.s2} {
		switch sq {
		case A1:
			cr &^= WhiteQueenSide
		case H1:
			cr &^= WhiteKingSide
		case A8:
			cr &^= BlackQueenSide
		case H8:
			cr &^= BlackKingSide
		}
	}

	ep := NoSquare
	if p.Type() == Pawn {
		if d := int8(m.s2.Rank()) - int8(m.s1.Rank()); d == 2 || d == -2 {
			ep = NewSquare(m.s1.File(), Rank((int8(m.s1.Rank())+int8(m.s2.Rank()))/2))
		}
	}

	halfMove := pos.halfMoveClock + 1
	if p.Type() == Pawn || captured != NoPiece {
		halfMove = 0
	}
	moveCount := pos.moveCount
	if pos.turn == Black {
		moveCount++
	}

	return &Position{
		board:           pos.board.Apply(m),
		turn:            pos.turn.Other(),
		castleRights:    cr,
		enPassantSquare: ep,
		halfMoveClock:   halfMove,
		moveCount:       moveCount,
	}
}

// String implements the fmt.Stringer interface and returns a
// string with the FEN format: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1
func (pos *Position) String() string {
	return strings.Join([]string{
		pos.board.String(),
		pos.turn.String(),
		pos.castleRights.String(),
		pos.enPassantSquare.String(),
		strconv.Itoa(pos.halfMoveClock),
		strconv.Itoa(pos.moveCount),
	}, " ")
}

// samePosition reports whether two positions are identical for the purpose
// of move generation (board, turn, castling rights and en passant square).
func (pos *Position) samePosition(o *Position) bool {
	return pos.board.squares == o.board.squares &&
		pos.turn == o.turn &&
		pos.castleRights == o.castleRights &&
		pos.enPassantSquare == o.enPassantSquare
}
