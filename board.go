/*
Package chess models chess positions as a plain 8x8 grid of squares.

Board Layout:

	8 | r n b q k b n r
	7 | p p p p p p p p
	6 | - - - - - - - -
	5 | - - - - - - - -
	4 | - - - - - - - -
	3 | - - - - - - - -
	2 | P P P P P P P P
	1 | R N B Q K B N R
	  ---------------
	    a b c d e f g h

Usage:

	board := NewBoard(map[Square]Piece{
	    E1: WhiteKing,
	    E8: BlackKing,
	})
	piece := board.Piece(E1)
*/
package chess

import (
	"strconv"
	"strings"
)

// Board represents a chess board and its relationship between squares and pieces.
// Every one of the 64 squares is always present; empty squares hold NoPiece.
type Board struct {
	squares [numOfSquaresInBoard]Piece
}

// NewBoard returns a board from a square to piece mapping.
// The map should contain only occupied squares.
func NewBoard(m map[Square]Piece) *Board {
	b := &Board{}
	for sq, p := range m {
		if sq >= A1 && sq <= H8 {
			b.squares[sq] = p
		}
	}
	return b
}

// Piece returns the piece for the given square, or NoPiece if it is empty.
func (b *Board) Piece(sq Square) Piece {
	if sq < A1 || sq > H8 {
		return NoPiece
	}
	return b.squares[sq]
}

// SetPiece places p on sq, or clears the square when p is NoPiece.
// It mutates the receiver and is intended for building boards.
func (b *Board) SetPiece(sq Square, p Piece) {
	if sq < A1 || sq > H8 {
		return
	}
	b.squares[sq] = p
}

// SquareMap returns a mapping of squares to pieces.
// A square is only added to the map if it is occupied.
func (b *Board) SquareMap() map[Square]Piece {
	m := map[Square]Piece{}
	for sq := 0; sq < numOfSquaresInBoard; sq++ {
		if p := b.squares[sq]; p != NoPiece {
			m[Square(sq)] = p
		}
	}
	return m
}

// Apply returns a new board with the move applied. The receiver is not
// modified. The move must already be legal; Apply does not validate it.
func (b *Board) Apply(m Move) *Board {
	nb := b.copy()
	p := nb.squares[m.s1]
	if p == NoPiece {
		return nb
	}
	nb.squares[m.s1] = NoPiece

	switch p.Type() {
	case King:
		// castling moves the rook on the same rank
		if d := int8(m.s2.File()) - int8(m.s1.File()); d == 2 || d == -2 {
			r := m.s1.Rank()
			rookFrom, rookTo := NewSquare(FileH, r), NewSquare(FileF, r)
			if d < 0 {
				rookFrom, rookTo = NewSquare(FileA, r), NewSquare(FileD, r)
			}
			nb.squares[rookTo] = nb.squares[rookFrom]
			nb.squares[rookFrom] = NoPiece
		}
	case Pawn:
		// a diagonal step onto an empty square is an en passant capture
		if m.s1.File() != m.s2.File() && nb.squares[m.s2] == NoPiece {
			nb.squares[NewSquare(m.s2.File(), m.s1.Rank())] = NoPiece
		}
		if m.promo != NoPieceType {
			p = NewPiece(m.promo, p.Color())
		}
	}

	nb.squares[m.s2] = p
	return nb
}

// kingSquare returns the square of the given color's king or NoSquare.
func (b *Board) kingSquare(c Color) Square {
	k := NewPiece(King, c)
	for sq := 0; sq < numOfSquaresInBoard; sq++ {
		if b.squares[sq] == k {
			return Square(sq)
		}
	}
	return NoSquare
}

// Draw returns a visual ASCII representation of the board.
// Capital letters represent white pieces, lowercase represent black pieces.
// Empty squares are shown as "-".
//
// Example output:
//
//	8 r n b q k b n r
//	7 p p p p p p p p
//	6 - - - - - - - -
//	5 - - - - - - - -
//	4 - - - - - - - -
//	3 - - - - - - - -
//	2 P P P P P P P P
//	1 R N B Q K B N R
//	  a b c d e f g h
func (b *Board) Draw() string {
	var sb strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		sb.WriteString(r.String())
		for f := FileA; f <= FileH; f++ {
			sb.WriteByte(' ')
			p := b.squares[NewSquare(f, r)]
			if p == NoPiece {
				sb.WriteByte('-')
			} else {
				sb.WriteString(p.String())
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// String implements the fmt.Stringer interface and returns
// a string in the FEN board format: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR.
func (b *Board) String() string {
	var sb strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		empty := 0
		for f := FileA; f <= FileH; f++ {
			p := b.squares[NewSquare(f, r)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != Rank1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func (b *Board) copy() *Board {
	nb := *b
	return &nb
}

func startingBoard() *Board {
	b := &Board{}
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := FileA; f <= FileH; f++ {
		b.squares[NewSquare(f, Rank1)] = NewPiece(back[f], White)
		b.squares[NewSquare(f, Rank2)] = WhitePawn
		b.squares[NewSquare(f, Rank7)] = BlackPawn
		b.squares[NewSquare(f, Rank8)] = NewPiece(back[f], Black)
	}
	return b
}
