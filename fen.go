package chess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFEN is returned for malformed FEN strings.
var ErrInvalidFEN = errors.New("chess: invalid FEN")

// decodeFEN parses a FEN string into a Position. The half-move clock and
// move number fields may be omitted.
func decodeFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 4 && len(parts) != 6 {
		return nil, fmt.Errorf("%w: expected 4 or 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	b, err := fenBoard(parts[0])
	if err != nil {
		return nil, err
	}

	var turn Color
	switch parts[1] {
	case "w":
		turn = White
	case "b":
		turn = Black
	default:
		return nil, fmt.Errorf("%w: invalid turn %q", ErrInvalidFEN, parts[1])
	}

	cr, err := fenCastleRights(parts[2])
	if err != nil {
		return nil, err
	}

	ep := NoSquare
	if parts[3] != "-" {
		ep = parseSquare(parts[3])
		if ep == NoSquare || !validEnPassant(b, turn, ep) {
			return nil, fmt.Errorf("%w: invalid en passant square %q", ErrInvalidFEN, parts[3])
		}
	}

	pos := &Position{
		board:           b,
		turn:            turn,
		castleRights:    cr,
		enPassantSquare: ep,
		moveCount:       1,
	}
	if len(parts) == 6 {
		if pos.halfMoveClock, err = strconv.Atoi(parts[4]); err != nil || pos.halfMoveClock < 0 {
			return nil, fmt.Errorf("%w: invalid half move clock %q", ErrInvalidFEN, parts[4])
		}
		if pos.moveCount, err = strconv.Atoi(parts[5]); err != nil || pos.moveCount < 1 {
			return nil, fmt.Errorf("%w: invalid move number %q", ErrInvalidFEN, parts[5])
		}
	}
	return pos, nil
}

// validEnPassant reports whether ep can be the square a pawn of the side
// not to move just skipped: rank 6 for White to move, rank 3 for Black, the
// square empty and the enemy pawn in front of it.
func validEnPassant(b *Board, turn Color, ep Square) bool {
	rank, dr := Rank6, int8(-1)
	if turn == Black {
		rank, dr = Rank3, 1
	}
	if ep.Rank() != rank || b.Piece(ep) != NoPiece {
		return false
	}
	return b.Piece(ep.offset(0, dr)) == NewPiece(Pawn, turn.Other())
}

func fenBoard(s string) (*Board, error) {
	rows := strings.Split(s, "/")
	if len(rows) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(rows))
	}
	b := &Board{}
	for i, row := range rows {
		r := Rank(7 - i)
		f := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				f += int(ch - '0')
				if f > numOfSquaresInRow {
					return nil, fmt.Errorf("%w: rank %s too long", ErrInvalidFEN, r)
				}
				continue
			}
			p := pieceFromFEN(ch)
			if p == NoPiece {
				return nil, fmt.Errorf("%w: invalid piece %q", ErrInvalidFEN, ch)
			}
			if f >= numOfSquaresInRow {
				return nil, fmt.Errorf("%w: rank %s too long", ErrInvalidFEN, r)
			}
			b.squares[NewSquare(File(f), r)] = p
			f++
		}
		if f != numOfSquaresInRow {
			return nil, fmt.Errorf("%w: rank %s has %d files", ErrInvalidFEN, r, f)
		}
	}
	return b, nil
}

func fenCastleRights(s string) (CastleRights, error) {
	if s == "-" {
		return 0, nil
	}
	var cr CastleRights
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'K':
			cr |= WhiteKingSide
		case 'Q':
			cr |= WhiteQueenSide
		case 'k':
			cr |= BlackKingSide
		case 'q':
			cr |= BlackQueenSide
		default:
			return 0, fmt.Errorf("%w: invalid castling rights %q", ErrInvalidFEN, s)
		}
	}
	return cr, nil
}
