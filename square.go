package chess

// A Square is one of the 64 squares on a chess board.
// Squares are indexed rank-major from A1 (0) to H8 (63).
type Square int8

// NoSquare represents the absence of a square.
const NoSquare Square = -1

const (
	numOfSquaresInBoard = 64
	numOfSquaresInRow   = 8
)

// NewSquare creates a new Square from a File and a Rank.
func NewSquare(f File, r Rank) Square {
	return Square(int8(r)*numOfSquaresInRow + int8(f))
}

// File returns the square's file.
func (sq Square) File() File {
	return File(int8(sq) % numOfSquaresInRow)
}

// Rank returns the square's rank.
func (sq Square) Rank() Rank {
	return Rank(int8(sq) / numOfSquaresInRow)
}

// String returns the square in algebraic form, e.g. "e4".
func (sq Square) String() string {
	if sq < A1 || sq > H8 {
		return "-"
	}
	return sq.File().String() + sq.Rank().String()
}

// offset returns the square reached by moving df files and dr ranks,
// or NoSquare if that falls off the board.
func (sq Square) offset(df, dr int8) Square {
	f := int8(sq.File()) + df
	r := int8(sq.Rank()) + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare
	}
	return NewSquare(File(f), Rank(r))
}

// A Rank is the rank of a square, Rank1 through Rank8.
type Rank int8

// NoRank represents an unspecified rank.
const NoRank Rank = -1

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

func (r Rank) String() string {
	if r < Rank1 || r > Rank8 {
		return ""
	}
	return string(rune('1' + r))
}

// Byte returns the rank character, '1' through '8'.
func (r Rank) Byte() byte {
	return byte('1' + r)
}

// A File is the file of a square, FileA through FileH.
type File int8

// NoFile represents an unspecified file.
const NoFile File = -1

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

func (f File) String() string {
	if f < FileA || f > FileH {
		return ""
	}
	return string(rune('a' + f))
}

// Byte returns the file character, 'a' through 'h'.
func (f File) Byte() byte {
	return byte('a' + f)
}

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// ParseSquare returns the square named in algebraic form, e.g. "e4".
func ParseSquare(s string) (Square, error) {
	sq := parseSquare(s)
	if sq == NoSquare {
		return NoSquare, &ParseError{Err: ErrInvalidSquare, Input: s, Token: s}
	}
	return sq, nil
}

// parseSquare converts a square name (e.g., "e4") into a Square.
func parseSquare(s string) Square {
	const squareLen = 2
	if len(s) != squareLen {
		return NoSquare
	}
	if !isFile(s[0]) || !isRank(s[1]) {
		return NoSquare
	}
	return NewSquare(File(s[0]-'a'), Rank(s[1]-'1'))
}

func isFile(ch byte) bool {
	return ch >= 'a' && ch <= 'h'
}

func isRank(ch byte) bool {
	return ch >= '1' && ch <= '8'
}
