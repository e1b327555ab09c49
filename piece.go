package chess

import "strings"

// Color represents the color of a chess piece.
type Color int8

const (
	// NoColor represents no color.
	NoColor Color = iota
	// White represents the color white.
	White
	// Black represents the color black.
	Black
)

// Other returns the opposite color of the receiver.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// String implements the fmt.Stringer interface and returns
// the color's FEN compatible notation.
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "-"
}

// Name returns a display name for the color.
func (c Color) Name() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "No Color"
}

// PieceType is the type of a piece.
type PieceType int8

const (
	// NoPieceType represents a lack of piece type.
	NoPieceType PieceType = iota
	// King represents a king.
	King
	// Queen represents a queen.
	Queen
	// Rook represents a rook.
	Rook
	// Bishop represents a bishop.
	Bishop
	// Knight represents a knight.
	Knight
	// Pawn represents a pawn.
	Pawn
)

// PieceTypes returns all piece types.
func PieceTypes() [6]PieceType {
	return [6]PieceType{King, Queen, Rook, Bishop, Knight, Pawn}
}

// promoPieceTypes lists promotion targets in generation order.
var promoPieceTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// String returns the lowercase letter of the piece type ("" for NoPieceType).
func (p PieceType) String() string {
	switch p {
	case King:
		return "k"
	case Queen:
		return "q"
	case Rook:
		return "r"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	case Pawn:
		return "p"
	}
	return ""
}

// Letter returns the SAN letter of the piece type. Pawns have no letter.
func (p PieceType) Letter() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// PieceTypeFromByte returns the piece type for an uppercase SAN letter,
// or NoPieceType if the letter is not a piece.
func PieceTypeFromByte(b byte) PieceType {
	switch b {
	case 'K':
		return King
	case 'Q':
		return Queen
	case 'R':
		return Rook
	case 'B':
		return Bishop
	case 'N':
		return Knight
	case 'P':
		return Pawn
	}
	return NoPieceType
}

// Piece is a piece type with a color.
type Piece int8

const (
	// NoPiece represents no piece.
	NoPiece Piece = iota
	// WhiteKing is a white king.
	WhiteKing
	// WhiteQueen is a white queen.
	WhiteQueen
	// WhiteRook is a white rook.
	WhiteRook
	// WhiteBishop is a white bishop.
	WhiteBishop
	// WhiteKnight is a white knight.
	WhiteKnight
	// WhitePawn is a white pawn.
	WhitePawn
	// BlackKing is a black king.
	BlackKing
	// BlackQueen is a black queen.
	BlackQueen
	// BlackRook is a black rook.
	BlackRook
	// BlackBishop is a black bishop.
	BlackBishop
	// BlackKnight is a black knight.
	BlackKnight
	// BlackPawn is a black pawn.
	BlackPawn
)

// NewPiece returns the piece matching the PieceType and Color.
// NoPiece is returned if the PieceType or Color isn't valid.
func NewPiece(t PieceType, c Color) Piece {
	if t == NoPieceType {
		return NoPiece
	}
	switch c {
	case White:
		return Piece(t)
	case Black:
		return Piece(int8(t) + 6)
	}
	return NoPiece
}

// Type returns the type of the piece.
func (p Piece) Type() PieceType {
	switch {
	case p >= WhiteKing && p <= WhitePawn:
		return PieceType(p)
	case p >= BlackKing && p <= BlackPawn:
		return PieceType(p - 6)
	}
	return NoPieceType
}

// Color returns the color of the piece.
func (p Piece) Color() Color {
	switch {
	case p >= WhiteKing && p <= WhitePawn:
		return White
	case p >= BlackKing && p <= BlackPawn:
		return Black
	}
	return NoColor
}

// String implements the fmt.Stringer interface. White pieces are
// uppercase and black pieces lowercase, as in FEN.
func (p Piece) String() string {
	switch p.Color() {
	case White:
		return strings.ToUpper(p.Type().String())
	case Black:
		return p.Type().String()
	}
	return ""
}

// pieceFromFEN returns the piece for a FEN letter.
func pieceFromFEN(b byte) Piece {
	if b >= 'a' && b <= 'z' {
		return NewPiece(PieceTypeFromByte(b-'a'+'A'), Black)
	}
	return NewPiece(PieceTypeFromByte(b), White)
}
