package chess

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyMove is returned for empty move text.
	ErrEmptyMove = errors.New("chess: empty move")
	// ErrInvalidSquare is returned for a malformed or incomplete square.
	ErrInvalidSquare = errors.New("chess: invalid square")
	// ErrUnknownPiece is returned for a letter that is not a piece.
	ErrUnknownPiece = errors.New("chess: unknown piece")
	// ErrTrailingInput is returned when text follows a complete move.
	ErrTrailingInput = errors.New("chess: unexpected trailing input")
)

// ParseError reports a move token that does not follow the move grammar.
type ParseError struct {
	Err   error  // one of the ErrXxx sentinels above
	Input string // the complete move text
	Token string // the offending part of the input
	Pos   int    // byte offset of Token in Input
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q at position %d in %q", e.Err.Error(), e.Token, e.Pos, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Annotation is the check marker written after a move.
type Annotation uint8

const (
	// NoAnnotation means the move carried no marker.
	NoAnnotation Annotation = iota
	// CheckAnnotation is the "+" marker.
	CheckAnnotation
	// CheckmateAnnotation is the "#" marker.
	CheckmateAnnotation
)

func (a Annotation) String() string {
	switch a {
	case CheckAnnotation:
		return "+"
	case CheckmateAnnotation:
		return "#"
	}
	return ""
}

// AmbiguousMove is a partial move description as written in algebraic
// notation. It is produced by ParseMove and never changes afterwards;
// Resolve turns it into a Move for a given position.
type AmbiguousMove struct {
	piece      PieceType
	srcFile    File
	srcRank    Rank
	dest       Square
	promo      PieceType
	capture    bool
	annotation Annotation
	castle     CastleSide
}

// Piece returns the moving piece type. It is Pawn when no letter was given
// and King for castling.
func (am AmbiguousMove) Piece() PieceType { return am.piece }

// SrcFile returns the origin file qualifier or NoFile.
func (am AmbiguousMove) SrcFile() File { return am.srcFile }

// SrcRank returns the origin rank qualifier or NoRank.
func (am AmbiguousMove) SrcRank() Rank { return am.srcRank }

// Dest returns the destination square. It is NoSquare for castling.
func (am AmbiguousMove) Dest() Square { return am.dest }

// Promo returns the promotion piece type or NoPieceType.
func (am AmbiguousMove) Promo() PieceType { return am.promo }

// IsCapture reports whether the text contained the "x" capture marker.
func (am AmbiguousMove) IsCapture() bool { return am.capture }

// Annotation returns the check marker written after the move.
func (am AmbiguousMove) Annotation() Annotation { return am.annotation }

// Castle returns the castling side, or NoCastle for ordinary moves.
func (am AmbiguousMove) Castle() CastleSide { return am.castle }

// String renders the move back into algebraic notation.
func (am AmbiguousMove) String() string {
	if am.castle != NoCastle {
		return am.castle.String() + am.annotation.String()
	}
	var sb strings.Builder
	sb.WriteString(am.piece.Letter())
	if am.srcFile != NoFile {
		sb.WriteByte(am.srcFile.Byte())
	}
	if am.srcRank != NoRank {
		sb.WriteByte(am.srcRank.Byte())
	}
	if am.capture {
		sb.WriteByte('x')
	}
	sb.WriteString(am.dest.String())
	if am.promo != NoPieceType {
		sb.WriteByte('=')
		sb.WriteString(am.promo.Letter())
	}
	sb.WriteString(am.annotation.String())
	return sb.String()
}

// ValidateSAN checks if a string is valid Standard Algebraic Notation (SAN) syntax.
// This function only validates the syntax, not whether the move is legal in any position.
// Examples of valid SAN: "e4", "Nf3", "O-O", "Qxd2+", "e8=Q#"
func ValidateSAN(s string) error {
	_, err := ParseMove(s)
	return err
}

// ParseMove parses a single move in algebraic notation.
//
// The grammar is an optional piece letter (Q, K, N, R, B), an optional
// origin file and/or rank, an optional "x", the destination square, an
// optional "=" promotion piece and an optional "+" or "#". "O-O" and
// "O-O-O" denote castling. When only one square is present it is the
// destination; "e2e4" is read as origin e2 and destination e4.
func ParseMove(s string) (AmbiguousMove, error) {
	p := &moveScanner{input: strings.TrimSpace(s)}
	return p.parse()
}

// moveScanner is a single pass, left to right scanner over one move token.
type moveScanner struct {
	input string
	pos   int
}

func (p *moveScanner) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *moveScanner) fail(err error, start, end int) error {
	end = min(max(end, start+1), len(p.input))
	return &ParseError{
		Err:   err,
		Input: p.input,
		Token: p.input[start:end],
		Pos:   start,
	}
}

func (p *moveScanner) parse() (AmbiguousMove, error) {
	am := AmbiguousMove{
		piece:   Pawn,
		srcFile: NoFile,
		srcRank: NoRank,
		dest:    NoSquare,
	}
	if p.input == "" {
		return am, &ParseError{Err: ErrEmptyMove}
	}

	if side := p.castle(); side != NoCastle {
		am.piece = King
		am.castle = side
		return am, p.suffix(&am)
	}

	if err := p.pieceLetter(&am); err != nil {
		return am, err
	}
	if err := p.squares(&am); err != nil {
		return am, err
	}
	if err := p.promotion(&am); err != nil {
		return am, err
	}
	return am, p.suffix(&am)
}

// castle consumes a castling literal. The longer literal is tried first.
func (p *moveScanner) castle() CastleSide {
	switch {
	case strings.HasPrefix(p.input, "O-O-O"):
		p.pos += len("O-O-O")
		return QueenSide
	case strings.HasPrefix(p.input, "O-O"):
		p.pos += len("O-O")
		return KingSide
	}
	return NoCastle
}

func (p *moveScanner) pieceLetter(am *AmbiguousMove) error {
	ch := p.peek()
	if ch < 'A' || ch > 'Z' {
		return nil
	}
	t := PieceTypeFromByte(ch)
	if t == NoPieceType || t == Pawn {
		return p.fail(ErrUnknownPiece, p.pos, p.pos+1)
	}
	am.piece = t
	p.pos++
	return nil
}

// squares reads [file][rank][x]file rank. A leading file+rank that is not
// followed by another square is the destination itself.
func (p *moveScanner) squares(am *AmbiguousMove) error {
	start := p.pos
	file, rank := NoFile, NoRank

	if ch := p.peek(); isFile(ch) {
		file = File(ch - 'a')
		p.pos++
	} else if isLowerLetter(ch) && ch != 'x' {
		return p.fail(ErrInvalidSquare, p.pos, p.pos+2)
	}
	if ch := p.peek(); isRank(ch) {
		rank = Rank(ch - '1')
		p.pos++
	} else if isDigit(ch) {
		return p.fail(ErrInvalidSquare, start, p.pos+1)
	}

	if p.peek() == 'x' {
		am.capture = true
		p.pos++
	}

	destStart := p.pos
	ch := p.peek()
	switch {
	case isFile(ch):
		p.pos++
		if !isRank(p.peek()) {
			return p.fail(ErrInvalidSquare, destStart, p.pos+1)
		}
		am.dest = NewSquare(File(ch-'a'), Rank(p.peek()-'1'))
		am.srcFile, am.srcRank = file, rank
		p.pos++
		return nil
	case (isLowerLetter(ch) || isDigit(ch)) && (am.capture || file == NoFile || rank == NoRank):
		return p.fail(ErrInvalidSquare, destStart, p.pos+2)
	}

	// no second square: the first one is the destination
	if am.capture || file == NoFile || rank == NoRank {
		return p.fail(ErrInvalidSquare, start, p.pos)
	}
	am.dest = NewSquare(file, rank)
	return nil
}

func (p *moveScanner) promotion(am *AmbiguousMove) error {
	if p.peek() != '=' {
		return nil
	}
	p.pos++
	t := PieceTypeFromByte(p.peek())
	if t == NoPieceType || t == Pawn {
		return p.fail(ErrUnknownPiece, p.pos, p.pos+1)
	}
	am.promo = t
	p.pos++
	return nil
}

// suffix reads the optional check marker and requires the end of input.
func (p *moveScanner) suffix(am *AmbiguousMove) error {
	switch p.peek() {
	case '+':
		am.annotation = CheckAnnotation
		p.pos++
	case '#':
		am.annotation = CheckmateAnnotation
		p.pos++
	}
	if p.pos < len(p.input) {
		return p.fail(ErrTrailingInput, p.pos, len(p.input))
	}
	return nil
}

func isLowerLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
