// Package image is a go library that creates images from board positions
package image

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	chess "github.com/mway1/unchess"
)

// SVG writes the board SVG representation into the writer.
// An error is returned if there is there is an error writing data.
// SVG also takes options which can customize the image output.
func SVG(w io.Writer, b *chess.Board, opts ...Option) error {
	e := new(w, opts)
	return e.EncodeSVG(b)
}

// SquareColors is designed to be used as an optional argument
// to the SVG function.  It changes the default light and
// dark square colors to the colors given.
func SquareColors(light, dark color.Color) Option {
	return func(e *encoder) {
		e.light = light
		e.dark = dark
	}
}

// MarkSquares is designed to be used as an optional argument
// to the SVG function.  It marks the given squares with the
// color.  A possible usage includes marking squares of the
// previous move.
func MarkSquares(c color.Color, sqs ...chess.Square) Option {
	return func(e *encoder) {
		for _, sq := range sqs {
			e.marks[sq] = c
		}
	}
}

// Perspective is designed to be used as an optional argument
// to the SVG function.  It draws the board from the perspective
// of the given color.  White is the default.
func Perspective(c chess.Color) Option {
	return func(e *encoder) {
		e.perspective = c
	}
}

// SquareSize sets the width of one square in pixels.
func SquareSize(px int) Option {
	return func(e *encoder) {
		if px > 0 {
			e.sqWidth = px
		}
	}
}

// An Option customizes the image output of SVG.
type Option func(*encoder)

// A encoder encodes chess boards into images.
type encoder struct {
	w           io.Writer
	light       color.Color
	dark        color.Color
	perspective chess.Color
	marks       map[chess.Square]color.Color
	sqWidth     int
}

// new returns an encoder that writes to the given writer.
// New also takes options which can customize the image
// output.
func new(w io.Writer, options []Option) *encoder {
	e := &encoder{
		w:           w,
		light:       color.RGBA{R: 240, G: 217, B: 181, A: 255},
		dark:        color.RGBA{R: 181, G: 136, B: 99, A: 255},
		perspective: chess.White,
		marks:       map[chess.Square]color.Color{},
		sqWidth:     45,
	}
	for _, op := range options {
		op(e)
	}
	return e
}

var glyphs = map[chess.Piece]string{
	chess.WhiteKing:   "♔",
	chess.WhiteQueen:  "♕",
	chess.WhiteRook:   "♖",
	chess.WhiteBishop: "♗",
	chess.WhiteKnight: "♘",
	chess.WhitePawn:   "♙",
	chess.BlackKing:   "♚",
	chess.BlackQueen:  "♛",
	chess.BlackRook:   "♜",
	chess.BlackBishop: "♝",
	chess.BlackKnight: "♞",
	chess.BlackPawn:   "♟",
}

// EncodeSVG writes the board SVG representation into
// the Encoder's writer.  An error is returned if there
// is there is an error writing data.
func (e *encoder) EncodeSVG(b *chess.Board) error {
	ew := &errWriter{w: e.w}
	boardWidth := e.sqWidth * 8
	canvas := svg.New(ew)
	canvas.Start(boardWidth, boardWidth)
	canvas.Title(b.String())
	canvas.Rect(0, 0, boardWidth, boardWidth)

	for i := 0; i < 64; i++ {
		sq := chess.Square(i)
		x, y := e.xy(sq)

		c := e.colorForSquare(sq)
		if mark, ok := e.marks[sq]; ok {
			c = mark
		}
		canvas.Rect(x, y, e.sqWidth, e.sqWidth, "fill: "+colorToHex(c))

		if g, ok := glyphs[b.Piece(sq)]; ok {
			fontSize := e.sqWidth * 4 / 5
			style := fmt.Sprintf("font-size:%dpx;text-anchor:middle;dominant-baseline:central", fontSize)
			canvas.Text(x+e.sqWidth/2, y+e.sqWidth/2, g, style)
		}

		// labels along the edge nearest the viewer
		labelStyle := fmt.Sprintf("font-size:%dpx;fill:%s", e.sqWidth/4, colorToHex(e.colorForText(sq)))
		if e.isBottomRow(sq) {
			canvas.Text(x+e.sqWidth-e.sqWidth/5, y+e.sqWidth-e.sqWidth/15, sq.File().String(), labelStyle)
		}
		if e.isLeftColumn(sq) {
			canvas.Text(x+e.sqWidth/20, y+e.sqWidth/4, sq.Rank().String(), labelStyle)
		}
	}
	canvas.End()
	return ew.err
}

func (e *encoder) xy(sq chess.Square) (int, int) {
	col := int(sq.File())
	row := 7 - int(sq.Rank())
	if e.perspective == chess.Black {
		col = 7 - col
		row = 7 - row
	}
	return col * e.sqWidth, row * e.sqWidth
}

func (e *encoder) isBottomRow(sq chess.Square) bool {
	if e.perspective == chess.Black {
		return sq.Rank() == chess.Rank8
	}
	return sq.Rank() == chess.Rank1
}

func (e *encoder) isLeftColumn(sq chess.Square) bool {
	if e.perspective == chess.Black {
		return sq.File() == chess.FileH
	}
	return sq.File() == chess.FileA
}

func (e *encoder) colorForSquare(sq chess.Square) color.Color {
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return e.dark
	}
	return e.light
}

func (e *encoder) colorForText(sq chess.Square) color.Color {
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return e.light
	}
	return e.dark
}

func colorToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// errWriter keeps the first write error so the svgo calls, which do not
// return errors, can be checked once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// ParseHexColor reads "#rrggbb" or "rrggbb" into a color.
func ParseHexColor(s string) (color.Color, error) {
	s = strings.TrimPrefix(s, "#")
	var r, g, b uint8
	if len(s) != 6 {
		return nil, fmt.Errorf("image: invalid hex color %q", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return nil, fmt.Errorf("image: invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
