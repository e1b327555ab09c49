/*
Package chess provides a chess position and move engine: board state, legal
move generation, algebraic notation parsing, disambiguation of partial moves
against a position, and the history of positions reached in a game.

Example usage:

	// Create new game
	game := NewGame()

	// Make moves
	game.PushMove("e4")
	game.PushMove("d5")
	game.PushMove("xd5")

	// Inspect the board
	fmt.Print(game.Board().Draw())

	// Check game status
	if game.Outcome() != NoOutcome {
		fmt.Printf("Game ended: %s by %s\n", game.Outcome(), game.Method())
	}
*/
package chess

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

var (
	// ErrIllegalMove is returned when a move is not legal in the current position.
	ErrIllegalMove = errors.New("chess: illegal move")
	// ErrNotAtEnd is returned when a move is pushed while the game is
	// viewing an earlier position.
	ErrNotAtEnd = errors.New("chess: game is not at its latest position")
)

// MoveError reports a concrete move that could not be applied.
type MoveError struct {
	Err  error
	Move Move
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Move)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// A Outcome is the result of a game.
type Outcome string

const (
	// NoOutcome indicates that a game is in progress or ended without a result.
	NoOutcome Outcome = "*"
	// WhiteWon indicates that white won the game.
	WhiteWon Outcome = "1-0"
	// BlackWon indicates that black won the game.
	BlackWon Outcome = "0-1"
	// Draw indicates that game was a draw.
	Draw Outcome = "1/2-1/2"
)

// String implements the fmt.Stringer interface.
func (o Outcome) String() string {
	return string(o)
}

// A Method is the method that generated the outcome.
type Method uint8

const (
	// NoMethod indicates that an outcome hasn't occurred or that the method can't be determined.
	NoMethod Method = iota
	// Checkmate indicates that the game was won checkmate.
	Checkmate
	// Stalemate indicates that the game was drawn by stalemate.
	Stalemate
)

func (m Method) String() string {
	switch m {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	}
	return "NoMethod"
}

// TagPairs represents a collection of PGN tag pairs.
type TagPairs map[string]string

// A Game represents a single chess game as an ordered list of positions.
// positions[0] is the starting position and moves[i] leads from
// positions[i] to positions[i+1]. History only grows by appending.
type Game struct {
	positions []*Position
	moves     []Move
	cursor    int      // index of the position being viewed
	tagPairs  TagPairs // PGN tag pairs
	outcome   Outcome
	method    Method
	resolve   *ResolveOptions
}

// FEN takes a string and returns a function that updates
// the game to start from the FEN position.  Since FEN doesn't encode
// prior moves, the move list will be empty.  The returned
// function is designed to be used in the NewGame constructor.
// An error is returned if there is a problem parsing the FEN data.
func FEN(fen string) (func(*Game), error) {
	pos, err := decodeFEN(fen)
	if err != nil {
		return nil, err
	}
	return func(g *Game) {
		g.positions = []*Position{pos}
		g.moves = nil
		g.cursor = 0
		g.outcome = NoOutcome
		g.method = NoMethod
		g.evaluatePositionStatus()
	}, nil
}

// StrictAnnotations returns a Game option that makes algebraic moves fail
// when their "x", "+" or "#" markers disagree with the position.
func StrictAnnotations() func(*Game) {
	return func(g *Game) {
		g.resolve = &ResolveOptions{StrictAnnotations: true}
	}
}

// NewGame returns a new game in the standard starting position.
// Optional functions can be provided to configure the initial game state.
//
// Example:
//
//	// Standard game
//	game := NewGame()
//
//	// Game from FEN
//	fen, _ := FEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
//	game := NewGame(fen)
func NewGame(options ...func(*Game)) *Game {
	game := &Game{
		positions: []*Position{StartingPosition()},
		tagPairs:  make(TagPairs),
		outcome:   NoOutcome,
		method:    NoMethod,
	}
	for _, f := range options {
		if f != nil {
			f(game)
		}
	}
	return game
}

// Position returns the latest position of the game.
func (g *Game) Position() *Position {
	return g.positions[len(g.positions)-1]
}

// Board returns a copy of the latest board.
func (g *Game) Board() *Board {
	return g.Position().Board()
}

// CurrentPosition returns the position at the navigation cursor.
// It equals Position unless GoBack or GoTo moved the cursor.
func (g *Game) CurrentPosition() *Position {
	return g.positions[g.cursor]
}

// PositionAt returns the position after ply half-moves; 0 is the start.
func (g *Game) PositionAt(ply int) (*Position, bool) {
	if ply < 0 || ply >= len(g.positions) {
		return nil, false
	}
	return g.positions[ply], true
}

// Ply returns the number of half-moves played.
func (g *Game) Ply() int {
	return len(g.moves)
}

// CurrentPly returns the number of half-moves leading to the position at
// the cursor.
func (g *Game) CurrentPly() int {
	return g.cursor
}

// GoBack moves the cursor to the previous position.
// Returns false if the cursor is already at the start.
func (g *Game) GoBack() bool {
	if g.cursor == 0 {
		return false
	}
	g.cursor--
	return true
}

// GoForward moves the cursor to the next position.
// Returns false if the cursor is already at the end.
func (g *Game) GoForward() bool {
	if g.cursor >= len(g.positions)-1 {
		return false
	}
	g.cursor++
	return true
}

// GoTo moves the cursor to the position after ply half-moves.
func (g *Game) GoTo(ply int) bool {
	if ply < 0 || ply >= len(g.positions) {
		return false
	}
	g.cursor = ply
	return true
}

// IsAtStart returns true if the cursor is at the starting position.
func (g *Game) IsAtStart() bool {
	return g.cursor == 0
}

// IsAtEnd returns true if the cursor is at the latest position.
func (g *Game) IsAtEnd() bool {
	return g.cursor == len(g.positions)-1
}

// ValidMoves returns all legal moves in the latest position.
func (g *Game) ValidMoves() []Move {
	return g.Position().ValidMoves()
}

// Moves returns the moves played, in order.
func (g *Game) Moves() []Move {
	return slices.Clone(g.moves)
}

// Positions returns all positions in the game, including the starting position.
func (g *Game) Positions() []*Position {
	return slices.Clone(g.positions)
}

// Outcome returns the game outcome.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Method returns the method in which the outcome occurred.
func (g *Game) Method() Method {
	return g.method
}

// FEN returns the FEN notation of the latest position.
func (g *Game) FEN() string {
	return g.Position().String()
}

// Disambiguate resolves an ambiguous move against the legal moves of the
// latest position without applying it.
func (g *Game) Disambiguate(am AmbiguousMove) (Move, error) {
	return Resolve(am, g.ValidMoves(), g.resolve)
}

// PushMove adds a move in algebraic notation to the game.
//
// Example:
//
//	err := game.PushMove("Nf3")
func (g *Game) PushMove(algebraicMove string) error {
	return g.PushNotationMove(algebraicMove, AlgebraicNotation{Options: g.resolve})
}

// PushNotationMove adds a move to the game using any supported notation.
//
// Example:
//
//	game.PushNotationMove("c7c5", chess.UCINotation{})
func (g *Game) PushNotationMove(moveStr string, notation Notation) error {
	if !g.IsAtEnd() {
		return ErrNotAtEnd
	}
	move, err := notation.Decode(g.Position(), moveStr)
	if err != nil {
		return err
	}
	return g.Move(move)
}

// PushMoves pushes algebraic moves in order and stops at the first
// failure. The error names the half-move that failed.
func (g *Game) PushMoves(moves ...string) error {
	for _, m := range moves {
		if err := g.PushMove(m); err != nil {
			return fmt.Errorf("move %d %q: %w", g.Ply()+1, m, err)
		}
	}
	return nil
}

// Move validates the move against the legal moves of the latest position,
// applies it and appends the resulting position. The side to move toggles.
//
// Example:
//
//	possibleMove := game.ValidMoves()[0]
//	if err := game.Move(possibleMove); err != nil {
//	    panic(err)
//	}
func (g *Game) Move(move Move) error {
	if !g.IsAtEnd() {
		return &MoveError{Err: ErrNotAtEnd, Move: move}
	}

	legal, ok := g.validateMove(move)
	if !ok {
		return &MoveError{Err: ErrIllegalMove, Move: move}
	}

	g.positions = append(g.positions, g.Position().Update(legal))
	g.moves = append(g.moves, legal)
	g.cursor = len(g.positions) - 1
	g.evaluatePositionStatus()
	return nil
}

// validateMove returns the generated legal move equal to move, which
// carries the tags and pieces the caller may have left out.
func (g *Game) validateMove(move Move) (Move, bool) {
	for _, m := range g.ValidMoves() {
		if m.sameMove(move) {
			return m, true
		}
	}
	return Move{}, false
}

// evaluatePositionStatus updates the game's outcome and method based on the latest position.
func (g *Game) evaluatePositionStatus() {
	pos := g.Position()
	g.method = pos.Status()
	switch g.method {
	case Stalemate:
		g.outcome = Draw
	case Checkmate:
		g.outcome = WhiteWon
		if pos.Turn() == White {
			g.outcome = BlackWon
		}
	default:
		g.outcome = NoOutcome
	}
}

// AddTagPair adds or updates a tag pair with the given key and
// value and returns true if the value is overwritten.
func (g *Game) AddTagPair(k, v string) bool {
	if g.tagPairs == nil {
		g.tagPairs = make(TagPairs)
	}
	_, existing := g.tagPairs[k]
	g.tagPairs[k] = v
	return existing
}

// GetTagPair returns the tag pair value for the given key or ""
// if it is not present.
func (g *Game) GetTagPair(k string) string {
	return g.tagPairs[k]
}

// TagPairs returns a copy of the tag pairs.
func (g *Game) TagPairs() TagPairs {
	return maps.Clone(g.tagPairs)
}

// RemoveTagPair removes the tag pair for the given key and
// returns true if a tag pair was removed.
func (g *Game) RemoveTagPair(k string) bool {
	if _, existing := g.tagPairs[k]; existing {
		delete(g.tagPairs, k)
		return true
	}
	return false
}

// Clone returns a copy of the game. Positions are immutable and shared.
func (g *Game) Clone() *Game {
	ret := &Game{}
	ret.copy(g)
	return ret
}

// copy copies the game state from the given game.
func (g *Game) copy(game *Game) {
	g.positions = slices.Clone(game.positions)
	g.moves = slices.Clone(game.moves)
	g.cursor = game.cursor
	g.tagPairs = make(TagPairs, len(game.tagPairs))
	maps.Copy(g.tagPairs, game.tagPairs)
	g.outcome = game.outcome
	g.method = game.method
	g.resolve = nil
	if game.resolve != nil {
		opts := *game.resolve
		g.resolve = &opts
	}
}

// MoveText returns the moves of the game as numbered algebraic notation
// followed by the result, e.g. "1. e4 d5 2. exd5 *".
func (g *Game) MoveText() string {
	var sb strings.Builder
	for i, m := range g.moves {
		pos := g.positions[i]
		if pos.Turn() == White {
			sb.WriteString(fmt.Sprintf("%d. ", pos.MoveCount()))
		} else if i == 0 {
			sb.WriteString(fmt.Sprintf("%d... ", pos.MoveCount()))
		}
		sb.WriteString(AlgebraicNotation{}.Encode(pos, m))
		sb.WriteByte(' ')
	}
	sb.WriteString(g.outcome.String())
	return sb.String()
}

// String implements the fmt.Stringer interface and returns the game's tag
// pairs followed by its movetext. Games that do not start from the standard
// position carry SetUp and FEN tags.
func (g *Game) String() string {
	var sb strings.Builder

	tags := make(TagPairs, len(g.tagPairs)+2)
	maps.Copy(tags, g.tagPairs)
	if start := g.positions[0]; !start.samePosition(StartingPosition()) {
		tags["SetUp"] = "1"
		tags["FEN"] = start.String()
	}
	keys := maps.Keys(tags)
	slices.SortFunc(keys, cmpTags)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("[%s %s]\n", k, strconv.Quote(tags[k])))
	}
	if len(keys) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(g.MoveText())
	return sb.String()
}

// Compares two tags to determine in which order they should be brought up
func cmpTags(a, b string) int {
	if a == b {
		return 0
	}

	// PGN defined tags take priority
	for _, req := range []string{
		"Event",
		"Site",
		"Date",
		"Round",
		"White",
		"Black",
		"Result",
	} {
		if a == req {
			return -1
		}
		if b == req {
			return +1
		}
	}

	return strings.Compare(a, b)
}

// MarshalText implements the encoding.TextMarshaler interface and
// encodes the game's tag pairs and movetext.
func (g *Game) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface and
// assumes the data is in the format produced by MarshalText.
func (g *Game) UnmarshalText(text []byte) error {
	toGame, err := MoveText(bytes.NewReader(text))
	if err != nil {
		return err
	}
	toGame(g)
	return nil
}
