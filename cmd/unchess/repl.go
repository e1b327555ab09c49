package main

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	chess "github.com/mway1/unchess"
	"github.com/mway1/unchess/image"
	"github.com/mway1/unchess/internal/config"
)

const helpText = `unchess

Commands
  new [FEN]      Create a new board, optionally from a FEN
  move <SAN>     Move a piece
  check <SAN>    Check if a move is legal
  get <SQUARE>   Get legal moves for a piece
  show           Show the current board state
  print-fen      Print the current board state in FEN format
  svg <FILE>     Write the current board as an SVG image
  history        Print the moves played so far
  back           Step back one move
  forward        Step forward one move
  help           Show this text
  quit, q        Quit the game
`

var errUnknownCommand = errors.New("unknown command")

var lastMoveColor = color.RGBA{R: 205, G: 210, B: 106, A: 255}

type repl struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	out    io.Writer
	game   *chess.Game
	gameID uuid.UUID
}

func newRepl(cfg *config.Config, log *zap.SugaredLogger, out io.Writer) (*repl, error) {
	r := &repl{cfg: cfg, log: log, out: out}
	if err := r.newGame(cfg.StartFEN); err != nil {
		return nil, err
	}
	return r, nil
}

// run reads commands line by line until quit or the end of input.
func (r *repl) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, r.cfg.Prompt)
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		quit, err := r.exec(args)
		if err != nil {
			r.log.Debugw("Command failed", "game_id", r.gameID, "command", args[0], zap.Error(err))
			fmt.Fprintln(r.out, err)
		}
		if quit {
			return nil
		}
	}
	fmt.Fprintln(r.out)
	return scanner.Err()
}

func (r *repl) exec(args []string) (bool, error) {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "new":
		if len(rest) > 0 && rest[0] == "-f" {
			rest = rest[1:]
		}
		if err := r.newGame(strings.Join(rest, " ")); err != nil {
			return false, err
		}
		r.show()
	case "move":
		if len(rest) != 1 {
			return false, errors.New("usage: move <SAN>")
		}
		return false, r.move(rest[0])
	case "check":
		if len(rest) != 1 {
			return false, errors.New("usage: check <SAN>")
		}
		return false, r.check(rest[0])
	case "get":
		if len(rest) != 1 {
			return false, errors.New("usage: get <SQUARE>")
		}
		return false, r.get(rest[0])
	case "show":
		r.show()
	case "print-fen":
		fmt.Fprintln(r.out, r.game.CurrentPosition())
	case "svg":
		if len(rest) != 1 {
			return false, errors.New("usage: svg <FILE>")
		}
		return false, r.svg(rest[0])
	case "history":
		fmt.Fprintln(r.out, r.game.MoveText())
	case "back":
		if !r.game.GoBack() {
			return false, errors.New("already at the first position")
		}
		r.show()
	case "forward":
		if !r.game.GoForward() {
			return false, errors.New("already at the latest position")
		}
		r.show()
	case "help":
		fmt.Fprint(r.out, helpText)
	case "quit", "q":
		r.log.Infow("Session closed", "game_id", r.gameID, "ply", r.game.Ply())
		return true, nil
	default:
		return false, fmt.Errorf("%w %q, try help", errUnknownCommand, cmd)
	}
	return false, nil
}

func (r *repl) newGame(fen string) error {
	var opts []func(*chess.Game)
	if fen != "" {
		opt, err := chess.FEN(fen)
		if err != nil {
			return err
		}
		opts = append(opts, opt)
	}
	if r.cfg.StrictAnnotations {
		opts = append(opts, chess.StrictAnnotations())
	}
	r.game = chess.NewGame(opts...)
	r.gameID = uuid.New()
	r.game.AddTagPair("GameID", r.gameID.String())
	r.log.Infow("New game", "game_id", r.gameID, "fen", r.game.FEN())
	return nil
}

func (r *repl) move(san string) error {
	if err := r.game.PushMove(san); err != nil {
		return err
	}
	r.log.Debugw("Move played", "game_id", r.gameID, "move", san, "fen", r.game.FEN())
	r.show()
	switch r.game.Method() {
	case chess.Checkmate:
		fmt.Fprintln(r.out, "Checkmate!")
	case chess.Stalemate:
		fmt.Fprintln(r.out, "Stalemate!")
	default:
		if r.game.Position().InCheck() {
			fmt.Fprintln(r.out, "Check!")
		}
	}
	return nil
}

// check resolves san against the position on display, which trails the
// latest one after back.
func (r *repl) check(san string) error {
	notation := chess.AlgebraicNotation{Options: &chess.ResolveOptions{StrictAnnotations: r.cfg.StrictAnnotations}}
	if _, err := notation.Decode(r.game.CurrentPosition(), san); err != nil {
		if errors.Is(err, chess.ErrNoLegalMove) {
			fmt.Fprintf(r.out, "Illegal move %s\n", san)
			return nil
		}
		return err
	}
	fmt.Fprintf(r.out, "Move %s legal\n", san)
	return nil
}

// get draws the board with the destinations of the piece on the square
// marked: "*" for an empty square, "x" for a capture.
func (r *repl) get(name string) error {
	pos := r.game.CurrentPosition()
	sq, err := chess.ParseSquare(name)
	if err != nil {
		return err
	}
	if pos.Board().Piece(sq) == chess.NoPiece {
		return fmt.Errorf("no piece on %s", sq)
	}

	dests := map[chess.Square]bool{}
	for _, m := range pos.LegalMovesFrom(sq) {
		dests[m.S2()] = true
	}

	b := pos.Board()
	var sb strings.Builder
	for rank := chess.Rank8; rank >= chess.Rank1; rank-- {
		sb.WriteString(rank.String())
		for file := chess.FileA; file <= chess.FileH; file++ {
			cur := chess.NewSquare(file, rank)
			p := b.Piece(cur)
			sb.WriteByte(' ')
			switch {
			case dests[cur] && p != chess.NoPiece:
				sb.WriteByte('x')
			case dests[cur]:
				sb.WriteByte('*')
			case p == chess.NoPiece:
				sb.WriteByte('-')
			default:
				sb.WriteString(p.String())
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	fmt.Fprint(r.out, sb.String())
	return nil
}

func (r *repl) svg(path string) error {
	light, err := image.ParseHexColor(r.cfg.SVGLight)
	if err != nil {
		return err
	}
	dark, err := image.ParseHexColor(r.cfg.SVGDark)
	if err != nil {
		return err
	}
	opts := []image.Option{
		image.SquareSize(r.cfg.SVGSize),
		image.SquareColors(light, dark),
	}
	if ply := r.game.CurrentPly(); ply > 0 {
		last := r.game.Moves()[ply-1]
		opts = append(opts, image.MarkSquares(lastMoveColor, last.S1(), last.S2()))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := image.SVG(f, r.game.CurrentPosition().Board(), opts...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	r.log.Infow("Board written", "game_id", r.gameID, "path", path)
	fmt.Fprintf(r.out, "wrote %s\n", path)
	return nil
}

func (r *repl) show() {
	fmt.Fprint(r.out, r.game.CurrentPosition().Board().Draw())
}
