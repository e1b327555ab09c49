package chess

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidMoveText is returned when movetext or its tag pair header is
// malformed.
var ErrInvalidMoveText = errors.New("chess: invalid movetext")

// MoveText takes a reader and returns a function that updates the game to
// reflect the movetext. The text may start with PGN style tag pairs; a FEN
// tag sets the starting position. Moves are written either in algebraic
// notation with optional move numbers ("1. e4 e5 2. Nf3 *") or as a list of
// coordinate moves ("e2e4 e7e5 g1f3"). A trailing result sets the outcome
// when the final position does not determine one itself. The returned
// function is designed to be used in the NewGame constructor.
func MoveText(r io.Reader) (func(*Game), error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	game, err := decodeMoveText(data)
	if err != nil {
		return nil, err
	}
	return func(g *Game) {
		g.copy(game)
	}, nil
}

func decodeMoveText(data []byte) (*Game, error) {
	tags, body, err := splitTagPairs(data)
	if err != nil {
		return nil, err
	}

	game := NewGame()
	if fen, ok := tags["FEN"]; ok {
		opt, err := FEN(fen)
		if err != nil {
			return nil, err
		}
		opt(game)
	}
	for k, v := range tags {
		game.AddTagPair(k, v)
	}

	tokens, result, err := SplitMoveText(body)
	if err != nil {
		return nil, err
	}

	var notation Notation = AlgebraicNotation{}
	if looksLikeCoordinateMoves(tokens) {
		notation = UCINotation{}
	}
	for i, tok := range tokens {
		if err := game.PushNotationMove(tok, notation); err != nil {
			return nil, fmt.Errorf("move %d %q: %w", i+1, tok, err)
		}
	}

	switch {
	case result == NoOutcome:
	case game.outcome == NoOutcome:
		game.outcome = result
	case game.outcome != result:
		return nil, fmt.Errorf("%w: result %s contradicts %s by %s", ErrInvalidMoveText, result, game.outcome, game.method)
	}
	return game, nil
}

// splitTagPairs reads leading `[Key "Value"]` lines and returns them with
// the remaining movetext.
func splitTagPairs(data []byte) (TagPairs, string, error) {
	tags := make(TagPairs)
	var body strings.Builder

	scanner := bufio.NewScanner(bytes.NewReader(data))
	inHeader := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if inHeader && strings.HasPrefix(line, "[") {
			k, v, err := parseTagPair(line)
			if err != nil {
				return nil, "", err
			}
			tags[k] = v
			continue
		}
		if line != "" {
			inHeader = false
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, "", err
	}
	return tags, body.String(), nil
}

func parseTagPair(line string) (string, string, error) {
	if !strings.HasSuffix(line, "]") {
		return "", "", fmt.Errorf("%w: unterminated tag pair %q", ErrInvalidMoveText, line)
	}
	inner := strings.TrimSpace(line[1 : len(line)-1])
	key, raw, ok := strings.Cut(inner, " ")
	if !ok || key == "" {
		return "", "", fmt.Errorf("%w: tag pair without value %q", ErrInvalidMoveText, line)
	}
	value, err := strconv.Unquote(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("%w: tag pair value %q: %v", ErrInvalidMoveText, raw, err)
	}
	return key, value, nil
}

// SplitMoveText splits movetext into move tokens and its result. Move
// numbers ("1.", "1...", or attached as in "1.e4") and comments ("{...}",
// or ";" to the end of the line) are dropped. The result
// token, if present, must be the last token; NoOutcome is returned when it
// is absent.
func SplitMoveText(s string) ([]string, Outcome, error) {
	s, err := stripComments(s)
	if err != nil {
		return nil, NoOutcome, err
	}
	raw := splitMoveTokens(s)
	moves := make([]string, 0, len(raw))
	result := NoOutcome
	for i, tok := range raw {
		if o, ok := parseResult(tok); ok {
			if i != len(raw)-1 {
				return nil, NoOutcome, fmt.Errorf("%w: result %q is followed by %q", ErrInvalidMoveText, tok, raw[i+1])
			}
			result = o
			continue
		}
		tok = stripMoveNumber(tok)
		if tok == "" {
			continue
		}
		moves = append(moves, tok)
	}
	return moves, result, nil
}

func parseResult(tok string) (Outcome, bool) {
	switch o := Outcome(tok); o {
	case WhiteWon, BlackWon, Draw, NoOutcome:
		return o, true
	}
	return NoOutcome, false
}

// stripMoveNumber removes a leading "12." or "12..." from tok. A token of
// digits without a dot is left for the move parser to reject.
func stripMoveNumber(tok string) string {
	i := 0
	for i < len(tok) && isDigit(tok[i]) {
		i++
	}
	if i == 0 || i == len(tok) || tok[i] != '.' {
		return tok
	}
	return strings.TrimLeft(tok[i:], ".")
}

func looksLikeCoordinateMoves(toks []string) bool {
	if len(toks) == 0 {
		return false
	}
	for _, t := range toks {
		if !isCoordinateMoveToken(t) {
			return false
		}
	}
	return true
}

// stripComments replaces brace comments and rest-of-line comments with
// spaces. Braces do not nest, and a ";" inside braces starts nothing.
func stripComments(s string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated comment at offset %d", ErrInvalidMoveText, i)
			}
			i += end
			sb.WriteByte(' ')
		case ';':
			end := strings.IndexByte(s[i:], '\n')
			if end < 0 {
				return sb.String(), nil
			}
			i += end
			sb.WriteByte('\n')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String(), nil
}

func splitMoveTokens(s string) []string {
	raw := strings.Fields(s)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.Trim(t, ",")
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
