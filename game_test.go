package chess

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckmate(t *testing.T) {
	fenStr := "rn1qkbnr/pbpp1ppp/1p6/4p3/2B1P3/5Q2/PPPP1PPP/RNB1K1NR w KQkq - 0 1"
	fen, err := FEN(fenStr)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(fen)
	if err := g.PushMove("Qxf7#"); err != nil {
		t.Fatal(err)
	}
	if g.Method() != Checkmate {
		t.Fatalf("expected method %s but got %s", Checkmate, g.Method())
	}
	if g.Outcome() != WhiteWon {
		t.Fatalf("expected outcome %s but got %s", WhiteWon, g.Outcome())
	}

	// Checkmate on castle
	fenStr = "Q7/5Qp1/3k2N1/7p/8/4B3/PP3PPP/R3K2R w KQ - 0 31"
	fen, err = FEN(fenStr)
	if err != nil {
		t.Fatal(err)
	}
	g = NewGame(fen)
	if err := g.PushMove("O-O-O"); err != nil {
		t.Fatal(err)
	}
	t.Log(g.Position().String())
	if g.Method() != Checkmate {
		t.Fatalf("expected method %s but got %s", Checkmate, g.Method())
	}
	if g.Outcome() != WhiteWon {
		t.Fatalf("expected outcome %s but got %s", WhiteWon, g.Outcome())
	}
}

func TestCheckmateFromFen(t *testing.T) {
	fenStr := "rn1qkbnr/pbpp1Qpp/1p6/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 1"
	fen, err := FEN(fenStr)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(fen)
	if g.Method() != Checkmate {
		t.Error(g.Position().Board().Draw())
		t.Fatalf("expected method %s but got %s", Checkmate, g.Method())
	}
	if g.Outcome() != WhiteWon {
		t.Fatalf("expected outcome %s but got %s", WhiteWon, g.Outcome())
	}
}

func TestStalemate(t *testing.T) {
	fenStr := "k1K5/8/8/8/8/8/8/1Q6 w - - 0 1"
	fen, err := FEN(fenStr)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(fen)
	if err := g.PushMove("Qb6"); err != nil {
		t.Fatal(err)
	}
	if g.Method() != Stalemate {
		t.Fatalf("expected method %s but got %s", Stalemate, g.Method())
	}
	if g.Outcome() != Draw {
		t.Fatalf("expected outcome %s but got %s", Draw, g.Outcome())
	}
}

// position shouldn't result in stalemate because pawn can move http://en.lichess.org/Pc6mJDZN#138
func TestInvalidStalemate(t *testing.T) {
	fenStr := "8/3P4/8/8/8/7k/7p/7K w - - 2 70"
	fen, err := FEN(fenStr)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(fen)
	if err := g.PushMove("d8=Q"); err != nil {
		t.Fatal(err)
	}
	if g.Outcome() != NoOutcome {
		t.Fatalf("expected outcome %s but got %s", NoOutcome, g.Outcome())
	}
}

func TestInitialNumOfValidMoves(t *testing.T) {
	g := NewGame()
	if len(g.ValidMoves()) != 20 {
		t.Fatal("should find 20 valid moves from the initial position")
	}
}

func TestPushMove(t *testing.T) {
	tests := []struct {
		name         string
		setupMoves   []string // Moves to set up the position
		move         string   // Move to push
		goBack       bool     // Whether to go back one move before pushing
		wantErr      error    // Expected error, nil on success
		wantPosition string   // Expected FEN after the move
		wantMoves    []string // Expected moves in UCI notation
	}{
		{
			name:         "basic pawn move",
			move:         "e4",
			wantPosition: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			wantMoves:    []string{"e2e4"},
		},
		{
			name:    "invalid move should fail",
			move:    "e9",
			wantErr: ErrInvalidSquare,
		},
		{
			name:         "piece move",
			setupMoves:   []string{"e4", "e5"},
			move:         "Nf3",
			wantPosition: "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
			wantMoves:    []string{"e2e4", "e7e5", "g1f3"},
		},
		{
			name:       "push after going back",
			setupMoves: []string{"e4", "e5", "Nf3"},
			move:       "Nc3",
			goBack:     true,
			wantErr:    ErrNotAtEnd,
		},
		{
			name:         "castling move",
			setupMoves:   []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "d3", "Nf6"},
			move:         "O-O",
			wantPosition: "r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/3P1N2/PPP2PPP/RNBQ1RK1 b kq - 2 5",
			wantMoves:    []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "f8c5", "d2d3", "g8f6", "e1g1"},
		},
		{
			name:         "en passant capture",
			setupMoves:   []string{"e4", "Nf6", "e5", "d5"},
			move:         "exd6",
			wantPosition: "rnbqkb1r/ppp1pppp/3P1n2/8/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3",
			wantMoves:    []string{"e2e4", "g8f6", "e4e5", "d7d5", "e5d6"},
		},
		{
			name:         "pawn promotion",
			setupMoves:   []string{"e4", "d5", "exd5", "c6", "dxc6", "Nf6", "cxb7", "Nbd7"},
			move:         "bxa8=Q",
			wantPosition: "Q1bqkb1r/p2npppp/5n2/8/8/8/PPPP1PPP/RNBQKBNR b KQk - 0 5",
			wantMoves:    []string{"e2e4", "d7d5", "e4d5", "c7c6", "d5c6", "g8f6", "c6b7", "b8d7", "b7a8q"},
		},
		{
			name:       "ambiguous knight move",
			setupMoves: []string{"Nc3", "d5", "Nf3", "d4", "Ne4", "h6"},
			move:       "Ng5",
			wantErr:    ErrAmbiguousMove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := NewGame()
			require.NoError(t, game.PushMoves(tt.setupMoves...), "setup")

			if tt.goBack {
				require.True(t, game.GoBack())
			}

			err := game.PushMove(tt.move)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, len(tt.setupMoves), game.Ply(), "failed push leaves the game unchanged")
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantPosition, game.FEN())
			var got []string
			for _, m := range game.Moves() {
				got = append(got, m.String())
			}
			assert.Equal(t, tt.wantMoves, got)
		})
	}
}

func TestCastlingAfterKingOrRookMoved(t *testing.T) {
	const fen = "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	tests := []struct {
		name      string
		moves     []string
		kingSide  bool
		queenSide bool
	}{
		{"king out and back", []string{"Ke2", "Ke7", "Ke1", "Ke8"}, false, false},
		{"king side rook out and back", []string{"Rh2", "Rh7", "Rh1", "Rh8"}, false, true},
		{"queen side rook out and back", []string{"Ra2", "Ra7", "Ra1", "Ra8"}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, side := range []struct {
				san     string
				allowed bool
			}{{"O-O", tt.kingSide}, {"O-O-O", tt.queenSide}} {
				opt, err := FEN(fen)
				require.NoError(t, err)
				g := NewGame(opt)
				require.NoError(t, g.PushMoves(tt.moves...))

				err = g.PushMove(side.san)
				if side.allowed {
					assert.NoError(t, err, side.san)
				} else {
					assert.ErrorIs(t, err, ErrNoLegalMove, side.san)
				}
			}
		})
	}
}

func TestPushMoves(t *testing.T) {
	g := NewGame()
	require.NoError(t, g.PushMoves("e4", "d5", "xd5"))

	b := g.Board()
	assert.Equal(t, WhitePawn, b.Piece(D5))
	assert.Equal(t, NoPiece, b.Piece(E4))
	assert.Equal(t, "1. e4 d5 2. exd5 *", g.MoveText())

	g = NewGame()
	err := g.PushMoves("e4", "e4", "d5")
	assert.ErrorIs(t, err, ErrNoLegalMove)
	assert.Contains(t, err.Error(), `move 2 "e4"`)
	assert.Equal(t, 1, g.Ply())
}

func TestTurnAlternates(t *testing.T) {
	g := NewGame()
	assert.Equal(t, White, g.Position().Turn())
	for i, m := range []string{"d4", "d5", "c4", "e6", "Nc3"} {
		require.NoError(t, g.PushMove(m))
		want := Black
		if i%2 == 1 {
			want = White
		}
		assert.Equal(t, want, g.Position().Turn(), "after %s", m)
	}
	assert.Len(t, g.Positions(), 6)
}

func TestGameMoveValidation(t *testing.T) {
	tests := []struct {
		name        string
		setupMoves  []string // Moves to set up the position
		move        Move     // Move to test
		wantErr     bool     // Whether we expect an error
		errorString string   // Expected error string (if wantErr is true)
	}{
		{
			name: "valid move should succeed",
			move: NewMove(E2, E4, NoPieceType),
		},
		{
			name:        "invalid move should fail",
			move:        NewMove(E2, E5, NoPieceType),
			wantErr:     true,
			errorString: "chess: illegal move: e2e5",
		},
		{
			name:        "invalid move from valid position should fail",
			setupMoves:  []string{"e4", "e5"},
			move:        NewMove(E4, E6, NoPieceType),
			wantErr:     true,
			errorString: "chess: illegal move: e4e6",
		},
		{
			name:       "valid move from valid position should succeed",
			setupMoves: []string{"e4", "e5"},
			move:       NewMove(G1, F3, NoPieceType),
		},
		{
			name:       "valid promotion move should succeed",
			setupMoves: []string{"e4", "d5", "exd5", "c6", "dxc6", "Nf6", "cxb7", "Nbd7"},
			move:       NewMove(B7, A8, Queen),
		},
		{
			name:        "invalid promotion move should fail",
			setupMoves:  []string{"e4", "d5", "exd5", "c6", "dxc6", "Nf6", "cxb7", "Nbd7"},
			move:        NewMove(B7, A8, King),
			wantErr:     true,
			errorString: "chess: illegal move: b7a8k",
		},
		{
			name:        "promotion must name a piece",
			setupMoves:  []string{"e4", "d5", "exd5", "c6", "dxc6", "Nf6", "cxb7", "Nbd7"},
			move:        NewMove(B7, A8, NoPieceType),
			wantErr:     true,
			errorString: "chess: illegal move: b7a8",
		},
		{
			name:       "valid castling move should succeed",
			setupMoves: []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "d3", "Nf6"},
			move:       NewMove(E1, G1, NoPieceType),
		},
		{
			name:        "invalid castling move should fail",
			setupMoves:  []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "d3", "Nf6"},
			move:        NewMove(E1, H1, NoPieceType),
			wantErr:     true,
			errorString: "chess: illegal move: e1h1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := NewGame()
			require.NoError(t, game.PushMoves(tt.setupMoves...), "setup")

			err := game.Move(tt.move)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrIllegalMove)
				assert.EqualError(t, err, tt.errorString)
				var merr *MoveError
				require.True(t, errors.As(err, &merr))
				assert.Equal(t, tt.move, merr.Move)
				return
			}
			require.NoError(t, err)

			moves := game.Moves()
			last := moves[len(moves)-1]
			assert.True(t, last.sameMove(tt.move), "got %s, want %s", last, tt.move)
			assert.NotEqual(t, NoPiece, last.Piece(), "the applied move carries the generated details")
		})
	}
}

func TestNavigation(t *testing.T) {
	g := NewGame()
	require.NoError(t, g.PushMoves("e4", "e5", "Nf3"))
	assert.True(t, g.IsAtEnd())
	assert.False(t, g.IsAtStart())
	assert.Equal(t, 3, g.CurrentPly())

	require.True(t, g.GoBack())
	assert.False(t, g.IsAtEnd())
	assert.Equal(t, 2, g.CurrentPly())
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", g.CurrentPosition().String())
	assert.Equal(t, g.Positions()[3], g.Position(), "the latest position is unaffected by the cursor")

	err := g.Move(g.ValidMoves()[0])
	assert.ErrorIs(t, err, ErrNotAtEnd)
	var merr *MoveError
	assert.True(t, errors.As(err, &merr))

	require.True(t, g.GoTo(0))
	assert.True(t, g.IsAtStart())
	assert.False(t, g.GoBack())
	assert.False(t, g.GoTo(4))
	assert.False(t, g.GoTo(-1))
	assert.Equal(t, 0, g.CurrentPly())

	for i := 0; i < 3; i++ {
		assert.True(t, g.GoForward())
	}
	assert.False(t, g.GoForward())
	assert.True(t, g.IsAtEnd())
	require.NoError(t, g.PushMove("Nc6"))
	assert.Equal(t, 4, g.CurrentPly())

	pos, ok := g.PositionAt(1)
	require.True(t, ok)
	assert.Equal(t, Black, pos.Turn())
	_, ok = g.PositionAt(5)
	assert.False(t, ok)
}

func TestDisambiguate(t *testing.T) {
	g := NewGame()
	am, err := ParseMove("Nf3")
	require.NoError(t, err)

	m, err := g.Disambiguate(am)
	require.NoError(t, err)
	assert.Equal(t, "g1f3", m.String())
	assert.Equal(t, 0, g.Ply(), "disambiguation does not play the move")
}

func TestStrictAnnotationsOption(t *testing.T) {
	g := NewGame(StrictAnnotations())
	assert.ErrorIs(t, g.PushMove("e4+"), ErrAnnotationMismatch)
	require.NoError(t, g.PushMove("e4"))

	clone := g.Clone()
	assert.ErrorIs(t, clone.PushMove("Nxf6"), ErrAnnotationMismatch)

	lenient := NewGame()
	assert.NoError(t, lenient.PushMove("e4+"))

	text, err := lenient.MarshalText()
	require.NoError(t, err)
	strict := NewGame(StrictAnnotations())
	require.NoError(t, strict.UnmarshalText(text))
	assert.NoError(t, strict.PushMove("Nf6+"), "a decoded game resolves moves leniently")
}

func TestRemoveTagPairWhenKeyExists(t *testing.T) {
	game := NewGame()
	game.AddTagPair("Event", "Test Event")
	removed := game.RemoveTagPair("Event")
	if !removed {
		t.Fatalf("expected tag pair to be removed")
	}
	if game.GetTagPair("Event") != "" {
		t.Fatalf("expected tag pair value to be empty")
	}
}

func TestRemoveTagPairWhenKeyDoesNotExist(t *testing.T) {
	game := NewGame()
	removed := game.RemoveTagPair("NonExistent")
	if removed {
		t.Fatalf("expected tag pair not to be removed")
	}
}

func TestAddTagPairWhenKeyExists(t *testing.T) {
	game := NewGame()
	game.AddTagPair("Event", "Test Event")
	overwritten := game.AddTagPair("Event", "New Event")
	if !overwritten {
		t.Fatalf("expected tag pair to be overwritten")
	}
	if game.GetTagPair("Event") != "New Event" {
		t.Fatalf("expected tag pair value to be 'New Event'")
	}
}

func TestAddTagPairWithNilTagPairs(t *testing.T) {
	game := &Game{}
	overwritten := game.AddTagPair("Event", "Test Event")
	if overwritten {
		t.Fatalf("expected tag pair not to be overwritten")
	}
	if game.GetTagPair("Event") != "Test Event" {
		t.Fatalf("expected tag pair value to be 'Test Event'")
	}
}

func TestTagPairsIsCopy(t *testing.T) {
	game := NewGame()
	game.AddTagPair("Event", "Test Event")
	tags := game.TagPairs()
	tags["Event"] = "Changed"
	assert.Equal(t, "Test Event", game.GetTagPair("Event"))
}

func TestCloneGameState(t *testing.T) {
	original := NewGame()
	original.AddTagPair("Event", "Test Event")
	require.NoError(t, original.PushMoves("e4", "e5"))
	require.True(t, original.GoBack())

	clone := original.Clone()
	assert.Equal(t, original.Moves(), clone.Moves())
	assert.Equal(t, original.Positions(), clone.Positions())
	assert.Equal(t, original.CurrentPly(), clone.CurrentPly())
	assert.Equal(t, original.Outcome(), clone.Outcome())
	assert.Equal(t, original.Method(), clone.Method())
	assert.Equal(t, "Test Event", clone.GetTagPair("Event"))

	require.True(t, clone.GoForward())
	require.NoError(t, clone.PushMove("Nf3"))
	clone.AddTagPair("Event", "Changed")

	assert.Equal(t, 2, original.Ply())
	assert.Equal(t, 1, original.CurrentPly())
	assert.Equal(t, "Test Event", original.GetTagPair("Event"))
}

func TestGameString(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		tags  [][2]string
		moves []string
		want  string
	}{
		{
			name: "empty game",
			want: "*",
		},
		{
			name:  "tags in roster order",
			tags:  [][2]string{{"Annotator", "Someone"}, {"White", "Morphy"}, {"Event", "Opera"}},
			moves: []string{"e4", "e5", "Nf3"},
			want: `[Event "Opera"]
[White "Morphy"]
[Annotator "Someone"]

1. e4 e5 2. Nf3 *`,
		},
		{
			name:  "checkmate result",
			moves: []string{"f3", "e5", "g4", "Qh4"},
			want:  "1. f3 e5 2. g4 Qh4# 0-1",
		},
		{
			name:  "disambiguated moves",
			moves: []string{"Nc3", "d5", "Nf3", "d4", "Ne4", "h6", "Neg5"},
			want:  "1. Nc3 d5 2. Nf3 d4 3. Ne4 h6 4. Neg5 *",
		},
		{
			name:  "black to move from FEN",
			fen:   "4k3/8/8/8/8/8/4p3/4K3 b - - 0 40",
			moves: []string{"Kd7", "Kxe2"},
			want: `[FEN "4k3/8/8/8/8/8/4p3/4K3 b - - 0 40"]
[SetUp "1"]

40... Kd7 41. Kxe2 *`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []func(*Game)
			if tt.fen != "" {
				fen, err := FEN(tt.fen)
				require.NoError(t, err)
				opts = append(opts, fen)
			}
			g := NewGame(opts...)
			for _, kv := range tt.tags {
				g.AddTagPair(kv[0], kv[1])
			}
			require.NoError(t, g.PushMoves(tt.moves...))
			assert.Equal(t, tt.want, g.String())
		})
	}
}

func FuzzTestPushNotationMove(f *testing.F) {
	f.Add("e2e4", 0)
	f.Add("e4", 1)
	f.Add("Nb1c3", 1)

	f.Fuzz(func(t *testing.T, move string, notationType int) {
		game := NewGame()

		var notation Notation
		switch notationType % 2 {
		case 0:
			notation = UCINotation{}
		default:
			notation = AlgebraicNotation{}
		}

		if err := game.PushNotationMove(move, notation); err != nil && game.Ply() != 0 {
			t.Fatalf("failed push of %q changed the game", move)
		}
	})
}

func TestInvalidPushNotationMove(t *testing.T) {
	fen := "r1bqk1nr/pp1pppbp/6p1/1Bp1P3/P2n1P2/2N2N2/1PPP2PP/R1BQK2R w KQkq - 0 1"
	bogusMv := "Kxh1"
	opt, err := FEN(fen)
	if err != nil {
		t.Fatalf("FEN(fen) failed")
	}
	game := NewGame(opt)

	err = game.PushNotationMove(bogusMv, UCINotation{})
	if err == nil {
		t.Errorf("PushNotationMove() (uci) succeeded in pushing bogus mv when it should have failed")
	}
	err = game.PushNotationMove(bogusMv, AlgebraicNotation{})
	if err == nil {
		t.Errorf("PushNotationMove() (alg) succeeded in pushing bogus mv when it should have failed")
	}
}

func TestValidPushNotationMove(t *testing.T) {
	text := strings.NewReader("1. e4 c5 2. Nc3 Nc6 3. f4 g6 4. Nf3 Bg7 5. a4 Nf6 6. e5 *")
	opt, err := MoveText(text)
	if err != nil {
		t.Fatalf("MoveText(text) failed")
	}
	game := NewGame(opt)

	startMlen := len(game.Moves())
	startPlen := len(game.Positions())

	if err := game.PushNotationMove("f6g4", UCINotation{}); err != nil {
		t.Errorf("PushNotationMove() failed but should have succeeded")
	}

	if len(game.Moves()) != startMlen+1 {
		t.Errorf("PushNotationMove() failed to update game.Moves()")
	}
	if len(game.Positions()) != startPlen+1 {
		t.Errorf("PushNotationMove() failed to update game.Positions()")
	}
}
