package chess

// moveRule describes how a piece type moves: a list of (file, rank)
// steps and whether the piece keeps sliding along each step until blocked.
type moveRule struct {
	steps [][2]int8
	slide bool
}

var (
	orthogonalSteps = [][2]int8{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	diagonalSteps   = [][2]int8{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	kingSteps       = append(append([][2]int8{}, orthogonalSteps...), diagonalSteps...)
	knightSteps     = [][2]int8{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
)

// moveRules is indexed by PieceType. Pawns are handled separately since
// their moves depend on color and occupancy.
var moveRules = [...]moveRule{
	King:   {steps: kingSteps},
	Queen:  {steps: kingSteps, slide: true},
	Rook:   {steps: orthogonalSteps, slide: true},
	Bishop: {steps: diagonalSteps, slide: true},
	Knight: {steps: knightSteps},
	Pawn:   {},
}

// ValidMoves returns the legal moves for the side to move. The order is
// stable: origin squares ascend from A1 to H8, and each piece's moves follow
// its movement table. Moves are tagged with Capture, EnPassant, the castle
// tags, Check and Mate.
func (pos *Position) ValidMoves() []Move {
	pseudo := pos.pseudoMoves()
	moves := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if !pos.leavesKingSafe(m) {
			continue
		}
		next := pos.Update(m)
		if next.InCheck() {
			m.AddTag(Check)
			if !next.hasLegalMove() {
				m.AddTag(Mate)
			}
		}
		moves = append(moves, m)
	}
	return moves
}

// LegalMovesFrom returns the legal moves of the piece standing on sq.
func (pos *Position) LegalMovesFrom(sq Square) []Move {
	var out []Move
	for _, m := range pos.ValidMoves() {
		if m.s1 == sq {
			out = append(out, m)
		}
	}
	return out
}

func (pos *Position) hasLegalMove() bool {
	for _, m := range pos.pseudoMoves() {
		if pos.leavesKingSafe(m) {
			return true
		}
	}
	return false
}

func (pos *Position) leavesKingSafe(m Move) bool {
	nb := pos.board.Apply(m)
	return !nb.isAttacked(nb.kingSquare(pos.turn), pos.turn.Other())
}

// pseudoMoves returns moves that follow piece movement rules without
// regard to the mover's king safety. Castling is only generated when the
// king's path is clear of attacks, so castles are fully legal here.
func (pos *Position) pseudoMoves() []Move {
	var moves []Move
	for i := 0; i < numOfSquaresInBoard; i++ {
		sq := Square(i)
		p := pos.board.squares[sq]
		if p == NoPiece || p.Color() != pos.turn {
			continue
		}
		switch p.Type() {
		case Pawn:
			moves = pos.appendPawnMoves(moves, sq, p)
		case King:
			moves = pos.appendPieceMoves(moves, sq, p)
			moves = pos.appendCastles(moves, sq, p)
		default:
			moves = pos.appendPieceMoves(moves, sq, p)
		}
	}
	return moves
}

func (pos *Position) appendPieceMoves(moves []Move, from Square, p Piece) []Move {
	rule := moveRules[p.Type()]
	for _, step := range rule.steps {
		to := from.offset(step[0], step[1])
		for to != NoSquare {
			target := pos.board.squares[to]
			if target == NoPiece {
				moves = append(moves, Move{s1: from, s2: to, piece: p})
			} else {
				if target.Color() != p.Color() {
					moves = append(moves, Move{s1: from, s2: to, piece: p, captured: target, tags: Capture})
				}
				break
			}
			if !rule.slide {
				break
			}
			to = to.offset(step[0], step[1])
		}
	}
	return moves
}

func pawnDirection(c Color) int8 {
	if c == White {
		return 1
	}
	return -1
}

func (pos *Position) appendPawnMoves(moves []Move, from Square, p Piece) []Move {
	c := p.Color()
	dir := pawnDirection(c)
	startRank, lastRank := Rank2, Rank8
	if c == Black {
		startRank, lastRank = Rank7, Rank1
	}

	add := func(m Move) {
		if m.s2.Rank() != lastRank {
			moves = append(moves, m)
			return
		}
		for _, promo := range promoPieceTypes {
			pm := m
			pm.promo = promo
			moves = append(moves, pm)
		}
	}

	if one := from.offset(0, dir); one != NoSquare && pos.board.squares[one] == NoPiece {
		add(Move{s1: from, s2: one, piece: p})
		if two := from.offset(0, 2*dir); from.Rank() == startRank && pos.board.squares[two] == NoPiece {
			add(Move{s1: from, s2: two, piece: p})
		}
	}

	for _, df := range [2]int8{-1, 1} {
		to := from.offset(df, dir)
		if to == NoSquare {
			continue
		}
		target := pos.board.squares[to]
		switch {
		case target != NoPiece && target.Color() != c:
			add(Move{s1: from, s2: to, piece: p, captured: target, tags: Capture})
		case target == NoPiece && to == pos.enPassantSquare:
			add(Move{s1: from, s2: to, piece: p, captured: NewPiece(Pawn, c.Other()), tags: Capture | EnPassant})
		}
	}
	return moves
}

func (pos *Position) appendCastles(moves []Move, from Square, p Piece) []Move {
	c := p.Color()
	home := Rank1
	if c == Black {
		home = Rank8
	}
	if from != NewSquare(FileE, home) {
		return moves
	}
	opp := c.Other()
	if pos.board.isAttacked(from, opp) {
		return moves
	}

	castles := []struct {
		side    CastleSide
		tag     MoveTag
		rook    File
		empty   []File
		passing []File
	}{
		{KingSide, KingSideCastle, FileH, []File{FileF, FileG}, []File{FileF, FileG}},
		{QueenSide, QueenSideCastle, FileA, []File{FileB, FileC, FileD}, []File{FileD, FileC}},
	}

castleLoop:
	for _, cs := range castles {
		if !pos.castleRights.CanCastle(c, cs.side) {
			continue
		}
		if pos.board.squares[NewSquare(cs.rook, home)] != NewPiece(Rook, c) {
			continue
		}
		for _, f := range cs.empty {
			if pos.board.squares[NewSquare(f, home)] != NoPiece {
				continue castleLoop
			}
		}
		for _, f := range cs.passing {
			if pos.board.isAttacked(NewSquare(f, home), opp) {
				continue castleLoop
			}
		}
		to := NewSquare(cs.passing[len(cs.passing)-1], home)
		moves = append(moves, Move{s1: from, s2: to, piece: p, tags: cs.tag})
	}
	return moves
}

// isAttacked reports whether sq is attacked by any piece of color by.
func (b *Board) isAttacked(sq Square, by Color) bool {
	if sq == NoSquare {
		return false
	}

	dir := pawnDirection(by)
	for _, df := range [2]int8{-1, 1} {
		if from := sq.offset(df, -dir); from != NoSquare && b.squares[from] == NewPiece(Pawn, by) {
			return true
		}
	}

	for _, t := range [2]PieceType{Knight, King} {
		attacker := NewPiece(t, by)
		for _, step := range moveRules[t].steps {
			if from := sq.offset(step[0], step[1]); from != NoSquare && b.squares[from] == attacker {
				return true
			}
		}
	}

	rays := []struct {
		steps  [][2]int8
		slider PieceType
	}{
		{orthogonalSteps, Rook},
		{diagonalSteps, Bishop},
	}
	for _, ray := range rays {
		for _, step := range ray.steps {
			for from := sq.offset(step[0], step[1]); from != NoSquare; from = from.offset(step[0], step[1]) {
				p := b.squares[from]
				if p == NoPiece {
					continue
				}
				if p.Color() == by && (p.Type() == ray.slider || p.Type() == Queen) {
					return true
				}
				break
			}
		}
	}
	return false
}
