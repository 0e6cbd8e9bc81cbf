package rules

import "github.com/vasrot/jyardchess/internal/board"

// castleLanding returns the king's destination for a castling move. The
// landing file comes from a fixed wing table (g-file king side, c-file
// queen side), independent of the rook's exact file, so non-standard
// rook placements are tolerated.
func castleLanding(king board.Square, kingSide bool) board.Square {
	if kingSide {
		return board.NewSquare(6, king.Rank())
	}
	return board.NewSquare(2, king.Rank())
}

// castlePass returns the square the king passes through, which is also
// where the rook lands (f-file king side, d-file queen side).
func castlePass(king board.Square, kingSide bool) board.Square {
	if kingSide {
		return board.NewSquare(5, king.Rank())
	}
	return board.NewSquare(3, king.Rank())
}

// castlingKind resolves a king-onto-own-rook candidate. Preconditions,
// in order: the wing right is still held (otherwise the move is not
// allowed at all); neither king nor rook has moved; the squares between
// them are empty; and neither the king's current square, the square it
// passes through, nor its destination is attacked by the other side.
// A candidate that holds the right but fails the remaining conditions
// degrades to a normal (and therefore illegal, distance > 1) king move.
func (a *Analyzer) castlingKind(from, to board.Square, b *board.Board) board.MoveKind {
	side := b.PieceAt(from).Side()
	kingSide := to.File() > from.File()

	if !b.CanCastle(side, kingSide) {
		return board.MoveNotAllowed
	}

	if b.HasMoved(from) || b.HasMoved(to) {
		return board.MoveNormal
	}
	if !pathClear(from, to, b) {
		return board.MoveNormal
	}

	other := side.Other()
	if len(a.AttackersOf(castlePass(from, kingSide), other, b)) > 0 {
		return board.MoveNormal
	}
	if len(a.AttackersOf(from, other, b)) > 0 {
		return board.MoveNormal
	}
	if len(a.AttackersOf(castleLanding(from, kingSide), other, b)) > 0 {
		return board.MoveNormal
	}

	return board.MoveCastling
}
