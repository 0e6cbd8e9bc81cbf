package rules

import (
	"fmt"

	"github.com/vasrot/jyardchess/internal/board"
)

// Constraint is the per-piece-kind rule evaluator. MoveKind reports what
// committing the move would mean; MoveStatus classifies raw shape
// legality (no king-safety filtering) given that resolved kind, so a
// caller pays for kind resolution once per candidate. Only the king
// consults the kind; the other evaluators ignore it.
type Constraint interface {
	MoveKind(from, to board.Square, b *board.Board) board.MoveKind
	MoveStatus(from, to board.Square, kind board.MoveKind, b *board.Board) MoveStatus
}

// constraintFor returns the evaluator for the piece. An unrecognized
// kind on an occupied square means the board is corrupted, which cannot
// be reasoned about, so it fails hard instead of returning a verdict.
func constraintFor(piece board.Piece, a *Analyzer) Constraint {
	switch piece.Kind() {
	case board.Pawn:
		return pawnConstraint{}
	case board.Knight:
		return knightConstraint{}
	case board.Bishop:
		return bishopConstraint{}
	case board.Rook:
		return rookConstraint{}
	case board.Queen:
		return queenConstraint{}
	case board.King:
		return kingConstraint{analyzer: a}
	default:
		panic(fmt.Sprintf("rules: unrecognized piece kind %d", piece.Kind()))
	}
}

// shapeInputs applies the shape checks every evaluator shares: both
// squares exist, they differ, and the origin is occupied.
func shapeInputs(from, to board.Square, b *board.Board) (fromPiece, toPiece board.Piece, ok bool) {
	if b == nil || !from.IsValid() || !to.IsValid() || from == to {
		return board.NoPiece, board.NoPiece, false
	}
	fromPiece = b.PieceAt(from)
	if fromPiece == board.NoPiece {
		return board.NoPiece, board.NoPiece, false
	}
	return fromPiece, b.PieceAt(to), true
}

// classifyTarget is the move/attack disambiguation shared by the piece
// evaluators: empty is a move, an enemy is an attack, a friendly is the
// protect verdict, and king-takes-king is its own diagnostic category.
func classifyTarget(fromPiece, toPiece board.Piece) MoveStatus {
	switch {
	case toPiece == board.NoPiece:
		return ValidMove
	case board.SameSide(fromPiece, toPiece):
		return CanProtectFriendly
	case fromPiece.Kind() == board.King && toPiece.Kind() == board.King:
		return KingAttackKing
	default:
		return ValidAttack
	}
}

// pathClear reports whether every square strictly between from and to is
// empty. Alignment must already have been established by the caller.
func pathClear(from, to board.Square, b *board.Board) bool {
	for _, sq := range board.Between(from, to) {
		if !b.IsEmpty(sq) {
			return false
		}
	}
	return true
}
