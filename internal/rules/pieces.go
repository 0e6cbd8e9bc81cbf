package rules

import "github.com/vasrot/jyardchess/internal/board"

type knightConstraint struct{}

func (knightConstraint) MoveStatus(from, to board.Square, _ board.MoveKind, b *board.Board) MoveStatus {
	fromPiece, toPiece, ok := shapeInputs(from, to, b)
	if !ok {
		return InvalidMove
	}

	df := intAbs(from.FileDelta(to))
	dr := intAbs(from.RankDelta(to))
	if !(df == 1 && dr == 2) && !(df == 2 && dr == 1) {
		return invalidForTarget(toPiece)
	}
	return classifyTarget(fromPiece, toPiece)
}

func (knightConstraint) MoveKind(from, to board.Square, b *board.Board) board.MoveKind {
	if _, _, ok := shapeInputs(from, to, b); !ok {
		return board.MoveNotAllowed
	}
	return board.MoveNormal
}

type bishopConstraint struct{}

func (bishopConstraint) MoveStatus(from, to board.Square, _ board.MoveKind, b *board.Board) MoveStatus {
	fromPiece, toPiece, ok := shapeInputs(from, to, b)
	if !ok {
		return InvalidMove
	}

	if !from.SameDiagonal(to) || !pathClear(from, to, b) {
		return invalidForTarget(toPiece)
	}
	return classifyTarget(fromPiece, toPiece)
}

func (bishopConstraint) MoveKind(from, to board.Square, b *board.Board) board.MoveKind {
	if _, _, ok := shapeInputs(from, to, b); !ok {
		return board.MoveNotAllowed
	}
	return board.MoveNormal
}

type rookConstraint struct{}

func (rookConstraint) MoveStatus(from, to board.Square, _ board.MoveKind, b *board.Board) MoveStatus {
	fromPiece, toPiece, ok := shapeInputs(from, to, b)
	if !ok {
		return InvalidMove
	}

	if !from.Orthogonal(to) || !pathClear(from, to, b) {
		return invalidForTarget(toPiece)
	}
	return classifyTarget(fromPiece, toPiece)
}

func (rookConstraint) MoveKind(from, to board.Square, b *board.Board) board.MoveKind {
	if _, _, ok := shapeInputs(from, to, b); !ok {
		return board.MoveNotAllowed
	}
	return board.MoveNormal
}

// queenConstraint is the union of rook and bishop geometry.
type queenConstraint struct{}

func (queenConstraint) MoveStatus(from, to board.Square, _ board.MoveKind, b *board.Board) MoveStatus {
	fromPiece, toPiece, ok := shapeInputs(from, to, b)
	if !ok {
		return InvalidMove
	}

	if (!from.Orthogonal(to) && !from.SameDiagonal(to)) || !pathClear(from, to, b) {
		return invalidForTarget(toPiece)
	}
	return classifyTarget(fromPiece, toPiece)
}

func (queenConstraint) MoveKind(from, to board.Square, b *board.Board) board.MoveKind {
	if _, _, ok := shapeInputs(from, to, b); !ok {
		return board.MoveNotAllowed
	}
	return board.MoveNormal
}

type pawnConstraint struct{}

func (pawnConstraint) MoveStatus(from, to board.Square, _ board.MoveKind, b *board.Board) MoveStatus {
	fromPiece, toPiece, ok := shapeInputs(from, to, b)
	if !ok {
		return InvalidMove
	}

	side := fromPiece.Side()
	dir := board.PawnDirection(side)
	df := from.FileDelta(to)
	dr := from.RankDelta(to)

	switch {
	case df == 0 && dr == dir:
		// Single advance, never a capture.
		if toPiece != board.NoPiece {
			return invalidForTarget(toPiece)
		}
		return ValidMove

	case df == 0 && dr == 2*dir:
		if b.HasMoved(from) || from.Rank() != board.PawnStartRank(side) {
			return InvalidMove
		}
		if toPiece != board.NoPiece {
			return invalidForTarget(toPiece)
		}
		if !pathClear(from, to, b) {
			return InvalidMove
		}
		return ValidMove

	case intAbs(df) == 1 && dr == dir:
		if toPiece == board.NoPiece {
			if canCaptureEnPassant(from, to, side, b) {
				return ValidAttack
			}
			return InvalidMove
		}
		if board.SameSide(fromPiece, toPiece) {
			return CanProtectFriendly
		}
		return ValidAttack

	default:
		return invalidForTarget(toPiece)
	}
}

// canCaptureEnPassant checks the diagonal move against an adjacent enemy
// pawn that double-stepped on the immediately preceding ply.
func canCaptureEnPassant(from, to board.Square, side board.Side, b *board.Board) bool {
	victimSq := board.NewSquare(to.File(), from.Rank())
	victim := b.PieceAt(victimSq)
	if victim == board.NoPiece || victim.Kind() != board.Pawn || victim.Side() == side {
		return false
	}
	if !b.DoubleStepped(victimSq) {
		return false
	}
	stamp, moved := b.MoveStamp(victimSq)
	return moved && stamp == b.TotalMoves()-1
}

func (pawnConstraint) MoveKind(from, to board.Square, b *board.Board) board.MoveKind {
	fromPiece, _, ok := shapeInputs(from, to, b)
	if !ok {
		return board.MoveNotAllowed
	}
	if to.Rank() == board.PromotionRank(fromPiece.Side()) {
		return board.MovePawnPromotion
	}
	return board.MoveNormal
}

// kingConstraint consults the analyzer for the castling protocol; plain
// king steps are pure adjacency.
type kingConstraint struct {
	analyzer *Analyzer
}

func (k kingConstraint) MoveStatus(from, to board.Square, kind board.MoveKind, b *board.Board) MoveStatus {
	fromPiece, toPiece, ok := shapeInputs(from, to, b)
	if !ok {
		return InvalidMove
	}

	dist := from.Distance(to)
	if kind == board.MoveCastling && (dist == 3 || dist == 4) {
		return ValidMove
	}
	if dist != 1 {
		return invalidForTarget(toPiece)
	}
	return classifyTarget(fromPiece, toPiece)
}

func (k kingConstraint) MoveKind(from, to board.Square, b *board.Board) board.MoveKind {
	fromPiece, toPiece, ok := shapeInputs(from, to, b)
	if !ok {
		return board.MoveNotAllowed
	}
	if board.SameSide(fromPiece, toPiece) &&
		fromPiece.Kind() == board.King && toPiece.Kind() == board.Rook {
		return k.analyzer.castlingKind(from, to, b)
	}
	return board.MoveNormal
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
