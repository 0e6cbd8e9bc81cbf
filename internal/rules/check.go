package rules

import "github.com/vasrot/jyardchess/internal/board"

// Analyzer computes attack geometry and king safety. It works only on
// raw shape classification, never on the safety-filtered verdicts, which
// is what keeps king-safety checking from recursing into itself.
type Analyzer struct{}

// NewAnalyzer creates the check analyzer. It has no dependencies; the
// validator is built on top of it afterwards.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// shapeStatus classifies raw geometry for attack computation. Kings
// contribute adjacency only: a castling move can never threaten a
// square, and resolving it here would re-enter attack enumeration.
func (a *Analyzer) shapeStatus(piece board.Piece, from, to board.Square, b *board.Board) MoveStatus {
	if piece.Kind() == board.King {
		if from.Distance(to) != 1 {
			return invalidForTarget(b.PieceAt(to))
		}
		return classifyTarget(piece, b.PieceAt(to))
	}
	// The kind is irrelevant below king level; skip resolving it.
	return constraintFor(piece, a).MoveStatus(from, to, board.MoveNormal, b)
}

// AttackersOf returns the squares of every piece of the given side whose
// shape-only classification reaches target as a move or an attack, in
// ascending square order. Quiet-move geometry counts on purpose: this is
// the reachability set castling path checks and check detection consult.
func (a *Analyzer) AttackersOf(target board.Square, by board.Side, b *board.Board) []board.Square {
	if b == nil || !target.IsValid() || by >= board.NoSide {
		return nil
	}

	var origins []board.Square
	for sq := board.A1; sq <= board.H8; sq++ {
		if sq == target {
			continue
		}
		pc := b.PieceAt(sq)
		if pc == board.NoPiece || pc.Side() != by {
			continue
		}
		if st := a.shapeStatus(pc, sq, target, b); st == ValidMove || st == ValidAttack {
			origins = append(origins, sq)
		}
	}
	return origins
}

// IsKingInCheck reports whether the side's king square is reachable by
// the other side. A board without that king is never in check.
func (a *Analyzer) IsKingInCheck(side board.Side, b *board.Board) bool {
	if b == nil {
		return false
	}
	kingSq, ok := b.KingSquare(side)
	if !ok {
		return false
	}
	return len(a.AttackersOf(kingSq, side.Other(), b)) > 0
}

// WouldExposeKing simulates the raw relocation from→to on a clone and
// reports whether the mover's own king ends up in check. The clone never
// escapes this call. Invalid input fails closed (reported as exposing).
func (a *Analyzer) WouldExposeKing(from, to board.Square, side board.Side, b *board.Board) bool {
	if b == nil || !from.IsValid() || !to.IsValid() {
		return true
	}
	clone := b.Clone()
	clone.Relocate(from, to)
	return a.IsKingInCheck(side, clone)
}
