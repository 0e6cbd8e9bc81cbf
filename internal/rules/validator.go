package rules

import "github.com/vasrot/jyardchess/internal/board"

// KingStatus is the safety classification of one side's king.
type KingStatus uint8

const (
	KingOK KingStatus = iota
	KingCheck
	KingCheckmate
	KingStalemate
)

// String returns the status name.
func (ks KingStatus) String() string {
	switch ks {
	case KingCheck:
		return "Check"
	case KingCheckmate:
		return "Checkmate"
	case KingStalemate:
		return "Stalemate"
	default:
		return "OK"
	}
}

// Validator produces final legality verdicts: shape classification from
// the piece constraints plus the king-safety filter from the analyzer.
type Validator struct {
	analyzer *Analyzer
}

// NewValidator builds a validator on an already-constructed analyzer.
// The two-phase construction is deliberate: the analyzer depends only on
// raw shape geometry, the validator on the analyzer, never the reverse.
func NewValidator(a *Analyzer) *Validator {
	return &Validator{analyzer: a}
}

// Analyzer exposes the underlying check analyzer.
func (v *Validator) Analyzer() *Analyzer {
	return v.analyzer
}

// MoveStatusOf returns the final legality verdict for a candidate move.
// Shape-valid attacks and moves are upgraded to valid only if they do
// not leave the mover's own king in check. For castling candidates the
// safety simulation uses the king's actual landing square, not the
// rook's square the candidate names. All bad input fails closed to
// InvalidMove.
func (v *Validator) MoveStatusOf(from, to board.Square, b *board.Board) MoveStatus {
	if b == nil || !from.IsValid() || !to.IsValid() || from == to {
		return InvalidMove
	}
	piece := b.PieceAt(from)
	if piece == board.NoPiece {
		return InvalidMove
	}

	// The kind is resolved once per candidate; castling resolution runs
	// its attack sweeps here and nowhere else in the query.
	constraint := constraintFor(piece, v.analyzer)
	kind := constraint.MoveKind(from, to, b)
	status := constraint.MoveStatus(from, to, kind, b)

	switch {
	case status.isAttack():
		if status == ValidAttack && !v.analyzer.WouldExposeKing(from, to, piece.Side(), b) {
			return ValidAttack
		}
		return InvalidAttack

	case status.isMove():
		target := to
		if kind == board.MoveCastling {
			target = castleLanding(from, to.File() > from.File())
		}
		if status == ValidMove && !v.analyzer.WouldExposeKing(from, target, piece.Side(), b) {
			return ValidMove
		}
		return InvalidMove

	default:
		// CanProtectFriendly and KingAttackKing pass through untouched;
		// they are diagnostics, not candidates for the safety filter.
		return status
	}
}

// MoveKindOf reports what committing the candidate would mean, without
// applying the king-safety filter.
func (v *Validator) MoveKindOf(from, to board.Square, b *board.Board) board.MoveKind {
	if b == nil || !from.IsValid() || !to.IsValid() || from == to {
		return board.MoveNotAllowed
	}
	piece := b.PieceAt(from)
	if piece == board.NoPiece {
		return board.MoveNotAllowed
	}
	return constraintFor(piece, v.analyzer).MoveKind(from, to, b)
}

// LegalMovesFrom enumerates every destination with a valid verdict for
// the piece on from, in ascending square order. The result is empty when
// from is empty or the occupant belongs to the other side.
func (v *Validator) LegalMovesFrom(from board.Square, side board.Side, b *board.Board) []board.Square {
	if b == nil || !from.IsValid() || side >= board.NoSide {
		return nil
	}
	piece := b.PieceAt(from)
	if piece == board.NoPiece || piece.Side() != side {
		return nil
	}

	var moves []board.Square
	for to := board.A1; to <= board.H8; to++ {
		if to == from {
			continue
		}
		if v.MoveStatusOf(from, to, b).IsValid() {
			moves = append(moves, to)
		}
	}
	return moves
}

func (v *Validator) sideHasLegalMove(side board.Side, b *board.Board) bool {
	for sq := board.A1; sq <= board.H8; sq++ {
		if b.PieceAt(sq).Side() != side {
			continue
		}
		if len(v.LegalMovesFrom(sq, side, b)) > 0 {
			return true
		}
	}
	return false
}

// KingStatus classifies the side's king: check, checkmate when check
// coincides with a full legal-move drought, stalemate when the drought
// happens out of check.
func (v *Validator) KingStatus(side board.Side, b *board.Board) KingStatus {
	if b == nil || side >= board.NoSide {
		return KingOK
	}

	inCheck := v.analyzer.IsKingInCheck(side, b)
	hasMove := v.sideHasLegalMove(side, b)

	switch {
	case inCheck && !hasMove:
		return KingCheckmate
	case inCheck:
		return KingCheck
	case !hasMove:
		return KingStalemate
	default:
		return KingOK
	}
}
