// Package rules implements move legality and game termination for the
// board model: per-piece movement constraints, the check analyzer, the
// move validator and the outcome evaluator.
package rules

import "github.com/vasrot/jyardchess/internal/board"

// MoveStatus is the fine-grained legality verdict for a candidate move.
type MoveStatus uint8

const (
	InvalidMove MoveStatus = iota
	ValidMove
	ValidAttack
	InvalidAttack
	CanProtectFriendly
	KingAttackKing
)

// String returns the status name.
func (s MoveStatus) String() string {
	switch s {
	case ValidMove:
		return "ValidMove"
	case ValidAttack:
		return "ValidAttack"
	case InvalidAttack:
		return "InvalidAttack"
	case CanProtectFriendly:
		return "CanProtectFriendly"
	case KingAttackKing:
		return "KingAttackKing"
	default:
		return "InvalidMove"
	}
}

// IsValid reports whether the verdict allows the move to be committed.
func (s MoveStatus) IsValid() bool {
	return s == ValidMove || s == ValidAttack
}

func (s MoveStatus) isAttack() bool {
	return s == ValidAttack || s == InvalidAttack
}

func (s MoveStatus) isMove() bool {
	return s == ValidMove || s == InvalidMove
}

// invalidForTarget picks the invalid verdict matching the target square:
// a failed move onto an occupant is an invalid attack, onto emptiness an
// invalid move.
func invalidForTarget(target board.Piece) MoveStatus {
	if target == board.NoPiece {
		return InvalidMove
	}
	return InvalidAttack
}
