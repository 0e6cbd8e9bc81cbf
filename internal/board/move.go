package board

// MoveKind classifies what a candidate move would be if committed.
type MoveKind uint8

const (
	MoveNormal MoveKind = iota
	MoveCastling
	MovePawnPromotion
	MoveNotAllowed
)

// String returns the move kind name.
func (mk MoveKind) String() string {
	switch mk {
	case MoveNormal:
		return "Normal"
	case MoveCastling:
		return "Castling"
	case MovePawnPromotion:
		return "PawnPromotion"
	default:
		return "NotAllowed"
	}
}

// MoveRecord is one committed move in the board history.
type MoveRecord struct {
	Side Side     `json:"side"`
	From Square   `json:"from"`
	To   Square   `json:"to"`
	Kind MoveKind `json:"kind"`
}

// Equal reports whether two records describe the same move by the same
// side. This is the comparison the repetition-draw window uses.
func (mr MoveRecord) Equal(other MoveRecord) bool {
	return mr.Side == other.Side &&
		mr.From == other.From &&
		mr.To == other.To &&
		mr.Kind == other.Kind
}

// String returns the record in long algebraic form, e.g. "White e2e4".
func (mr MoveRecord) String() string {
	return mr.Side.String() + " " + mr.From.String() + mr.To.String()
}
