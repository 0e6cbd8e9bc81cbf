package board

import (
	"github.com/pkg/errors"
)

// Snapshot is the serializable form of a Board, used by the storage
// layer. Squares serialize as algebraic names and pieces as notation
// characters so the stored documents stay readable.
type Snapshot struct {
	Placement     map[string]string `json:"placement"`
	Moved         []string          `json:"moved,omitempty"`
	DoubleStepped []string          `json:"double_stepped,omitempty"`
	MoveStamps    map[string]int    `json:"move_stamps,omitempty"`
	Castling      string            `json:"castling"`
	History       []MoveRecord      `json:"history,omitempty"`
	WhiteTurns    int               `json:"white_turns"`
	BlackTurns    int               `json:"black_turns"`
	TotalMoves    int               `json:"total_moves"`
	WhitePoints   int               `json:"white_points"`
	BlackPoints   int               `json:"black_points"`
	Active        Side              `json:"active"`
	Paused        bool              `json:"paused"`
	Drawn         bool              `json:"drawn"`
}

// Snapshot captures the full board state.
func (b *Board) Snapshot() *Snapshot {
	s := &Snapshot{
		Placement:   make(map[string]string, len(b.placement)),
		MoveStamps:  make(map[string]int, len(b.moveStamp)),
		Castling:    b.rights.String(),
		History:     b.History(),
		WhiteTurns:  b.whiteTurns,
		BlackTurns:  b.blackTurns,
		TotalMoves:  b.totalMoves,
		WhitePoints: b.whitePoints,
		BlackPoints: b.blackPoints,
		Active:      b.active,
		Paused:      b.paused,
		Drawn:       b.drawn,
	}
	for sq, pc := range b.placement {
		s.Placement[sq.String()] = pc.String()
	}
	for sq := range b.moved {
		s.Moved = append(s.Moved, sq.String())
	}
	for sq := range b.doubleStepped {
		s.DoubleStepped = append(s.DoubleStepped, sq.String())
	}
	for sq, stamp := range b.moveStamp {
		s.MoveStamps[sq.String()] = stamp
	}
	return s
}

// FromSnapshot rebuilds a Board from its serialized form.
func FromSnapshot(s *Snapshot) (*Board, error) {
	if s == nil {
		return nil, errors.New("nil snapshot")
	}

	b := &Board{
		placement:     make(map[Square]Piece, len(s.Placement)),
		moved:         make(map[Square]bool, len(s.Moved)),
		doubleStepped: make(map[Square]bool, len(s.DoubleStepped)),
		moveStamp:     make(map[Square]int, len(s.MoveStamps)),
		history:       append([]MoveRecord(nil), s.History...),
		whiteTurns:    s.WhiteTurns,
		blackTurns:    s.BlackTurns,
		totalMoves:    s.TotalMoves,
		whitePoints:   s.WhitePoints,
		blackPoints:   s.BlackPoints,
		active:        s.Active,
		paused:        s.Paused,
		drawn:         s.Drawn,
	}

	rights, err := ParseCastlingRights(s.Castling)
	if err != nil {
		return nil, errors.Wrap(err, "snapshot castling")
	}
	b.rights = rights

	for name, ch := range s.Placement {
		sq, err := ParseSquare(name)
		if err != nil {
			return nil, errors.Wrap(err, "snapshot placement")
		}
		if len(ch) != 1 {
			return nil, errors.Errorf("invalid piece %q at %s", ch, name)
		}
		pc := PieceFromChar(ch[0])
		if pc == NoPiece {
			return nil, errors.Errorf("invalid piece %q at %s", ch, name)
		}
		b.placement[sq] = pc
	}
	for _, name := range s.Moved {
		sq, err := ParseSquare(name)
		if err != nil {
			return nil, errors.Wrap(err, "snapshot moved set")
		}
		b.moved[sq] = true
	}
	for _, name := range s.DoubleStepped {
		sq, err := ParseSquare(name)
		if err != nil {
			return nil, errors.Wrap(err, "snapshot double-step set")
		}
		b.doubleStepped[sq] = true
	}
	for name, stamp := range s.MoveStamps {
		sq, err := ParseSquare(name)
		if err != nil {
			return nil, errors.Wrap(err, "snapshot move stamps")
		}
		b.moveStamp[sq] = stamp
	}

	// A tampered or corrupted document must surface as a structural
	// failure, not load as a board the rules cannot reason about.
	if err := b.ValidateStructure(); err != nil {
		return nil, errors.Wrap(err, "snapshot structure")
	}

	return b, nil
}
