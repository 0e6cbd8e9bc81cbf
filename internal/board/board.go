package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSquare    = errors.New("invalid square")
	ErrEmptySquare      = errors.New("no piece on origin square")
	ErrMoveNotAllowed   = errors.New("move kind not allowed")
	ErrGamePaused       = errors.New("game paused")
	ErrNotPromotable    = errors.New("square holds no promotable pawn")
	ErrBadPromotionKind = errors.New("piece kind not allowed for promotion")
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the castling rights in notation form ("KQkq", "-" if none).
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle on the given wing.
func (cr CastlingRights) CanCastle(s Side, kingSide bool) bool {
	if s == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// ParseCastlingRights parses a notation castling string ("KQkq" or "-").
func ParseCastlingRights(s string) (CastlingRights, error) {
	if s == "-" {
		return NoCastling, nil
	}
	var cr CastlingRights
	for _, c := range s {
		switch c {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		default:
			return NoCastling, fmt.Errorf("invalid castling character: %c", c)
		}
	}
	return cr, nil
}

// PawnDirection returns the rank step a pawn of the side advances by.
func PawnDirection(s Side) int {
	if s == White {
		return 1
	}
	return -1
}

// PawnStartRank returns the rank pawns of the side start on (0-indexed).
func PawnStartRank(s Side) int {
	if s == White {
		return 1
	}
	return 6
}

// PromotionRank returns the last rank for the side (0-indexed).
func PromotionRank(s Side) int {
	if s == White {
		return 7
	}
	return 0
}

// Board is the authoritative game snapshot. Legality queries never mutate
// it; what-if analysis works on a Clone and the clone is discarded. All
// committed mutation goes through Apply and Upgrade.
type Board struct {
	placement     map[Square]Piece
	moved         map[Square]bool
	doubleStepped map[Square]bool
	moveStamp     map[Square]int

	rights  CastlingRights
	history []MoveRecord

	whiteTurns  int
	blackTurns  int
	totalMoves  int
	whitePoints int
	blackPoints int

	active Side
	paused bool
	drawn  bool
}

// New creates a board with the standard starting layout, white to move.
func New() *Board {
	return NewFromPlacement(standardPlacement(), White, AllCastling)
}

// NewFromPlacement creates a board from an arbitrary placement. The map is
// copied; the caller keeps ownership of its copy.
func NewFromPlacement(placement map[Square]Piece, active Side, rights CastlingRights) *Board {
	b := &Board{
		placement:     make(map[Square]Piece, len(placement)),
		moved:         make(map[Square]bool),
		doubleStepped: make(map[Square]bool),
		moveStamp:     make(map[Square]int),
		rights:        rights,
		active:        active,
	}
	for sq, pc := range placement {
		if sq.IsValid() && pc != NoPiece {
			b.placement[sq] = pc
		}
	}
	return b
}

func standardPlacement() map[Square]Piece {
	placement := make(map[Square]Piece, 32)

	back := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, kind := range back {
		placement[NewSquare(file, 0)] = NewPiece(kind, White)
		placement[NewSquare(file, 7)] = NewPiece(kind, Black)
	}
	for file := 0; file < 8; file++ {
		placement[NewSquare(file, 1)] = NewPiece(Pawn, White)
		placement[NewSquare(file, 6)] = NewPiece(Pawn, Black)
	}
	return placement
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (b *Board) PieceAt(sq Square) Piece {
	pc, ok := b.placement[sq]
	if !ok {
		return NoPiece
	}
	return pc
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	_, ok := b.placement[sq]
	return !ok
}

// HasMoved reports whether the occupant of sq has moved since game start.
func (b *Board) HasMoved(sq Square) bool {
	return b.moved[sq]
}

// DoubleStepped reports whether the pawn on sq just used its two-square
// initial advance. Eligibility expires one ply after it is set.
func (b *Board) DoubleStepped(sq Square) bool {
	return b.doubleStepped[sq]
}

// MoveStamp returns the total-move number at which the occupant of sq
// last moved, and whether it has moved at all.
func (b *Board) MoveStamp(sq Square) (int, bool) {
	stamp, ok := b.moveStamp[sq]
	return stamp, ok
}

// ActiveSide returns whose turn it is.
func (b *Board) ActiveSide() Side {
	return b.active
}

// TotalMoves returns the number of committed moves.
func (b *Board) TotalMoves() int {
	return b.totalMoves
}

// TurnCount returns the number of completed moves by the side.
func (b *Board) TurnCount(s Side) int {
	if s == White {
		return b.whiteTurns
	}
	return b.blackTurns
}

// Points returns the accumulated captured-material points of the side.
func (b *Board) Points(s Side) int {
	if s == White {
		return b.whitePoints
	}
	return b.blackPoints
}

// CanCastle reports whether the side still holds the given wing right.
func (b *Board) CanCastle(s Side, kingSide bool) bool {
	return b.rights.CanCastle(s, kingSide)
}

// Rights returns the remaining castling rights.
func (b *Board) Rights() CastlingRights {
	return b.rights
}

// History returns a copy of the committed move sequence.
func (b *Board) History() []MoveRecord {
	out := make([]MoveRecord, len(b.history))
	copy(out, b.history)
	return out
}

// Paused reports whether the game is paused (pending pawn promotion).
func (b *Board) Paused() bool {
	return b.paused
}

// Drawn reports whether the game has been flagged as drawn.
func (b *Board) Drawn() bool {
	return b.drawn
}

// SetDrawn flags the game as drawn. The flag is set by the outcome
// evaluator's caller and never cleared.
func (b *Board) SetDrawn() {
	b.drawn = true
}

// PiecesOf returns the side's pieces keyed by square.
func (b *Board) PiecesOf(s Side) map[Square]Piece {
	out := make(map[Square]Piece)
	for sq, pc := range b.placement {
		if pc.Side() == s {
			out[sq] = pc
		}
	}
	return out
}

// KingSquare returns the square of the side's king, if present.
func (b *Board) KingSquare(s Side) (Square, bool) {
	for sq, pc := range b.placement {
		if pc.Kind() == King && pc.Side() == s {
			return sq, true
		}
	}
	return NoSquare, false
}

// Clone returns a fully independent copy of the board. No mutable
// substructure is shared, so a discarded clone can never corrupt the
// original.
func (b *Board) Clone() *Board {
	cloned := *b

	cloned.placement = make(map[Square]Piece, len(b.placement))
	for sq, pc := range b.placement {
		cloned.placement[sq] = pc
	}
	cloned.moved = make(map[Square]bool, len(b.moved))
	for sq, v := range b.moved {
		cloned.moved[sq] = v
	}
	cloned.doubleStepped = make(map[Square]bool, len(b.doubleStepped))
	for sq, v := range b.doubleStepped {
		cloned.doubleStepped[sq] = v
	}
	cloned.moveStamp = make(map[Square]int, len(b.moveStamp))
	for sq, v := range b.moveStamp {
		cloned.moveStamp[sq] = v
	}
	cloned.history = make([]MoveRecord, len(b.history))
	copy(cloned.history, b.history)

	return &cloned
}

// Relocate moves whatever sits on from to to, overwriting any occupant.
// No rights, score or history bookkeeping happens; this exists solely for
// what-if analysis on a clone.
func (b *Board) Relocate(from, to Square) {
	pc, ok := b.placement[from]
	if !ok {
		return
	}
	delete(b.placement, from)
	b.placement[to] = pc
}

// Apply commits a move that the validator has already accepted. It
// performs the full bookkeeping: placement, capture scoring, moved and
// double-step state, castling-rights revocation, history, counters and
// the side flip. Promotion-kind moves additionally pause the game until
// Upgrade resolves the new piece.
func (b *Board) Apply(from, to Square, kind MoveKind) error {
	if !from.IsValid() || !to.IsValid() || from == to {
		return ErrInvalidSquare
	}
	if b.paused {
		return ErrGamePaused
	}
	if kind == MoveNotAllowed {
		return ErrMoveNotAllowed
	}

	piece, ok := b.placement[from]
	if !ok {
		return ErrEmptySquare
	}
	side := piece.Side()

	if kind == MoveCastling {
		b.applyCastling(piece, from, to)
	} else {
		b.applyRelocation(piece, from, to)
		if kind == MovePawnPromotion {
			b.paused = true
		}
	}

	// Double-step eligibility lasts exactly one opposing ply.
	for sq := range b.doubleStepped {
		if occupant, present := b.placement[sq]; !present || occupant.Side() != side {
			delete(b.doubleStepped, sq)
		}
	}

	b.history = append(b.history, MoveRecord{Side: side, From: from, To: to, Kind: kind})
	b.totalMoves++
	if side == White {
		b.whiteTurns++
	} else {
		b.blackTurns++
	}
	b.active = side.Other()

	return nil
}

// applyCastling relocates king and rook. The submitted destination is the
// rook's square; the landing squares come from the fixed wing table and
// do not depend on the rook's exact file.
func (b *Board) applyCastling(king Piece, from, to Square) {
	kingSide := to.File() > from.File()
	var kingTo, rookTo Square
	if kingSide {
		kingTo = NewSquare(6, from.Rank())
		rookTo = NewSquare(5, from.Rank())
	} else {
		kingTo = NewSquare(2, from.Rank())
		rookTo = NewSquare(3, from.Rank())
	}

	rook := b.placement[to]
	delete(b.placement, from)
	delete(b.placement, to)
	b.placement[kingTo] = king
	b.placement[rookTo] = rook

	b.markMoved(from, kingTo)
	b.markMoved(to, rookTo)
	b.revoke(king.Side(), true)
	b.revoke(king.Side(), false)
}

func (b *Board) applyRelocation(piece Piece, from, to Square) {
	side := piece.Side()
	firstMove := !b.moved[from]

	if target, occupied := b.placement[to]; occupied && target.Side() != side {
		b.addPoints(side, target.Points())
		b.forget(to)
	} else if piece.Kind() == Pawn && !occupied && from.File() != to.File() {
		// Diagonal pawn move onto an empty square: en passant. The
		// captured pawn sits beside the origin, on the destination file.
		victimSq := NewSquare(to.File(), from.Rank())
		if victim, present := b.placement[victimSq]; present && victim.Kind() == Pawn && victim.Side() != side {
			b.addPoints(side, victim.Points())
			delete(b.placement, victimSq)
			b.forget(victimSq)
		}
	}

	delete(b.placement, from)
	b.placement[to] = piece
	b.markMoved(from, to)

	switch piece.Kind() {
	case Pawn:
		if abs(from.RankDelta(to)) == 2 {
			b.doubleStepped[to] = true
		}
	case King:
		b.revoke(side, true)
		b.revoke(side, false)
	case Rook:
		// File-based wing attribution only holds while the rook still
		// stands where it started; later moves say nothing about the
		// other wing.
		if firstMove {
			b.revoke(side, from.File() >= 4)
		}
	}
}

func (b *Board) markMoved(from, to Square) {
	delete(b.moved, from)
	delete(b.doubleStepped, from)
	delete(b.moveStamp, from)
	b.moved[to] = true
	b.moveStamp[to] = b.totalMoves
}

// forget drops all per-square state of a captured piece.
func (b *Board) forget(sq Square) {
	delete(b.moved, sq)
	delete(b.doubleStepped, sq)
	delete(b.moveStamp, sq)
}

// revoke clears a castling right. Rights are monotonic: once revoked they
// are never re-granted.
func (b *Board) revoke(s Side, kingSide bool) {
	if s == White {
		if kingSide {
			b.rights &^= WhiteKingSideCastle
		} else {
			b.rights &^= WhiteQueenSideCastle
		}
		return
	}
	if kingSide {
		b.rights &^= BlackKingSideCastle
	} else {
		b.rights &^= BlackQueenSideCastle
	}
}

func (b *Board) addPoints(s Side, points int) {
	if s == White {
		b.whitePoints += points
	} else {
		b.blackPoints += points
	}
}

// Upgrade replaces a promotion-pending pawn with the chosen piece kind
// and unpauses the game. Only queen, rook, bishop and knight of the
// pawn's own side are accepted.
func (b *Board) Upgrade(sq Square, kind PieceKind, side Side) error {
	piece, ok := b.placement[sq]
	if !ok || piece.Kind() != Pawn || piece.Side() != side {
		return ErrNotPromotable
	}
	if sq.Rank() != PromotionRank(side) {
		return ErrNotPromotable
	}
	switch kind {
	case Queen, Rook, Bishop, Knight:
	default:
		return ErrBadPromotionKind
	}

	b.placement[sq] = NewPiece(kind, side)
	b.paused = false
	return nil
}

// String returns a diagnostic view of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			pc := b.PieceAt(NewSquare(file, rank))
			if pc == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(pc.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.active)
	fmt.Fprintf(&sb, "Castling: %s\n", b.rights)
	fmt.Fprintf(&sb, "Moves: %d (W %d / B %d)\n", b.totalMoves, b.whiteTurns, b.blackTurns)
	fmt.Fprintf(&sb, "Points: W %d / B %d\n", b.whitePoints, b.blackPoints)
	return sb.String()
}
