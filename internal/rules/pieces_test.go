package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vasrot/jyardchess/internal/board"
)

func mustLayout(t *testing.T, layout string) *board.Board {
	t.Helper()
	b, err := board.ParseLayout(layout)
	require.NoError(t, err)
	return b
}

func mustApply(t *testing.T, b *board.Board, from, to board.Square) {
	t.Helper()
	require.NoError(t, b.Apply(from, to, board.MoveNormal))
}

func shapeStatus(t *testing.T, b *board.Board, from, to board.Square) MoveStatus {
	t.Helper()
	piece := b.PieceAt(from)
	require.NotEqual(t, board.NoPiece, piece, "origin %v must be occupied", from)
	c := constraintFor(piece, NewAnalyzer())
	return c.MoveStatus(from, to, c.MoveKind(from, to, b), b)
}

func TestPawnAdvance(t *testing.T) {
	b := board.New()

	require.Equal(t, ValidMove, shapeStatus(t, b, board.E2, board.E3))
	require.Equal(t, ValidMove, shapeStatus(t, b, board.E2, board.E4))
	require.Equal(t, InvalidMove, shapeStatus(t, b, board.E2, board.E5))
	require.Equal(t, InvalidMove, shapeStatus(t, b, board.E2, board.D3), "diagonal onto empty is no move")
	require.Equal(t, InvalidMove, shapeStatus(t, b, board.E2, board.E1), "pawns never move backwards")

	require.Equal(t, ValidMove, shapeStatus(t, b, board.E7, board.E5), "black advances down the board")
	require.Equal(t, InvalidMove, shapeStatus(t, b, board.E7, board.E8))
}

func TestPawnDoubleStepRestrictions(t *testing.T) {
	b := board.New()
	mustApply(t, b, board.E2, board.E3)
	mustApply(t, b, board.A7, board.A6)
	mustApply(t, b, board.E3, board.E4)

	// The pawn sits on e4 now; a two-square jump is gone for good.
	require.Equal(t, InvalidMove, shapeStatus(t, b, board.E4, board.E6))

	// A blocked path kills the jump even from the start rank.
	blocked := mustLayout(t, "4k3/8/8/8/8/4n3/4P3/4K3 w")
	require.Equal(t, InvalidMove, shapeStatus(t, blocked, board.E2, board.E4))
}

func TestPawnCapture(t *testing.T) {
	b := mustLayout(t, "4k3/8/8/3p4/4P3/8/8/4K3 w")

	require.Equal(t, ValidAttack, shapeStatus(t, b, board.E4, board.D5))
	require.Equal(t, InvalidMove, shapeStatus(t, b, board.E4, board.F5), "empty diagonal, no en passant")

	// Straight advance never captures.
	head := mustLayout(t, "4k3/8/8/4p3/4P3/8/8/4K3 w")
	require.Equal(t, InvalidAttack, shapeStatus(t, head, board.E4, board.E5))

	// Friendly piece on the diagonal is the protect verdict.
	friendly := mustLayout(t, "4k3/8/8/3N4/4P3/8/8/4K3 w")
	require.Equal(t, CanProtectFriendly, shapeStatus(t, friendly, board.E4, board.D5))
}

func TestPawnEnPassantWindow(t *testing.T) {
	b := board.New()
	mustApply(t, b, board.E2, board.E4)
	mustApply(t, b, board.A7, board.A6)
	mustApply(t, b, board.E4, board.E5)
	mustApply(t, b, board.D7, board.D5)

	// The double step just happened; the diagonal onto d6 is a capture.
	require.Equal(t, ValidAttack, shapeStatus(t, b, board.E5, board.D6))

	// One white ply later the window has closed.
	mustApply(t, b, board.A2, board.A3)
	require.Equal(t, InvalidMove, shapeStatus(t, b, board.E5, board.D6))
}

func TestPawnPromotionKind(t *testing.T) {
	b := mustLayout(t, "k7/4P3/8/8/8/8/8/K7 w")
	kind := constraintFor(b.PieceAt(board.E7), NewAnalyzer()).MoveKind(board.E7, board.E8, b)
	require.Equal(t, board.MovePawnPromotion, kind)

	plain := constraintFor(b.PieceAt(board.E7), NewAnalyzer()).MoveKind(board.E7, board.E6, b)
	require.Equal(t, board.MoveNormal, plain)
}

func TestKnightShape(t *testing.T) {
	b := board.New()

	require.Equal(t, ValidMove, shapeStatus(t, b, board.B1, board.C3))
	require.Equal(t, ValidMove, shapeStatus(t, b, board.B1, board.A3))
	require.Equal(t, InvalidMove, shapeStatus(t, b, board.B1, board.B3))
	require.Equal(t, CanProtectFriendly, shapeStatus(t, b, board.B1, board.D2))
}

func TestSlidingPiecesBlocked(t *testing.T) {
	b := board.New()

	// Everything slides into its own pawn wall at game start.
	require.Equal(t, InvalidMove, shapeStatus(t, b, board.C1, board.E3), "bishop through pawn")
	require.Equal(t, InvalidMove, shapeStatus(t, b, board.A1, board.A4), "rook through pawn")
	require.Equal(t, InvalidMove, shapeStatus(t, b, board.D1, board.D4), "queen through pawn")

	open := mustLayout(t, "4k3/8/8/8/7b/8/8/R3K3 w")
	require.Equal(t, ValidMove, shapeStatus(t, open, board.A1, board.A8))
	require.Equal(t, ValidAttack, shapeStatus(t, open, board.H4, board.E1), "bishop takes on the open diagonal")
	require.Equal(t, InvalidMove, shapeStatus(t, open, board.A1, board.B3), "rook has no knight shape")
}

func TestKingStep(t *testing.T) {
	b := mustLayout(t, "4k3/8/8/3q4/4K3/8/8/8 w -")

	require.Equal(t, ValidAttack, shapeStatus(t, b, board.E4, board.D5))
	require.Equal(t, ValidMove, shapeStatus(t, b, board.E4, board.E3))
	require.Equal(t, InvalidMove, shapeStatus(t, b, board.E4, board.E6), "two squares is not a king step")
}

func TestKingStatusTrustsResolvedKind(t *testing.T) {
	b := mustLayout(t, "4k3/8/8/8/8/8/8/4K2R w K")
	c := constraintFor(b.PieceAt(board.E1), NewAnalyzer())

	require.Equal(t, board.MoveCastling, c.MoveKind(board.E1, board.H1, b))
	require.Equal(t, ValidMove, c.MoveStatus(board.E1, board.H1, board.MoveCastling, b))

	// The status never re-derives the kind: handed a normal kind, the
	// same candidate is just an overlong king move.
	require.Equal(t, InvalidAttack, c.MoveStatus(board.E1, board.H1, board.MoveNormal, b))
}

func TestKingAttackKingDiagnostic(t *testing.T) {
	b := mustLayout(t, "8/8/8/3k4/3K4/8/8/8 w -")
	require.Equal(t, KingAttackKing, shapeStatus(t, b, board.D4, board.D5))
	require.Equal(t, KingAttackKing, shapeStatus(t, b, board.D5, board.D4))
}
