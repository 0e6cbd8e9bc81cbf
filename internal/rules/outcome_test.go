package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vasrot/jyardchess/internal/board"
)

func newEvaluator() *OutcomeEvaluator {
	return NewOutcomeEvaluator(newValidator())
}

func TestEvaluateOngoingGame(t *testing.T) {
	e := newEvaluator()
	require.Equal(t, NoEnd, e.Evaluate(board.New()))
	require.Equal(t, NoEnd, e.Evaluate(nil))
}

func TestEvaluateCheckmate(t *testing.T) {
	v := newValidator()
	e := NewOutcomeEvaluator(v)

	// Fool's mate, played with full verdicts on the way in.
	b := board.New()
	moves := []struct{ from, to board.Square }{
		{board.F2, board.F3},
		{board.E7, board.E5},
		{board.G2, board.G4},
		{board.D8, board.H4},
	}
	for _, m := range moves {
		require.True(t, v.MoveStatusOf(m.from, m.to, b).IsValid(), "%v%v should be legal", m.from, m.to)
		require.Equal(t, NoEnd, e.Evaluate(b))
		require.NoError(t, b.Apply(m.from, m.to, v.MoveKindOf(m.from, m.to, b)))
	}

	require.Equal(t, WhiteCheckmate, e.Evaluate(b))
	require.Equal(t, KingCheckmate, v.KingStatus(board.White, b))
	require.True(t, WhiteCheckmate.Terminal())
	require.False(t, WhiteCheckmate.Draw())
}

func TestEvaluateRepetitiveMoves(t *testing.T) {
	e := newEvaluator()
	b := board.New()

	// Three full knight shuttles: twelve moves with period four.
	shuttle := []struct{ from, to board.Square }{
		{board.G1, board.F3},
		{board.G8, board.F6},
		{board.F3, board.G1},
		{board.F6, board.G8},
	}
	for cycle := 0; cycle < 3; cycle++ {
		for _, m := range shuttle {
			require.Equal(t, NoEnd, e.Evaluate(b), "eleven moves or fewer never trip the check")
			mustApply(t, b, m.from, m.to)
		}
	}

	require.Equal(t, RepetitiveMoves, e.Evaluate(b))
	require.True(t, RepetitiveMoves.Draw())
}

func TestRepetitiveMovesWindow(t *testing.T) {
	record := func(from, to board.Square) board.MoveRecord {
		return board.MoveRecord{Side: board.White, From: from, To: to, Kind: board.MoveNormal}
	}

	var cycle []board.MoveRecord
	for i := 0; i < 12; i++ {
		if i%2 == 0 {
			cycle = append(cycle, record(board.G1, board.F3))
		} else {
			cycle = append(cycle, record(board.F3, board.G1))
		}
	}

	// Period two divides the window offset, so the check fires...
	require.True(t, repetitiveMoves(cycle))

	// ...but only once the history exceeds eleven entries.
	require.False(t, repetitiveMoves(cycle[:11]))

	// A mismatch in the compared half of the window breaks the pattern.
	broken := append([]board.MoveRecord(nil), cycle...)
	broken[1] = record(board.A2, board.A3)
	require.False(t, repetitiveMoves(broken))

	// The second half of the window and the very latest move are never
	// compared; changing them leaves the verdict standing.
	tail := append([]board.MoveRecord(nil), cycle...)
	tail[10] = record(board.A2, board.A3)
	tail[11] = record(board.A3, board.A4)
	require.True(t, repetitiveMoves(tail))
}

func TestEvaluateStalemate(t *testing.T) {
	e := newEvaluator()

	// Locked pawns, no kings: neither side has a single legal move.
	require.Equal(t, Stalemate, e.Evaluate(mustLayout(t, "8/8/8/8/8/p7/P7/8 w -")))

	// One moveless side is not enough; the other still has moves.
	require.Equal(t, NoEnd, e.Evaluate(mustLayout(t, "k7/P7/K7/8/8/8/8/8 b -")))
}

func TestEvaluateMaterialDraw(t *testing.T) {
	e := newEvaluator()

	require.Equal(t, MaterialDraw, e.Evaluate(mustLayout(t, "4k3/8/8/8/8/8/8/4K3 w -")))
	require.Equal(t, MaterialDraw, e.Evaluate(mustLayout(t, "4k3/8/8/8/8/8/8/4KB2 w -")))
	require.Equal(t, MaterialDraw, e.Evaluate(mustLayout(t, "4k1n1/8/8/8/8/8/8/4K3 w -")))

	// King and rook can still force mate.
	require.Equal(t, NoEnd, e.Evaluate(mustLayout(t, "4k3/8/8/8/8/8/8/4K2R w -")))
}

func TestEvaluateBishopEndings(t *testing.T) {
	e := newEvaluator()

	// Both bishops on dark squares: dead draw.
	dark := mustLayout(t, "4k3/8/8/8/5b2/8/8/2B1K3 w -")
	require.Equal(t, MaterialDraw, e.Evaluate(dark))

	// Opposite colors: mating nets remain possible.
	mixed := mustLayout(t, "4k3/8/8/5b2/8/8/8/2B1K3 w -")
	require.Equal(t, NoEnd, e.Evaluate(mixed))

	// Two pieces each, but not the bishop pairing.
	knights := mustLayout(t, "4k1n1/8/8/8/8/8/8/4KN2 w -")
	require.Equal(t, NoEnd, e.Evaluate(knights))
}

func TestEndTypeCauses(t *testing.T) {
	require.Equal(t, "White king under checkmate", WhiteCheckmate.Cause())
	require.Equal(t, "Same movements 3 times", RepetitiveMoves.Cause())
	require.Equal(t, "Not enough material for checkmate", MaterialDraw.Cause())
	require.Equal(t, "Game is not ended yet", NoEnd.Cause())
}
