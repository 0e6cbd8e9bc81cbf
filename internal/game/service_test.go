package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vasrot/jyardchess/internal/board"
	"github.com/vasrot/jyardchess/internal/rules"
	"github.com/vasrot/jyardchess/internal/storage"
)

func TestCreateAndMove(t *testing.T) {
	svc := NewService(nil)

	id, err := svc.Create("")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	result, err := svc.Move(id, board.E2, board.E4)
	require.NoError(t, err)
	require.Equal(t, rules.ValidMove, result.Status)
	require.Equal(t, board.MoveNormal, result.Kind)
	require.Equal(t, rules.NoEnd, result.End)
	require.Equal(t, rules.KingOK, result.KingStatus)

	b, err := svc.Board(id)
	require.NoError(t, err)
	require.Equal(t, board.WhitePawn, b.PieceAt(board.E4))
	require.Equal(t, board.Black, b.ActiveSide())
}

func TestMoveRejections(t *testing.T) {
	svc := NewService(nil)
	id, err := svc.Create("")
	require.NoError(t, err)

	// White again out of turn.
	_, err = svc.Move(id, board.E2, board.E4)
	require.NoError(t, err)
	_, err = svc.Move(id, board.D2, board.D4)
	require.ErrorIs(t, err, ErrWrongTurn)

	// Illegal shape: a verdict, not an error.
	result, err := svc.Move(id, board.E7, board.E4)
	require.NoError(t, err)
	require.False(t, result.Status.IsValid())

	// The rejected move must not have touched the board.
	b, err := svc.Board(id)
	require.NoError(t, err)
	require.Equal(t, 1, b.TotalMoves())

	_, err = svc.Move("no-such-game", board.E2, board.E4)
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestCustomLayout(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.Create("not a layout")
	require.Error(t, err)

	id, err := svc.Create("4k3/8/8/8/8/8/8/4K2R w K")
	require.NoError(t, err)

	moves, err := svc.LegalMoves(id, board.E1)
	require.NoError(t, err)
	require.Contains(t, moves, board.H1, "king-side castling should be on offer")
}

func TestLegalMoves(t *testing.T) {
	svc := NewService(nil)
	id, err := svc.Create("")
	require.NoError(t, err)

	moves, err := svc.LegalMoves(id, board.E2)
	require.NoError(t, err)
	require.Equal(t, []board.Square{board.E3, board.E4}, moves)

	empty, err := svc.LegalMoves(id, board.E4)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestCheckmateEndsGame(t *testing.T) {
	svc := NewService(nil)
	id, err := svc.Create("")
	require.NoError(t, err)

	moves := []struct{ from, to board.Square }{
		{board.F2, board.F3},
		{board.E7, board.E5},
		{board.G2, board.G4},
		{board.D8, board.H4},
	}
	var last MoveResult
	for _, m := range moves {
		last, err = svc.Move(id, m.from, m.to)
		require.NoError(t, err)
		require.True(t, last.Status.IsValid())
	}

	require.Equal(t, rules.WhiteCheckmate, last.End)
	require.Equal(t, rules.KingCheckmate, last.KingStatus)

	end, err := svc.Outcome(id)
	require.NoError(t, err)
	require.Equal(t, rules.WhiteCheckmate, end)

	_, err = svc.Move(id, board.A2, board.A3)
	require.ErrorIs(t, err, ErrGameEnded)
}

func TestPromotionFlow(t *testing.T) {
	svc := NewService(nil)
	id, err := svc.Create("k7/4P3/8/8/8/8/8/K7 w -")
	require.NoError(t, err)

	result, err := svc.Move(id, board.E7, board.E8)
	require.NoError(t, err)
	require.Equal(t, board.MovePawnPromotion, result.Kind)

	// The game is paused until the pawn resolves.
	_, err = svc.Move(id, board.A8, board.A7)
	require.ErrorIs(t, err, board.ErrGamePaused)

	_, err = svc.Promote(id, board.E8, board.King)
	require.ErrorIs(t, err, board.ErrBadPromotionKind)

	_, err = svc.Promote(id, board.E8, board.Queen)
	require.NoError(t, err)

	b, err := svc.Board(id)
	require.NoError(t, err)
	require.Equal(t, board.WhiteQueen, b.PieceAt(board.E8))
	require.False(t, b.Paused())
}

func TestDrawFlagsBoard(t *testing.T) {
	svc := NewService(nil)

	// Two lone kings draw immediately on creation.
	id, err := svc.Create("4k3/8/8/8/8/8/8/4K3 w -")
	require.NoError(t, err)

	end, err := svc.Outcome(id)
	require.NoError(t, err)
	require.Equal(t, rules.MaterialDraw, end)

	b, err := svc.Board(id)
	require.NoError(t, err)
	require.True(t, b.Drawn())

	_, err = svc.Move(id, board.E1, board.E2)
	require.ErrorIs(t, err, ErrGameEnded)
}

func TestDeleteAndList(t *testing.T) {
	svc := NewService(nil)
	id, err := svc.Create("")
	require.NoError(t, err)

	ids, err := svc.List()
	require.NoError(t, err)
	require.Contains(t, ids, id)

	require.NoError(t, svc.Delete(id))
	_, err = svc.Board(id)
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestPersistenceAcrossServices(t *testing.T) {
	dir := t.TempDir()

	store, err := storage.Open(dir)
	require.NoError(t, err)
	svc := NewService(store)

	id, err := svc.Create("")
	require.NoError(t, err)
	_, err = svc.Move(id, board.E2, board.E4)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// A fresh service over the same database picks the game back up.
	reopened, err := storage.Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	resumed := NewService(reopened)
	b, err := resumed.Board(id)
	require.NoError(t, err)
	require.Equal(t, board.WhitePawn, b.PieceAt(board.E4))
	require.Equal(t, board.Black, b.ActiveSide())

	result, err := resumed.Move(id, board.E7, board.E5)
	require.NoError(t, err)
	require.Equal(t, rules.ValidMove, result.Status)
}
