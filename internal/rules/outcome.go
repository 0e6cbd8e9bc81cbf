package rules

import "github.com/vasrot/jyardchess/internal/board"

// EndType classifies the terminal state of a game, if any.
type EndType uint8

const (
	NoEnd EndType = iota
	WhiteCheckmate
	BlackCheckmate
	Stalemate
	RepetitiveMoves
	MaterialDraw
)

// String returns the end type name.
func (e EndType) String() string {
	switch e {
	case WhiteCheckmate:
		return "WhiteCheckmate"
	case BlackCheckmate:
		return "BlackCheckmate"
	case Stalemate:
		return "Stalemate"
	case RepetitiveMoves:
		return "RepetitiveMoves"
	case MaterialDraw:
		return "MaterialDraw"
	default:
		return "NoEnd"
	}
}

// Cause returns a human-readable explanation.
func (e EndType) Cause() string {
	switch e {
	case WhiteCheckmate:
		return "White king under checkmate"
	case BlackCheckmate:
		return "Black king under checkmate"
	case Stalemate:
		return "King under stalemate"
	case RepetitiveMoves:
		return "Same movements 3 times"
	case MaterialDraw:
		return "Not enough material for checkmate"
	default:
		return "Game is not ended yet"
	}
}

// Terminal reports whether the game is over.
func (e EndType) Terminal() bool {
	return e != NoEnd
}

// Draw reports whether the end type is one of the draw outcomes.
func (e EndType) Draw() bool {
	return e == Stalemate || e == RepetitiveMoves || e == MaterialDraw
}

// OutcomeEvaluator classifies the terminal status of a board after every
// committed move.
type OutcomeEvaluator struct {
	validator *Validator
}

// NewOutcomeEvaluator builds the evaluator on top of a validator.
func NewOutcomeEvaluator(v *Validator) *OutcomeEvaluator {
	return &OutcomeEvaluator{validator: v}
}

// Evaluate classifies the board. The checks run in fixed priority order
// and the first match wins: checkmate, repetitive moves, stalemate (both
// sides without a legal move), material draw.
func (e *OutcomeEvaluator) Evaluate(b *board.Board) EndType {
	if b == nil {
		return NoEnd
	}

	if e.validator.KingStatus(board.White, b) == KingCheckmate {
		return WhiteCheckmate
	}
	if e.validator.KingStatus(board.Black, b) == KingCheckmate {
		return BlackCheckmate
	}

	if repetitiveMoves(b.History()) {
		return RepetitiveMoves
	}

	if e.interblocked(b) {
		return Stalemate
	}

	if materialDraw(b) {
		return MaterialDraw
	}

	return NoEnd
}

// repetitiveMoves applies the fixed-window shuffle heuristic: once more
// than 11 moves are recorded, the last 10 completed moves (excluding the
// very latest) must match pairwise at offset 4 over the first half of
// the window. This is deliberately not a true position-repetition check;
// the window and offset are part of the documented behavior.
func repetitiveMoves(history []board.MoveRecord) bool {
	if len(history) <= 11 {
		return false
	}

	window := history[len(history)-11 : len(history)-1]
	for i := 0; i < len(window)/2; i++ {
		if !window[i].Equal(window[i+4]) {
			return false
		}
	}
	return true
}

// interblocked reports whether neither side has a single legal move left
// anywhere on the board.
func (e *OutcomeEvaluator) interblocked(b *board.Board) bool {
	for s := board.White; s <= board.Black; s++ {
		for sq := board.A1; sq <= board.H8; sq++ {
			if b.PieceAt(sq).Side() != s {
				continue
			}
			if len(e.validator.LegalMovesFrom(sq, s, b)) > 0 {
				return false
			}
		}
	}
	return true
}

// materialDraw detects the positions from which checkmate can no longer
// be forced: king+bishop against king+bishop with both bishops on the
// same square color, a lone king against king+knight or king+bishop, or
// two lone kings.
func materialDraw(b *board.Board) bool {
	white := b.PiecesOf(board.White)
	black := b.PiecesOf(board.Black)

	switch {
	case len(white) == 2 && len(black) == 2:
		return sameColorBishopEnding(white, black)
	case len(white) == 1 && len(black) == 2:
		return hasMinor(black)
	case len(white) == 2 && len(black) == 1:
		return hasMinor(white)
	case len(white) == 1 && len(black) == 1:
		return true
	default:
		return false
	}
}

func hasMinor(pieces map[board.Square]board.Piece) bool {
	for _, pc := range pieces {
		if pc.Kind() == board.Knight || pc.Kind() == board.Bishop {
			return true
		}
	}
	return false
}

func sameColorBishopEnding(white, black map[board.Square]board.Piece) bool {
	whiteBishop, ok := findKind(white, board.Bishop)
	if !ok {
		return false
	}
	blackBishop, ok := findKind(black, board.Bishop)
	if !ok {
		return false
	}
	if _, ok := findKind(white, board.King); !ok {
		return false
	}
	if _, ok := findKind(black, board.King); !ok {
		return false
	}
	return whiteBishop.IsLight() == blackBishop.IsLight()
}

func findKind(pieces map[board.Square]board.Piece, kind board.PieceKind) (board.Square, bool) {
	for sq, pc := range pieces {
		if pc.Kind() == kind {
			return sq, true
		}
	}
	return board.NoSquare, false
}
