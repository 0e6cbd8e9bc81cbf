// Package game orchestrates game instances over the rules engine:
// creation, move submission, promotion and outcome tracking, with
// optional persistence through the storage layer.
package game

import (
	"sync"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/vasrot/jyardchess/internal/board"
	"github.com/vasrot/jyardchess/internal/rules"
	"github.com/vasrot/jyardchess/internal/storage"
)

var (
	ErrGameNotFound = pkgerrors.New("game not found")
	ErrGameEnded    = pkgerrors.New("game already ended")
	ErrWrongTurn    = pkgerrors.New("not this side's turn")
)

// MoveResult is the verdict of one move submission.
type MoveResult struct {
	Status rules.MoveStatus
	Kind   board.MoveKind
	End    rules.EndType
	// KingStatus describes the king of the side to move after the
	// committed move; KingOK for rejected moves.
	KingStatus rules.KingStatus
}

type entry struct {
	board *board.Board
	end   rules.EndType
}

// Service is the game registry. All mutation of a game's board funnels
// through it, one mutation at a time; legality queries themselves work
// on clones and never touch the live board.
type Service struct {
	mu        sync.Mutex
	validator *rules.Validator
	outcome   *rules.OutcomeEvaluator
	store     *storage.Store
	games     map[string]*entry
}

// NewService builds the engine stack (analyzer, then validator, then
// outcome evaluator) and an empty registry. A nil store keeps games in
// memory only.
func NewService(store *storage.Store) *Service {
	validator := rules.NewValidator(rules.NewAnalyzer())
	return &Service{
		validator: validator,
		outcome:   rules.NewOutcomeEvaluator(validator),
		store:     store,
		games:     make(map[string]*entry),
	}
}

// Validator exposes the underlying move validator.
func (s *Service) Validator() *rules.Validator {
	return s.validator
}

// Create starts a new game and returns its id. An empty layout selects
// the standard starting position; otherwise the layout is parsed and
// structurally validated first.
func (s *Service) Create(layout string) (string, error) {
	var b *board.Board
	if layout == "" {
		b = board.New()
	} else {
		var err error
		b, err = board.ParseLayout(layout)
		if err != nil {
			return "", err
		}
	}

	id := uuid.NewString()
	e := &entry{board: b, end: s.outcome.Evaluate(b)}
	if e.end.Draw() {
		b.SetDrawn()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[id] = e
	if err := s.persist(id, e); err != nil {
		delete(s.games, id)
		return "", err
	}
	return id, nil
}

// Board returns an independent copy of the game's board.
func (s *Service) Board(id string) (*board.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return e.board.Clone(), nil
}

// Move validates and, if legal, commits a move. Rejections come back as
// a MoveResult with an invalid status and a nil error; errors are
// reserved for game-level failures (unknown id, finished or paused game,
// wrong side to move, persistence).
func (s *Service) Move(id string, from, to board.Square) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.load(id)
	if err != nil {
		return MoveResult{}, err
	}
	b := e.board

	if e.end.Terminal() {
		return MoveResult{End: e.end}, ErrGameEnded
	}
	if b.Paused() {
		return MoveResult{}, board.ErrGamePaused
	}

	piece := b.PieceAt(from)
	if piece != board.NoPiece && piece.Side() != b.ActiveSide() {
		return MoveResult{}, ErrWrongTurn
	}

	status := s.validator.MoveStatusOf(from, to, b)
	result := MoveResult{Status: status, Kind: board.MoveNotAllowed}
	if !status.IsValid() {
		return result, nil
	}

	kind := s.validator.MoveKindOf(from, to, b)
	if kind == board.MoveNotAllowed {
		result.Status = rules.InvalidMove
		return result, nil
	}

	if err := b.Apply(from, to, kind); err != nil {
		return result, err
	}
	result.Kind = kind

	e.end = s.outcome.Evaluate(b)
	if e.end.Draw() {
		b.SetDrawn()
	}
	result.End = e.end
	result.KingStatus = s.validator.KingStatus(b.ActiveSide(), b)

	if err := s.persist(id, e); err != nil {
		return result, err
	}
	return result, nil
}

// LegalMoves enumerates the legal destinations for the piece on from.
func (s *Service) LegalMoves(id string, from board.Square) ([]board.Square, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.load(id)
	if err != nil {
		return nil, err
	}

	piece := e.board.PieceAt(from)
	if piece == board.NoPiece {
		return nil, nil
	}
	return s.validator.LegalMovesFrom(from, piece.Side(), e.board), nil
}

// Promote resolves a promotion-pending pawn into the chosen kind and
// re-evaluates the outcome (a promotion can mate on the spot).
func (s *Service) Promote(id string, sq board.Square, kind board.PieceKind) (rules.EndType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.load(id)
	if err != nil {
		return rules.NoEnd, err
	}
	b := e.board

	side := b.PieceAt(sq).Side()
	if err := b.Upgrade(sq, kind, side); err != nil {
		return e.end, err
	}

	e.end = s.outcome.Evaluate(b)
	if e.end.Draw() {
		b.SetDrawn()
	}
	if err := s.persist(id, e); err != nil {
		return e.end, err
	}
	return e.end, nil
}

// Outcome returns the current terminal classification of the game.
func (s *Service) Outcome(id string) (rules.EndType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.load(id)
	if err != nil {
		return rules.NoEnd, err
	}
	return e.end, nil
}

// Delete removes the game from the registry and the store.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.games, id)
	if s.store != nil {
		return s.store.DeleteGame(id)
	}
	return nil
}

// List returns the known game ids.
func (s *Service) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		return s.store.ListGames()
	}
	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	return ids, nil
}

// load fetches a game from memory, falling back to the store.
func (s *Service) load(id string) (*entry, error) {
	if e, ok := s.games[id]; ok {
		return e, nil
	}
	if s.store == nil {
		return nil, ErrGameNotFound
	}

	snapshot, err := s.store.LoadGame(id)
	if err != nil {
		if pkgerrors.Is(err, storage.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	b, err := board.FromSnapshot(snapshot)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "restore game %s", id)
	}

	e := &entry{board: b, end: s.outcome.Evaluate(b)}
	s.games[id] = e
	return e, nil
}

func (s *Service) persist(id string, e *entry) error {
	if s.store == nil {
		return nil
	}
	return pkgerrors.Wrapf(s.store.SaveGame(id, e.board.Snapshot()), "persist game %s", id)
}
