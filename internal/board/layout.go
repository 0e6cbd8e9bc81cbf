package board

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// StartLayout is the notation string for the standard starting layout.
const StartLayout = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq"

// ParseLayout parses a FEN-style layout string into a Board. The first
// field is the piece placement, the optional second field the side to
// move ("w"/"b", white by default) and the optional third field the
// castling rights ("KQkq", all by default). Trailing FEN fields (en
// passant target, clocks) are tolerated and ignored; the board starts a
// fresh game from the parsed position.
func ParseLayout(layout string) (*Board, error) {
	parts := strings.Fields(layout)
	if len(parts) == 0 {
		return nil, errors.New("empty layout")
	}

	placement, err := parsePlacement(parts[0])
	if err != nil {
		return nil, errors.Wrap(err, "parse layout placement")
	}

	active := White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			active = White
		case "b":
			active = Black
		default:
			return nil, errors.Errorf("invalid side to move: %s", parts[1])
		}
	}

	rights := AllCastling
	if len(parts) > 2 {
		rights, err = ParseCastlingRights(parts[2])
		if err != nil {
			return nil, errors.Wrap(err, "parse layout castling")
		}
	}

	b := NewFromPlacement(placement, active, rights)
	if err := b.ValidateStructure(); err != nil {
		return nil, err
	}
	return b, nil
}

func parsePlacement(placement string) (map[Square]Piece, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid placement: need 8 ranks, got %d", len(ranks))
	}

	out := make(map[Square]Piece, 32)
	for i, rankStr := range ranks {
		rank := 7 - i // notation starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return nil, fmt.Errorf("too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
			} else {
				piece := PieceFromChar(byte(c))
				if piece == NoPiece {
					return nil, fmt.Errorf("invalid piece character: %c", c)
				}
				out[NewSquare(file, rank)] = piece
				file++
			}
		}

		if file != 8 {
			return nil, fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return out, nil
}

// ValidateStructure checks the structural board invariants a custom
// layout must satisfy. All violations are reported together rather than
// stopping at the first one.
func (b *Board) ValidateStructure() error {
	var result *multierror.Error

	for s := White; s <= Black; s++ {
		kings := 0
		for _, pc := range b.placement {
			if pc.Kind() == King && pc.Side() == s {
				kings++
			}
		}
		if kings > 1 {
			result = multierror.Append(result, fmt.Errorf("%s has %d kings, at most one allowed", s, kings))
		}
	}

	for sq, pc := range b.placement {
		// A paused game holds its promotion-pending pawn on the terminal
		// rank until Upgrade resolves it.
		if pc.Kind() == Pawn && (sq.Rank() == 0 || sq.Rank() == 7) && !b.paused {
			result = multierror.Append(result, fmt.Errorf("pawn on terminal rank at %s", sq))
		}
		if pc.Kind() == NoPieceKind {
			result = multierror.Append(result, fmt.Errorf("unrecognized piece at %s", sq))
		}
	}

	return result.ErrorOrNil()
}
