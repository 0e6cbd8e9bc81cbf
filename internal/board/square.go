// Package board implements the chess data model: squares, pieces and the
// game board snapshot the rules engine evaluates.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '1')

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// FileDelta returns the signed file distance from sq to other.
func (sq Square) FileDelta(other Square) int {
	return other.File() - sq.File()
}

// RankDelta returns the signed rank distance from sq to other.
func (sq Square) RankDelta(other Square) int {
	return other.Rank() - sq.Rank()
}

// SameFile reports whether both squares share a file.
func (sq Square) SameFile(other Square) bool {
	return sq.File() == other.File()
}

// SameRank reports whether both squares share a rank.
func (sq Square) SameRank(other Square) bool {
	return sq.Rank() == other.Rank()
}

// SameDiagonal reports whether both squares lie on a common diagonal.
func (sq Square) SameDiagonal(other Square) bool {
	if sq == other {
		return false
	}
	return abs(sq.FileDelta(other)) == abs(sq.RankDelta(other))
}

// Orthogonal reports whether the squares share a rank or a file but are
// not the same square.
func (sq Square) Orthogonal(other Square) bool {
	if sq == other {
		return false
	}
	return sq.SameFile(other) || sq.SameRank(other)
}

// Distance returns the Chebyshev distance between the squares.
func (sq Square) Distance(other Square) int {
	df := abs(sq.FileDelta(other))
	dr := abs(sq.RankDelta(other))
	if df > dr {
		return df
	}
	return dr
}

// Between returns the squares strictly between from and to when they lie
// on a shared rank, file or diagonal, in from→to order. It returns nil
// for any other pair, including equal squares and knight-shaped offsets.
func Between(from, to Square) []Square {
	if !from.IsValid() || !to.IsValid() || from == to {
		return nil
	}
	if !from.Orthogonal(to) && !from.SameDiagonal(to) {
		return nil
	}

	df := sign(from.FileDelta(to))
	dr := sign(from.RankDelta(to))

	var squares []Square
	file, rank := from.File()+df, from.Rank()+dr
	for file != to.File() || rank != to.Rank() {
		squares = append(squares, NewSquare(file, rank))
		file += df
		rank += dr
	}
	return squares
}

// IsLight reports whether the square belongs to the light half of the
// fixed 32/32 board partition used by the same-colored-bishops draw rule.
func (sq Square) IsLight() bool {
	return (sq.File()+sq.Rank())%2 == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
