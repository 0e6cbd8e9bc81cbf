package board

// Side represents the color of a piece or player.
type Side uint8

const (
	White Side = iota
	Black
	NoSide Side = 2
)

// Other returns the opposite side.
func (s Side) Other() Side {
	return s ^ 1
}

// String returns the side name.
func (s Side) String() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoSide"
	}
}

// PieceKind represents the type of a chess piece.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceKind PieceKind = 6
)

// String returns the piece kind name.
func (pk PieceKind) String() string {
	switch pk {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// PointValue holds the capture value of each piece kind, in points.
// Kings are never captured and carry no value.
var PointValue = [7]int{1, 3, 3, 5, 9, 0, 0}

// Piece combines PieceKind and Side into a single value.
// Encoded as: pieceKind + side*6
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	NoPiece     Piece = 12
)

// NewPiece creates a Piece from PieceKind and Side.
func NewPiece(pk PieceKind, s Side) Piece {
	if pk >= NoPieceKind || s >= NoSide {
		return NoPiece
	}
	return Piece(pk) + Piece(s)*6
}

// Kind returns the PieceKind of the piece.
func (p Piece) Kind() PieceKind {
	if p >= NoPiece {
		return NoPieceKind
	}
	return PieceKind(p % 6)
}

// Side returns the Side of the piece.
func (p Piece) Side() Side {
	if p >= NoPiece {
		return NoSide
	}
	return Side(p / 6)
}

// String returns the notation character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	chars := "PNBRQKpnbrqk"
	return string(chars[p])
}

// PieceFromChar converts a notation character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// Points returns the capture value of the piece.
func (p Piece) Points() int {
	return PointValue[p.Kind()]
}

// SameSide reports whether both pieces exist and belong to the same side.
func SameSide(a, b Piece) bool {
	return a != NoPiece && b != NoPiece && a.Side() == b.Side()
}
