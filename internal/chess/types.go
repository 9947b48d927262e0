// Package chess provides the core chess value types: colours, pieces,
// squares, boards and castling rights.
package chess

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns the rank step a pawn of this colour advances by.
// White moves toward rank index 0, Black toward rank index 7.
func (c Colour) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// HomeRank returns the rank index of the colour's back rank.
func (c Colour) HomeRank() int {
	if c == White {
		return BoardSize - 1
	}
	return 0
}

// PawnRank returns the rank index pawns of this colour start on.
func (c Colour) PawnRank() int {
	return c.HomeRank() + c.Forward()
}

// PromotionRank returns the rank index on which pawns of this colour promote.
func (c Colour) PromotionRank() int {
	return c.Opposite().HomeRank()
}

// PieceType represents a chess piece type.
type PieceType int

const (
	NoType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single upper case letter for a piece type.
func (p PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// IsPromotionChoice reports whether a pawn may promote to this type.
func (p PieceType) IsPromotionChoice() bool {
	switch p {
	case Queen, Rook, Bishop, Knight:
		return true
	default:
		return false
	}
}

// Piece is a coloured piece. The zero value is NoPiece, an empty square.
type Piece struct {
	Type   PieceType
	Colour Colour
}

// NoPiece marks an empty square.
var NoPiece = Piece{}

// W creates a white piece.
func W(t PieceType) Piece {
	return Piece{Type: t, Colour: White}
}

// B creates a black piece.
func B(t PieceType) Piece {
	return Piece{Type: t, Colour: Black}
}

// IsEmpty returns true if the piece represents an empty square.
func (p Piece) IsEmpty() bool {
	return p.Type == NoType
}

// String returns a readable name such as "White Knight".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Type.String()
}

// BoardSize is the number of files and ranks.
const BoardSize = 8

// Square is a board coordinate. File 0 is the a-file. Rank 0 is the
// black back rank (algebraic rank 8) and rank 7 the white back rank.
type Square struct {
	File int
	Rank int
}

// Sq is shorthand for Square{File: file, Rank: rank}.
func Sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// Valid returns true if the square lies on the board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < BoardSize && s.Rank >= 0 && s.Rank < BoardSize
}

// Offset returns the square shifted by df files and dr ranks. The
// result may be off the board.
func (s Square) Offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

// Index returns the 0..63 index of a valid square.
func (s Square) Index() int {
	return s.Rank*BoardSize + s.File
}

// SquareFromIndex is the inverse of Index.
func SquareFromIndex(i int) Square {
	return Square{File: i % BoardSize, Rank: i / BoardSize}
}

// String returns the algebraic coordinate, e.g. "e2".
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return string([]byte{byte('a' + s.File), byte('8' - s.Rank)})
}

// ParseSquare converts an algebraic coordinate such as "e2" to a Square.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, fmt.Errorf("%q: %w", text, errors.ErrInvalidSquare)
	}
	sq := Square{File: int(text[0]) - 'a', Rank: '8' - int(text[1])}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("%q: %w", text, errors.ErrInvalidSquare)
	}
	return sq, nil
}

// MustParseSquare is like ParseSquare but panics on malformed input.
// It is intended for constants and tests.
func MustParseSquare(text string) Square {
	sq, err := ParseSquare(text)
	if err != nil {
		panic(err)
	}
	return sq
}

// MarshalText encodes the square as its algebraic coordinate.
func (s Square) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("square %v: %w", s, errors.ErrInvalidSquare)
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes an algebraic coordinate.
func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}

// CastlingRights holds the four independent castling flags.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// AllCastlingRights is the set of rights at the start of a game.
var AllCastlingRights = CastlingRights{true, true, true, true}

// String returns the rights as the FEN castling field, e.g. "KQkq" or "-".
func (c CastlingRights) String() string {
	field := make([]byte, 0, 4)
	for _, f := range []struct {
		set    bool
		letter byte
	}{
		{c.WhiteKingside, 'K'},
		{c.WhiteQueenside, 'Q'},
		{c.BlackKingside, 'k'},
		{c.BlackQueenside, 'q'},
	} {
		if f.set {
			field = append(field, f.letter)
		}
	}
	if len(field) == 0 {
		return "-"
	}
	return string(field)
}

// Has returns the flag for a colour and wing.
func (c CastlingRights) Has(colour Colour, kingside bool) bool {
	switch {
	case colour == White && kingside:
		return c.WhiteKingside
	case colour == White:
		return c.WhiteQueenside
	case kingside:
		return c.BlackKingside
	default:
		return c.BlackQueenside
	}
}

// Revoke clears the flag for a colour and wing.
func (c *CastlingRights) Revoke(colour Colour, kingside bool) {
	switch {
	case colour == White && kingside:
		c.WhiteKingside = false
	case colour == White:
		c.WhiteQueenside = false
	case kingside:
		c.BlackKingside = false
	default:
		c.BlackQueenside = false
	}
}

// RevokeAll clears both flags for a colour.
func (c *CastlingRights) RevokeAll(colour Colour) {
	c.Revoke(colour, true)
	c.Revoke(colour, false)
}
