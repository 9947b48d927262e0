package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ConvertFENCharToPiece converts a FEN character to a piece type.
func ConvertFENCharToPiece(c byte) chess.PieceType {
	switch c {
	case 'K', 'k':
		return chess.King
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'N', 'n':
		return chess.Knight
	case 'B', 'b':
		return chess.Bishop
	case 'P', 'p':
		return chess.Pawn
	default:
		return chess.NoType
	}
}

// PieceToFENChar returns the FEN letter for a piece: upper case for
// White, lower case for Black.
func PieceToFENChar(p chess.Piece) byte {
	letter := p.Type.Letter()
	if p.Colour == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// NewGameFromFEN creates a game state from a FEN string. The halfmove
// clock and fullmove number are accepted but not tracked. The status is
// computed from the position.
func NewGameFromFEN(fen string) (GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return GameState{}, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	var state GameState
	if err := parsePiecePositions(&state.Board, parts[0]); err != nil {
		return GameState{}, err
	}
	if err := parseSideToMove(&state, parts); err != nil {
		return GameState{}, err
	}
	if err := parseCastlingRights(&state, parts); err != nil {
		return GameState{}, err
	}
	if err := parseEnPassant(&state, parts); err != nil {
		return GameState{}, err
	}

	state.Status = Classify(state)
	return state, nil
}

// MustGameFromFEN is like NewGameFromFEN but panics on error.
// It is intended for fixed positions in tests and tables.
func MustGameFromFEN(fen string) GameState {
	state, err := NewGameFromFEN(fen)
	if err != nil {
		panic(err)
	}
	return state
}

// parsePiecePositions parses the piece placement field of a FEN string.
// The first FEN rank is rank index 0.
func parsePiecePositions(board *chess.Board, positions string) error {
	rank, file := 0, 0

	for _, c := range positions {
		switch {
		case c == '/':
			if file != chess.BoardSize {
				return fmt.Errorf("rank %d has %d files: %w", chess.BoardSize-rank, file, errors.ErrInvalidFEN)
			}
			rank++
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			piece := ConvertFENCharToPiece(byte(c))
			if piece == chess.NoType {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			sq := chess.Sq(file, rank)
			if !sq.Valid() {
				return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			board.Set(sq, chess.Piece{Type: piece, Colour: colour})
			file++
		}
		if file > chess.BoardSize {
			return fmt.Errorf("rank %d overflows: %w", chess.BoardSize-rank, errors.ErrInvalidFEN)
		}
	}
	if rank != chess.BoardSize-1 || file != chess.BoardSize {
		return fmt.Errorf("incomplete piece placement: %w", errors.ErrInvalidFEN)
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(state *GameState, parts []string) error {
	state.ToMove = chess.White
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		state.ToMove = chess.White
	case "b":
		state.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(state *GameState, parts []string) error {
	state.Castling = chess.CastlingRights{}
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		switch c {
		case 'K':
			state.Castling.WhiteKingside = true
		case 'Q':
			state.Castling.WhiteQueenside = true
		case 'k':
			state.Castling.BlackKingside = true
		case 'q':
			state.Castling.BlackQueenside = true
		default:
			return fmt.Errorf("invalid castling flag: %c: %w", c, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(state *GameState, parts []string) error {
	state.EnPassant = false
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	sq, err := chess.ParseSquare(parts[3])
	if err != nil {
		return fmt.Errorf("en passant square %q: %w", parts[3], errors.ErrInvalidFEN)
	}
	state.EnPassant = true
	state.EPSquare = sq
	return nil
}

// FEN converts a game state to a FEN string. Clocks are written as "0 1".
func (s GameState) FEN() string {
	var sb strings.Builder

	writePiecePositions(&sb, &s.Board)
	sb.WriteByte(' ')
	if s.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(s.Castling.String())
	sb.WriteByte(' ')
	if s.EnPassant {
		sb.WriteString(s.EPSquare.String())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(" 0 1")

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := 0; rank < chess.BoardSize; rank++ {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := board.Get(chess.Sq(file, rank))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(PieceToFENChar(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}
