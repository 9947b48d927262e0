// Package output formats game states for display and machine consumption.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// GameView is what the writers render: a position plus the context a
// caller has about how it was reached.
type GameView struct {
	ID          string
	State       engine.GameState
	Moves       []engine.MoveRecord
	Repetitions int
}

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// WriteMoveLog writes moves as numbered coordinate pairs, wrapping lines
// at maxLineLength. startColour is the side that made the first move.
func WriteMoveLog(w io.Writer, moves []engine.MoveRecord, startColour chess.Colour, maxLineLength int) {
	if len(moves) == 0 {
		return
	}
	o := NewOutputWriter(w, maxLineLength)
	number := 1
	colour := startColour
	for i, m := range moves {
		switch {
		case colour == chess.White:
			o.Write(fmt.Sprintf("%d.", number))
		case i == 0:
			o.Write(fmt.Sprintf("%d...", number))
		}
		o.Write(m.String())
		if colour == chess.Black {
			number++
		}
		colour = colour.Opposite()
	}
	o.NewLine()
}

// Diagram renders positions as text boards.
type Diagram struct {
	light, dark, highlight *color.Color
	whitePiece, blackPiece *color.Color
	coloured               bool
}

// NewDiagram creates a diagram renderer. With coloured false the output
// is plain ASCII; with it true squares and pieces carry ANSI colours
// regardless of whether the destination is a terminal.
func NewDiagram(coloured bool) *Diagram {
	d := &Diagram{
		light:      color.New(color.BgHiWhite),
		dark:       color.New(color.BgHiBlack),
		highlight:  color.New(color.BgYellow),
		whitePiece: color.New(color.FgHiBlue, color.Bold),
		blackPiece: color.New(color.FgRed, color.Bold),
		coloured:   coloured,
	}
	for _, c := range []*color.Color{d.light, d.dark, d.highlight, d.whitePiece, d.blackPiece} {
		if coloured {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return d
}

// Render returns the board of state as text, rank 8 at the top. The
// squares of a check path are highlighted when colour is on, and
// listed in the status line either way.
func (d *Diagram) Render(state engine.GameState) string {
	var sb strings.Builder
	path := checkSquares(state)

	sb.WriteString("  +------------------------+\n")
	for rank := 0; rank < chess.BoardSize; rank++ {
		fmt.Fprintf(&sb, "%d |", chess.BoardSize-rank)
		for file := 0; file < chess.BoardSize; file++ {
			sq := chess.Sq(file, rank)
			sb.WriteString(d.square(state.Board.Get(sq), sq, path.Has(sq)))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("  +------------------------+\n")
	sb.WriteString("    a  b  c  d  e  f  g  h\n")
	sb.WriteString(StatusLine(state))
	sb.WriteByte('\n')
	return sb.String()
}

// square renders one cell, three characters wide.
func (d *Diagram) square(p chess.Piece, sq chess.Square, highlighted bool) string {
	text := " . "
	if !p.IsEmpty() {
		text = " " + string(engine.PieceToFENChar(p)) + " "
	}
	if !d.coloured {
		return text
	}

	if !p.IsEmpty() {
		fg := d.whitePiece
		if p.Colour == chess.Black {
			fg = d.blackPiece
		}
		text = fg.Sprint(text)
	}
	bg := d.dark
	switch {
	case highlighted:
		bg = d.highlight
	case (sq.File+sq.Rank)%2 == 0:
		bg = d.light
	}
	return bg.Sprint(text)
}

// StatusLine describes the side to move and the game status, e.g.
// "Black to move, check from f7".
func StatusLine(state engine.GameState) string {
	line := fmt.Sprintf("%s to move, %s", state.ToMove, state.Status)
	if attacker, ok := engine.AttackerOf(state.Board, state.ToMove); ok {
		line += " from " + attacker.String()
	}
	if state.EnPassant {
		line += ", en passant " + state.EPSquare.String()
	}
	return line
}

// checkSquares returns the attacker and its path to the king of the
// side to move, or an empty set when there is no check.
func checkSquares(state engine.GameState) engine.SquareSet {
	attacker, ok := engine.AttackerOf(state.Board, state.ToMove)
	if !ok {
		return 0
	}
	king, _ := state.Board.FindKing(state.ToMove)
	set := engine.NewSquareSet(engine.CheckPath(state.Board, attacker, king)...)
	set.Add(attacker)
	return set
}
