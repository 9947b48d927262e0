package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// StateWriter is the interface for writing game states to output.
// Different implementations handle different output formats (text, JSON).
type StateWriter interface {
	// WriteState writes a single game view to the output.
	WriteState(view GameView) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// DiagramWriter writes states as text diagrams followed by the move log.
type DiagramWriter struct {
	w             io.Writer
	diagram       *Diagram
	maxLineLength int
}

// NewDiagramWriter creates a new diagram writer.
func NewDiagramWriter(w io.Writer, coloured bool, maxLineLength int) *DiagramWriter {
	return &DiagramWriter{
		w:             w,
		diagram:       NewDiagram(coloured),
		maxLineLength: maxLineLength,
	}
}

// WriteState writes a diagram of the view's position.
func (dw *DiagramWriter) WriteState(view GameView) error {
	if view.ID != "" {
		if _, err := fmt.Fprintf(dw.w, "[%s]\n", view.ID); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(dw.w, dw.diagram.Render(view.State)); err != nil {
		return err
	}
	if len(view.Moves) > 0 {
		// The side that played first is the one to move after an even count
		first := view.State.ToMove
		if len(view.Moves)%2 == 1 {
			first = first.Opposite()
		}
		WriteMoveLog(dw.w, view.Moves, first, dw.maxLineLength)
	}
	_, err := fmt.Fprintln(dw.w)
	return err
}

// Flush flushes the diagram writer (no-op as it writes immediately).
func (dw *DiagramWriter) Flush() error {
	return nil
}

// Close closes the diagram writer.
func (dw *DiagramWriter) Close() error {
	return nil
}

// JSONWriter writes states in JSON format.
// It buffers states and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	views  []GameView
	single bool // If true, write each state immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches states and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     w,
		views: make([]GameView, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each state immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteState buffers a state for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteState(view GameView) error {
	if jw.single {
		return WriteStateJSON(jw.w, view)
	}

	// Buffer for batch output
	jw.views = append(jw.views, view)
	return nil
}

// Flush writes all buffered states as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.views) == 0 {
		return nil
	}

	output := &JSONOutput{
		Games: make([]*JSONState, 0, len(jw.views)),
	}
	for _, view := range jw.views {
		output.Games = append(output.Games, StateToJSON(view))
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(output)

	// Clear buffer after writing
	jw.views = jw.views[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
