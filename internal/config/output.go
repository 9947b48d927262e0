package config

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// JSONFormat enables JSON output instead of a text diagram
	JSONFormat bool

	// Colour adds ANSI colours to the text diagram
	Colour bool

	// MaxLineLength is the maximum line length for move logs
	MaxLineLength int
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		MaxLineLength: 80,
	}
}
