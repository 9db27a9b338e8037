package solver

// Config controls how problems are sent to the model.
type Config struct {
	// APIKey is the credential the provider was built with. An empty key
	// makes every Solve fail with KindConfiguration without calling out.
	APIKey string

	// MaxTokens caps the response length. Zero leaves the provider default.
	MaxTokens int

	// Temperature for the model. Solutions should be reproducible.
	Temperature float64
}

// DefaultConfig returns sensible defaults. APIKey is left empty.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.2,
	}
}
