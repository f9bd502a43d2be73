package scengen

// Config controls the LLMGenerator.
type Config struct {
	// Validators run in order on every generated scenario; the first
	// failure drops it.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxPriorHands caps the dedup list included in the prompt.
	MaxPriorHands int

	// BatchSize is the most scenarios requested per call.
	BatchSize int
}

// DefaultConfig returns the standard validator chain and defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&HandValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:     4096,
		Temperature:   0.7,
		MaxPriorHands: 60,
		BatchSize:     8,
	}
}
