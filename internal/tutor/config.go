package tutor

// Config holds generation settings for tutor requests.
type Config struct {
	ReplyMaxTokens    int
	FeedbackMaxTokens int
	Temperature       float64
}

// DefaultConfig returns sensible defaults for practice sessions.
func DefaultConfig() Config {
	return Config{
		ReplyMaxTokens:    512,
		FeedbackMaxTokens: 256,
		Temperature:       0.7,
	}
}
