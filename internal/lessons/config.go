package lessons

// KeyLessonProgress stores completed sections per lesson.
const KeyLessonProgress = "linguaspark_lessons"

// Config holds section generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for section generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}
