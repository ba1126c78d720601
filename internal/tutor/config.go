package tutor

import "time"

// Config holds generation settings for one tutor task.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one call including retries; zero means no limit.
	Timeout time.Duration
}

// DefaultExplainConfig returns defaults for answer explanations.
func DefaultExplainConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.3,
	}
}

// DefaultDraftConfig returns defaults for question drafting. The budget
// scales with the number of questions requested.
func DefaultDraftConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.7,
	}
}

// MaxDraftCount caps how many questions one Draft call may request.
const MaxDraftCount = 20
