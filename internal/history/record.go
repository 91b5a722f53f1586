// Package history keeps the learner's recent practice conversations and
// the id of the conversation currently in progress.
package history

import "time"

// Storage keys.
const (
	KeyHistory = "linguaspark_conversation_history"
	KeySession = "current_conversation_id"
)

const (
	// MaxRecords is how many conversations are kept.
	MaxRecords = 10

	// MinTurnsToSave is the shortest conversation worth recording.
	MinTurnsToSave = 3
)

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Feedback grades a learner turn.
type Feedback struct {
	Pronunciation string   `json:"pronunciation"` // "good" or "needs-work"
	Grammar       string   `json:"grammar"`       // "good" or "needs-work"
	Corrections   []string `json:"corrections"`
	Score         int      `json:"score"`
}

// PronunciationOK reports whether pronunciation was rated good.
func (f Feedback) PronunciationOK() bool { return f.Pronunciation == "good" }

// GrammarOK reports whether grammar was rated good.
func (f Feedback) GrammarOK() bool { return f.Grammar == "good" }

// Turn is one message in a conversation.
type Turn struct {
	Speaker     Speaker   `json:"speaker"`
	Text        string    `json:"text"`
	Translation string    `json:"translation,omitempty"`
	Feedback    *Feedback `json:"feedback,omitempty"`
	At          time.Time `json:"timestamp"`
}

// Record is a stored conversation.
type Record struct {
	ID        string    `json:"id"`
	Scenario  string    `json:"scenario"`
	Language  string    `json:"language,omitempty"`
	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Turns     []Turn    `json:"messages"`
}
