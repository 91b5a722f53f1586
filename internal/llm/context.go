package llm

import "context"

// Purpose labels why an inference call was made. It is recorded with every
// event so `llm stats` can break usage down by feature.
type Purpose string

const (
	PurposeLesson          Purpose = "lesson"
	PurposeGreeting        Purpose = "greeting"
	PurposeConversation    Purpose = "conversation"
	PurposeFeedback        Purpose = "feedback"
	PurposeTranslation     Purpose = "translation"
	PurposeRecommendations Purpose = "recommendations"
	PurposeQuiz            Purpose = "quiz"
	PurposeTypingText      Purpose = "typing-text"
	PurposeTranscription   Purpose = "transcription"
	PurposeSpeech          Purpose = "speech"
	PurposeReasoning       Purpose = "reasoning"
	PurposeVision          Purpose = "vision"

	// PurposeUnlabeled is reported for calls made without a label.
	PurposeUnlabeled Purpose = "unlabeled"
)

type purposeKey struct{}

// WithPurpose labels every inference call made with ctx.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the label attached by WithPurpose, or
// PurposeUnlabeled.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnlabeled
}
