package tutor

import (
	"fmt"

	"github.com/abhisek/linguaspark/internal/history"
	"github.com/abhisek/linguaspark/internal/llm"
)

func greetingSystemPrompt(practice string, scenario Scenario) string {
	return fmt.Sprintf(`You are an AI language tutor helping users practice %s.
Generate a short greeting or opening line for a %q scenario in %s.
The greeting should be 1-2 sentences only.`, practice, scenario.Name, practice)
}

const greetingUserMessage = "Start the conversation with an appropriate greeting."

func translateSystemPrompt(from, to string) string {
	if from == "" {
		return fmt.Sprintf("Translate the following text to %s:", to)
	}
	return fmt.Sprintf("Translate this text from %s to %s:", from, to)
}

func feedbackSystemPrompt(practice string) string {
	return fmt.Sprintf("You are a language assistant that analyzes language learners' responses in %s. "+
		"Provide feedback on grammar and pronunciation. Format your response as JSON with keys: "+
		"pronunciation (good/needs-work), grammar (good/needs-work), corrections (array of recommended corrections), score (0-100).", practice)
}

func replySystemPrompt(practice, response string, scenario Scenario) string {
	return fmt.Sprintf("You are an AI language tutor helping users practice %s. The user is practicing %s, "+
		"and you should respond in %s. Keep responses natural, conversational, and appropriate for the scenario: %s.",
		practice, practice, response, scenario.Name)
}

// conversationMessages maps stored turns onto chat roles and appends the
// new learner input.
func conversationMessages(turns []history.Turn, input string) []llm.Message {
	msgs := make([]llm.Message, 0, len(turns)+1)
	for _, t := range turns {
		role := llm.RoleUser
		if t.Speaker == history.SpeakerAssistant {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: t.Text})
	}
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: input})
}

const recommendSystemPrompt = "You are an AI tutor. Based on the following user data, recommend 3 learning activities or modules that would help them advance:"
