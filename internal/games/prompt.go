package games

import "fmt"

const quizUserMessage = "Write the quiz."

func quizSystemPrompt(language string, completedLessons int) string {
	progress := fmt.Sprintf("The learner is just starting to learn %s.", language)
	if completedLessons > 0 {
		progress = fmt.Sprintf("The learner has completed %d lessons in %s.", completedLessons, language)
	}
	return fmt.Sprintf(`Generate %d multiple-choice quiz questions about the %s language for a student who has completed %d lessons. %s

For beginners (0-3 lessons), focus on basic vocabulary, greetings, and simple phrases.
For intermediate (4-7 lessons), include some grammar concepts and more complex vocabulary.
For advanced (8+ lessons), include idioms, complex grammar, and cultural concepts.

Give every question four options with ids a, b, c and d, exactly one of them correct, and a short explanation of the answer.`,
		QuizLength, language, completedLessons, progress)
}

const typingSystemPrompt = "You are a language tutor."

func typingUserMessage(language, difficulty string) string {
	return fmt.Sprintf("Generate a %s level %s passage of around 50-70 words for typing practice. The text should fit in a standard paragraph and not be too long. Reply with the passage only.",
		difficulty, language)
}
