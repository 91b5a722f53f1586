package lessons

import "fmt"

// Difficulty maps a skill level in [1, 5] to the difficulty label used in
// section prompts.
func Difficulty(level float64) string {
	switch {
	case level < 2:
		return "beginner"
	case level < 3:
		return "intermediate"
	default:
		return "advanced"
	}
}

func buildSectionSystemPrompt(language string, lesson Lesson, section SectionType, difficulty string) string {
	base := fmt.Sprintf("You are an expert %s language tutor. ", language)
	switch section {
	case SectionReading:
		return base + fmt.Sprintf("Create a reading passage at %s level about %q with vocabulary appropriate for %s learners.", difficulty, lesson.Title, lesson.Level)
	case SectionListening:
		return base + fmt.Sprintf("Create a dialogue script at %s level about %q that could be used for listening practice.", difficulty, lesson.Title)
	case SectionSpeaking:
		return base + fmt.Sprintf("Create speaking practice exercises at %s level for the topic %q.", difficulty, lesson.Title)
	default:
		return base + fmt.Sprintf("Create writing exercises at %s level for the topic %q.", difficulty, lesson.Title)
	}
}

func buildSectionUserMessage(lesson Lesson, section SectionType) string {
	switch section {
	case SectionReading:
		return fmt.Sprintf("Write a reading passage (250-300 words) about %s for %s students. Include 5 comprehension questions at the end.", lesson.Title, lesson.Level)
	case SectionListening:
		return fmt.Sprintf("Write a dialogue between two people discussing %s. Make it appropriate for %s language learners, with clear turns and about 12-15 exchanges total.", lesson.Title, lesson.Level)
	case SectionSpeaking:
		return fmt.Sprintf("Create 5 speaking practice exercises about %s for %s students. Include pronunciation tips and example responses.", lesson.Title, lesson.Level)
	default:
		return fmt.Sprintf("Create 3 writing prompts about %s for %s students. Include vocabulary suggestions and a sample response for one prompt.", lesson.Title, lesson.Level)
	}
}
