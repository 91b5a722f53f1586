package lessons

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/linguaspark/internal/progress"
)

// languageTitles holds the three language-specific lesson titles, in
// order: basics-3, advanced-1, practical-1.
var languageTitles = map[string][3]string{
	"english":  {"Common Phrases in English", "English Slang", "Business English"},
	"spanish":  {"Spanish Greetings", "Ser vs Estar", "Spanish Food Vocabulary"},
	"french":   {"French Greetings", "French Articles", "Ordering in a French Café"},
	"japanese": {"Japanese Greetings", "Basic Hiragana", "Japanese Particles"},
	"hindi":    {"Hindi Greetings", "Devanagari Script", "Hindi Pronouns"},
	"arabic":   {"Arabic Greetings", "Arabic Script Basics", "Arabic Pronunciation"},
}

func titlesFor(language string) [3]string {
	if t, ok := languageTitles[language]; ok {
		return t
	}
	return languageTitles[progress.DefaultLanguage]
}

// DisplayLanguage capitalizes a language code for prose.
func DisplayLanguage(language string) string {
	if language == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(language)
	return string(unicode.ToUpper(r)) + language[size:]
}

func sections(reading, listening, speaking, writing string) []Section {
	return []Section{
		{Type: SectionReading, Title: reading},
		{Type: SectionListening, Title: listening},
		{Type: SectionSpeaking, Title: speaking},
		{Type: SectionWriting, Title: writing},
	}
}

// Catalog returns the ten lessons for language, in presentation order.
// Unknown languages get the English titles.
func Catalog(language string) []Lesson {
	name := DisplayLanguage(language)
	if name == "" {
		name = DisplayLanguage(progress.DefaultLanguage)
	}
	titles := titlesFor(language)

	const (
		voc    = progress.SkillVocabulary
		speak  = progress.SkillSpeaking
		listen = progress.SkillListening
		read   = progress.SkillReading
		write  = progress.SkillWriting
		gram   = progress.SkillGrammar
	)

	return []Lesson{
		{
			ID:          "basics-1",
			Title:       "Introduction & Greetings",
			Description: fmt.Sprintf("Learn basic greetings and introductions in %s", name),
			Duration:    "15 min",
			Level:       LevelBeginner,
			Category:    "Basics",
			SkillPoints: map[string]int{voc: 2, speak: 1, listen: 1, read: 1},
			Sections:    sections("Greetings Text", "Dialogue Practice", "Pronunciation Guide", "Writing Exercise"),
		},
		{
			ID:          "basics-2",
			Title:       "Numbers & Counting",
			Description: fmt.Sprintf("Master numbers from 1-100 in %s", name),
			Duration:    "20 min",
			Level:       LevelBeginner,
			Category:    "Basics",
			SkillPoints: map[string]int{voc: 1, speak: 1, listen: 2, write: 1},
			Sections:    sections("Number Systems", "Number Recognition", "Saying Numbers", "Writing Numbers"),
		},
		{
			ID:          "basics-3",
			Title:       titles[0],
			Description: fmt.Sprintf("Essential phrases for everyday situations in %s", name),
			Duration:    "25 min",
			Level:       LevelBeginner,
			Category:    "Basics",
			SkillPoints: map[string]int{voc: 2, speak: 2, listen: 1, gram: 1},
			Sections:    sections("Common Phrases", "Phrase Recognition", "Practice Phrases", "Using Phrases"),
		},
		{
			ID:          "conversation-1",
			Title:       "At the Restaurant",
			Description: fmt.Sprintf("Order food and engage in restaurant dialogue in %s", name),
			Duration:    "30 min",
			Level:       LevelIntermediate,
			Category:    "Conversation",
			SkillPoints: map[string]int{voc: 2, speak: 3, listen: 2, write: 1},
			Sections:    sections("Restaurant Vocabulary", "Ordering Dialogue", "Role Play Practice", "Create a Dialogue"),
		},
		{
			ID:          "conversation-2",
			Title:       "Shopping Conversations",
			Description: fmt.Sprintf("Learn to talk about prices and preferences in %s", name),
			Duration:    "25 min",
			Level:       LevelIntermediate,
			Category:    "Conversation",
			UnlockAt:    40,
			SkillPoints: map[string]int{voc: 2, speak: 2, listen: 2, gram: 1},
			Sections:    sections("Shopping Vocabulary", "Shopping Dialogue", "Practice Bargaining", "Shopping List Exercise"),
		},
		{
			ID:          "grammar-1",
			Title:       "Basic Sentence Structure",
			Description: fmt.Sprintf("Understand how to form simple sentences in %s", name),
			Duration:    "35 min",
			Level:       LevelBeginner,
			Category:    "Grammar",
			SkillPoints: map[string]int{gram: 3, write: 2, read: 1, voc: 1},
			Sections:    sections("Sentence Basics", "Identify Sentence Types", "Pronunciation Practice", "Sentence Formation"),
		},
		{
			ID:          "vocabulary-1",
			Title:       "Food & Drinks",
			Description: fmt.Sprintf("Learn common food and beverage vocabulary in %s", name),
			Duration:    "20 min",
			Level:       LevelBeginner,
			Category:    "Vocabulary",
			SkillPoints: map[string]int{voc: 3, speak: 1, listen: 1, write: 1},
			Sections:    sections("Food Vocabulary List", "Food Audio Recognition", "Pronunciation Practice", "Food Description Exercise"),
		},
		{
			ID:          "culture-1",
			Title:       "Cultural Customs",
			Description: fmt.Sprintf("Understand important cultural traditions of %s-speaking regions", name),
			Duration:    "40 min",
			Level:       LevelIntermediate,
			Category:    "Culture",
			UnlockAt:    60,
			SkillPoints: map[string]int{voc: 2, speak: 1, read: 3, write: 2},
			Sections:    sections("Cultural Overview", "Cultural Dialogues", "Cultural Expression", "Cultural Reflection"),
		},
		{
			ID:          "advanced-1",
			Title:       orDefault(titles[1], "Advanced Topics"),
			Description: fmt.Sprintf("Advanced vocabulary and expressions in %s", name),
			Duration:    "45 min",
			Level:       LevelAdvanced,
			Category:    "Vocabulary",
			UnlockAt:    80,
			SkillPoints: map[string]int{voc: 3, gram: 3, read: 2, write: 2},
			Sections:    sections("Advanced Reading", "Advanced Listening", "Advanced Speaking", "Advanced Writing"),
		},
		{
			ID:          "practical-1",
			Title:       orDefault(titles[2], "Practical Applications"),
			Description: fmt.Sprintf("Real-world applications of %s in context", name),
			Duration:    "50 min",
			Level:       LevelAdvanced,
			Category:    "Practical",
			UnlockAt:    90,
			SkillPoints: map[string]int{voc: 2, gram: 2, speak: 3, listen: 3},
			Sections:    sections("Authentic Materials", "Native Speaker Audio", "Real Conversation Practice", "Practical Writing Tasks"),
		},
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Find returns the lesson with id from the catalog for language.
func Find(language, id string) (Lesson, bool) {
	for _, l := range Catalog(language) {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}

// Unlocked reports whether a learner at overall progress can open the
// lesson. Lowering progress locks lessons again.
func Unlocked(lesson Lesson, overall int) bool {
	return overall >= lesson.UnlockAt
}
