package lessons

import "github.com/abhisek/linguaspark/internal/progress"

// Level is the learner level a lesson targets.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// SectionType names one of the four parts of every lesson. Each maps to
// the skill it trains.
type SectionType string

const (
	SectionReading   SectionType = "reading"
	SectionListening SectionType = "listening"
	SectionSpeaking  SectionType = "speaking"
	SectionWriting   SectionType = "writing"
)

// SectionOrder is the order sections are presented and studied in.
var SectionOrder = []SectionType{SectionReading, SectionListening, SectionSpeaking, SectionWriting}

// Skill returns the progress skill the section advances.
func (t SectionType) Skill() string {
	switch t {
	case SectionReading:
		return progress.SkillReading
	case SectionListening:
		return progress.SkillListening
	case SectionSpeaking:
		return progress.SkillSpeaking
	case SectionWriting:
		return progress.SkillWriting
	}
	return ""
}

// Valid reports whether t is one of the four section types.
func (t SectionType) Valid() bool {
	return t.Skill() != ""
}

// Section is one titled part of a lesson.
type Section struct {
	Type  SectionType
	Title string
}

// Lesson is a catalog entry. Titles of some lessons depend on the target
// language.
type Lesson struct {
	ID          string
	Title       string
	Description string
	Duration    string
	Level       Level
	Category    string
	UnlockAt    int
	SkillPoints map[string]int
	Sections    []Section
}

// Section returns the lesson's section of type t.
func (l Lesson) Section(t SectionType) (Section, bool) {
	for _, s := range l.Sections {
		if s.Type == t {
			return s, true
		}
	}
	return Section{}, false
}

// Content is generated study material for one lesson section.
type Content struct {
	LessonID   string
	Section    SectionType
	Difficulty string
	Title      string
	Body       string
	Vocabulary []VocabularyItem
	// Completed reports whether this study finished the whole lesson.
	Completed bool
}

// VocabularyItem is a term with its meaning in the learner's language.
type VocabularyItem struct {
	Term    string `json:"term"`
	Meaning string `json:"meaning"`
}
