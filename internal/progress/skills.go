package progress

// Skill names tracked per section type.
const (
	SkillReading    = "reading"
	SkillListening  = "listening"
	SkillSpeaking   = "speaking"
	SkillWriting    = "writing"
	SkillVocabulary = "vocabulary"
	SkillGrammar    = "grammar"
)

const (
	DefaultSkillLevel = 1.0
	MaxSkillLevel     = 5.0
	SkillStep         = 0.25
)

// Skills maps a skill name to its level in [1, 5].
type Skills map[string]float64

// DefaultSkills returns every tracked skill at the starting level.
func DefaultSkills() Skills {
	return Skills{
		SkillReading:    DefaultSkillLevel,
		SkillListening:  DefaultSkillLevel,
		SkillSpeaking:   DefaultSkillLevel,
		SkillWriting:    DefaultSkillLevel,
		SkillVocabulary: DefaultSkillLevel,
		SkillGrammar:    DefaultSkillLevel,
	}
}

// Level returns the skill's level, or the default for unknown skills.
func (s Skills) Level(skill string) float64 {
	if v, ok := s[skill]; ok && v > 0 {
		return v
	}
	return DefaultSkillLevel
}
