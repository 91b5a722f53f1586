package progress

// Storage keys, kept identical to the browser build so exported data
// imports cleanly.
const (
	KeyProfile = "linguaspark_user_data"
	KeySkills  = "linguaspark_user_skills"
)

// Defaults for a learner who has never onboarded.
const (
	DefaultName         = "Language Learner"
	DefaultLanguage     = "english"
	DefaultTotalLessons = 10
)

// Languages lists the supported target language codes. Profiles may hold
// other codes; they are kept as-is.
var Languages = []string{
	"english", "spanish", "french", "german", "italian",
	"japanese", "chinese", "hindi", "arabic",
}

// Recommendation is a suggested activity shown on the dashboard.
type Recommendation struct {
	Title    string `json:"title"`
	Kind     string `json:"type"`
	Duration string `json:"duration"`
	Icon     string `json:"icon"`
	Link     string `json:"link"`
}

// Profile is the single learner's persisted state.
type Profile struct {
	Name             string           `json:"userName"`
	Language         string           `json:"language"`
	Streak           int              `json:"streak"`
	Progress         int              `json:"progress"`
	DailyGoal        int              `json:"dailyGoal"`
	CompletedLessons int              `json:"completedLessons"`
	TotalLessons     int              `json:"totalLessons"`
	LastLoginDate    string           `json:"lastLoginDate,omitempty"`
	Recommendations  []Recommendation `json:"recommendations"`
}

// ProfilePatch is a shallow update. Nil fields are left unchanged.
type ProfilePatch struct {
	Name             *string
	Language         *string
	Streak           *int
	Progress         *int
	DailyGoal        *int
	CompletedLessons *int
	TotalLessons     *int
	LastLoginDate    *string
	Recommendations  []Recommendation
}

// DefaultProfile is returned when nothing is stored.
func DefaultProfile() Profile {
	return Profile{
		Name:            DefaultName,
		Language:        DefaultLanguage,
		TotalLessons:    DefaultTotalLessons,
		Recommendations: []Recommendation{},
	}
}

// StarterRecommendations are assigned on onboarding.
func StarterRecommendations() []Recommendation {
	return []Recommendation{
		{Title: "Basic Greetings", Kind: "Lesson", Duration: "5 min", Icon: "🗣️", Link: "/lessons/basic-greetings"},
		{Title: "Numbers Practice", Kind: "Game", Duration: "10 min", Icon: "🔢", Link: "/games/numbers"},
		{Title: "Conversation: Introductions", Kind: "Practice", Duration: "15 min", Icon: "👋", Link: "/practice/introductions"},
	}
}

func (p Profile) apply(patch ProfilePatch) Profile {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Language != nil {
		p.Language = *patch.Language
	}
	if patch.Streak != nil {
		p.Streak = *patch.Streak
	}
	if patch.Progress != nil {
		p.Progress = *patch.Progress
	}
	if patch.DailyGoal != nil {
		p.DailyGoal = *patch.DailyGoal
	}
	if patch.CompletedLessons != nil {
		p.CompletedLessons = *patch.CompletedLessons
	}
	if patch.TotalLessons != nil {
		p.TotalLessons = *patch.TotalLessons
	}
	if patch.LastLoginDate != nil {
		p.LastLoginDate = *patch.LastLoginDate
	}
	if patch.Recommendations != nil {
		p.Recommendations = patch.Recommendations
	}
	return p
}

func clampPercent(v int) int {
	return min(100, max(0, v))
}
