package games

// CannedQuiz returns the questions used when no quiz can be generated.
// They cover the tool itself, so they suit any target language.
func CannedQuiz() []Question {
	abcd := func(texts ...string) []Option {
		opts := make([]Option, len(texts))
		for i, t := range texts {
			opts[i] = Option{ID: string(rune('a' + i)), Text: t}
		}
		return opts
	}
	return []Question{
		{
			ID:            1,
			Question:      "Which command holds a spoken conversation with the tutor?",
			Options:       abcd("practice", "lesson", "history", "streak"),
			CorrectAnswer: "a",
			Explanation:   "practice starts a conversation and gives feedback on every reply.",
		},
		{
			ID:            2,
			Question:      "What opens the later lessons?",
			Options:       abcd("Taking a quiz", "Raising your overall progress", "Keeping a streak", "Changing the level"),
			CorrectAnswer: "b",
			Explanation:   "Each later lesson unlocks once your overall progress reaches its threshold.",
		},
		{
			ID:            3,
			Question:      "When does your daily streak grow?",
			Options:       abcd("Every time you open the app", "When you finish a quiz", "On the first activity of a new day after an active day", "When you change language"),
			CorrectAnswer: "c",
			Explanation:   "Activity on consecutive days extends the streak; a missed day resets it.",
		},
		{
			ID:            4,
			Question:      "What does recommend suggest?",
			Options:       abcd("New languages", "Typing passages", "Quiz answers", "Topics to practice next"),
			CorrectAnswer: "d",
			Explanation:   "Recommendations are built from your recent conversations and progress.",
		},
		{
			ID:            5,
			Question:      "Where are your past conversations kept?",
			Options:       abcd("Nowhere", "In the conversation history", "In the quiz results", "In the lesson catalog"),
			CorrectAnswer: "b",
			Explanation:   "Finished practice sessions are saved to history with their feedback.",
		},
	}
}

var typingFallbacks = map[string]string{
	"english":  "The quick brown fox jumps over the lazy dog. Practice your typing skills with this simple sentence.",
	"spanish":  "El rápido zorro marrón salta sobre el perro perezoso. Practica tus habilidades de mecanografía con esta simple frase.",
	"french":   "Le rapide renard brun saute par-dessus le chien paresseux. Entraînez vos compétences en dactylographie avec cette phrase simple.",
	"hindi":    "तेज़ भूरी लोमड़ी आलसी कुत्ते पर कूदती है। इस सरल वाक्य के साथ अपने टाइपिंग कौशल का अभ्यास करें।",
	"japanese": "速い茶色のキツネは怠け者の犬を飛び越えます。この単純な文であなたのタイピングスキルを練習しましょう。",
	"chinese":  "敏捷的棕色狐狸跳过了懒狗。用这个简单的句子练习你的打字技巧。",
	"arabic":   "الثعلب البني السريع يقفز فوق الكلب الكسول. تدرب على مهارات الكتابة باستخدام هذه الجملة البسيطة.",
}

// FallbackPassage returns the canned typing passage for language,
// or the English one when the language has none.
func FallbackPassage(language string) string {
	if text, ok := typingFallbacks[language]; ok {
		return text
	}
	return typingFallbacks["english"]
}
