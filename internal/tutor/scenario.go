package tutor

// Scenario is a role-play setting for conversation practice.
type Scenario struct {
	ID   string
	Name string
	Icon string
}

// Scenarios lists the practice settings in menu order.
var Scenarios = []Scenario{
	{ID: "casual", Name: "Casual Conversation", Icon: "💬"},
	{ID: "restaurant", Name: "At a Restaurant", Icon: "🍽️"},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️"},
	{ID: "travel", Name: "Travel", Icon: "✈️"},
	{ID: "business", Name: "Business Meeting", Icon: "💼"},
	{ID: "emergency", Name: "Emergency", Icon: "🚨"},
}

// DefaultScenario is used when none is chosen.
const DefaultScenario = "casual"

// FindScenario looks up a scenario by id.
func FindScenario(id string) (Scenario, bool) {
	for _, s := range Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

const fallbackGreeting = "Hello! How can I help you today?"

var greetings = map[string]map[string]string{
	"spanish": {
		"casual":     "¡Hola! ¿Cómo estás hoy?",
		"restaurant": "Bienvenido al restaurante. ¿Le gustaría ver el menú?",
		"shopping":   "¡Hola! ¿En qué puedo ayudarle hoy?",
		"travel":     "¿Adónde le gustaría viajar?",
		"business":   "Buenos días. Bienvenido a nuestra reunión.",
		"emergency":  "¿Cuál es su emergencia? ¿Cómo puedo ayudarle?",
	},
	"french": {
		"casual":     "Bonjour ! Comment allez-vous aujourd'hui ?",
		"restaurant": "Bienvenue au restaurant. Souhaitez-vous voir le menu ?",
		"shopping":   "Bonjour ! Comment puis-je vous aider aujourd'hui ?",
		"travel":     "Où souhaitez-vous voyager ?",
		"business":   "Bonjour. Bienvenue à notre réunion.",
		"emergency":  "Quelle est votre urgence ? Comment puis-je vous aider ?",
	},
	"german": {
		"casual":     "Hallo! Wie geht es Ihnen heute?",
		"restaurant": "Willkommen im Restaurant. Möchten Sie die Speisekarte sehen?",
		"shopping":   "Hallo! Wie kann ich Ihnen heute helfen?",
		"travel":     "Wohin möchten Sie reisen?",
		"business":   "Guten Tag. Willkommen zu unserem Meeting.",
		"emergency":  "Was ist Ihr Notfall? Wie kann ich Ihnen helfen?",
	},
	"italian": {
		"casual":     "Ciao! Come stai oggi?",
		"restaurant": "Benvenuto al ristorante. Vuoi vedere il menu?",
		"shopping":   "Ciao! Come posso aiutarti oggi?",
		"travel":     "Dove vorresti viaggiare?",
		"business":   "Buongiorno. Benvenuto alla nostra riunione.",
		"emergency":  "Qual è la tua emergenza? Come posso aiutarti?",
	},
	"japanese": {
		"casual":     "こんにちは！今日の調子はどうですか？",
		"restaurant": "レストランへようこそ。メニューをご覧になりますか？",
		"shopping":   "こんにちは！本日はどのようにお手伝いできますか？",
		"travel":     "どちらへ旅行されますか？",
		"business":   "おはようございます。会議へようこそ。",
		"emergency":  "緊急事態は何ですか？どのようにお手伝いできますか？",
	},
	"chinese": {
		"casual":     "你好！今天感觉如何？",
		"restaurant": "欢迎光临本餐厅。您想看看菜单吗？",
		"shopping":   "你好！今天我能帮您什么？",
		"travel":     "您想去哪里旅行？",
		"business":   "早上好。欢迎参加我们的会议。",
		"emergency":  "您有什么紧急情况？我能如何帮助您？",
	},
	"portuguese": {
		"casual":     "Olá! Como está hoje?",
		"restaurant": "Bem-vindo ao restaurante. Gostaria de ver o cardápio?",
		"shopping":   "Olá! Como posso ajudá-lo hoje?",
		"travel":     "Para onde gostaria de viajar?",
		"business":   "Bom dia. Bem-vindo à nossa reunião.",
		"emergency":  "Qual é a sua emergência? Como posso ajudá-lo?",
	},
	"english": {
		"casual":     "Hello! How are you today?",
		"restaurant": "Welcome to the restaurant. Would you like to see the menu?",
		"shopping":   "Hello! How can I help you today?",
		"travel":     "Where would you like to travel to?",
		"business":   "Good morning. Welcome to our meeting.",
		"emergency":  "What is your emergency? How can I help you?",
	},
	"hindi": {
		"casual":     "नमस्ते! आज आप कैसे हैं?",
		"restaurant": "रेस्तरां में आपका स्वागत है। क्या आप मेन्यू देखना चाहेंगे?",
		"shopping":   "नमस्ते! आज मैं आपकी कैसे मदद कर सकता हूं?",
		"travel":     "आप कहां यात्रा करना चाहते हैं?",
		"business":   "सुप्रभात। हमारी मीटिंग में आपका स्वागत है।",
		"emergency":  "आपकी आपातकालीन स्थिति क्या है? मैं आपकी कैसे मदद कर सकता हूं?",
	},
	"arabic": {
		"casual":     "مرحبًا! كيف حالك اليوم؟",
		"restaurant": "مرحبًا بك في المطعم. هل ترغب في رؤية القائمة؟",
		"shopping":   "مرحبًا! كيف يمكنني مساعدتك اليوم؟",
		"travel":     "إلى أين ترغب في السفر؟",
		"business":   "صباح الخير. مرحبًا بك في اجتماعنا.",
		"emergency":  "ما هي حالة الطوارئ الخاصة بك؟ كيف يمكنني مساعدتك؟",
	},
}

// DefaultGreeting returns the canned opening line for a scenario. Unknown
// languages fall back to English.
func DefaultGreeting(scenario, language string) string {
	if g, ok := greetings[language][scenario]; ok {
		return g
	}
	if g, ok := greetings["english"][scenario]; ok {
		return g
	}
	return fallbackGreeting
}
