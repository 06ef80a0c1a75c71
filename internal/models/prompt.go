package models

// SuggestionChip is a card shown under the greeting that submits a canned prompt when selected.
type SuggestionChip struct {
	Label  string
	Prompt string
	Icon   string
}

// QuickAction is a small button under the input box that submits a canned prompt when selected.
type QuickAction struct {
	Label  string
	Prompt string
	Icon   string
}

// Greeting is the assistant message every conversation starts with.
const Greeting = "Hi! I'm FinBot, your AI market intelligence assistant. I can help you analyze stocks, " +
	"track market movements, and break down complex financial news. What would you like to explore today?"

// SuggestionChips returns the chips shown while the conversation only holds the greeting.
func SuggestionChips() []SuggestionChip {
	return []SuggestionChip{
		{Label: "Market Movers", Prompt: "Show me the biggest gainers and losers today", Icon: "trending-up"},
		{Label: "Breaking News", Prompt: "What news is moving markets right now?", Icon: "newspaper"},
		{Label: "Stock Analysis", Prompt: "Analyze a specific ticker for me", Icon: "search"},
		{Label: "Tech Sector", Prompt: "What's happening in tech stocks?", Icon: "zap"},
	}
}

// QuickActions returns the actions shown under the input box.
func QuickActions() []QuickAction {
	return []QuickAction{
		{Label: "What's moving the market?", Prompt: "What's moving the market?", Icon: "trending-up"},
		{Label: "Unusual options activity", Prompt: "Unusual options activity", Icon: "zap"},
		{Label: "Analyze AAPL", Prompt: "Analyze AAPL", Icon: "search"},
		{Label: "Sector rotation update", Prompt: "Sector rotation update", Icon: "sparkles"},
	}
}
