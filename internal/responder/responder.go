package responder

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Rule names reported in Reply.Rule for the non-canned branches.
const (
	RuleAnalysis    = "analysis"
	RuleUnavailable = "unavailable"
	RuleDefault     = "default"
)

// Reply is the outcome of a dispatch. Success is false only when a recognised ticker has no data.
// Data is set only for ticker analyses.
type Reply struct {
	Success bool
	Text    string
	Rule    string
	Data    *Analysis
}

// Responder maps user text to a reply. It is a pure function of its quote table: the same input always
// yields the same reply.
type Responder struct {
	quotes map[string]Quote
}

// New creates a responder answering ticker questions from quotes.
func New(quotes map[string]Quote) Responder {
	return Responder{quotes: quotes}
}

// Respond dispatches text: canned keyword rules first, then ticker analysis, then the default reply.
func (r Responder) Respond(text string) Reply {
	lower := strings.ToLower(text)
	for _, rl := range cannedRules {
		if containsAny(lower, rl.keywords) {
			return Reply{Success: true, Text: rl.reply, Rule: rl.name}
		}
	}

	ticker, ok := ExtractTicker(text)
	if !ok {
		return Reply{Success: true, Text: defaultReply, Rule: RuleDefault}
	}

	q, ok := r.quotes[ticker]
	if !ok {
		return Reply{
			Success: false,
			Text: fmt.Sprintf("I'm having some trouble pulling the latest data for %s right now. This sometimes "+
				"happens when markets are closed or if there's a temporary glitch with the data feeds. Give me a "+
				"moment and try asking about %s again, or feel free to ask about a different stock in the meantime.",
				ticker, ticker),
			Rule: RuleUnavailable,
		}
	}

	data := q.Analysis()
	return Reply{Success: true, Text: analysis(q), Rule: RuleAnalysis, Data: &data}
}

// Analyze returns the analysis data for ticker, matched case-insensitively. It reports false when the
// table holds no quote for it.
func (r Responder) Analyze(ticker string) (Analysis, bool) {
	q, ok := r.quotes[strings.ToUpper(strings.TrimSpace(ticker))]
	if !ok {
		return Analysis{}, false
	}
	return q.Analysis(), true
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ExtractTicker finds the first symbol mentioned in text, looking for ticker symbols before company
// names.
func ExtractTicker(text string) (string, bool) {
	words := strings.Fields(strings.NewReplacer("?", " ", "!", " ", ",", " ").Replace(strings.ToUpper(text)))
	for i, w := range words {
		words[i] = strings.Trim(w, ".,!?()[]'\"")
	}

	for _, w := range words {
		if slices.Contains(commonTickers, w) {
			return w, true
		}
	}
	for _, w := range words {
		if ticker, ok := companyTickers[w]; ok {
			return ticker, true
		}
	}
	return "", false
}

func analysis(q Quote) string {
	name := companyNames[q.Ticker]
	if name == "" {
		name = q.Ticker
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Looking at %s right now, it's %s to $%.2f. ", name, priceMove(q.ChangePct), q.Price)
	sb.WriteString(newsContext(q))
	sb.WriteString(headlineContext(q.Headlines))

	switch q.Recommendation {
	case Buy:
		sb.WriteString("Based on what I'm seeing, I think this could be a good buying opportunity. ")
	case Sell:
		sb.WriteString("Honestly, I'd be inclined to sell or avoid this one for now. ")
	default:
		sb.WriteString("I think the best move here is to hold tight and wait for clearer signals. ")
	}
	sb.WriteString(q.Reasoning)
	sb.WriteString(" ")

	switch q.Confidence {
	case ConfidenceHigh:
		sb.WriteString("I'm quite confident in this assessment because the signals from both price action and " +
			"news sentiment are aligning well.")
	case ConfidenceMedium:
		sb.WriteString("I'd say I'm moderately confident here - there are some good indicators, but I'd keep an " +
			"eye on how things develop.")
	default:
		sb.WriteString("I'm being cautious with this one since the signals are a bit mixed or unclear right now.")
	}

	switch q.Recommendation {
	case Buy:
		sb.WriteString(" Of course, this is just my analysis based on current data - always do your own research " +
			"and consider your risk tolerance!")
	case Sell:
		sb.WriteString(" That said, markets can be unpredictable, so this is just my take based on current " +
			"information.")
	default:
		sb.WriteString(" Sometimes patience is the best strategy in investing.")
	}
	return sb.String()
}

func priceMove(pct float64) string {
	abs := math.Abs(pct)
	switch {
	case pct > 2:
		return fmt.Sprintf("having a strong day, up %.1f%%", abs)
	case pct > 0.5:
		return fmt.Sprintf("trending upward, gaining %.1f%%", abs)
	case pct < -2:
		return fmt.Sprintf("under pressure today, down %.1f%%", abs)
	case pct < -0.5:
		return fmt.Sprintf("dipping slightly, down %.1f%%", abs)
	}
	return fmt.Sprintf("trading relatively flat, %+.1f%%", pct)
}

func newsContext(q Quote) string {
	total := q.TotalNews()
	switch {
	case total == 0:
		return ""
	case q.PositiveNews > q.NegativeNews:
		return fmt.Sprintf("The news flow has been quite positive lately, with %d upbeat articles versus %d "+
			"negative ones. ", q.PositiveNews, q.NegativeNews)
	case q.NegativeNews > q.PositiveNews:
		return fmt.Sprintf("There's been some concerning news recently, with %d negative articles outweighing %d "+
			"positive ones. ", q.NegativeNews, q.PositiveNews)
	}
	return fmt.Sprintf("The news has been mixed, with roughly equal positive and negative coverage across %d "+
		"recent articles. ", total)
}

func headlineContext(headlines []string) string {
	if len(headlines) == 0 {
		return ""
	}

	s := "Recent headlines include '" + headlines[0] + "'"
	if len([]rune(headlines[0])) > 60 {
		s = "Recent headlines include stories like '" + clip(headlines[0], 60) + "'"
	}
	if len(headlines) > 1 {
		s += " and '" + clip(headlines[1], 50) + "'"
	}
	return s + ". "
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
