package responder

// Recommendation is the call an analysis ends with.
type Recommendation string

const (
	Buy  Recommendation = "BUY"
	Sell Recommendation = "SELL"
	Hold Recommendation = "HOLD"
)

// Confidence grades how well price action and news agree.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Quote is the static analysis input for one ticker.
type Quote struct {
	Ticker         string
	Price          float64
	ChangePct      float64
	PositiveNews   int
	NegativeNews   int
	Headlines      []string
	Recommendation Recommendation
	Confidence     Confidence
	Reasoning      string
}

// TotalNews is the number of articles behind the quote's sentiment counts.
func (q Quote) TotalNews() int {
	return q.PositiveNews + q.NegativeNews
}

// Analysis is the wire form of a quote, as returned by the analyze endpoint and attached to chat
// replies.
type Analysis struct {
	Ticker         string         `json:"ticker"`
	CurrentPrice   float64        `json:"current_price"`
	PriceChangePct float64        `json:"price_change_pct"`
	Recommendation Recommendation `json:"recommendation"`
	Confidence     Confidence     `json:"confidence"`
	Reasoning      string         `json:"reasoning"`
	PositiveNews   int            `json:"positive_news_count"`
	NegativeNews   int            `json:"negative_news_count"`
	TotalNews      int            `json:"total_news_count"`
	TopHeadlines   []string       `json:"top_headlines"`
}

// Analysis converts the quote to its wire form.
func (q Quote) Analysis() Analysis {
	headlines := q.Headlines
	if headlines == nil {
		headlines = []string{}
	}
	return Analysis{
		Ticker:         q.Ticker,
		CurrentPrice:   q.Price,
		PriceChangePct: q.ChangePct,
		Recommendation: q.Recommendation,
		Confidence:     q.Confidence,
		Reasoning:      q.Reasoning,
		PositiveNews:   q.PositiveNews,
		NegativeNews:   q.NegativeNews,
		TotalNews:      q.TotalNews(),
		TopHeadlines:   headlines,
	}
}

// commonTickers lists the symbols recognised verbatim in a message.
var commonTickers = []string{"AAPL", "MSFT", "GOOGL", "TSLA", "NVDA", "AMZN", "META", "NFLX", "AMD", "INTC"}

// companyTickers maps company names to their symbol.
var companyTickers = map[string]string{
	"APPLE":     "AAPL",
	"MICROSOFT": "MSFT",
	"GOOGLE":    "GOOGL",
	"TESLA":     "TSLA",
	"NVIDIA":    "NVDA",
	"AMAZON":    "AMZN",
	"META":      "META",
	"FACEBOOK":  "META",
	"NETFLIX":   "NFLX",
	"AMD":       "AMD",
	"INTEL":     "INTC",
}

var companyNames = map[string]string{
	"AAPL":  "Apple",
	"MSFT":  "Microsoft",
	"GOOGL": "Google",
	"TSLA":  "Tesla",
	"NVDA":  "Nvidia",
	"AMZN":  "Amazon",
	"META":  "Meta",
	"NFLX":  "Netflix",
	"AMD":   "AMD",
	"INTC":  "Intel",
}

// MockQuotes returns the quote table the reference service answers from. AMZN and INTC are recognised
// tickers without a quote, which the service reports as a data failure.
func MockQuotes() map[string]Quote {
	return map[string]Quote{
		"AAPL": {
			Ticker: "AAPL", Price: 178.45, ChangePct: 0.8,
			PositiveNews: 3, NegativeNews: 2,
			Headlines:      []string{"iPhone 15 production ramps ahead of holiday quarter", "Services revenue hits record"},
			Recommendation: Hold, Confidence: ConfidenceMedium,
			Reasoning: "The stock is consolidating below resistance while the market chases AI names.",
		},
		"MSFT": {
			Ticker: "MSFT", Price: 378.45, ChangePct: 2.1,
			PositiveNews: 5, NegativeNews: 1,
			Headlines:      []string{"Azure growth accelerates on AI workloads", "Copilot adoption beats estimates"},
			Recommendation: Buy, Confidence: ConfidenceHigh,
			Reasoning: "Cloud momentum and steady AI monetisation keep earnings revisions pointing up.",
		},
		"GOOGL": {
			Ticker: "GOOGL", Price: 142.33, ChangePct: 1.7,
			PositiveNews: 3, NegativeNews: 3,
			Headlines:      []string{"Search ad spend stabilises", "Antitrust trial enters closing arguments"},
			Recommendation: Hold, Confidence: ConfidenceMedium,
			Reasoning: "Solid ad trends are offset by regulatory uncertainty.",
		},
		"TSLA": {
			Ticker: "TSLA", Price: 242.67, ChangePct: 3.8,
			PositiveNews: 4, NegativeNews: 2,
			Headlines:      []string{"Delivery estimates revised higher"},
			Recommendation: Buy, Confidence: ConfidenceMedium,
			Reasoning: "Delivery optimism is building, though margins remain the open question.",
		},
		"NVDA": {
			Ticker: "NVDA", Price: 485.23, ChangePct: 4.2,
			PositiveNews: 6, NegativeNews: 1,
			Headlines:      []string{"NVDA beats earnings, raises guidance", "Data center revenue triples year over year"},
			Recommendation: Buy, Confidence: ConfidenceHigh,
			Reasoning: "Earnings beat with raised guidance and heavy volume confirm the move.",
		},
		"AMD": {
			Ticker: "AMD", Price: 145.89, ChangePct: 2.9,
			PositiveNews: 3, NegativeNews: 1,
			Headlines:      []string{"Chipmakers rally in sympathy with Nvidia"},
			Recommendation: Buy, Confidence: ConfidenceMedium,
			Reasoning: "The semiconductor rotation is lifting AMD alongside Nvidia.",
		},
		"META": {
			Ticker: "META", Price: 334.22, ChangePct: -3.1,
			PositiveNews: 1, NegativeNews: 4,
			Headlines:      []string{"META faces new regulatory scrutiny", "EU weighs fines over data transfers"},
			Recommendation: Sell, Confidence: ConfidenceMedium,
			Reasoning: "Fresh regulatory headwinds are weighing on sentiment with no near-term catalyst.",
		},
		"NFLX": {
			Ticker: "NFLX", Price: 445.67, ChangePct: -2.4,
			PositiveNews: 2, NegativeNews: 2,
			Recommendation: Hold, Confidence: ConfidenceLow,
			Reasoning: "Money is rotating out of streaming, but subscriber trends are intact.",
		},
	}
}
