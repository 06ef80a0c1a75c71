package market

// Trend is the direction of a price move.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Impact grades how much a headline is expected to move prices.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Index is a headline market index.
type Index struct {
	Name   string
	Value  string
	Change string
	Points string
	Trend  Trend
}

// Mover is a stock listed among the day's gainers or losers.
type Mover struct {
	Symbol string
	Change string
	Price  string
	Volume string
}

// NewsItem is a market headline.
type NewsItem struct {
	Headline string
	Age      string
	Impact   Impact
	Breaking bool
}

// Gauge is a labelled sentiment reading. Tone names the CSS class the value is rendered with.
type Gauge struct {
	Label string
	Value string
	Tone  string
}

// Snapshot is the market data shown in the sidebar.
type Snapshot struct {
	Indices     []Index
	VIX         Gauge
	FearGreed   Gauge
	Temperature []Gauge
	Gainers     []Mover
	Losers      []Mover
	News        []NewsItem
}

// MockSnapshot returns the fixed data the sidebar renders. There is no live feed behind it.
func MockSnapshot() Snapshot {
	return Snapshot{
		Indices: []Index{
			{Name: "S&P 500", Value: "4,567.23", Change: "+0.8%", Points: "+18.45", Trend: TrendUp},
			{Name: "NASDAQ", Value: "14,234.56", Change: "+1.2%", Points: "+168.90", Trend: TrendUp},
			{Name: "DOW", Value: "35,678.90", Change: "-0.3%", Points: "-107.23", Trend: TrendDown},
		},
		VIX:       Gauge{Label: "VIX", Value: "18.3 (-0.8)", Tone: "price-down"},
		FearGreed: Gauge{Label: "Fear & Greed", Value: "62 (Greed)", Tone: "tone-warm"},
		Temperature: []Gauge{
			{Label: "Sector Leader", Value: "Technology", Tone: "price-up"},
			{Label: "Put/Call Ratio", Value: "0.87", Tone: "price-neutral"},
			{Label: "Options Flow", Value: "Bullish", Tone: "tone-warm"},
		},
		Gainers: []Mover{
			{Symbol: "NVDA", Change: "+4.2%", Price: "$485.23", Volume: "2.3M"},
			{Symbol: "TSLA", Change: "+3.8%", Price: "$242.67", Volume: "1.8M"},
			{Symbol: "AMD", Change: "+2.9%", Price: "$145.89", Volume: "950K"},
			{Symbol: "MSFT", Change: "+2.1%", Price: "$378.45", Volume: "1.2M"},
			{Symbol: "GOOGL", Change: "+1.7%", Price: "$142.33", Volume: "890K"},
		},
		Losers: []Mover{
			{Symbol: "META", Change: "-3.1%", Price: "$334.22", Volume: "2.1M"},
			{Symbol: "NFLX", Change: "-2.4%", Price: "$445.67", Volume: "750K"},
			{Symbol: "PYPL", Change: "-1.9%", Price: "$67.89", Volume: "1.5M"},
			{Symbol: "UBER", Change: "-1.6%", Price: "$56.34", Volume: "680K"},
			{Symbol: "SNAP", Change: "-1.3%", Price: "$12.45", Volume: "3.2M"},
		},
		News: []NewsItem{
			{Headline: "NVDA beats earnings, raises guidance", Age: "2m ago", Impact: ImpactHigh, Breaking: true},
			{Headline: "Fed signals potential rate pause", Age: "15m ago", Impact: ImpactHigh},
			{Headline: "META faces new regulatory scrutiny", Age: "32m ago", Impact: ImpactMedium},
			{Headline: "Oil prices surge on supply concerns", Age: "1h ago", Impact: ImpactMedium},
			{Headline: "Tech sector shows unusual options flow", Age: "1h ago", Impact: ImpactLow},
		},
	}
}
