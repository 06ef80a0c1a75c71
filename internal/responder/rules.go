package responder

// rule maps a set of keywords to a canned reply. A rule matches when the lowercased input contains any
// of its keywords.
type rule struct {
	name     string
	keywords []string
	reply    string
}

// cannedRules are tried in order; the first match wins.
var cannedRules = []rule{
	{
		name:     "nvda",
		keywords: []string{"nvda", "nvidia"},
		reply: "🚀 **NVDA Analysis**: Strong momentum today with +4.2% gains to $485.23\n\n" +
			"📈 **Key Levels**: Resistance at $490, Support at $470\n" +
			"📊 **Volume**: 2.3x average (very bullish)\n" +
			"💡 **Catalyst**: Better-than-expected earnings + raised guidance\n\n" +
			"**Related plays**: AMD (+2.9%), AVGO, TSM showing sympathy moves. Semiconductor sector rotating " +
			"strong with unusual call activity.\n\n" +
			"Want me to dive deeper into the options flow or check other semi plays?",
	},
	{
		name:     "movers",
		keywords: []string{"market movers", "gainers", "moving"},
		reply: "📊 **Today's Market Leaders**:\n\n" +
			"🟢 **Top Gainers**:\n" +
			"• NVDA: +4.2% - Earnings beat driving semi rally\n" +
			"• TSLA: +3.8% - Delivery optimism building\n" +
			"• AMD: +2.9% - Riding NVDA coattails\n\n" +
			"🔴 **Notable Declines**:\n" +
			"• META: -3.1% - New regulatory headwinds\n" +
			"• NFLX: -2.4% - Sector rotation out of streaming\n\n" +
			"**🎯 Key Observation**: Semiconductor rotation is the strongest we've seen this week. Tech leading " +
			"overall market.\n\n" +
			"Which sector interests you most?",
	},
	{
		name:     "news",
		keywords: []string{"news", "breaking"},
		reply: "⚡ **Market-Moving Headlines**:\n\n" +
			"🔥 **Top Priority**:\n" +
			"1. **NVDA Earnings Beat** - Driving 4%+ rally, lifting entire semi sector\n" +
			"2. **Fed Rate Pause Signals** - Officials hinting at potential pause next meeting\n\n" +
			"📰 **Also Watching**:\n" +
			"3. **META Regulatory Pressure** - New antitrust concerns weighing on stock\n" +
			"4. **Oil Supply Concerns** - Crude up 2.1% on geopolitical tensions\n\n" +
			"The NVDA story is creating the biggest sector rotation this week. Tech money flowing fast.\n\n" +
			"**Need specifics on any of these stories?**",
	},
	{
		name:     "aapl",
		keywords: []string{"aapl", "apple"},
		reply: "🍎 **AAPL Technical Snapshot**:\n\n" +
			"📈 **Current**: $178.45 (+0.8%)\n" +
			"🎯 **Key Levels**: Support $175 | Resistance $182\n" +
			"📊 **Volume**: Below average (consolidation mode)\n\n" +
			"**📱 Upcoming Catalysts**:\n" +
			"• iPhone 15 production ramp\n" +
			"• Services growth trajectory\n" +
			"• China market recovery signs\n\n" +
			"**Options Activity**: Calls slightly favored, but nothing unusual. AAPL in wait-and-see mode while " +
			"market focuses on AI/semiconductor plays.\n\n" +
			"Want technical analysis or fundamental deep-dive?",
	},
}

const defaultReply = "I'm analyzing that for you right now... 🔍\n\n" +
	"Could you be more specific about which aspect interests you most? I can provide:\n\n" +
	"📊 **Technical Analysis** - Price levels, volume, momentum\n" +
	"📰 **News Impact** - How headlines are moving prices\n" +
	"💹 **Options Flow** - What smart money is doing\n" +
	"🏢 **Sector Analysis** - Rotation patterns and themes\n\n" +
	"What would be most helpful for your trading decisions?"
