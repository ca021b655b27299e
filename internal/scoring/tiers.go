package scoring

// Tier groups investors sharing one reputation score.
type Tier struct {
	Score     int
	Investors []string
}

// DefaultTiers is the static VC reputation table. Scores are per investor
// mention, not per candidate.
var DefaultTiers = []Tier{
	{Score: 10, Investors: []string{"Paradigm", "a16z Crypto", "Polychain Capital"}},
	{Score: 8, Investors: []string{"Binance Labs", "Coinbase Ventures", "Multicoin Capital"}},
	{Score: 5, Investors: []string{"OKX Ventures", "Dragonfly", "Robot Ventures"}},
}
