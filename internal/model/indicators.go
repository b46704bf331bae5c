package model

// Unavailable is rendered for any field that could not be fetched or derived.
const Unavailable = "N/A"

// CoinRecord holds the merged market view of one symbol. Every field is text
// and independently optional: a field that failed stays Unavailable.
type CoinRecord struct {
	Symbol         string
	BinancePrice   string
	CoinbasePrice  string
	OKXPrice       string
	FundingRate    string // percent, 4 decimals
	PriceChange24h string // percent as reported by the exchange
	LongShortRatio string // 2 decimals
	RSI            string // 0~100, 2 decimals
}

// NewCoinRecord returns a record with every field set to Unavailable.
func NewCoinRecord(symbol string) *CoinRecord {
	return &CoinRecord{
		Symbol:         symbol,
		BinancePrice:   Unavailable,
		CoinbasePrice:  Unavailable,
		OKXPrice:       Unavailable,
		FundingRate:    Unavailable,
		PriceChange24h: Unavailable,
		LongShortRatio: Unavailable,
		RSI:            Unavailable,
	}
}

// Cells returns the record's values in report column order, symbol first.
func (r *CoinRecord) Cells() []string {
	return []string{
		r.Symbol,
		r.BinancePrice,
		r.CoinbasePrice,
		r.OKXPrice,
		r.FundingRate,
		r.PriceChange24h,
		r.LongShortRatio,
		r.RSI,
	}
}

// UnavailableCount counts the data fields (symbol excluded) still Unavailable.
func (r *CoinRecord) UnavailableCount() int {
	n := 0
	for _, c := range r.Cells()[1:] {
		if c == Unavailable {
			n++
		}
	}
	return n
}
