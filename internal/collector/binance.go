package collector

import (
	"context"
	"fmt"

	"github.com/bitly/go-simplejson"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"CoinPulse/internal/calculator"
	"CoinPulse/internal/model"
)

type binanceEndpoint int

const (
	endpointPrice binanceEndpoint = iota
	endpointFunding
	endpointTicker24h
	endpointLongShort
	endpointKlines
	binanceEndpointCount
)

var binanceEndpointNames = [binanceEndpointCount]string{"price", "funding", "ticker_24h", "long_short", "klines"}

func (e binanceEndpoint) String() string { return binanceEndpointNames[e] }

const (
	klineInterval   = "1h"
	longShortPeriod = "5m"
	klineCloseIndex = 4
)

// BinanceCollector gathers spot price, funding rate, 24h change, long/short
// account ratio and hourly RSI from Binance spot and USDⓈ-M futures.
type BinanceCollector struct {
	Fetcher    Fetcher
	SpotURL    string
	FuturesURL string
	Quote      string // quote asset appended to each symbol, e.g. USDT
	Log        *logrus.Entry
}

// NewBinanceCollector creates a BinanceCollector.
func NewBinanceCollector(fetcher Fetcher, spotURL, futuresURL, quote string, log *logrus.Entry) *BinanceCollector {
	return &BinanceCollector{
		Fetcher:    fetcher,
		SpotURL:    spotURL,
		FuturesURL: futuresURL,
		Quote:      quote,
		Log:        entryOrDiscard(log),
	}
}

func (b *BinanceCollector) targets(symbol string) [binanceEndpointCount]string {
	pair := symbol + b.Quote
	var t [binanceEndpointCount]string
	t[endpointPrice] = fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", b.SpotURL, pair)
	t[endpointFunding] = fmt.Sprintf("%s/fapi/v1/premiumIndex?symbol=%s", b.FuturesURL, pair)
	t[endpointTicker24h] = fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s", b.SpotURL, pair)
	// limit=1 makes the single returned period the most recent one.
	t[endpointLongShort] = fmt.Sprintf("%s/futures/data/globalLongShortAccountRatio?symbol=%s&period=%s&limit=1",
		b.FuturesURL, pair, longShortPeriod)
	t[endpointKlines] = fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		b.SpotURL, pair, klineInterval, calculator.RSIPeriod)
	return t
}

type fetchResult struct {
	doc *simplejson.Json
	err error
}

// Collect issues every endpoint for every symbol at once and waits for all of
// them. The returned map holds a record for each requested symbol, even when
// all of its requests failed.
func (b *BinanceCollector) Collect(ctx context.Context, symbols []string) map[string]*model.CoinRecord {
	results := make([][binanceEndpointCount]fetchResult, len(symbols))

	var g errgroup.Group
	for i, sym := range symbols {
		targets := b.targets(sym)
		for e := range targets {
			g.Go(func() error {
				doc, err := b.Fetcher.Fetch(ctx, targets[e])
				results[i][e] = fetchResult{doc: doc, err: err}
				return nil
			})
		}
	}
	_ = g.Wait()

	records := make(map[string]*model.CoinRecord, len(symbols))
	for i, sym := range symbols {
		records[sym] = b.merge(sym, &results[i])
	}
	return records
}

func (b *BinanceCollector) merge(symbol string, res *[binanceEndpointCount]fetchResult) *model.CoinRecord {
	rec := model.NewCoinRecord(symbol)
	log := b.Log.WithField("symbol", symbol)

	for e := range res {
		if res[e].err != nil {
			log.WithField("endpoint", binanceEndpoint(e).String()).WithError(res[e].err).Debug("fetch failed")
		}
	}

	if v, ok := stringAt(res[endpointPrice].doc, "price"); ok {
		rec.BinancePrice = v
	}
	if v, ok := fundingRate(log, res[endpointFunding].doc); ok {
		rec.FundingRate = v
	}
	if v, ok := priceChange(res[endpointTicker24h].doc); ok {
		rec.PriceChange24h = v
	}
	if v, ok := longShortRatio(log, res[endpointLongShort].doc); ok {
		rec.LongShortRatio = v
	}
	if v, ok := klineRSI(log, res[endpointKlines].doc); ok {
		rec.RSI = v
	}
	return rec
}

// parseDecimal falls back to zero on unparsable text. A zero from here cannot
// be told apart from a real zero in the report.
func parseDecimal(log *logrus.Entry, field, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.WithFields(logrus.Fields{"field": field, "value": s}).Debug("unparsable number, using 0")
		return decimal.Zero
	}
	return d
}

// fundingRate renders lastFundingRate as a percentage with 4 decimals. The
// float64 value is what gets rounded, so ties follow binary rounding rather
// than the exact decimal.
func fundingRate(log *logrus.Entry, doc *simplejson.Json) (string, bool) {
	s, ok := stringAt(doc, "lastFundingRate")
	if !ok {
		return "", false
	}
	rate := parseDecimal(log, "lastFundingRate", s).InexactFloat64()
	return fmt.Sprintf("%.4f%%", rate*100), true
}

func priceChange(doc *simplejson.Json) (string, bool) {
	s, ok := stringAt(doc, "priceChangePercent")
	if !ok {
		return "", false
	}
	return s + "%", true
}

// longShortRatio divides longAccount by shortAccount of the first period
// returned. A zero short side yields 0. Like fundingRate, the quotient is a
// float64 before rounding.
func longShortRatio(log *logrus.Entry, doc *simplejson.Json) (string, bool) {
	first, ok := elementAt(doc, 0)
	if !ok {
		return "", false
	}
	longS, okLong := stringAt(first, "longAccount")
	shortS, okShort := stringAt(first, "shortAccount")
	if !okLong || !okShort {
		return "", false
	}
	long := parseDecimal(log, "longAccount", longS)
	short := parseDecimal(log, "shortAccount", shortS)

	var ratio float64
	if !short.IsZero() {
		ratio = long.InexactFloat64() / short.InexactFloat64()
	}
	return fmt.Sprintf("%.2f", ratio), true
}

// klineRSI derives RSI from the kline closes. Any count of valid closes other
// than RSIPeriod leaves RSI unavailable.
func klineRSI(log *logrus.Entry, doc *simplejson.Json) (string, bool) {
	raw, ok := stringsAtIndex(doc, klineCloseIndex)
	if !ok {
		return "", false
	}
	closes := calculator.ParseCloses(raw)
	if len(closes) != calculator.RSIPeriod {
		log.WithField("closes", len(closes)).Debug("kline count mismatch, RSI skipped")
		return "", false
	}
	rsi, err := calculator.CalculateRSI(closes, calculator.RSIPeriod)
	if err != nil {
		log.WithError(err).Debug("RSI calculation failed")
		return "", false
	}
	return fmt.Sprintf("%.2f", rsi), true
}
