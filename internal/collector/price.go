package collector

import (
	"context"
	"fmt"

	"github.com/bitly/go-simplejson"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// PriceCollector fetches a single spot price per symbol from one exchange.
type PriceCollector struct {
	Name    string
	Fetcher Fetcher
	Target  func(symbol string) string
	Extract func(doc *simplejson.Json) (string, bool)
	Log     *logrus.Entry
}

// NewCoinbaseCollector reads data.amount from the Coinbase spot price endpoint.
func NewCoinbaseCollector(fetcher Fetcher, baseURL, fiat string, log *logrus.Entry) *PriceCollector {
	return &PriceCollector{
		Name:    "coinbase",
		Fetcher: fetcher,
		Target: func(symbol string) string {
			return fmt.Sprintf("%s/v2/prices/%s-%s/spot", baseURL, symbol, fiat)
		},
		Extract: func(doc *simplejson.Json) (string, bool) {
			return stringAt(doc, "data", "amount")
		},
		Log: entryOrDiscard(log),
	}
}

// NewOKXCollector reads data[0].last from the OKX market ticker endpoint.
func NewOKXCollector(fetcher Fetcher, baseURL, quote string, log *logrus.Entry) *PriceCollector {
	return &PriceCollector{
		Name:    "okx",
		Fetcher: fetcher,
		Target: func(symbol string) string {
			return fmt.Sprintf("%s/api/v5/market/ticker?instId=%s-%s", baseURL, symbol, quote)
		},
		Extract: func(doc *simplejson.Json) (string, bool) {
			if doc == nil {
				return "", false
			}
			first, ok := elementAt(doc.Get("data"), 0)
			if !ok {
				return "", false
			}
			return stringAt(first, "last")
		},
		Log: entryOrDiscard(log),
	}
}

// Collect fetches every symbol concurrently. Symbols whose request failed or
// whose document lacks the price are absent from the result.
func (p *PriceCollector) Collect(ctx context.Context, symbols []string) map[string]string {
	results := make([]fetchResult, len(symbols))

	var g errgroup.Group
	for i, sym := range symbols {
		g.Go(func() error {
			doc, err := p.Fetcher.Fetch(ctx, p.Target(sym))
			results[i] = fetchResult{doc: doc, err: err}
			return nil
		})
	}
	_ = g.Wait()

	prices := make(map[string]string, len(symbols))
	for i, sym := range symbols {
		log := p.Log.WithField("symbol", sym)
		if results[i].err != nil {
			log.WithError(results[i].err).Debug("fetch failed")
			continue
		}
		price, ok := p.Extract(results[i].doc)
		if !ok {
			log.Debug("price missing from response")
			continue
		}
		prices[sym] = price
	}
	return prices
}
