package collector

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"CoinPulse/internal/model"
)

// Collector runs the three exchange collectors and merges their output into
// one record per symbol.
type Collector struct {
	Binance  *BinanceCollector
	Coinbase *PriceCollector
	OKX      *PriceCollector
	Symbols  []string
	Log      *logrus.Entry
}

// NewCollector creates a new Collector over a fixed symbol universe.
func NewCollector(binance *BinanceCollector, coinbase, okx *PriceCollector, symbols []string, log *logrus.Entry) *Collector {
	return &Collector{
		Binance:  binance,
		Coinbase: coinbase,
		OKX:      okx,
		Symbols:  symbols,
		Log:      entryOrDiscard(log),
	}
}

// Collect takes one snapshot. It never fails: anything that could not be
// fetched is left as model.Unavailable.
func (c *Collector) Collect(ctx context.Context) *model.Snapshot {
	start := time.Now()
	runID := uuid.NewString()
	log := c.Log.WithField("run_id", runID)
	log.WithField("symbols", len(c.Symbols)).Debug("collecting snapshot")

	var (
		binance  map[string]*model.CoinRecord
		coinbase map[string]string
		okx      map[string]string
		g        errgroup.Group
	)
	g.Go(func() error {
		binance = c.Binance.Collect(ctx, c.Symbols)
		return nil
	})
	g.Go(func() error {
		coinbase = c.Coinbase.Collect(ctx, c.Symbols)
		return nil
	})
	g.Go(func() error {
		okx = c.OKX.Collect(ctx, c.Symbols)
		return nil
	})
	_ = g.Wait()

	snap := &model.Snapshot{
		RunID:   runID,
		TakenAt: start,
		Records: make([]*model.CoinRecord, 0, len(c.Symbols)),
	}
	for _, sym := range c.Symbols {
		rec, ok := binance[sym]
		if !ok {
			rec = model.NewCoinRecord(sym)
		}
		if p, ok := coinbase[sym]; ok {
			rec.CoinbasePrice = p
		}
		if p, ok := okx[sym]; ok {
			rec.OKXPrice = p
		}
		snap.Records = append(snap.Records, rec)
	}
	snap.Duration = time.Since(start)

	log.WithFields(logrus.Fields{
		"symbols":     len(snap.Records),
		"unavailable": snap.UnavailableCount(),
		"duration_ms": snap.Duration.Milliseconds(),
	}).Info("snapshot collected")
	return snap
}

func entryOrDiscard(log *logrus.Entry) *logrus.Entry {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
