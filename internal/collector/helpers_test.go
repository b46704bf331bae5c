package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bitly/go-simplejson"
)

const (
	testSpot    = "http://spot.test"
	testFutures = "http://futures.test"
	testCB      = "http://coinbase.test"
	testOKX     = "http://okx.test"
)

var errUnreachable = errors.New("connection refused")

// routeFetcher answers exact targets with canned JSON bodies and fails
// everything else. It records every target it was asked for.
type routeFetcher struct {
	mu     sync.Mutex
	routes map[string]string
	seen   []string
}

func newRouteFetcher() *routeFetcher {
	return &routeFetcher{routes: make(map[string]string)}
}

func (r *routeFetcher) on(target, body string) *routeFetcher {
	r.routes[target] = body
	return r
}

func (r *routeFetcher) Fetch(_ context.Context, target string) (*simplejson.Json, error) {
	r.mu.Lock()
	r.seen = append(r.seen, target)
	body, ok := r.routes[target]
	r.mu.Unlock()
	if !ok {
		return nil, errUnreachable
	}
	return simplejson.NewJson([]byte(body))
}

func failingFetcher() Fetcher {
	return FetcherFunc(func(context.Context, string) (*simplejson.Json, error) {
		return nil, errUnreachable
	})
}

// klinesJSON builds a Binance kline array whose close column holds closes.
func klinesJSON(closes ...string) string {
	rows := make([]string, len(closes))
	for i, c := range closes {
		open := 1700000000000 + int64(i)*3600000
		rows[i] = fmt.Sprintf(`[%d,"1.0","2.0","0.5",%s,"10.0",%d,"100.0",42,"5.0","50.0","0"]`,
			open, quoteIfNumber(c), open+3599999)
	}
	return "[" + strings.Join(rows, ",") + "]"
}

func quoteIfNumber(s string) string {
	if s == "null" {
		return s
	}
	return `"` + s + `"`
}

func alternatingCloses(n int) []string {
	out := make([]string, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = "100"
		} else {
			out[i] = "101"
		}
	}
	return out
}
