package collector

import (
	"context"
	"testing"
)

func TestCoinbaseCollector(t *testing.T) {
	f := newRouteFetcher().
		on("http://coinbase.test/v2/prices/BTC-USD/spot", `{"data":{"amount":"65012.34","base":"BTC","currency":"USD"}}`).
		on("http://coinbase.test/v2/prices/ETH-USD/spot", `{"errors":[{"id":"not_found","message":"Invalid base currency"}]}`).
		on("http://coinbase.test/v2/prices/SOL-USD/spot", `{"data":{"amount":150}}`)
	c := NewCoinbaseCollector(f, testCB, "USD", nil)

	prices := c.Collect(context.Background(), []string{"BTC", "ETH", "SOL", "DOT"})
	if len(prices) != 1 {
		t.Fatalf("expected only BTC to be present, got %v", prices)
	}
	if prices["BTC"] != "65012.34" {
		t.Errorf("expected 65012.34, got %q", prices["BTC"])
	}
	for _, sym := range []string{"ETH", "SOL", "DOT"} {
		if _, ok := prices[sym]; ok {
			t.Errorf("%s should be absent", sym)
		}
	}
}

func TestOKXCollector(t *testing.T) {
	f := newRouteFetcher().
		on("http://okx.test/api/v5/market/ticker?instId=BTC-USDT", `{"code":"0","msg":"","data":[{"instId":"BTC-USDT","last":"64999.9"}]}`).
		on("http://okx.test/api/v5/market/ticker?instId=ETH-USDT", `{"code":"51001","msg":"Instrument ID does not exist","data":[]}`).
		on("http://okx.test/api/v5/market/ticker?instId=SOL-USDT", `not json`)
	c := NewOKXCollector(f, testOKX, "USDT", nil)

	prices := c.Collect(context.Background(), []string{"BTC", "ETH", "SOL"})
	if prices["BTC"] != "64999.9" {
		t.Errorf("expected 64999.9, got %q", prices["BTC"])
	}
	if _, ok := prices["ETH"]; ok {
		t.Error("ETH should be absent for an empty data array")
	}
	if _, ok := prices["SOL"]; ok {
		t.Error("SOL should be absent for a malformed body")
	}
	if len(f.seen) != 3 {
		t.Errorf("expected 3 requests, got %d", len(f.seen))
	}
}

func TestPriceCollector_AllFail(t *testing.T) {
	c := NewOKXCollector(failingFetcher(), testOKX, "USDT", nil)
	if prices := c.Collect(context.Background(), []string{"BTC", "ETH"}); len(prices) != 0 {
		t.Errorf("expected empty map, got %v", prices)
	}
}
