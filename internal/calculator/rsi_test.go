package calculator

import (
	"fmt"
	"math"
	"testing"
)

func alternating(n int, low, high float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = low
		} else {
			closes[i] = high
		}
	}
	return closes
}

func TestCalculateRSI_NonDecreasingSaturates(t *testing.T) {
	tests := [][]float64{
		{100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110, 111, 112, 113},
		{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
		{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7},
	}
	for i, closes := range tests {
		rsi, err := CalculateRSI(closes, RSIPeriod)
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		if rsi != 100.0 {
			t.Errorf("case %d: expected 100, got %.4f", i, rsi)
		}
	}
}

func TestCalculateRSI_StrictlyFallingIsZero(t *testing.T) {
	closes := make([]float64, RSIPeriod)
	for i := range closes {
		closes[i] = float64(200 - i)
	}
	rsi, err := CalculateRSI(closes, RSIPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 0 {
		t.Errorf("expected 0, got %.4f", rsi)
	}
}

func TestCalculateRSI_AlternatingGolden(t *testing.T) {
	// 13 differences: 7 gains of 1, 6 losses of 1.
	// avgGain = 7/14, avgLoss = 6/14, RS = 7/6, RSI = 100 - 100*6/13.
	rsi, err := CalculateRSI(alternating(RSIPeriod, 100, 101), RSIPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 100.0 - 600.0/13.0
	if math.Abs(rsi-want) > 1e-9 {
		t.Errorf("expected %.6f, got %.6f", want, rsi)
	}
	if got := fmt.Sprintf("%.2f", rsi); got != "53.85" {
		t.Errorf("expected 53.85, got %s", got)
	}
}

func TestCalculateRSI_ScaleInvariant(t *testing.T) {
	closes := []float64{100, 102, 101, 99, 104, 103, 107, 105, 106, 104, 108, 110, 109, 111}
	base, err := CalculateRSI(closes, RSIPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, k := range []float64{0.001, 0.5, 3, 1000} {
		scaled := make([]float64, len(closes))
		for i, c := range closes {
			scaled[i] = c * k
		}
		got, err := CalculateRSI(scaled, RSIPeriod)
		if err != nil {
			t.Fatalf("k=%v: unexpected error: %v", k, err)
		}
		if math.Abs(got-base) > 1e-9 {
			t.Errorf("k=%v: expected %.9f, got %.9f", k, base, got)
		}
	}
}

func TestCalculateRSI_InRange(t *testing.T) {
	closes := []float64{10, 12, 9, 14, 8, 15, 7, 16, 6, 17, 5, 18, 4, 19}
	rsi, err := CalculateRSI(closes, RSIPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi < 0 || rsi > 100 {
		t.Errorf("RSI out of range: %.4f", rsi)
	}
}

func TestCalculateRSI_OutOfContract(t *testing.T) {
	if _, err := CalculateRSI([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for zero period")
	}
	if _, err := CalculateRSI([]float64{1}, RSIPeriod); err == nil {
		t.Error("expected error for a single close")
	}
}

func TestParseCloses_DropsUnparsable(t *testing.T) {
	got := ParseCloses([]string{"1.5", "abc", "", "2", "3e2"})
	want := []float64{1.5, 2, 300}
	if len(got) != len(want) {
		t.Fatalf("expected %d closes, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
