package calculator

import "errors"

// RSIPeriod is the lookback used for the hourly RSI column.
const RSIPeriod = 14

// CalculateRSI computes a simple-average RSI over closes (oldest first).
//
// Gains and losses of consecutive closes are summed and both divided by
// period, not by the number of differences. With RSIPeriod closes that means
// 13 differences over a divisor of 14; existing reports depend on this scale.
// The caller is responsible for passing exactly period closes.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < 2 {
		return 0, errors.New("need at least two closes")
	}

	var gain, loss float64
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change >= 0 {
			gain += change
		} else {
			loss -= change
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
