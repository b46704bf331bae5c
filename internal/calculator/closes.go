package calculator

import "strconv"

// ParseCloses converts close prices given as text into floats. Entries that do
// not parse are dropped, so the result may be shorter than raw.
func ParseCloses(raw []string) []float64 {
	closes := make([]float64, 0, len(raw))
	for _, s := range raw {
		c, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		closes = append(closes, c)
	}
	return closes
}
