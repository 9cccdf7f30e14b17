package marketdata

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// fallbackWeeks is the length of the synthetic series, matching the window
// the chart renders for real weekly data.
const fallbackWeeks = 52

// SyntheticSeries generates a random-walk weekly price series ending at the
// given date. The walk is seeded from the symbol so the same stock renders
// the same fallback across refreshes within a session.
func SyntheticSeries(symbol string, end time.Time) *Series {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	// Start somewhere plausible between $20 and $220.
	price := 20 + rng.Float64()*200

	points := make([]PricePoint, fallbackWeeks)
	start := end.AddDate(0, 0, -7*(fallbackWeeks-1))
	for i := 0; i < fallbackWeeks; i++ {
		step := (rng.Float64() - 0.5) * 0.08 // +/- 4% weekly move
		price *= 1 + step
		if price < 1 {
			price = 1
		}
		date := start.AddDate(0, 0, 7*i)
		points[i] = PricePoint{
			Date:  date.Format("2006-01-02"),
			Close: float64(int(price*100)) / 100,
		}
	}

	return &Series{Symbol: symbol, Points: points, Synthetic: true}
}
