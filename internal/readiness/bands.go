package readiness

// Known intake vocabulary. The forms submit these exact strings; anything
// else takes the fallback noted at each lookup site.

// Debt band representative monthly midpoints in dollars.
var debtMidpoints = map[string]float64{
	"Under $200":      100,
	"$200 - $499":     350,
	"$500 - $799":     650,
	"$800 - $1,199":   1000,
	"$1,200 - $1,799": 1500,
	"$1,800 - $2,499": 2150,
	"$2,500+":         3000,
}

// defaultDebtMidpoint is assumed when the band is missing or unrecognized.
const defaultDebtMidpoint = 500.0

// Credit band points, 30 max.
var creditPoints = map[string]int{
	"Excellent (740+)":       30,
	"Good (670-739)":         25,
	"Fair (580-669)":         15,
	"Needs Work (below 580)": 5,
	"I don't know":           10,
}

// worstCreditBand triggers the automatic red light.
const worstCreditBand = "Needs Work (below 580)"

// Time-at-address points, 10 max.
var addressPoints = map[string]int{
	"2+ years":         10,
	"1-2 years":        7,
	"Less than 1 year": 4,
}

// Timeline points, 10 max.
var timelinePoints = map[string]int{
	"ASAP - ready now!":      10,
	"1-3 months":             10,
	"3-6 months":             8,
	"6-12 months":            5,
	"12+ months":             3,
	"Just exploring options": 2,
}

// urgentTimelines combine with a thin down payment to force a red light.
var urgentTimelines = map[string]bool{
	"ASAP - ready now!": true,
	"1-3 months":        true,
}

// DebtBandMidpoint returns the representative monthly dollar figure for a
// debt band, defaulting to 500 for unknown bands.
func DebtBandMidpoint(band string) float64 {
	if mid, ok := debtMidpoints[band]; ok {
		return mid
	}
	return defaultDebtMidpoint
}

// KnownDebtBands returns the recognized debt band strings.
func KnownDebtBands() []string {
	bands := make([]string, 0, len(debtMidpoints))
	for b := range debtMidpoints {
		bands = append(bands, b)
	}
	return bands
}

// KnownCreditBand reports whether the credit band string is recognized.
func KnownCreditBand(band string) bool {
	_, ok := creditPoints[band]
	return ok
}

// KnownAddressBand reports whether the time-at-address string is recognized.
func KnownAddressBand(band string) bool {
	_, ok := addressPoints[band]
	return ok
}

// KnownTimeline reports whether the timeline string is recognized.
func KnownTimeline(timeline string) bool {
	_, ok := timelinePoints[timeline]
	return ok
}

// KnownDebtBand reports whether the debt band string is recognized.
func KnownDebtBand(band string) bool {
	_, ok := debtMidpoints[band]
	return ok
}

// UrgentTimeline reports whether the timeline counts as urgent for
// routing and the thin down payment override.
func UrgentTimeline(timeline string) bool {
	return urgentTimelines[timeline]
}
