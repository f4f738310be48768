package weather

import "time"

// AggregateDay combines several providers' readings for the same day into a
// Day. Temperatures are averaged; the condition is picked by majority, ties
// going to the more severe condition.
func AggregateDay(date time.Time, readings []DailyReading) Day {
	if len(readings) == 0 {
		return Day{Date: date, Weather: ConditionUnknown}
	}

	var sumAvg, sumMin, sumMax float64

	conditionCounts := make(map[Condition]int)
	providers := make([]string, 0, len(readings))

	for _, r := range readings {
		sumAvg += r.AvgC
		sumMin += r.MinC
		sumMax += r.MaxC

		if r.Condition.Known() {
			conditionCounts[r.Condition]++
		}
		providers = append(providers, r.ProviderName)
	}

	n := float64(len(readings))

	// Pick majority condition.
	bestCond := ConditionUnknown
	bestCount := 0
	for _, cond := range Conditions {
		if count := conditionCounts[cond]; count > bestCount {
			bestCount = count
			bestCond = cond
		}
	}

	return Day{
		Date:    date,
		Weather: bestCond,
		Temp: Temp{
			Avg: sumAvg / n,
			Min: sumMin / n,
			Max: sumMax / n,
		},
		Providers: providers,
	}
}

// DayOf truncates t to midnight UTC.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
