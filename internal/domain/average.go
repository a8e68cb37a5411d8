package domain

// Average reduces a history to a per-pollutant arithmetic mean. Negative
// snapshot values are excluded from both sum and count. A pollutant with no
// valid snapshots keeps its current level.
func Average(history History, current Levels) Levels {
	out := current
	for _, p := range Pollutants() {
		var sum float64
		var valid int
		for _, snap := range history {
			if snap[p] < 0 {
				continue
			}
			sum += snap[p]
			valid++
		}
		if valid > 0 {
			out[p] = sum / float64(valid)
		}
	}
	return out
}
