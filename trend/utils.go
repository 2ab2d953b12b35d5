package trend

// ChangeRate returns the percentage change from old to new. A zero old value
// has no defined rate and yields 0.
func ChangeRate(new, old float64) float64 {
	if old == 0 {
		return float64(0)
	}

	return (new - old) / old * 100
}

func mean(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum int64
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
