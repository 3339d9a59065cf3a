package cart

/*
Gini takes the number of samples of each class in a set and returns the
Gini impurity of the set, 1 - Σ p_c² with p_c the proportion of class c.
An empty set has an impurity of 0.
*/
func Gini(counts []int) float64 {
	total := sum(counts)
	if total == 0 {
		return 0.0
	}
	result := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		result -= p * p
	}
	return result
}

/*
WeightedGini takes the class counts on both sides of a split and returns
the impurity of the split: the average of the Gini impurity of each side
weighted by its number of samples.
*/
func WeightedGini(left, right []int) float64 {
	nl, nr := sum(left), sum(right)
	if nl+nr == 0 {
		return 0.0
	}
	return (float64(nl)*Gini(left) + float64(nr)*Gini(right)) / float64(nl+nr)
}

/*
Thresholds takes the sorted distinct values of a feature and returns the
candidate thresholds to split on it: the midpoints between every pair of
consecutive values, in ascending order.
*/
func Thresholds(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	thresholds := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		thresholds = append(thresholds, values[i-1]+(values[i]-values[i-1])/2)
	}
	return thresholds
}

func sum(counts []int) int {
	var total int
	for _, c := range counts {
		total += c
	}
	return total
}
