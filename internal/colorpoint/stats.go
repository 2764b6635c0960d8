package colorpoint

import "gonum.org/v1/gonum/stat"

// Mean returns the per-channel mean of points. The result carries index -1.
func Mean(points []ColorPoint) ColorPoint {
	if len(points) == 0 {
		return ColorPoint{Index: -1}
	}
	c1 := make([]float64, len(points))
	c2 := make([]float64, len(points))
	c3 := make([]float64, len(points))
	for k, p := range points {
		c1[k], c2[k], c3[k] = p.C1, p.C2, p.C3
	}
	return ColorPoint{
		C1:    stat.Mean(c1, nil),
		C2:    stat.Mean(c2, nil),
		C3:    stat.Mean(c3, nil),
		Index: -1,
	}
}

// Spread returns the summed distance of points to their mean under m.
func Spread(m Metric, points []ColorPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	mean := Mean(points)
	var sum float64
	for _, p := range points {
		sum += m.Distance(p, mean)
	}
	return sum
}
