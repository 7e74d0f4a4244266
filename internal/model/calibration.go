package model

import (
	"math"
	"sort"
)

// Calibration method names
const (
	CalibrationSigmoid  = "sigmoid"
	CalibrationIsotonic = "isotonic"
)

// Calibrator reshapes raw classifier scores so predicted probabilities
// track empirical frequencies
type Calibrator interface {
	Fit(scores, labels []float64) error
	Apply(score float64) float64
}

// PlattCalibrator fits p = sigmoid(A*score + B) on held-out scores
// (Platt scaling). A and B are estimated by gradient descent on the
// calibration split's log loss.
type PlattCalibrator struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Fit estimates the sigmoid parameters
func (c *PlattCalibrator) Fit(scores, labels []float64) error {
	if len(scores) == 0 {
		return nil
	}
	// Work in logit space so an already-calibrated classifier maps to
	// A=1, B=0.
	logits := make([]float64, len(scores))
	for i, s := range scores {
		p := clampProb(s)
		logits[i] = math.Log(p / (1 - p))
	}

	a, b := 1.0, 0.0
	const (
		iters = 2000
		step  = 0.01
	)
	n := float64(len(scores))
	for iter := 0; iter < iters; iter++ {
		gradA, gradB := 0.0, 0.0
		for i, z := range logits {
			p := sigmoid(a*z + b)
			err := p - labels[i]
			gradA += err * z
			gradB += err
		}
		a -= step * gradA / n
		b -= step * gradB / n
	}

	c.A = a
	c.B = b
	return nil
}

// Apply maps a raw score to a calibrated probability
func (c *PlattCalibrator) Apply(score float64) float64 {
	p := clampProb(score)
	z := math.Log(p / (1 - p))
	return sigmoid(c.A*z + c.B)
}

// IsotonicCalibrator fits a monotone step function by pool-adjacent-
// violators and interpolates linearly between block centers
type IsotonicCalibrator struct {
	Thresholds []float64 `json:"thresholds"`
	Outputs    []float64 `json:"outputs"`
}

// Fit runs pool-adjacent-violators over the (score, label) pairs
func (c *IsotonicCalibrator) Fit(scores, labels []float64) error {
	if len(scores) == 0 {
		return nil
	}

	type pair struct{ score, label float64 }
	pairs := make([]pair, len(scores))
	for i := range scores {
		pairs[i] = pair{scores[i], labels[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].score < pairs[j].score })

	type block struct {
		sum    float64
		weight float64
		minX   float64
		maxX   float64
	}
	blocks := make([]block, 0, len(pairs))
	for _, p := range pairs {
		blocks = append(blocks, block{sum: p.label, weight: 1, minX: p.score, maxX: p.score})
		for len(blocks) > 1 {
			last := len(blocks) - 1
			if blocks[last-1].sum/blocks[last-1].weight <= blocks[last].sum/blocks[last].weight {
				break
			}
			blocks[last-1].sum += blocks[last].sum
			blocks[last-1].weight += blocks[last].weight
			blocks[last-1].maxX = blocks[last].maxX
			blocks = blocks[:last]
		}
	}

	c.Thresholds = make([]float64, len(blocks))
	c.Outputs = make([]float64, len(blocks))
	for i, b := range blocks {
		c.Thresholds[i] = (b.minX + b.maxX) / 2
		c.Outputs[i] = b.sum / b.weight
	}
	return nil
}

// Apply interpolates the fitted step function at score
func (c *IsotonicCalibrator) Apply(score float64) float64 {
	n := len(c.Thresholds)
	if n == 0 {
		return score
	}
	if score <= c.Thresholds[0] {
		return c.Outputs[0]
	}
	if score >= c.Thresholds[n-1] {
		return c.Outputs[n-1]
	}
	i := sort.SearchFloat64s(c.Thresholds, score)
	// linear interpolation between neighboring block centers
	x0, x1 := c.Thresholds[i-1], c.Thresholds[i]
	y0, y1 := c.Outputs[i-1], c.Outputs[i]
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(score-x0)/(x1-x0)
}
