// Package model implements the calibrated win-probability model: a
// logistic classifier over engineered features followed by a
// calibration step, behind a small capability interface so alternative
// classifiers can be substituted.
package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Classifier is the capability interface for probability models
type Classifier interface {
	Fit(X [][]float64, y []float64) error
	PredictProba(x []float64) float64
}

// LogisticRegression is an L2-regularized logistic classifier fit by
// batch gradient descent. Inputs are standardized internally; the
// scaling parameters persist with the weights.
type LogisticRegression struct {
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
	Means        []float64 `json:"means"`
	Stds         []float64 `json:"stds"`
	LearningRate float64   `json:"learning_rate"`
	MaxIter      int       `json:"max_iter"`
	L2           float64   `json:"l2"`
	Tolerance    float64   `json:"tolerance"`
}

// NewLogisticRegression creates a classifier with standard
// hyperparameters
func NewLogisticRegression(maxIter int) *LogisticRegression {
	if maxIter <= 0 {
		maxIter = 1000
	}
	return &LogisticRegression{
		LearningRate: 0.1,
		MaxIter:      maxIter,
		L2:           1e-4,
		Tolerance:    1e-7,
	}
}

// Fit estimates weights by minimizing regularized negative
// log-likelihood. Deterministic for a given input.
func (lr *LogisticRegression) Fit(X [][]float64, y []float64) error {
	n := len(X)
	d := len(X[0])

	lr.fitScaler(X)
	scaled := mat.NewDense(n, d, nil)
	for i, row := range X {
		for j, v := range row {
			scaled.Set(i, j, lr.scale(j, v))
		}
	}

	w := mat.NewVecDense(d, nil)
	bias := 0.0
	grad := mat.NewVecDense(d, nil)

	prevLoss := math.Inf(1)
	for iter := 0; iter < lr.MaxIter; iter++ {
		grad.Zero()
		gradBias := 0.0
		loss := 0.0

		for i := 0; i < n; i++ {
			row := scaled.RowView(i)
			z := mat.Dot(row, w) + bias
			p := sigmoid(z)
			err := p - y[i]
			grad.AddScaledVec(grad, err, row)
			gradBias += err
			loss += logLossTerm(y[i], p)
		}

		inv := 1.0 / float64(n)
		w.AddScaledVec(w, -lr.LearningRate*inv, grad)
		w.AddScaledVec(w, -lr.LearningRate*lr.L2, w)
		bias -= lr.LearningRate * inv * gradBias

		loss = loss*inv + 0.5*lr.L2*mat.Dot(w, w)
		if math.Abs(prevLoss-loss) < lr.Tolerance {
			break
		}
		prevLoss = loss
	}

	lr.Weights = make([]float64, d)
	for j := 0; j < d; j++ {
		lr.Weights[j] = w.AtVec(j)
	}
	lr.Bias = bias
	return nil
}

// PredictProba returns the raw (uncalibrated) probability for one
// sample
func (lr *LogisticRegression) PredictProba(x []float64) float64 {
	z := lr.Bias
	for j, v := range x {
		z += lr.Weights[j] * lr.scale(j, v)
	}
	return sigmoid(z)
}

func (lr *LogisticRegression) fitScaler(X [][]float64) {
	n := len(X)
	d := len(X[0])
	lr.Means = make([]float64, d)
	lr.Stds = make([]float64, d)

	for j := 0; j < d; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += X[i][j]
		}
		mean := sum / float64(n)
		variance := 0.0
		for i := 0; i < n; i++ {
			diff := X[i][j] - mean
			variance += diff * diff
		}
		std := math.Sqrt(variance / float64(n))
		if std == 0 {
			std = 1
		}
		lr.Means[j] = mean
		lr.Stds[j] = std
	}
}

func (lr *LogisticRegression) scale(j int, v float64) float64 {
	return (v - lr.Means[j]) / lr.Stds[j]
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1.0 + e)
}

func logLossTerm(y, p float64) float64 {
	p = clampProb(p)
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}

func clampProb(p float64) float64 {
	const eps = 1e-12
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}
