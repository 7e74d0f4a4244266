package model

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// TrainingMetrics summarizes a fit on the validation split
type TrainingMetrics struct {
	LogLoss      float64 `json:"log_loss"`
	Brier        float64 `json:"brier"`
	AUC          float64 `json:"auc"`
	SamplesTrain int     `json:"samples_train"`
	SamplesVal   int     `json:"samples_val"`
}

// LogLoss is the mean negative log-likelihood of labels under probs
func LogLoss(probs, labels []float64) float64 {
	if len(probs) == 0 {
		return 0
	}
	sum := 0.0
	for i, p := range probs {
		sum += logLossTerm(labels[i], p)
	}
	return sum / float64(len(probs))
}

// BrierScore is the mean squared error of probs against labels
func BrierScore(probs, labels []float64) float64 {
	if len(probs) == 0 {
		return 0
	}
	sum := 0.0
	for i, p := range probs {
		diff := p - labels[i]
		sum += diff * diff
	}
	return sum / float64(len(probs))
}

// AUC is the area under the ROC curve of probs against binary labels
func AUC(probs, labels []float64) float64 {
	if len(probs) == 0 {
		return 0.5
	}
	scores := make([]float64, len(probs))
	copy(scores, probs)
	classes := make([]bool, len(labels))
	for i, y := range labels {
		classes[i] = y > 0.5
	}
	stat.SortWeightedLabeled(scores, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, scores, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}

// CalibrationBucket is one bin of a reliability diagram
type CalibrationBucket struct {
	MeanPredicted float64 `json:"mean_predicted"`
	EmpiricalRate float64 `json:"empirical_rate"`
	Count         int     `json:"count"`
}

// CalibrationCurve buckets predictions and compares mean predicted
// probability with the empirical win rate per bucket
func CalibrationCurve(probs, labels []float64, buckets int) []CalibrationBucket {
	if buckets <= 0 || len(probs) == 0 {
		return nil
	}

	type pair struct{ p, y float64 }
	pairs := make([]pair, len(probs))
	for i := range probs {
		pairs[i] = pair{probs[i], labels[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].p < pairs[j].p })

	out := make([]CalibrationBucket, 0, buckets)
	width := 1.0 / float64(buckets)
	idx := 0
	for b := 0; b < buckets; b++ {
		hi := width * float64(b+1)
		var sumP, sumY float64
		count := 0
		for idx < len(pairs) && (pairs[idx].p <= hi || b == buckets-1) {
			sumP += pairs[idx].p
			sumY += pairs[idx].y
			count++
			idx++
		}
		if count == 0 {
			continue
		}
		out = append(out, CalibrationBucket{
			MeanPredicted: sumP / float64(count),
			EmpiricalRate: sumY / float64(count),
			Count:         count,
		})
	}
	return out
}

// ExpectedCalibrationError is the count-weighted mean absolute gap
// between predicted and empirical rates across buckets
func ExpectedCalibrationError(probs, labels []float64, buckets int) float64 {
	curve := CalibrationCurve(probs, labels, buckets)
	if len(curve) == 0 {
		return 0
	}
	total := 0
	sum := 0.0
	for _, b := range curve {
		total += b.Count
		sum += math.Abs(b.MeanPredicted-b.EmpiricalRate) * float64(b.Count)
	}
	return sum / float64(total)
}
