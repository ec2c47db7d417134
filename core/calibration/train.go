package calibration

import (
	"fmt"
	"math"
	"time"
)

// Method selects the training algorithm.
type Method string

const (
	// MethodLogistic fits a logistic regression, falling back to
	// MethodCorrelation when every label is the same.
	MethodLogistic Method = "logistic"
	// MethodCorrelation computes the closed-form correlation model.
	MethodCorrelation Method = "correlation"
)

// ParseMethod parses a method name. The empty string is MethodLogistic.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", MethodLogistic:
		return MethodLogistic, nil
	case MethodCorrelation:
		return MethodCorrelation, nil
	default:
		return "", fmt.Errorf("calibration: unknown method %q", s)
	}
}

// Sample is one labeled feature vector. Label is 1 for a correct candidate
// and 0 otherwise.
type Sample struct {
	Features Vector
	Label    int
}

// Logistic regression hyper-parameters.
const (
	DefaultLearningRate = 0.5
	DefaultEpochs       = 2000
	// DefaultL2 is the ridge strength; the penalty is scaled by 1/n.
	DefaultL2 = 1.0
)

// standardizeEps keeps the correlation model finite for constant features.
const standardizeEps = 1e-6

// now is replaced in tests.
var now = time.Now

// Train fits a model of the given method on samples.
func Train(samples []Sample, method Method) (*Model, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	for i, s := range samples {
		if len(s.Features) != NumFeatures {
			return nil, fmt.Errorf("%w: sample %d has %d values, want %d", ErrFeatureMismatch, i, len(s.Features), NumFeatures)
		}
		if s.Label != 0 && s.Label != 1 {
			return nil, fmt.Errorf("calibration: sample %d has label %d, want 0 or 1", i, s.Label)
		}
	}

	var (
		kind    Kind
		weights []float64
		bias    float64
	)
	switch method {
	case MethodLogistic:
		if singleClass(samples) {
			kind = KindCorrelation
			weights, bias = fitCorrelation(samples)
		} else {
			kind = KindLogistic
			weights, bias = fitLogistic(samples, DefaultLearningRate, DefaultEpochs, DefaultL2)
		}
	case MethodCorrelation:
		kind = KindCorrelation
		weights, bias = fitCorrelation(samples)
	default:
		return nil, fmt.Errorf("calibration: unknown method %q", method)
	}

	return &Model{
		Kind:          kind,
		SchemaVersion: SchemaVersion,
		FeatureNames:  append([]string(nil), FeatureNames...),
		Weights:       weights,
		Bias:          bias,
		TrainedAt:     now().UTC(),
		Samples:       len(samples),
	}, nil
}

func singleClass(samples []Sample) bool {
	for _, s := range samples[1:] {
		if s.Label != samples[0].Label {
			return false
		}
	}
	return true
}

// fitLogistic minimizes the mean log-loss plus (l2/2n)·|w|² by batch
// gradient descent. The bias is not regularized.
func fitLogistic(samples []Sample, rate float64, epochs int, l2 float64) ([]float64, float64) {
	n := float64(len(samples))
	w := make([]float64, NumFeatures)
	var b float64
	grad := make([]float64, NumFeatures)

	for range epochs {
		for j := range grad {
			grad[j] = 0
		}
		var gb float64
		for _, s := range samples {
			diff := sigmoid(dot(w, s.Features)+b) - float64(s.Label)
			for j, x := range s.Features {
				grad[j] += diff * x
			}
			gb += diff
		}
		for j := range w {
			w[j] -= rate * (grad[j]/n + l2*w[j]/n)
		}
		b -= rate * gb / n
	}
	return w, b
}

// fitCorrelation computes weights = Xsᵀ(y−ȳ) / (n·(σy+eps)) on z-scored
// features and bias = −w·mean(X). Standard deviations are population ones.
func fitCorrelation(samples []Sample) ([]float64, float64) {
	n := float64(len(samples))
	mean := make([]float64, NumFeatures)
	var yMean float64
	for _, s := range samples {
		for j, x := range s.Features {
			mean[j] += x
		}
		yMean += float64(s.Label)
	}
	for j := range mean {
		mean[j] /= n
	}
	yMean /= n

	std := make([]float64, NumFeatures)
	var yVar float64
	for _, s := range samples {
		for j, x := range s.Features {
			d := x - mean[j]
			std[j] += d * d
		}
		dy := float64(s.Label) - yMean
		yVar += dy * dy
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / n)
	}
	yStd := math.Sqrt(yVar / n)

	w := make([]float64, NumFeatures)
	for _, s := range samples {
		dy := float64(s.Label) - yMean
		for j, x := range s.Features {
			w[j] += (x - mean[j]) / (std[j] + standardizeEps) * dy
		}
	}
	for j := range w {
		w[j] /= n * (yStd + standardizeEps)
	}
	return w, -dot(w, mean)
}
