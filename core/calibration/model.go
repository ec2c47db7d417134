package calibration

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Kind is the model family.
type Kind string

const (
	// KindLogistic is a fitted logistic regression.
	KindLogistic Kind = "logistic"
	// KindCorrelation is the closed-form correlation fallback.
	KindCorrelation Kind = "correlation"
)

// SchemaVersion is the envelope version written by Save.
const SchemaVersion = 1

var (
	// ErrFeatureMismatch reports a vector or model that does not align with
	// FeatureNames.
	ErrFeatureMismatch = errors.New("calibration: feature mismatch")
	// ErrUnknownKind reports a model kind this build cannot score.
	ErrUnknownKind = errors.New("calibration: unknown model kind")
	// ErrUnsupportedVersion reports an envelope newer than SchemaVersion.
	ErrUnsupportedVersion = errors.New("calibration: unsupported schema version")
	// ErrNoSamples reports a training set without usable rows.
	ErrNoSamples = errors.New("calibration: no training samples")
)

// Model is a loaded calibration model. It is read-only once built.
type Model struct {
	Kind          Kind
	SchemaVersion int
	FeatureNames  []string
	Weights       []float64
	Bias          float64
	TrainedAt     time.Time
	// Samples is the number of rows the model was trained on.
	Samples int
}

// Validate checks the model against this build's feature contract.
func (m *Model) Validate() error {
	if m == nil {
		return errors.New("calibration: nil model")
	}
	switch m.Kind {
	case KindLogistic, KindCorrelation:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, m.Kind)
	}
	if m.SchemaVersion < 1 || m.SchemaVersion > SchemaVersion {
		return fmt.Errorf("%w: %d (supported: %d)", ErrUnsupportedVersion, m.SchemaVersion, SchemaVersion)
	}
	if len(m.FeatureNames) != len(FeatureNames) {
		return fmt.Errorf("%w: model has %d feature names, want %d", ErrFeatureMismatch, len(m.FeatureNames), len(FeatureNames))
	}
	for i, name := range FeatureNames {
		if m.FeatureNames[i] != name {
			return fmt.Errorf("%w: feature %d is %q, want %q", ErrFeatureMismatch, i, m.FeatureNames[i], name)
		}
	}
	if len(m.Weights) != len(FeatureNames) {
		return fmt.Errorf("%w: model has %d weights, want %d", ErrFeatureMismatch, len(m.Weights), len(FeatureNames))
	}
	return nil
}

// Predict returns the probability in [0, 1] that v describes the official
// site. A vector of the wrong length is a caller bug and yields
// ErrFeatureMismatch.
func (m *Model) Predict(v Vector) (float64, error) {
	if len(v) != len(m.Weights) {
		return 0, fmt.Errorf("%w: vector has %d values, want %d", ErrFeatureMismatch, len(v), len(m.Weights))
	}
	return sigmoid(dot(m.Weights, v) + m.Bias), nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func dot(w []float64, x []float64) float64 {
	var s float64
	for i := range w {
		s += w[i] * x[i]
	}
	return s
}
