package calibration

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kaptinlin/jsonrepair"
)

// envelope is the on-disk form of a Model.
type envelope struct {
	Kind          Kind      `json:"kind"`
	SchemaVersion int       `json:"schema_version"`
	FeatureNames  []string  `json:"feature_names"`
	Weights       []float64 `json:"weights"`
	Bias          float64   `json:"bias"`
	TrainedAt     time.Time `json:"trained_at"`
	Samples       int       `json:"samples"`
}

// Save writes m as an indented JSON envelope.
func Save(w io.Writer, m *Model) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("error saving model: %w", err)
	}
	data, err := json.MarshalIndent(envelope{
		Kind:          m.Kind,
		SchemaVersion: m.SchemaVersion,
		FeatureNames:  m.FeatureNames,
		Weights:       m.Weights,
		Bias:          m.Bias,
		TrainedAt:     m.TrainedAt,
		Samples:       m.Samples,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding model: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("error writing model: %w", err)
	}
	return nil
}

// Load reads a model written by Save. Syntactically broken JSON is repaired
// once; a model that does not match this build's feature contract is
// rejected.
func Load(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading model: %w", err)
	}

	env, err := decodeStrict(data)
	if err != nil && isSyntaxError(err) {
		repaired, repairErr := jsonrepair.JSONRepair(string(data))
		if repairErr != nil {
			return nil, fmt.Errorf("error decoding model: %w (repair failed: %v)", err, repairErr)
		}
		env, err = decodeStrict([]byte(repaired))
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding model: %w", err)
	}

	m := &Model{
		Kind:          env.Kind,
		SchemaVersion: env.SchemaVersion,
		FeatureNames:  env.FeatureNames,
		Weights:       env.Weights,
		Bias:          env.Bias,
		TrainedAt:     env.TrainedAt,
		Samples:       env.Samples,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeStrict(data []byte) (envelope, error) {
	var env envelope
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return envelope{}, err
	}
	if dec.More() {
		return envelope{}, errors.New("calibration: trailing data after model")
	}
	return env, nil
}

func isSyntaxError(err error) bool {
	var syntaxErr *json.SyntaxError
	return errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF)
}
