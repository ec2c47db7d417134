package sitefinder

import (
	"fmt"
	"os"

	"github.com/leofalp/sitefinder/core/calibration"
	"github.com/leofalp/sitefinder/internal/utils"
)

// LoadModel reads a calibration model file.
func LoadModel(path string) (*calibration.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening model: %w", err)
	}
	defer utils.CloseWithLog(f)

	m, err := calibration.Load(f)
	if err != nil {
		return nil, fmt.Errorf("error loading model %s: %w", path, err)
	}
	return m, nil
}

// SaveModel writes m to path, replacing any existing file.
func SaveModel(path string, m *calibration.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating model file: %w", err)
	}
	if err := calibration.Save(f, m); err != nil {
		_ = f.Close()
		return fmt.Errorf("error writing model: %w", err)
	}
	return f.Close()
}
