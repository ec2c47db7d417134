package utils

import (
	"io"

	"go.uber.org/zap"
)

// CloseWithLog closes c and logs a close failure through the global zap
// logger instead of returning it. It is meant for deferred body closes where
// the primary error of the caller must not be overridden.
func CloseWithLog(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		zap.L().Warn("failed to close resource", zap.Error(err))
	}
}
