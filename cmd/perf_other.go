//go:build !linux

package cmd

import "go.uber.org/zap"

func countInstructions(logger *zap.Logger, f func() error) error {
	logger.Warn("instruction counting needs linux perf events, running without it")
	return f()
}
