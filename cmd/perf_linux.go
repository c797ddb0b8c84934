//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
	"go.uber.org/zap"
)

func countInstructions(logger *zap.Logger, f func() error) (err error) {
	var ran bool
	pv, perr := perf.CPUInstructions(func() error {
		ran = true
		err = f()
		return err
	})
	switch {
	case !ran:
		logger.Warn("perf counters unavailable", zap.Error(perr))
		return f()
	case err == nil && perr != nil:
		logger.Warn("perf counters unavailable", zap.Error(perr))
	case pv != nil:
		logger.Info("perf", zap.Uint64("instructions", pv.Value),
			zap.Uint64("timeRunningNs", pv.TimeRunning))
	}
	return
}
