package types

import (
	"fmt"
	"strings"
)

type RelaxMethod uint8

const (
	FixedPointUniform RelaxMethod = iota
	FixedPointDensityPreserving
	NonlinearOptimizationUniform
)

var RelaxMethodNameMap = map[string]RelaxMethod{
	"fixed-point-uniform":            FixedPointUniform,
	"fpu":                            FixedPointUniform,
	"fixed-point-density-preserving": FixedPointDensityPreserving,
	"fpd":                            FixedPointDensityPreserving,
	"nonlinear-optimization-uniform": NonlinearOptimizationUniform,
	"nonlinear":                      NonlinearOptimizationUniform,
	"bfgs":                           NonlinearOptimizationUniform,
}

func (rm RelaxMethod) String() string {
	switch rm {
	case FixedPointUniform:
		return "fixed-point-uniform"
	case FixedPointDensityPreserving:
		return "fixed-point-density-preserving"
	case NonlinearOptimizationUniform:
		return "nonlinear-optimization-uniform"
	}
	return fmt.Sprintf("RelaxMethod(%d)", uint8(rm))
}

func NewRelaxMethod(label string) (rm RelaxMethod, err error) {
	var (
		ok bool
	)
	if rm, ok = RelaxMethodNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown relaxation method: [%s]", label)
	}
	return
}
