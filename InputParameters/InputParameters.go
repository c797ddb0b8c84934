package InputParameters

import (
	"fmt"
	"io"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"

	"github.com/notargets/odtmesh/types"
)

// Parameters obtained from the YAML input file, ghodss/yaml decodes through the json tags
type RelaxParameters struct {
	Title                string  `json:"Title"`
	Method               string  `json:"Method"`    // fpu, fpd or nonlinear, see types.RelaxMethodNameMap
	Tolerance            float64 `json:"Tolerance"` // Displacement for fixed point methods, gradient norm for nonlinear
	MaxSteps             int     `json:"MaxSteps"`
	Omega                float64 `json:"Omega"` // Fixed point relaxation factor
	Verbose              bool    `json:"Verbose"`
	StepSnapshotTemplate string  `json:"StepSnapshotTemplate"`
}

func NewRelaxParameters() *RelaxParameters {
	return &RelaxParameters{
		Title:     "ODT relaxation",
		Method:    types.FixedPointUniform.String(),
		Tolerance: 1.e-8,
		MaxSteps:  100,
		Omega:     1,
	}
}

// Parse overlays the values present in data on the receiver
func (rp *RelaxParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, rp); err != nil {
		return errors.Wrap(err, "unable to parse relaxation parameters")
	}
	return rp.Validate()
}

func (rp *RelaxParameters) Validate() (err error) {
	if _, err = rp.RelaxMethod(); err != nil {
		return
	}
	switch {
	case rp.Tolerance < 0:
		return errors.Errorf("Tolerance must be non negative, have %g", rp.Tolerance)
	case rp.MaxSteps < 0:
		return errors.Errorf("MaxSteps must be non negative, have %d", rp.MaxSteps)
	case rp.Omega < 0 || rp.Omega > 1:
		return errors.Errorf("Omega must lie in [0,1], have %g", rp.Omega)
	}
	return
}

func (rp *RelaxParameters) RelaxMethod() (types.RelaxMethod, error) {
	return types.NewRelaxMethod(rp.Method)
}

func (rp *RelaxParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", rp.Title)
	fmt.Fprintf(w, "[%s]\t= Method\n", rp.Method)
	fmt.Fprintf(w, "%8.3e\t\t= Tolerance\n", rp.Tolerance)
	fmt.Fprintf(w, "[%d]\t\t\t\t= MaxSteps\n", rp.MaxSteps)
	fmt.Fprintf(w, "%8.5f\t\t= Omega\n", rp.Omega)
	fmt.Fprintf(w, "%v\t\t\t= Verbose\n", rp.Verbose)
	if len(rp.StepSnapshotTemplate) != 0 {
		fmt.Fprintf(w, "[%s]\t= StepSnapshotTemplate\n", rp.StepSnapshotTemplate)
	}
}
