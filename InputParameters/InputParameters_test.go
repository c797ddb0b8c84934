package InputParameters

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/odtmesh/types"
)

var inputYAML = []byte(`
Title: "Jittered square"
Method: nonlinear
Tolerance: 1.e-10
MaxSteps: 250
Omega: 0.8
Verbose: true
StepSnapshotTemplate: "step%03d.png"
`)

func TestRelaxParameters(t *testing.T) {
	{ // Test parsing a complete file
		rp := NewRelaxParameters()
		require.NoError(t, rp.Parse(inputYAML))
		assert.Equal(t, "Jittered square", rp.Title)
		assert.Equal(t, 1.e-10, rp.Tolerance)
		assert.Equal(t, 250, rp.MaxSteps)
		assert.Equal(t, 0.8, rp.Omega)
		assert.True(t, rp.Verbose)
		assert.Equal(t, "step%03d.png", rp.StepSnapshotTemplate)
		rm, err := rp.RelaxMethod()
		require.NoError(t, err)
		assert.Equal(t, types.NonlinearOptimizationUniform, rm)
		var buf bytes.Buffer
		rp.Print(&buf)
		assert.Contains(t, buf.String(), "= Tolerance")
		assert.Contains(t, buf.String(), "[step%03d.png]")
	}
	{ // Test missing keys keep their defaults
		rp := NewRelaxParameters()
		require.NoError(t, rp.Parse([]byte("MaxSteps: 7\n")))
		assert.Equal(t, 7, rp.MaxSteps)
		assert.Equal(t, 1.e-8, rp.Tolerance)
		assert.Equal(t, types.FixedPointUniform.String(), rp.Method)
	}
	{ // Test invalid values are rejected
		for _, input := range []string{
			"Method: laplacian\n",
			"Tolerance: -1\n",
			"MaxSteps: -3\n",
			"Omega: 1.5\n",
			"MaxSteps: [1, 2]\n",
		} {
			rp := NewRelaxParameters()
			assert.Errorf(t, rp.Parse([]byte(input)), input)
		}
	}
}
