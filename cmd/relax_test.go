package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notargets/odtmesh/InputParameters"
	"github.com/notargets/odtmesh/geometry2D"
	"github.com/notargets/odtmesh/readfiles"
	"github.com/notargets/odtmesh/types"
)

func TestGenerateSquareMesh(t *testing.T) {
	{ // Test counts and markers
		n := 6
		m, err := GenerateSquareMesh(n, 0.3, 3)
		require.NoError(t, err)
		assert.Equal(t, (n+1)*(n+1), len(m.Points))
		// 2N - h - 2 triangles for N nodes, h of them on the hull
		assert.Equal(t, 2*n*n, len(m.Cells))
		assert.Equal(t, squareSides, m.MarkerTags)
		for _, side := range squareSides {
			assert.Equal(t, n, len(m.MarkerEdges[side]), side)
		}
		tm := geometry2D.NewTriMesh(m.Points, m.Cells)
		for k := range m.Cells {
			assert.Greater(t, tm.CellSignedAreas[k], 0.)
		}
		assert.Empty(t, tm.NonDelaunayEdges())
	}
	{ // Test invalid arguments
		_, err := GenerateSquareMesh(0, 0.3, 1)
		assert.Error(t, err)
		_, err = GenerateSquareMesh(4, 0.5, 1)
		assert.Error(t, err)
	}
}

func TestRunRelax(t *testing.T) {
	dir := t.TempDir()
	gridFile := filepath.Join(dir, "square.su2")
	m, err := GenerateSquareMesh(5, 0.35, 7)
	require.NoError(t, err)
	require.NoError(t, readfiles.WriteSU2(gridFile, m))
	for rm := range RelaxMethods {
		outFile := filepath.Join(dir, rm.String()+".su2")
		rp := InputParameters.NewRelaxParameters()
		rp.Method = rm.String()
		rp.MaxSteps = 20
		var out bytes.Buffer
		require.NoError(t, RunRelax(gridFile, outFile, rp, &out, zap.NewNop()), rm.String())
		assert.Contains(t, out.String(), "Final")
		mm, err := readfiles.ReadSU2(outFile, nil)
		require.NoError(t, err)
		require.Equal(t, len(m.Points), len(mm.Points))
		assert.Equal(t, len(m.Cells), len(mm.Cells))
		assert.Equal(t, m.MarkerEdges, mm.MarkerEdges)
		isInterior := geometry2D.NewTriMesh(m.Points, m.Cells).IsInteriorNode
		for i := range m.Points {
			if !isInterior[i] {
				assert.Equal(t, m.Points[i], mm.Points[i])
			}
		}
	}
	{ // Test a missing grid file
		rp := InputParameters.NewRelaxParameters()
		assert.Error(t, RunRelax(filepath.Join(dir, "missing.su2"), "", rp, &bytes.Buffer{}, zap.NewNop()))
	}
}

func TestLoadParameters(t *testing.T) {
	defer viper.Reset()
	file := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(file, []byte("Method: fpd\nMaxSteps: 12\nOmega: 0.5\n"), 0644))
	viper.Set("inputParametersFile", file)
	viper.Set("maxSteps", 30)
	rp, err := loadParameters()
	require.NoError(t, err)
	rm, err := rp.RelaxMethod()
	require.NoError(t, err)
	assert.Equal(t, types.FixedPointDensityPreserving, rm)
	// Flags and config override the parameters file
	assert.Equal(t, 30, rp.MaxSteps)
	assert.Equal(t, 0.5, rp.Omega)

	viper.Set("omega", 2.)
	_, err = loadParameters()
	assert.Error(t, err)
}
