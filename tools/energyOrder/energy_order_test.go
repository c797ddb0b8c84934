package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/odtmesh/types"
)

func TestConvergenceStudy(t *testing.T) {
	{ // Test regular grids are self similar, the energy is exactly second order
		cs, err := RunStudy(types.FixedPointUniform, []int{2, 4, 8}, 0, 0)
		require.NoError(t, err)
		for _, order := range cs.Orders(cs.before) {
			assert.InDelta(t, 2, order, 1.e-8)
		}
		assert.Equal(t, cs.before, cs.after)
	}
	{ // Test relaxation lowers the energy of jittered grids
		cs, err := RunStudy(types.FixedPointUniform, []int{4, 8}, 0.3, 20)
		require.NoError(t, err)
		for i := range cs.numDivisions {
			assert.Less(t, cs.after[i], cs.before[i])
		}
		var buf bytes.Buffer
		cs.Print(&buf)
		assert.Contains(t, buf.String(), "order")
		csvFile := filepath.Join(t.TempDir(), "study.csv")
		require.NoError(t, cs.WriteCSV(csvFile))
		data, err := os.ReadFile(csvFile)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		assert.Equal(t, 3, len(lines))
		assert.True(t, strings.HasPrefix(lines[1], "\"unit square, jitter 0.3\",fixed-point-uniform,4,"))
	}
	{ // Test parsing the divisions
		ns, err := parseDivisions("4, 8,16")
		require.NoError(t, err)
		assert.Equal(t, []int{4, 8, 16}, ns)
		_, err = parseDivisions("4,x")
		assert.Error(t, err)
		_, err = parseDivisions("0")
		assert.Error(t, err)
	}
}
