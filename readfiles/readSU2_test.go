package readfiles

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func skipLines(n int, reader *bufio.Reader) {
	for i := 0; i < n; i++ {
		_, _ = getLine(reader)
	}
}

func TestReadSU2(t *testing.T) {
	{ // Test reading the file structure
		reader := bufio.NewReader(bytes.NewReader(inputFile))

		dim, err := readNumber(reader)
		require.NoError(t, err)
		assert.Equal(t, 2, dim)
		nelem, _ := readNumber(reader)
		assert.Equal(t, 22, nelem)
		skipLines(22, reader)
		npts, _ := readNumber(reader)
		assert.Equal(t, 18, npts)
		skipLines(18, reader)
		nmark, _ := readNumber(reader)
		assert.Equal(t, 4, nmark)
		labels := []string{"periodic-left", "periodic-right", "top", "bottom"}
		nptsBC := []int{2, 2, 4, 4}
		for n := 0; n < nmark; n++ {
			mark, err := readLabel(reader)
			require.NoError(t, err)
			assert.Equal(t, labels[n], mark)
			nm, _ := readNumber(reader)
			assert.Equal(t, nptsBC[n], nm)
			skipLines(nm, reader)
		}
	}
	{ // Test read elements and vertices
		reader := bufio.NewReader(bytes.NewReader(inputFile))
		_, _ = readNumber(reader)
		EToV, err := readElements(reader)
		require.NoError(t, err)
		K, _ := EToV.Dims()
		assert.Equal(t, 22, K)
		assert.Equal(t, 17, int(EToV.At(K-1, 2)))
		VXY, err := readVertices(reader)
		require.NoError(t, err)
		Nv, _ := VXY.Dims()
		assert.Equal(t, 18, Nv)
		assert.Equal(t, -7.100939331382065, VXY.At(Nv-1, 0))
		assert.Equal(t, 2.889910324036197, VXY.At(Nv-1, 1))
	}
	{ // Test the full parse
		m, err := ParseSU2(bytes.NewReader(inputFile))
		require.NoError(t, err)
		assert.Equal(t, 18, len(m.Points))
		assert.Equal(t, 22, len(m.Cells))
		assert.Equal(t, [3]int{15, 11, 17}, m.Cells[21])
		assert.Equal(t, r2.Vec{X: 10, Y: 4.999999999992398}, m.Points[7])
		assert.Equal(t, []string{"periodic-left", "periodic-right", "top", "bottom"}, m.MarkerTags)
		assert.Equal(t, [][2]int{{0, 4}, {4, 5}, {5, 6}, {6, 1}}, m.MarkerEdges["bottom"])
	}
	{ // Test a file without markers
		cut := bytes.Index(inputFile, []byte("NMARK"))
		m, err := ParseSU2(bytes.NewReader(inputFile[:cut]))
		require.NoError(t, err)
		assert.Equal(t, 0, len(m.MarkerTags))
	}
}

func TestReadSU2Errors(t *testing.T) {
	cases := map[string]string{
		"3D":          "NDIME= 3\n",
		"quads":       "NDIME= 2\nNELEM= 1\n9 0 1 2 3 0\n",
		"truncated":   "NDIME= 2\nNELEM= 2\n5 0 1 2 0\n",
		"no equals":   "NDIME 2\n",
		"bad vertex":  "NDIME= 2\nNELEM= 1\n5 0 1 7 0\nNPOIN= 3\n0 0 0\n1 0 1\n0 1 2\n",
		"bad numbers": "NDIME= 2\nNELEM= 1\n5 0 1 2 0\nNPOIN= 3\n0 0 0\n1 x 1\n0 1 2\n",
	}
	for name, input := range cases {
		_, err := ParseSU2(strings.NewReader(input))
		assert.Errorf(t, err, name)
	}
	_, err := ReadSU2(filepath.Join(t.TempDir(), "missing.su2"), nil)
	assert.Error(t, err)
}

func TestWriteSU2(t *testing.T) {
	m, err := ParseSU2(bytes.NewReader(inputFile))
	require.NoError(t, err)
	filename := filepath.Join(t.TempDir(), "out.su2")
	require.NoError(t, WriteSU2(filename, m))
	mm, err := ReadSU2(filename, nil)
	require.NoError(t, err)
	assert.Equal(t, m, mm)
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "NDIME= 2\nNELEM= 22\n5 5 6 13 0\n"))
}

var (
	inputFile = []byte(` %This is an example input file in SU2 format, output from gmsh
% Comments can appear outside of data areas
NDIME= 2
% Comments can appear outside of data areas
NELEM= 22
5 5 6 13 0
5 9 10 12 1
5 12 5 13 2
5 9 12 13 3
5 13 6 14 4
5 12 10 15 5
5 8 9 13 6
5 4 5 12 7
5 1 7 14 8
5 6 1 14 9
5 3 11 15 10
5 10 3 15 11
5 8 13 16 12
5 4 12 17 13
5 13 14 16 14
5 12 15 17 15
5 7 2 16 16
5 11 0 17 17
5 2 8 16 18
5 0 4 17 19
5 14 7 16 20
5 15 11 17 21
% Comments can appear outside of data areas
NPOIN= 18
-10 0 0
10 0 1
10 10 2
-10 10 3
-5.000000000004944 0 4
-1.231725832440134e-11 0 5
4.99999999999384 0 6
10 4.999999999992398 7
5.000000000004944 10 8
1.231725832440134e-11 10 9
-4.99999999999384 10 10
-10 5 11
-2.500000000008632 4.330127018915808 12
2.50000000000863 5.669872981084192 13
6.712741669205853 3.668411415814691 14
-6.712741669205681 6.331588584184096 15
7.100939331384343 7.110089675963254 16
-7.100939331382065 2.889910324036197 17
NMARK= 4
% Comments can appear outside of data areas
MARKER_TAG= periodic-left
% Comments can appear outside of data areas
MARKER_ELEMS= 2
3 3 11
3 11 0
% Comments can appear outside of data areas
MARKER_TAG= periodic-right
MARKER_ELEMS= 2
3 1 7
3 7 2
% Comments can appear outside of data areas
MARKER_TAG= top
MARKER_ELEMS= 4
3 2 8
3 8 9
3 9 10
3 10 3
MARKER_TAG= bottom
% Comments can appear outside of data areas
MARKER_ELEMS= 4
3 0 4
3 4 5
3 5 6
3 6 1
% Comments can appear outside of data areas
`)
)
