package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/odtmesh/utils"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE          SU2ElementType = 3
	ELType_Triangle      SU2ElementType = 5
	ELType_Quadrilateral SU2ElementType = 9
)

// SU2Mesh is a 2D triangle mesh with its boundary markers, in file order
type SU2Mesh struct {
	Points      []r2.Vec
	Cells       [][3]int
	MarkerTags  []string
	MarkerEdges map[string][][2]int
}

func ReadSU2(filename string, logger *zap.Logger) (m *SU2Mesh, err error) {
	var (
		file *os.File
	)
	logger = utils.LoggerOrNop(logger)
	logger.Info("reading SU2 file", zap.String("file", filename))
	if file, err = os.Open(filename); err != nil {
		return nil, errors.Wrapf(err, "unable to open file %s", filename)
	}
	defer file.Close()
	if m, err = ParseSU2(file); err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	logger.Info("read SU2 mesh",
		zap.Int("nodes", len(m.Points)),
		zap.Int("cells", len(m.Cells)),
		zap.Strings("markers", m.MarkerTags))
	return
}

func ParseSU2(r io.Reader) (m *SU2Mesh, err error) {
	var (
		reader         = bufio.NewReader(r)
		dimensionality int
		EToV, VXY      *mat.Dense
	)
	if dimensionality, err = readNumber(reader); err != nil {
		return
	}
	if dimensionality != 2 {
		return nil, errors.Errorf("only 2 dimensional meshes are supported, file has NDIME= %d", dimensionality)
	}
	if EToV, err = readElements(reader); err != nil {
		return
	}
	if VXY, err = readVertices(reader); err != nil {
		return
	}
	m = &SU2Mesh{
		Points: pointsFromMatrix(VXY),
		Cells:  cellsFromMatrix(EToV),
	}
	for k, tri := range m.Cells {
		for _, v := range tri {
			if v < 0 || v >= len(m.Points) {
				return nil, errors.Errorf("element %d references vertex %d, mesh has %d vertices",
					k, v, len(m.Points))
			}
		}
	}
	if m.MarkerTags, m.MarkerEdges, err = readBCs(reader); err != nil {
		return nil, err
	}
	return
}

func readBCs(reader *bufio.Reader) (tags []string, BCEdges map[string][][2]int, err error) {
	var (
		nType, NBCs, nEdges int
		v1, v2              int
		label, line         string
	)
	BCEdges = make(map[string][][2]int)
	if NBCs, err = readNumber(reader); err != nil {
		// Markers are optional
		if errors.Cause(err) == io.EOF {
			err = nil
		}
		return
	}
	for n := 0; n < NBCs; n++ {
		if label, err = readLabel(reader); err != nil {
			return
		}
		if nEdges, err = readNumber(reader); err != nil {
			return
		}
		// Duplicate tags, periodic pairs for instance, append to a common slice
		if _, ok := BCEdges[label]; !ok {
			tags = append(tags, label)
		}
		for i := 0; i < nEdges; i++ {
			if line, err = getLineNoComments(reader); err != nil {
				return
			}
			if _, err = fmt.Sscanf(line, "%d %d %d", &nType, &v1, &v2); err != nil {
				return nil, nil, errors.Wrapf(err, "marker %s line [%s]", label, line)
			}
			if SU2ElementType(nType) != ELType_LINE {
				return nil, nil, errors.Errorf("marker %s: BCs should only contain line elements in 2D", label)
			}
			BCEdges[label] = append(BCEdges[label], [2]int{v1, v2})
		}
	}
	return
}

// readVertices returns the Nv x 2 coordinate matrix
func readVertices(reader *bufio.Reader) (VXY *mat.Dense, err error) {
	var (
		Nv, n int
		x, y  float64
		line  string
	)
	if Nv, err = readNumber(reader); err != nil {
		return
	}
	if Nv == 0 {
		return nil, errors.New("mesh has no vertices")
	}
	VXY = mat.NewDense(Nv, 2, nil)
	for i := 0; i < Nv; i++ {
		if line, err = getLineNoComments(reader); err != nil {
			return
		}
		if n, err = fmt.Sscanf(line, "%f %f", &x, &y); err != nil || n != 2 {
			return nil, errors.Errorf("unable to read coordinates of vertex %d from [%s]", i, line)
		}
		VXY.Set(i, 0, x)
		VXY.Set(i, 1, y)
	}
	return
}

// readElements returns the K x 3 element to vertex matrix
func readElements(reader *bufio.Reader) (EToV *mat.Dense, err error) {
	var (
		K, n, nType int
		v1, v2, v3  int
		line        string
	)
	if K, err = readNumber(reader); err != nil {
		return
	}
	if K == 0 {
		return nil, errors.New("mesh has no elements")
	}
	EToV = mat.NewDense(K, 3, nil)
	for k := 0; k < K; k++ {
		if line, err = getLineNoComments(reader); err != nil {
			return
		}
		if n, err = fmt.Sscanf(line, "%d %d %d %d", &nType, &v1, &v2, &v3); err != nil || n != 4 {
			return nil, errors.Errorf("unable to read vertices of element %d from [%s]", k, line)
		}
		if SU2ElementType(nType) != ELType_Triangle {
			return nil, errors.Errorf("element %d has type %d, only triangles (%d) are supported",
				k, nType, ELType_Triangle)
		}
		EToV.Set(k, 0, float64(v1))
		EToV.Set(k, 1, float64(v2))
		EToV.Set(k, 2, float64(v3))
	}
	return
}

func pointsFromMatrix(VXY *mat.Dense) (points []r2.Vec) {
	Nv, _ := VXY.Dims()
	points = make([]r2.Vec, Nv)
	for i := range points {
		points[i] = r2.Vec{X: VXY.At(i, 0), Y: VXY.At(i, 1)}
	}
	return
}

func cellsFromMatrix(EToV *mat.Dense) (cells [][3]int) {
	K, _ := EToV.Dims()
	cells = make([][3]int, K)
	for k := range cells {
		for i := 0; i < 3; i++ {
			cells[k][i] = int(EToV.At(k, i))
		}
	}
	return
}

func getToken(reader *bufio.Reader) (token string, err error) {
	var (
		line string
	)
	if line, err = getLineNoComments(reader); err != nil {
		return
	}
	ind := strings.Index(line, "=")
	if ind < 0 {
		return "", errors.Errorf("badly formed input line [%s], should have an =", line)
	}
	token = line[ind+1:]
	return
}

func readLabel(reader *bufio.Reader) (label string, err error) {
	var (
		token string
	)
	if token, err = getToken(reader); err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%s", &label); err != nil {
		return "", errors.Errorf("unable to read label from token: [%s]", token)
	}
	label = strings.Trim(label, " ")
	return
}

func readNumber(reader *bufio.Reader) (num int, err error) {
	var (
		token string
	)
	if token, err = getToken(reader); err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%d", &num); err != nil {
		return 0, errors.Errorf("unable to read number from token: [%s]", token)
	}
	return
}

// getLineNoComments skips blank lines and lines starting with %
func getLineNoComments(reader *bufio.Reader) (line string, err error) {
	for {
		if line, err = getLine(reader); err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if len(line) != 0 && !strings.HasPrefix(line, "%") {
			return
		}
	}
}

func getLine(reader *bufio.Reader) (line string, err error) {
	line, err = reader.ReadString('\n')
	if err == io.EOF && len(line) != 0 {
		err = nil
	}
	if err != nil {
		return "", errors.WithStack(err)
	}
	line = strings.TrimRight(line, "\r\n")
	return
}
