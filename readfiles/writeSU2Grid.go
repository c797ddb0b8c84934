package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

func WriteSU2(filename string, m *SU2Mesh) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(filename); err != nil {
		return errors.Wrapf(err, "unable to create file %s", filename)
	}
	if err = m.Write(file); err != nil {
		file.Close()
		return errors.Wrapf(err, "writing %s", filename)
	}
	return file.Close()
}

// Write emits the mesh in SU2 format, vertex and element indices are zero based
func (m *SU2Mesh) Write(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "NDIME= 2\n")
	fmt.Fprintf(bw, "NELEM= %d\n", len(m.Cells))
	for k, tri := range m.Cells {
		fmt.Fprintf(bw, "%d %d %d %d %d\n", ELType_Triangle, tri[0], tri[1], tri[2], k)
	}
	fmt.Fprintf(bw, "NPOIN= %d\n", len(m.Points))
	for i, pt := range m.Points {
		fmt.Fprintf(bw, "%.17g %.17g %d\n", pt.X, pt.Y, i)
	}
	fmt.Fprintf(bw, "NMARK= %d\n", len(m.MarkerTags))
	for _, tag := range m.MarkerTags {
		edges := m.MarkerEdges[tag]
		fmt.Fprintf(bw, "MARKER_TAG= %s\n", tag)
		fmt.Fprintf(bw, "MARKER_ELEMS= %d\n", len(edges))
		for _, e := range edges {
			fmt.Fprintf(bw, "%d %d %d\n", ELType_LINE, e[0], e[1])
		}
	}
	return errors.WithStack(bw.Flush())
}
