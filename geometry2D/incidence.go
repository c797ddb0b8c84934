package geometry2D

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/spatial/r2"
)

// The star of node i is row i of the node to cell incidence matrix
func newStarIncidence(numNodes int, cells [][3]int) (spNToC *sparse.CSR) {
	if numNodes == 0 || len(cells) == 0 {
		return
	}
	spNToCTmp := sparse.NewDOK(numNodes, len(cells))
	for k, tri := range cells {
		for _, v := range tri {
			spNToCTmp.Set(v, k, 1)
		}
	}
	spNToC = spNToCTmp.ToCSR()
	return
}

// StarSum returns, for every node, the sum of the per cell values over the cells of its star
func (tm *TriMesh) StarSum(cellValues []float64) (sums []float64) {
	sums = make([]float64, len(tm.Points))
	if tm.incidence == nil {
		return
	}
	tm.incidence.DoNonZero(func(i, k int, v float64) {
		sums[i] += v * cellValues[k]
	})
	return
}

func (tm *TriMesh) StarSumVec(cellValues []r2.Vec) (sums []r2.Vec) {
	sums = make([]r2.Vec, len(tm.Points))
	if tm.incidence == nil {
		return
	}
	tm.incidence.DoNonZero(func(i, k int, v float64) {
		sums[i] = r2.Add(sums[i], r2.Scale(v, cellValues[k]))
	})
	return
}

// StarCounts is the number of cells in each node's star
func (tm *TriMesh) StarCounts() (counts []float64) {
	ones := make([]float64, len(tm.Cells))
	for k := range ones {
		ones[k] = 1
	}
	return tm.StarSum(ones)
}
