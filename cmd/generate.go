/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/pradeep-pyro/triangle"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/odtmesh/geometry2D"
	"github.com/notargets/odtmesh/readfiles"
	"github.com/notargets/odtmesh/types"
	"github.com/notargets/odtmesh/utils"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Delaunay mesh of the unit square from jittered grid points",
	Long: `Places n+1 nodes along each side of the unit square and jittered grid nodes inside,
triangulates them with Triangle and writes the mesh in SU2 format with one marker per side.
Useful as input for the relax command.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			m      *readfiles.SU2Mesh
			logger *zap.Logger
		)
		n, _ := cmd.Flags().GetInt("numDivisions")
		jitter, _ := cmd.Flags().GetFloat64("jitter")
		seed, _ := cmd.Flags().GetInt64("seed")
		outFile, _ := cmd.Flags().GetString("outputFile")
		if len(outFile) == 0 {
			return errors.New("must supply an output file (-o, --outputFile)")
		}
		if logger, err = utils.NewLogger(viper.GetBool("verbose")); err != nil {
			return
		}
		defer logger.Sync()
		if m, err = GenerateSquareMesh(n, jitter, seed); err != nil {
			return
		}
		logger.Info("generated mesh", zap.Int("nodes", len(m.Points)), zap.Int("cells", len(m.Cells)))
		return readfiles.WriteSU2(outFile, m)
	},
}

func init() {
	rootCmd.AddCommand(GenerateCmd)
	GenerateCmd.Flags().IntP("numDivisions", "n", 10, "number of divisions along each side")
	GenerateCmd.Flags().Float64P("jitter", "j", 0.3, "random displacement of interior nodes as a fraction of the spacing, below 0.5")
	GenerateCmd.Flags().Int64P("seed", "s", 1, "random seed")
	GenerateCmd.Flags().StringP("outputFile", "o", "", "grid file to write in SU2 format")
}

var squareSides = []string{"bottom", "right", "top", "left"}

func GenerateSquareMesh(n int, jitter float64, seed int64) (m *readfiles.SU2Mesh, err error) {
	if n < 1 {
		return nil, errors.Errorf("need at least one division, have %d", n)
	}
	if jitter < 0 || jitter >= 0.5 {
		return nil, errors.Errorf("jitter must lie in [0, 0.5), have %g", jitter)
	}
	var (
		h   = 1. / float64(n)
		rnd = rand.New(rand.NewSource(seed))
		pts = make([][2]float64, 0, (n+1)*(n+1))
	)
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			x, y := float64(i)*h, float64(j)*h
			if i > 0 && i < n && j > 0 && j < n {
				x += jitter * h * (2*rnd.Float64() - 1)
				y += jitter * h * (2*rnd.Float64() - 1)
			}
			pts = append(pts, [2]float64{x, y})
		}
	}
	m = &readfiles.SU2Mesh{
		Points:      make([]r2.Vec, len(pts)),
		MarkerTags: append([]string{}, squareSides...),
	}
	for i, pt := range pts {
		m.Points[i] = r2.Vec{X: pt[0], Y: pt[1]}
	}
	for _, t := range triangle.Delaunay(pts) {
		tri := [3]int{int(t[0]), int(t[1]), int(t[2])}
		if geometry2D.SignedArea(m.Points[tri[0]], m.Points[tri[1]], m.Points[tri[2]]) < 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		m.Cells = append(m.Cells, tri)
	}
	m.MarkerEdges = boundaryMarkers(m.Points, m.Cells)
	return
}

// boundaryMarkers assigns each boundary edge of the unit square mesh to the side it lies on
func boundaryMarkers(points []r2.Vec, cells [][3]int) (markers map[string][][2]int) {
	var (
		tm   = geometry2D.NewTriMesh(points, cells)
		keys []types.EdgeKey
	)
	for en, e := range tm.Edges {
		if e.IsBoundary() {
			keys = append(keys, en)
		}
	}
	types.SortEdgeKeys(keys)
	markers = make(map[string][][2]int)
	for _, en := range keys {
		verts := en.GetVertices(false)
		mid := r2.Scale(0.5, r2.Add(points[verts[0]], points[verts[1]]))
		var side string
		switch {
		case math.Abs(mid.Y) < utils.NODETOL:
			side = "bottom"
		case math.Abs(mid.X-1) < utils.NODETOL:
			side = "right"
		case math.Abs(mid.Y-1) < utils.NODETOL:
			side = "top"
		default:
			side = "left"
		}
		markers[side] = append(markers[side], verts)
	}
	return
}
