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
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/odtmesh/InputParameters"
	"github.com/notargets/odtmesh/geometry2D"
	"github.com/notargets/odtmesh/odt"
	"github.com/notargets/odtmesh/readfiles"
	"github.com/notargets/odtmesh/relax"
	"github.com/notargets/odtmesh/types"
	"github.com/notargets/odtmesh/utils"
)

type RelaxFunc func(points []r2.Vec, cells [][3]int, tol float64, maxSteps int,
	opts *relax.Options) ([]r2.Vec, [][3]int, error)

var RelaxMethods = map[types.RelaxMethod]RelaxFunc{
	types.FixedPointUniform:            odt.FixedPointUniform,
	types.FixedPointDensityPreserving:  odt.FixedPointDensityPreserving,
	types.NonlinearOptimizationUniform: odt.NonlinearOptimizationUniform,
}

// RelaxCmd represents the relax command
var RelaxCmd = &cobra.Command{
	Use:   "relax",
	Short: "Relax a triangle mesh toward an Optimal Delaunay Triangulation",
	Long: `Reads a 2D triangle mesh in SU2 format, moves its interior nodes to lower the ODT
energy and writes the relaxed mesh. Boundary nodes and markers are kept.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			rp     *InputParameters.RelaxParameters
			logger *zap.Logger
		)
		gridFile, _ := cmd.Flags().GetString("gridFile")
		outFile, _ := cmd.Flags().GetString("outputFile")
		if len(gridFile) == 0 {
			return errors.New("must supply a grid file (-F, --gridFile) in SU2 format")
		}
		if rp, err = loadParameters(); err != nil {
			return
		}
		if logger, err = utils.NewLogger(rp.Verbose); err != nil {
			return
		}
		defer logger.Sync()
		return withProfiling(logger, func() error {
			return RunRelax(gridFile, outFile, rp, os.Stdout, logger)
		})
	},
}

func init() {
	rootCmd.AddCommand(RelaxCmd)
	RelaxCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in SU2 (.su2) format")
	RelaxCmd.Flags().StringP("outputFile", "o", "", "Relaxed grid file to write in SU2 format")
	RelaxCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for relaxation parameters like:\n\t- Method\n\t- Tolerance\n\t- MaxSteps")
	RelaxCmd.Flags().StringP("method", "m", types.FixedPointUniform.String(), "fixed-point-uniform (fpu), fixed-point-density-preserving (fpd) or nonlinear-optimization-uniform (nonlinear)")
	RelaxCmd.Flags().Float64P("tol", "t", 1.e-8, "convergence tolerance, a node displacement for fixed point methods, a gradient norm for nonlinear")
	RelaxCmd.Flags().IntP("maxSteps", "n", 100, "maximum number of steps")
	RelaxCmd.Flags().Float64("omega", 1, "relaxation factor of the fixed point methods")
	RelaxCmd.Flags().String("snapshots", "", "fmt template of per step snapshot images, e.g. step%03d.png")
	for _, name := range []string{"inputParametersFile", "method", "tol", "maxSteps", "omega", "snapshots"} {
		_ = viper.BindPFlag(name, RelaxCmd.Flags().Lookup(name))
	}
}

// loadParameters layers the defaults, the parameters file, then config file, environment and flags
func loadParameters() (rp *InputParameters.RelaxParameters, err error) {
	var (
		data []byte
	)
	rp = InputParameters.NewRelaxParameters()
	if file := viper.GetString("inputParametersFile"); len(file) != 0 {
		if data, err = os.ReadFile(file); err != nil {
			return nil, errors.Wrapf(err, "unable to read parameters file %s", file)
		}
		if err = rp.Parse(data); err != nil {
			return nil, err
		}
	}
	if viper.IsSet("method") {
		rp.Method = viper.GetString("method")
	}
	if viper.IsSet("tol") {
		rp.Tolerance = viper.GetFloat64("tol")
	}
	if viper.IsSet("maxSteps") {
		rp.MaxSteps = viper.GetInt("maxSteps")
	}
	if viper.IsSet("omega") {
		rp.Omega = viper.GetFloat64("omega")
	}
	if viper.IsSet("snapshots") {
		rp.StepSnapshotTemplate = viper.GetString("snapshots")
	}
	if viper.IsSet("verbose") {
		rp.Verbose = viper.GetBool("verbose")
	}
	return rp, rp.Validate()
}

// RunRelax relaxes the mesh in gridFile with the chosen method and writes it to outFile when set
func RunRelax(gridFile, outFile string, rp *InputParameters.RelaxParameters, out io.Writer,
	logger *zap.Logger) (err error) {
	var (
		m  *readfiles.SU2Mesh
		rm types.RelaxMethod
	)
	if m, err = readfiles.ReadSU2(gridFile, logger); err != nil {
		return
	}
	if rm, err = rp.RelaxMethod(); err != nil {
		return
	}
	rp.Print(out)
	opts := &relax.Options{
		Omega:                rp.Omega,
		Verbose:              rp.Verbose,
		StepSnapshotTemplate: rp.StepSnapshotTemplate,
		Out:                  out,
		Logger:               logger,
	}
	logger.Info("relaxing",
		zap.Stringer("method", rm),
		zap.Float64("energy", odt.Energy(geometry2D.NewTriMesh(m.Points, m.Cells), rm != types.FixedPointDensityPreserving)))
	if m.Points, m.Cells, err = RelaxMethods[rm](m.Points, m.Cells, rp.Tolerance, rp.MaxSteps, opts); err != nil {
		return errors.Wrapf(err, "%s failed", rm)
	}
	logger.Debug("resources", zap.String("blas", utils.BLASBackend), zap.String("memory", utils.GetMemUsage()))
	if len(outFile) == 0 {
		return
	}
	if err = readfiles.WriteSU2(outFile, m); err != nil {
		return
	}
	fmt.Fprintf(out, "Wrote %s\n", outFile)
	return
}
