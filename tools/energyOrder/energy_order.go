package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/odtmesh/geometry2D"
	"github.com/notargets/odtmesh/odt"
	"github.com/notargets/odtmesh/relax"
	"github.com/notargets/odtmesh/types"
)

var (
	csvFile   string
	divisions = "4,8,16,32"
	method    = types.FixedPointUniform.String()
	jitter    = 0.3
	maxSteps  = 50
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file to write the entries of the convergence study to")
	divisionsPtr := flag.String("n", divisions, "comma separated divisions of the unit square")
	methodPtr := flag.String("method", method, "relaxation method")
	jitterPtr := flag.Float64("jitter", jitter, "random displacement of the interior nodes as a fraction of the spacing")
	maxStepsPtr := flag.Int("maxSteps", maxSteps, "maximum number of relaxation steps")
	flag.Parse()
	csvFile, divisions, method, jitter, maxSteps = *csvFilePtr, *divisionsPtr, *methodPtr, *jitterPtr, *maxStepsPtr

	ns, err := parseDivisions(divisions)
	if err != nil {
		fmt.Println(err)
		flag.Usage()
		os.Exit(1)
	}
	rm, err := types.NewRelaxMethod(method)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	cs, err := RunStudy(rm, ns, jitter, maxSteps)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	cs.Print(os.Stdout)
	if len(csvFile) != 0 {
		if err = cs.WriteCSV(csvFile); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
}

// ConvergenceStudy holds the ODT energy before and after relaxation for a sequence of refinements
type ConvergenceStudy struct {
	title         string
	method        types.RelaxMethod
	numDivisions  []int
	before, after []float64
}

func NewConvergenceStudy(title string, method types.RelaxMethod) *ConvergenceStudy {
	return &ConvergenceStudy{
		title:  title,
		method: method,
	}
}

func (cs *ConvergenceStudy) Add(numDivisions int, before, after float64) {
	cs.numDivisions = append(cs.numDivisions, numDivisions)
	cs.before = append(cs.before, before)
	cs.after = append(cs.after, after)
}

// Orders returns the observed order log(E_i/E_i+1)/log(h_i/h_i+1) between successive entries
func (cs *ConvergenceStudy) Orders(energies []float64) (orders []float64) {
	for i := 1; i < len(energies); i++ {
		hRatio := float64(cs.numDivisions[i]) / float64(cs.numDivisions[i-1])
		orders = append(orders, math.Log(energies[i-1]/energies[i])/math.Log(hRatio))
	}
	return
}

func (cs *ConvergenceStudy) Print(w io.Writer) {
	fmt.Fprintf(w, "Title = %s, Method = %s\n", cs.title, cs.method)
	before, after := cs.Orders(cs.before), cs.Orders(cs.after)
	for i := range cs.numDivisions {
		fmt.Fprintf(w, "%d, %v, %v", cs.numDivisions[i], cs.before[i], cs.after[i])
		if i > 0 {
			fmt.Fprintf(w, ", order %5.3f, %5.3f", before[i-1], after[i-1])
		}
		fmt.Fprintln(w)
	}
}

func (cs *ConvergenceStudy) WriteCSV(csvFile string) (err error) {
	var (
		f *os.File
	)
	if f, err = os.Create(csvFile); err != nil {
		return errors.Wrapf(err, "unable to create %s", csvFile)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	_ = w.Write([]string{"title", "method", "numDivisions", "energyBefore", "energyAfter"})
	for i, n := range cs.numDivisions {
		_ = w.Write([]string{cs.title, cs.method.String(), strconv.Itoa(n),
			strconv.FormatFloat(cs.before[i], 'g', -1, 64),
			strconv.FormatFloat(cs.after[i], 'g', -1, 64)})
	}
	w.Flush()
	return errors.WithStack(w.Error())
}

type relaxFunc func(points []r2.Vec, cells [][3]int, tol float64, maxSteps int,
	opts *relax.Options) ([]r2.Vec, [][3]int, error)

var relaxMethods = map[types.RelaxMethod]relaxFunc{
	types.FixedPointUniform:            odt.FixedPointUniform,
	types.FixedPointDensityPreserving:  odt.FixedPointDensityPreserving,
	types.NonlinearOptimizationUniform: odt.NonlinearOptimizationUniform,
}

func RunStudy(rm types.RelaxMethod, ns []int, jitter float64, maxSteps int) (cs *ConvergenceStudy, err error) {
	var (
		run       relaxFunc
		uniform   = rm != types.FixedPointDensityPreserving
		ok        bool
	)
	if run, ok = relaxMethods[rm]; !ok {
		return nil, errors.Errorf("no relaxation for method %s", rm)
	}
	cs = NewConvergenceStudy(fmt.Sprintf("unit square, jitter %g", jitter), rm)
	for _, n := range ns {
		points, cells := geometry2D.NewSquareGridMesh(n, jitter, int64(n))
		before := odt.Energy(geometry2D.NewTriMesh(points, cells), uniform)
		if points, cells, err = run(points, cells, 1.e-10, maxSteps, nil); err != nil {
			return nil, errors.Wrapf(err, "relaxing %d x %d mesh", n, n)
		}
		cs.Add(n, before, odt.Energy(geometry2D.NewTriMesh(points, cells), uniform))
	}
	return
}

func parseDivisions(txt string) (ns []int, err error) {
	var n int
	for _, field := range strings.Split(txt, ",") {
		if n, err = strconv.Atoi(strings.TrimSpace(field)); err != nil || n < 1 {
			return nil, errors.Errorf("bad number of divisions [%s]", field)
		}
		ns = append(ns, n)
	}
	return
}
