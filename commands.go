package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"bitbucket.org/dtolpin/covkern/config"
	"bitbucket.org/dtolpin/covkern/kernel"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// LIST
// =============================================================================

var listYAML bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered kernels and their parameters",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "print descriptors as YAML")
}

func runList(cmd *cobra.Command, args []string) error {
	ds := kernel.Descriptors()
	out := cmd.OutOrStdout()
	if listYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return err
		}
		return enc.Close()
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION\tPARAMETERS\tFORMULA")
	for _, d := range ds {
		params := make([]string, len(d.Params))
		for i, p := range d.Params {
			params[i] = fmt.Sprintf("%s=%g [%g,%g]/%g", p.Name, p.Value, p.Min, p.Max, p.Step)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			d.Name, d.Description, strings.Join(params, " "), d.Formula)
	}
	return w.Flush()
}

// =============================================================================
// COV
// =============================================================================

var (
	covKernel string
	covParams map[string]string
	covConfig string
	covXs     []float64
)

// default locations when neither --xs nor the configuration give any
var defaultLocations = []float64{0, 1, 2, 3, 4}

var covCmd = &cobra.Command{
	Use:   "cov",
	Short: "Print the covariance matrix of a kernel as CSV",
	Long: `Assembles the covariance matrix of a kernel over a sequence of locations.

The kernel is either a registered kernel (--kernel, with --param overrides)
or a YAML kernel expression (--config).

Example:
  covkern cov --kernel periodic --param period=1.5 --xs 0,0.5,1,1.5`,
	Args: cobra.NoArgs,
	RunE: runCov,
}

func init() {
	covCmd.Flags().StringVarP(&covKernel, "kernel", "k", "", "registered kernel name")
	covCmd.Flags().StringToStringVarP(&covParams, "param", "p", nil, "parameter values, name=value")
	covCmd.Flags().StringVarP(&covConfig, "config", "c", "", "kernel expression file")
	covCmd.Flags().Float64SliceVar(&covXs, "xs", nil, "input locations")
}

// resolve returns the kernel and locations selected by the cov flags.
func resolve() (kernel.Kernel, []float64, error) {
	var (
		k  kernel.Kernel
		xs []float64
	)
	switch {
	case covConfig != "" && covKernel != "":
		return nil, nil, fmt.Errorf("--kernel and --config are exclusive")
	case covConfig != "":
		if len(covParams) > 0 {
			return nil, nil, fmt.Errorf("--param requires --kernel")
		}
		c, err := config.Load(covConfig)
		if err != nil {
			return nil, nil, err
		}
		if k, err = c.Build(); err != nil {
			return nil, nil, err
		}
		if xs, err = c.Points(); err != nil {
			return nil, nil, err
		}
	case covKernel != "":
		d, err := kernel.Lookup(covKernel)
		if err != nil {
			return nil, nil, err
		}
		values := make(map[string]float64, len(covParams))
		for name, s := range covParams {
			if values[name], err = strconv.ParseFloat(s, 64); err != nil {
				return nil, nil, fmt.Errorf("parameter %s: %w", name, err)
			}
		}
		if k, err = d.Bind(values); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("one of --kernel or --config is required")
	}

	if covXs != nil {
		xs = covXs
	}
	if xs == nil {
		xs = defaultLocations
	}
	return k, xs, nil
}

func runCov(cmd *cobra.Command, args []string) error {
	k, xs, err := resolve()
	if err != nil {
		return err
	}
	logger.Debug("Assembling covariance matrix",
		zap.String("kernel", fmt.Sprintf("%+v", k)),
		zap.Float64s("locations", xs))

	w := csv.NewWriter(cmd.OutOrStdout())
	return w.WriteAll(csvRecords(kernel.CovMatrix(k, xs)))
}

// csvRecords formats the rows of K for CSV output.
func csvRecords(K mat.Matrix) [][]string {
	r, c := K.Dims()
	records := make([][]string, r)
	for i := range records {
		records[i] = make([]string, c)
		for j := range records[i] {
			records[i][j] = strconv.FormatFloat(K.At(i, j), 'g', -1, 64)
		}
	}
	return records
}

// =============================================================================
// SELFCHECK
// =============================================================================

// locations used by selfcheck
var selfCheckLocations = []float64{0, 0.25, 0.5, 1, 1.5, 2, 2.5, 3, 4.5}

// tolerated negative eigenvalue
const psdTolerance = 1e-9

var selfcheckCmd = &cobra.Command{
	Use:   "selfcheck",
	Short: "Check symmetry and positive semidefiniteness of the default kernels",
	Args:  cobra.NoArgs,
	RunE:  runSelfcheck,
}

type check struct {
	name string
	k    kernel.Kernel
}

// selfChecks builds the default kernels, their sum and a product.
func selfChecks() ([]check, error) {
	var (
		checks []check
		all    []kernel.Kernel
	)
	for _, d := range kernel.Descriptors() {
		k, err := d.Kernel()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
		checks = append(checks, check{d.Name, k})
		all = append(all, k)
	}
	sum, err := kernel.SumKernel(all...)
	if err != nil {
		return nil, err
	}
	checks = append(checks, check{"sum", sum})
	se, err := kernel.SqExp()
	if err != nil {
		return nil, err
	}
	per, err := kernel.Periodic()
	if err != nil {
		return nil, err
	}
	prod, err := kernel.ProductKernel(se, per)
	if err != nil {
		return nil, err
	}
	return append(checks, check{"sqexp*periodic", prod}), nil
}

func runSelfcheck(cmd *cobra.Command, args []string) error {
	checks, err := selfChecks()
	if err != nil {
		return err
	}

	failed := 0
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KERNEL\tMIN EIGENVALUE\tMAX ASYMMETRY\tSTATUS")
	for _, c := range checks {
		lo, err := minEigenvalue(kernel.CovMatrix(c.k, selfCheckLocations))
		if err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		asym := asymmetry(c.k, selfCheckLocations)
		status := "ok"
		if lo < -psdTolerance || asym > 1e-12 {
			status = "FAILED"
			failed++
		}
		logger.Debug("Checked kernel",
			zap.String("kernel", c.name),
			zap.Float64("min_eigenvalue", lo),
			zap.Float64("asymmetry", asym))
		fmt.Fprintf(w, "%s\t%.3g\t%.3g\t%s\n", c.name, lo, asym, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d kernels failed", failed, len(checks))
	}
	logger.Info("Selfcheck passed", zap.Int("kernels", len(checks)))
	return nil
}

func minEigenvalue(K mat.Symmetric) (float64, error) {
	var eig mat.EigenSym
	if !eig.Factorize(K, false) {
		return 0, fmt.Errorf("eigendecomposition failed")
	}
	lo := math.Inf(1)
	for _, v := range eig.Values(nil) {
		lo = math.Min(lo, v)
	}
	return lo, nil
}

// asymmetry is the largest relative difference between k(x1, x2)
// and k(x2, x1) over all pairs of xs.
func asymmetry(k kernel.Kernel, xs []float64) float64 {
	worst := 0.
	for _, x1 := range xs {
		for _, x2 := range xs {
			a, b := k.Cov(x1, x2), k.Cov(x2, x1)
			d := math.Abs(a - b)
			if s := math.Max(math.Abs(a), math.Abs(b)); s > 1 {
				d /= s
			}
			worst = math.Max(worst, d)
		}
	}
	return worst
}
