// Command go-filter applies a 2-D convolution-style filter to a raster
// image and writes the result, possibly in a different format.
//
// Usage: go-filter INFILE OUTFILE [options]. A dash can be used instead
// of INFILE or OUTFILE to read stdin or write stdout, and the "-.ext"
// form forces a format on a standard stream.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/nvr-ai/go-filter/filter"
	"github.com/nvr-ai/go-filter/images"
	"github.com/nvr-ai/go-filter/images/kernels"
	"github.com/nvr-ai/go-filter/profiler"
	"github.com/nvr-ai/go-filter/util"
)

// Defaults mirrored in the usage text.
const (
	defaultMatSize   = 5
	defaultSigma     = 1.4
	defaultSobelType = 0
	defaultThreshold = "0,255"
)

// config is the validated run configuration assembled from the CLI.
type config struct {
	inFile    string
	outFile   string
	matSize   int
	channels  int
	sobelType int
	sigma     float64
	lo, hi    uint8
	customMat string
	alg       filter.Algorithm
	serial    bool
}

func main() {
	logrus.SetOutput(os.Stderr)

	cfg, err := parseArgs(os.Args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		logrus.Error(err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		var perr *kernels.ParseError
		if errors.As(err, &perr) {
			logrus.Errorf("custom matrix specification error: %s", perr.Reason)
			fmt.Fprintf(os.Stderr, "\n%s\n\n", perr.Diagnostic())
		} else {
			logrus.Error(err)
		}
		os.Exit(1)
	}
}

// forcedStreamRE matches the "-.ext" operand form that forces an image
// format on a standard stream.
var forcedStreamRE = regexp.MustCompile(`^-\.[A-Za-z0-9]+$`)

// maskForcedStreams hides the leading dash of "-.ext" operands so the
// flag parser does not read them as a run of shorthand flags. A bare
// "-" already parses as an operand and needs no masking.
func maskForcedStreams(args []string) []string {
	masked := make([]string, len(args))
	for i, arg := range args {
		if forcedStreamRE.MatchString(arg) {
			arg = "\x00" + arg[1:]
		}
		masked[i] = arg
	}
	return masked
}

// unmaskForcedStreams restores the dash on operands hidden by
// maskForcedStreams, keeping their position among the operands.
func unmaskForcedStreams(operands []string) []string {
	for i, op := range operands {
		if strings.HasPrefix(op, "\x00") {
			operands[i] = "-" + op[1:]
		}
	}
	return operands
}

// parseArgs builds and validates the configuration. Every configuration
// error is caught here, before any file is opened.
func parseArgs(argv []string) (*config, error) {
	cfg := &config{}
	var (
		threshold string
		algName   string
	)

	flags := pflag.NewFlagSet(argv[0], pflag.ContinueOnError)
	flags.IntVarP(&cfg.matSize, "matsize", "m", defaultMatSize, "set matrix size")
	flags.Float64VarP(&cfg.sigma, "sigma", "s", defaultSigma, "set sigma")
	flags.IntVar(&cfg.sobelType, "sobel-type", defaultSobelType, "Sobel filter type (0, 1 or 2)")
	flags.StringVarP(&threshold, "threshold", "t", defaultThreshold, "lower and upper threshold values")
	flags.StringVarP(&cfg.customMat, "custom-matrix", "x", "", "the matrix to use with the custom algorithm")
	flags.StringVarP(&algName, "alg", "a", "none", "algorithm: gauss, sobel, avg, custom or none")
	flags.IntVarP(&cfg.channels, "channels", "c", 0, "number of channels to output (1-4), default: same as input")
	flags.BoolVar(&cfg.serial, "serial", false, "disable row-parallel filtering")
	flags.Usage = func() { usage(argv[0], flags) }

	if err := flags.Parse(maskForcedStreams(argv[1:])); err != nil {
		return nil, err
	}
	operands := unmaskForcedStreams(flags.Args())
	if len(operands) < 2 {
		flags.Usage()
		return nil, errors.New("expected INFILE and OUTFILE")
	}
	cfg.inFile = operands[0]
	cfg.outFile = operands[1]

	if cfg.matSize%2 == 0 || cfg.matSize < 1 {
		return nil, errors.New("matrix size has to be odd")
	}
	if cfg.channels != 0 {
		if cfg.channels < 1 {
			return nil, errors.New("cannot have fewer than 1 channel")
		}
		if cfg.channels > 4 {
			return nil, errors.New("cannot have more than 4 channels")
		}
	}
	if cfg.sobelType < 0 || cfg.sobelType > 2 {
		return nil, errors.New("sobel filter type has to be between 0 and 2 inclusive")
	}
	var err error
	if cfg.lo, cfg.hi, err = parseThreshold(threshold); err != nil {
		return nil, err
	}
	if cfg.alg, err = filter.ParseAlgorithm(algName); err != nil {
		return nil, err
	}

	// A custom matrix fixes the size from its own row count; the square
	// and cell-level checks happen when it is parsed.
	if cfg.customMat != "" {
		cfg.matSize = kernels.RowCount(cfg.customMat)
		if cfg.matSize%2 == 0 {
			return nil, errors.New("custom matrix size has to be odd")
		}
	}
	if cfg.alg == filter.Custom && cfg.customMat == "" {
		return nil, errors.New("custom algorithm requires specifying a matrix")
	}
	return cfg, nil
}

// parseThreshold splits "lo,hi" and validates the band.
func parseThreshold(s string) (uint8, uint8, error) {
	lo, hi, found := strings.Cut(s, ",")
	if !found {
		return 0, 0, errors.New("expected threshold in the format lo,hi")
	}
	loV, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid threshold %q", lo)
	}
	hiV, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid threshold %q", hi)
	}
	if loV < 0 || loV > 255 || hiV < 0 || hiV > 255 {
		return 0, 0, errors.New("threshold values have to be 0-255 inclusive")
	}
	if loV > hiV {
		return 0, 0, errors.New("first threshold value has to be lower than (or equal to) the second one")
	}
	return uint8(loV), uint8(hiV), nil
}

// run does the whole pipeline: open, decode, filter, encode. It returns
// errors instead of exiting so main stays the only exit-code decision
// point.
func run(cfg *config) error {
	src, err := images.OpenSource(cfg.inFile)
	if err != nil {
		return err
	}
	defer src.Close()

	snk, err := images.OpenSink(cfg.outFile, src.Format)
	if err != nil {
		return err
	}

	img, err := src.Decode(cfg.channels)
	if err != nil {
		return errors.Wrapf(err, "could not load image %s", displayName(cfg.inFile))
	}

	opt := filter.Options{
		Size:        cfg.matSize,
		Sigma:       cfg.sigma,
		SobelType:   cfg.sobelType,
		ThresholdLo: cfg.lo,
		ThresholdHi: cfg.hi,
		Parallel:    !cfg.serial,
	}
	if cfg.alg == filter.Custom {
		opt.Matrix, err = kernels.ParseCustom(cfg.customMat, cfg.matSize)
		if err != nil {
			return err
		}
	}

	banner(cfg, img, opt)

	span := profiler.Start("filter")
	out, err := filter.Apply(img, cfg.alg, opt)
	took := span.Stop()
	if err != nil {
		return err
	}
	logrus.Infof("took %gs", took.Seconds())

	if err := snk.Encode(out); err != nil {
		return err
	}
	return snk.Close()
}

// banner logs what is about to run, mirroring the decode result back to
// the user.
func banner(cfg *config, img *images.Image, opt filter.Options) {
	name := displayName(cfg.inFile)
	switch cfg.alg {
	case filter.Gauss:
		logrus.Infof("input image %s: (%dx%d)@%d. Using Gaussian blur, sigma = %g, size = %d",
			name, img.Width, img.Height, img.Channels, cfg.sigma, cfg.matSize)
	case filter.Sobel:
		logrus.Infof("input image %s: (%dx%d)@%d. Using Sobel filter, type %d",
			name, img.Width, img.Height, img.Channels, cfg.sobelType)
	case filter.Avg:
		logrus.Infof("input image %s: (%dx%d)@%d. Using averaging",
			name, img.Width, img.Height, img.Channels)
	case filter.Custom:
		logrus.Infof("input image %s: (%dx%d)@%d. Using custom matrix:",
			name, img.Width, img.Height, img.Channels)
		cols, _ := util.TermSize()
		kernels.Fprint(os.Stderr, opt.Matrix, cols)
	case filter.None:
		logrus.Infof("input image %s: (%dx%d)@%d. Using nothing",
			name, img.Width, img.Height, img.Channels)
	}
}

func displayName(name string) string {
	if images.IsStdStream(name) {
		return "stdin"
	}
	return name
}

func usage(prog string, flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: %[1]s INFILE OUTFILE [options]

%s
A dash (-) can be used instead of INFILE or OUTFILE to use stdin and
stdout respectively. The -.extension form forces a particular format on
a standard stream, e.g.:

    %[1]s -.jpg -.png -a none    # convert jpg to png

If no extension is given, the input format is sniffed from the file
signature and the output format follows the input format.

Custom matrices use the following grammar: cells are separated by
commas (,), rows by bars (|), cells are numbers (integer or floating
point), and the matrix has to be square with odd side length. Matrices
whose weights do not sum to zero are normalised. E.g.:

    0.1,0.2,0.3|0,0,0|-0.1,-0.2,-0.3
`, filepath.Base(prog), flags.FlagUsages())
}
