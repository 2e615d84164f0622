package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/image-signal-io/internal/imageio"
	"github.com/ironsheep/image-signal-io/internal/render"
	"github.com/ironsheep/image-signal-io/internal/scalebar"
	"github.com/ironsheep/image-signal-io/internal/server"
	"github.com/ironsheep/image-signal-io/internal/signal"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const logLevelEnv = "IMAGE_SIGNAL_LOG_LEVEL"

var (
	logLevel string
	logger   = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "image-signal-io",
		Short: "Read and write images as calibrated 2-D signals",
		Long: `image-signal-io reads raster images into signals and writes them back,
optionally rendering a calibrated scale bar or resizing the output.

Run without a command it serves the MCP protocol over stdin/stdout.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: runServe,
	}

	defaultLevel := os.Getenv(logLevelEnv)
	if defaultLevel == "" {
		defaultLevel = "info"
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLevel,
		"Log level: debug, info, warn, error (env "+logLevelEnv+")")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve MCP over stdin/stdout",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		newReadCmd(),
		newExportCmd(),
		&cobra.Command{
			Use:   "formats",
			Short: "List supported file extensions",
			Args:  cobra.NoArgs,
			Run:   runFormats,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "image-signal-io %s\n", Version)
				fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
				fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
			},
		},
	)
	return rootCmd
}

// newLogger builds a production logger on stderr; stdout carries the MCP
// protocol.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Debug("starting MCP server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit))

	srv := server.New(logger)
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func newReadCmd() *cobra.Command {
	var (
		lazy     bool
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "read FILE...",
		Short: "Read images and print their shape and dtype",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sigs := make([]*signal.Signal, len(args))

			if parallel < 1 {
				parallel = 1
			}
			var g errgroup.Group
			g.SetLimit(parallel)
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					sig, err := imageio.Load(path, imageio.ReadOptions{Lazy: lazy})
					if err != nil {
						return fmt.Errorf("failed to read %s: %w", path, err)
					}
					sigs[i] = sig
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, sig := range sigs {
				fmt.Fprintf(out, "%s\tshape=%v\tdtype=%s\n", args[i], sig.Data.Shape(), sig.Data.DType())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&lazy, "lazy", false, "Defer pixel decoding")
	cmd.Flags().IntVarP(&parallel, "parallel", "j", runtime.NumCPU(), "Files to read concurrently")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		withScaleBar bool
		scale        float64
		units        string
		outputSize   []float64
		location     string
		boxAlpha     float64
		params       []string
	)
	cmd := &cobra.Command{
		Use:   "export SRC DST",
		Short: "Re-write an image, optionally with a scale bar or at a new size",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := imageio.Load(args[0], imageio.ReadOptions{})
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			for _, ax := range sig.Axes.All() {
				if scale > 0 {
					ax.Scale = scale
				}
				if units != "" {
					ax.Units = units
				}
			}

			sbOpts := &scalebar.Options{Location: location}
			if cmd.Flags().Changed("box-alpha") {
				sbOpts.BoxAlpha = &boxAlpha
			}
			p, err := parseParams(params)
			if err != nil {
				return err
			}

			w := imageio.DefaultWriter()
			w.Logger = logger
			opts := imageio.WriteOptions{
				ScaleBar:        withScaleBar,
				ScaleBarOptions: sbOpts,
				OutputSize:      outputSize,
				Params:          p,
			}
			if err := w.Write(args[1], sig, opts); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[1], err)
			}
			logger.Info("exported",
				zap.String("src", args[0]),
				zap.String("dst", args[1]),
				zap.Stringer("mode", w.Mode(opts)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withScaleBar, "scalebar", false, "Overlay a calibrated scale bar")
	cmd.Flags().Float64Var(&scale, "scale", 0, "Physical size of one pixel")
	cmd.Flags().StringVar(&units, "units", "", "Units of --scale, e.g. nm or 1/nm")
	cmd.Flags().Float64SliceVar(&outputSize, "output-size", nil, "Output size in pixels: N or W,H")
	cmd.Flags().StringVar(&location, "location", "", "Scale bar location (default lower left)")
	cmd.Flags().Float64Var(&boxAlpha, "box-alpha", 0.75, "Scale bar box opacity")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Format parameter key=value, e.g. quality=90")
	return cmd
}

func parseParams(kvs []string) (imageio.Params, error) {
	if len(kvs) == 0 {
		return nil, nil
	}
	p := make(imageio.Params, len(kvs))
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid parameter %q, want key=value", kv)
		}
		p[k] = v
	}
	return p, nil
}

func runFormats(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", imageio.Plugin.FormatName, imageio.Plugin.Description)
	fmt.Fprintf(out, "  read/write:      %s (default %s)\n",
		strings.Join(imageio.Plugin.FileExtensions, " "), imageio.Plugin.DefaultExtension)
	fmt.Fprintf(out, "  rendered export: %s\n", strings.Join(render.SupportedFiletypes(), " "))
}
