package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/greenshed/sunmap/internal/config"
	"github.com/greenshed/sunmap/internal/exposure"
	"github.com/greenshed/sunmap/internal/render"
	"github.com/greenshed/sunmap/internal/stack"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output    string  // output PNG path
	threshold int     // brightness threshold, 0-255
	style     string  // render style: "heat" or "gray"
	scale     float64 // output scale factor
	legend    bool    // append a gradient legend
	smooth    float64 // Gaussian blur radius before coloring
	workers   int     // aggregation worker count
	chunkRows int     // rows per aggregation chunk
}

// newBuildCmd creates the build command, aggregating a directory of aligned
// photographs into an exposure map PNG.
func newBuildCmd(cfg *config.Config) *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [photo-dir]",
		Short: "Aggregate a photo stack into an exposure map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags the user left untouched fall back to the config file.
			if !cmd.Flags().Changed("threshold") {
				opts.threshold = cfg.Threshold
			}
			if !cmd.Flags().Changed("style") {
				opts.style = cfg.ExportStyle
			}
			if !cmd.Flags().Changed("scale") {
				opts.scale = cfg.ExportScale
			}
			if !cmd.Flags().Changed("legend") {
				opts.legend = cfg.Legend
			}
			if !cmd.Flags().Changed("workers") {
				opts.workers = cfg.Workers
			}
			if !cmd.Flags().Changed("chunk-rows") {
				opts.chunkRows = cfg.ChunkRows
			}
			return runBuild(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "exposure.png", "output PNG path")
	cmd.Flags().IntVarP(&opts.threshold, "threshold", "t", exposure.DefaultThreshold, "brightness threshold (0-255)")
	cmd.Flags().StringVar(&opts.style, "style", string(render.StyleHeat), "render style: heat, gray")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "output scale factor")
	cmd.Flags().BoolVar(&opts.legend, "legend", true, "append a gradient legend")
	cmd.Flags().Float64Var(&opts.smooth, "smooth", 0, "Gaussian blur radius before coloring")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "aggregation worker count")
	cmd.Flags().IntVar(&opts.chunkRows, "chunk-rows", exposure.DefaultChunkRows, "rows per aggregation chunk")

	return cmd
}

// runBuild loads the stack, aggregates it and writes the rendered map.
func runBuild(ctx context.Context, dir string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)

	grid, err := aggregateDir(ctx, dir, opts.threshold, exposure.Options{
		ChunkRows: opts.chunkRows,
		Workers:   opts.workers,
	})
	if err != nil {
		return err
	}

	img, err := render.Image(grid, render.Options{
		Style:       render.Style(opts.style),
		Scale:       opts.scale,
		SmoothSigma: opts.smooth,
		Legend:      opts.legend,
	})
	if err != nil {
		return err
	}
	if err := render.Save(img, opts.output); err != nil {
		return err
	}

	logger.Info("Wrote exposure map", "path", opts.output)
	return nil
}

// logHooks reports aggregation progress at debug level. Build may call
// OnChunk from several goroutines; the charm logger is safe for that.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnChunk(rowsDone, totalRows int) {
	h.logger.Debug("Aggregating", "rows", fmt.Sprintf("%d/%d", rowsDone, totalRows))
}

func (h logHooks) OnComplete(elapsed time.Duration) {
	h.logger.Debug("Aggregation finished", "elapsed", elapsed.Round(time.Millisecond))
}

// aggregateDir loads every photograph in dir and aggregates the stack into
// an exposure grid, reporting progress at debug level.
func aggregateDir(ctx context.Context, dir string, threshold int, opts exposure.Options) (*exposure.Grid, error) {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	cache := stack.NewCache()
	result, err := cache.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, path := range result.Skipped {
		logger.Warn("Skipped undecodable image", "path", path)
	}
	if len(result.Buffers) == 0 {
		return nil, fmt.Errorf("no usable photographs in %s", dir)
	}
	logger.Debug("Loaded photo stack", "dir", dir, "images", len(result.Buffers))

	opts.Hooks = logHooks{logger: logger}

	grid, err := exposure.Build(ctx, result.Buffers, threshold, opts)
	if err != nil {
		return nil, err
	}

	p.done(fmt.Sprintf("Aggregated %d photographs at threshold %d", len(result.Buffers), threshold))
	return grid, nil
}
