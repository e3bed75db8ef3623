package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greenshed/sunmap/internal/config"
	"github.com/greenshed/sunmap/internal/exposure"
	"github.com/greenshed/sunmap/internal/placement"
	"github.com/greenshed/sunmap/internal/render"
	"github.com/greenshed/sunmap/internal/session"
)

// searchOpts holds the command-line flags for the search command.
type searchOpts struct {
	anchors   []string // search start points, "x,y"
	threshold int      // brightness threshold, 0-255
	bedWidth  float64  // bed width in feet
	bedHeight float64  // bed height in feet
	flip      bool     // swap bed orientation
	output    string   // optional annotated PNG path
	workers   int      // aggregation worker count
}

// newSearchCmd creates the search command: aggregate a photo stack, then
// hill-climb from each anchor toward the sunniest placement of the bed.
func newSearchCmd(cfg *config.Config) *cobra.Command {
	var opts searchOpts

	cmd := &cobra.Command{
		Use:   "search [photo-dir]",
		Short: "Find sunny placements for a raised bed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				opts.threshold = cfg.Threshold
			}
			if !cmd.Flags().Changed("bed-width") {
				opts.bedWidth = cfg.BedWidthFeet
			}
			if !cmd.Flags().Changed("bed-height") {
				opts.bedHeight = cfg.BedHeightFeet
			}
			if !cmd.Flags().Changed("workers") {
				opts.workers = cfg.Workers
			}
			return runSearch(cmd.Context(), args[0], cfg, &opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.anchors, "at", nil, "search start point as x,y (repeatable; default grid center)")
	cmd.Flags().IntVarP(&opts.threshold, "threshold", "t", exposure.DefaultThreshold, "brightness threshold (0-255)")
	cmd.Flags().Float64Var(&opts.bedWidth, "bed-width", session.DefaultBedWidthFeet, "bed width in feet")
	cmd.Flags().Float64Var(&opts.bedHeight, "bed-height", session.DefaultBedHeightFeet, "bed height in feet")
	cmd.Flags().BoolVar(&opts.flip, "flip", false, "swap the bed to portrait orientation")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write an annotated heat map PNG")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "aggregation worker count")

	return cmd
}

// runSearch aggregates the stack, climbs from each anchor and prints the
// frozen placements.
func runSearch(ctx context.Context, dir string, cfg *config.Config, opts *searchOpts) error {
	logger := loggerFromContext(ctx)

	grid, err := aggregateDir(ctx, dir, opts.threshold, exposure.Options{
		ChunkRows: cfg.ChunkRows,
		Workers:   opts.workers,
	})
	if err != nil {
		return err
	}

	anchors, err := parseAnchors(opts.anchors, grid.Width(), grid.Height())
	if err != nil {
		return err
	}

	fw := session.FeetToPixels(opts.bedWidth)
	fh := session.FeetToPixels(opts.bedHeight)
	if opts.flip {
		fw, fh = fh, fw
	}
	logger.Debug("Searching", "footprint", fmt.Sprintf("%dx%d", fw, fh), "anchors", len(anchors))

	var found []placement.ScoredPlacement
	for _, a := range anchors {
		search, err := placement.NewSearch(grid, placement.Rect{
			CenterX: a.x, CenterY: a.y, Width: fw, Height: fh,
		})
		if err != nil {
			return fmt.Errorf("anchor (%d,%d): %w", a.x, a.y, err)
		}
		final := search.Run()
		found = append(found, final)

		pct := placement.Percentage(final.Score, fw, fh)
		fmt.Printf("%s  score=%d  sun=%.1f%%  steps=%d  (from %d,%d)\n",
			final.Rect, final.Score, pct, search.Steps(), a.x, a.y)
	}

	if opts.output != "" {
		img, err := render.Image(grid, render.Options{
			Style:      render.StyleHeat,
			Legend:     true,
			Placements: found,
		})
		if err != nil {
			return err
		}
		if err := render.Save(img, opts.output); err != nil {
			return err
		}
		logger.Info("Wrote annotated map", "path", opts.output)
	}
	return nil
}

type anchor struct{ x, y int }

// parseAnchors parses the --at flags, defaulting to the grid center when
// none are given.
func parseAnchors(specs []string, gridWidth, gridHeight int) ([]anchor, error) {
	if len(specs) == 0 {
		return []anchor{{gridWidth / 2, gridHeight / 2}}, nil
	}

	anchors := make([]anchor, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid anchor %q: want x,y", spec)
		}
		x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid anchor %q: %w", spec, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid anchor %q: %w", spec, err)
		}
		anchors = append(anchors, anchor{x, y})
	}
	return anchors, nil
}
