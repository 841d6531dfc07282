package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trajview/cmd/trajview/ui"
	"trajview/internal/config"
	"trajview/internal/logging"
	"trajview/internal/projection"
	"trajview/internal/trajectory"
	"trajview/internal/watch"
)

// runView loads the configured file and blocks in the viewer until the
// user closes it.
func runView(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ds, err := openDataset(cfg.Input)
	if err != nil {
		return err
	}
	opts, err := viewerOptions(cfg, ds)
	if err != nil {
		return err
	}
	model, err := ui.NewModel(opts)
	if err != nil {
		return err
	}

	if !cfg.Watch {
		return ui.Run(ui.NewProgram(ctx, model))
	}
	return runWatched(ctx, model)
}

// openDataset loads, validates and reshapes a trajectory file.
func openDataset(path string) (*trajectory.Dataset, error) {
	log := logging.Named(logger, logging.CategoryLoad)
	ds, err := trajectory.Open(path)
	if err != nil {
		log.Debug("failed to load trajectories", zap.String("file", path), zap.Error(err))
		return nil, err
	}
	log.Info("loaded trajectories",
		zap.String("file", path),
		zap.Int("objects", ds.Trajectories.Objects()),
		zap.Int("dimensions", ds.Trajectories.Dimensions()),
		zap.Int("samples", ds.Trajectories.Samples()))
	return ds, nil
}

// viewerOptions resolves the configured selection, axes and theme against ds.
func viewerOptions(c *config.Config, ds *trajectory.Dataset) (ui.Options, error) {
	sel, err := projection.ParseSelection(c.Select, ds.Names)
	if err != nil {
		return ui.Options{}, err
	}
	opts := ui.Options{
		Dataset:   ds,
		Selection: sel,
		Title:     filepath.Base(c.Input),
		Styles:    ui.NewStyles(ui.ThemeByName(c.Theme)),
		Logger:    logging.Named(logging.ForViewer(logger, c.Logging), logging.CategoryViewer),
	}
	if c.Axes != "" {
		axes, err := projection.ParseAxisMap(c.Axes)
		if err != nil {
			return ui.Options{}, err
		}
		opts.Axes = &axes
	}
	return opts, nil
}

// runWatched runs the viewer next to a watcher that feeds it reloads.
// Closing the viewer stops the watcher.
func runWatched(ctx context.Context, model ui.Model) error {
	w, err := watch.New(cfg.Input, logging.Named(logging.ForViewer(logger, cfg.Logging), logging.CategoryWatch))
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	viewCtx, closeWatcher := context.WithCancel(gctx)
	p := ui.NewProgram(gctx, model)

	g.Go(func() error {
		defer closeWatcher()
		return ui.Run(p)
	})
	g.Go(func() error {
		return w.Run(viewCtx, func() {
			ds, err := trajectory.Open(cfg.Input)
			p.Send(ui.ReloadMsg{Dataset: ds, Err: err})
		})
	})
	return g.Wait()
}
