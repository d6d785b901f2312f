package main

import (
	"fmt"
	"path/filepath"

	"github.com/modoverlay/mergetree"
	"github.com/modoverlay/mergetree/internal/modules"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newTreeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [module-root...]",
		Short: "Print the merged tree",
		Long: `Print the merged tree of the given module roots, lowest priority first.

Without arguments the enabled modules of the configured modules directory
are merged, ordered by module id.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mods, err := a.modules(args)
			if err != nil {
				return err
			}
			a.log().Debug("merging modules", "count", len(mods))

			res, err := modules.Build(mods, a.cfg.Partition, a.cfg.Exclude, mergetree.WithLogger(a.log()))
			if err != nil {
				return err
			}
			for _, report := range res.Reports {
				for _, d := range report.Dropped {
					a.log().Warn("skipped unreadable entry", "root", report.Root, "path", d.Path, "err", d.Err)
				}
			}
			if res.Excluded < len(a.cfg.Exclude) {
				a.log().Warn("some excluded paths are not in the tree", "found", res.Excluded, "configured", len(a.cfg.Exclude))
			}

			return mergetree.Fprint(cmd.OutOrStdout(), res.Tree)
		},
	}
}

// modules returns the module list from explicit roots, or discovers it
func (a *app) modules(roots []string) ([]modules.Module, error) {
	if len(roots) == 0 {
		return modules.List(afero.NewOsFs(), a.cfg.ModulesDir, a.cfg.Partition)
	}

	mods := make([]modules.Module, 0, len(roots))
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
		}
		mods = append(mods, modules.Module{
			ID:   filepath.Base(abs),
			Path: abs,
			Root: abs,
		})
	}
	return mods, nil
}
