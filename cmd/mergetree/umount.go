package main

import (
	"github.com/modoverlay/mergetree"
	"github.com/spf13/cobra"
)

func newUmountCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "umount <target>...",
		Short: "Mark mount points for removal, best effort",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := mergetree.NewUnmounter()
			for _, target := range args {
				if err := u.SendUnmountable(target); err != nil {
					return err
				}
				a.log().Info("marked unmountable", "target", target)
			}
			return nil
		},
	}
}
