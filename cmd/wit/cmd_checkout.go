package main

import (
	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/object"
	"github.com/witscm/wit/pkg/repo"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <commit-or-tree> <path>",
		Short: "Materialize a commit or tree inside an empty directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Find(".")
			if err != nil {
				return err
			}

			// Commits are followed to their root tree.
			h, err := r.FindObject(args[0], object.TypeTree, true)
			if err != nil {
				return err
			}

			return r.Checkout(h, args[1])
		},
	}
}
