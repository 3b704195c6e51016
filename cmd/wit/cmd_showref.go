package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/repo"
)

func newShowRefCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-ref",
		Short: "List references and their hashes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Find(".")
			if err != nil {
				return err
			}
			refs, err := r.ListRefs()
			if err != nil {
				return err
			}
			for _, ref := range refs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ref.Hash, ref.Name)
			}
			return nil
		},
	}
}
