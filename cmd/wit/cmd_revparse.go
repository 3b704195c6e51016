package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/object"
	"github.com/witscm/wit/pkg/repo"
)

func newRevParseCmd() *cobra.Command {
	var wantType string

	cmd := &cobra.Command{
		Use:   "rev-parse [--wit-type type] <name>",
		Short: "Resolve a name to an object hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			want := object.ObjectType(wantType)
			switch want {
			case "", object.TypeBlob, object.TypeTree, object.TypeCommit, object.TypeTag:
			default:
				return fmt.Errorf("rev-parse: invalid type %q", wantType)
			}

			r, err := repo.Find(".")
			if err != nil {
				return err
			}

			h, err := r.FindObject(args[0], want, true)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVar(&wantType, "wit-type", "", "follow until an object of this type is reached")
	return cmd
}
