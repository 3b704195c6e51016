package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/object"
	"github.com/witscm/wit/pkg/repo"
)

func newHashObjectCmd() *cobra.Command {
	var objType string
	var write bool

	cmd := &cobra.Command{
		Use:   "hash-object [-t type] [-w] <path>",
		Short: "Compute object ID and optionally store a file's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := object.ObjectType(objType)
			switch t {
			case object.TypeBlob, object.TypeTree, object.TypeCommit, object.TypeTag:
			default:
				return fmt.Errorf("hash-object: invalid type %q", objType)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}

			// Without -w the hash is computed dry-run, no store involved.
			var store *object.Store
			if write {
				r, err := repo.Find(".")
				if err != nil {
					return err
				}
				store = r.Store
			}

			h, err := object.HashObject(data, t, store)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&objType, "type", "t", "blob", "object type")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the object into the database")
	return cmd
}
