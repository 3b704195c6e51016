package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/object"
	"github.com/witscm/wit/pkg/repo"
)

func newCatFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat-file <type> <object>",
		Short: "Provide content of repository objects",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			objType := object.ObjectType(args[0])
			switch objType {
			case object.TypeBlob, object.TypeTree, object.TypeCommit, object.TypeTag:
			default:
				return fmt.Errorf("cat-file: invalid type %q", args[0])
			}

			r, err := repo.Find(".")
			if err != nil {
				return err
			}

			h, err := r.FindObject(args[1], objType, true)
			if err != nil {
				return err
			}

			_, payload, ok, err := r.Store.ReadRaw(h)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("cat-file: object %s not found", h)
			}

			_, err = cmd.OutOrStdout().Write(payload)
			return err
		},
	}
}
