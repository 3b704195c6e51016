package main

import (
	"fmt"
	"io"
	"path"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/object"
	"github.com/witscm/wit/pkg/repo"
)

func newLsTreeCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "ls-tree [-r] <tree>",
		Short: "Pretty-print a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Find(".")
			if err != nil {
				return err
			}
			return lsTree(cmd.OutOrStdout(), r, args[0], recursive, "")
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "recurse into sub-trees")
	return cmd
}

// entryTypeTag maps a tree entry mode to the display type: 04 is a
// subtree, 10 a regular file, 12 a symlink (blob contents are the link
// target), 16 a submodule commit.
func entryTypeTag(mode string) (string, error) {
	switch mode[:2] {
	case "04":
		return "tree", nil
	case "10", "12":
		return "blob", nil
	case "16":
		return "commit", nil
	default:
		return "", fmt.Errorf("ls-tree: weird tree leaf mode %q", mode)
	}
}

func lsTree(out io.Writer, r *repo.Repo, name string, recursive bool, prefix string) error {
	h, err := r.FindObject(name, object.TypeTree, true)
	if err != nil {
		return err
	}
	tree, err := r.Store.ReadTree(h)
	if err != nil {
		return err
	}

	blue := color.New(color.FgBlue).SprintFunc()

	for _, entry := range tree.Entries {
		typeTag, err := entryTypeTag(entry.Mode)
		if err != nil {
			return err
		}

		if recursive && typeTag == "tree" {
			if err := lsTree(out, r, string(entry.Hash), recursive, path.Join(prefix, entry.Name)); err != nil {
				return err
			}
			continue
		}

		display := path.Join(prefix, entry.Name)
		if typeTag == "tree" {
			display = blue(display)
		}
		fmt.Fprintf(out, "%s %s %s\t%s\n", entry.Mode, typeTag, entry.Hash, display)
	}
	return nil
}
