package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/repo"
)

func newTagCmd() *cobra.Command {
	var annotate bool
	var message string

	cmd := &cobra.Command{
		Use:   "tag [name] [object]",
		Short: "List tags, or create a lightweight or annotated tag",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Find(".")
			if err != nil {
				return err
			}

			if len(args) == 0 {
				refs, err := r.ListRefs()
				if err != nil {
					return err
				}
				for _, ref := range refs {
					if name, ok := strings.CutPrefix(ref.Name, "refs/tags/"); ok {
						fmt.Fprintln(cmd.OutOrStdout(), name)
					}
				}
				return nil
			}

			target := "HEAD"
			if len(args) > 1 {
				target = args[1]
			}
			h, err := r.FindObject(target, "", false)
			if err != nil {
				return err
			}

			if annotate {
				if strings.TrimSpace(message) == "" {
					return fmt.Errorf("tag: annotated tag requires a message (-m)")
				}
				_, err = r.CreateAnnotatedTag(args[0], h, taggerIdentity(), message)
				return err
			}
			return r.CreateTag(args[0], h)
		},
	}

	cmd.Flags().BoolVarP(&annotate, "annotate", "a", false, "create an annotated tag object")
	cmd.Flags().StringVarP(&message, "message", "m", "", "tag message")
	return cmd
}

func taggerIdentity() string {
	// No user config surface yet; commands pass a stable placeholder.
	return "wit <wit@localhost>"
}
