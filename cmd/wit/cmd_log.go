package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/object"
	"github.com/witscm/wit/pkg/repo"
)

func newLogCmd() *cobra.Command {
	var graphviz bool

	cmd := &cobra.Command{
		Use:   "log [commit]",
		Short: "Show commit history starting at a commit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "HEAD"
			if len(args) > 0 {
				start = args[0]
			}

			r, err := repo.Find(".")
			if err != nil {
				return err
			}

			h, err := r.FindObject(start, object.TypeCommit, true)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			seen := make(map[object.Hash]bool)

			if graphviz {
				fmt.Fprintln(out, "digraph witlog{")
				fmt.Fprintln(out, "  node[shape=rect]")
				if err := logGraphviz(out, r, h, seen); err != nil {
					return err
				}
				fmt.Fprintln(out, "}")
				return nil
			}
			return logPlain(out, r, h, seen)
		},
	}

	cmd.Flags().BoolVar(&graphviz, "graphviz", false, "emit history as a Graphviz digraph")
	return cmd
}

// firstLine trims a commit message down to its summary line.
func firstLine(message []byte) string {
	msg := strings.TrimSpace(string(message))
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

func logPlain(out io.Writer, r *repo.Repo, h object.Hash, seen map[object.Hash]bool) error {
	yellow := color.New(color.FgYellow).SprintFunc()

	for {
		if seen[h] {
			return nil
		}
		seen[h] = true

		commit, err := r.Store.ReadCommit(h)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s %s\n", yellow(string(h)[:7]), firstLine(commit.Message()))

		parents := commit.Parents()
		if len(parents) == 0 {
			return nil
		}
		// Walk side parents depth-first, continue along the first.
		for _, p := range parents[1:] {
			if err := logPlain(out, r, p, seen); err != nil {
				return err
			}
		}
		h = parents[0]
	}
}

func logGraphviz(out io.Writer, r *repo.Repo, h object.Hash, seen map[object.Hash]bool) error {
	if seen[h] {
		return nil
	}
	seen[h] = true

	commit, err := r.Store.ReadCommit(h)
	if err != nil {
		return err
	}

	label := firstLine(commit.Message())
	label = strings.ReplaceAll(label, "\\", "\\\\")
	label = strings.ReplaceAll(label, `"`, `\"`)
	fmt.Fprintf(out, "  c_%s [label=\"%s: %s\"]\n", h, string(h)[:7], label)

	for _, p := range commit.Parents() {
		if strings.TrimSpace(string(p)) == "" {
			continue
		}
		fmt.Fprintf(out, "  c_%s -> c_%s;\n", h, p)
		if err := logGraphviz(out, r, p, seen); err != nil {
			return err
		}
	}
	return nil
}
