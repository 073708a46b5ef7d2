package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/abcmeta/hierarchy"
)

func newTreeCmd(g *globals) *cobra.Command {
	var swfPath string

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the inheritance forest of a movie",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := g.inputPath(args, swfPath)
			if err != nil {
				return err
			}
			m, err := loadModule(path)
			if err != nil {
				return err
			}
			tree, err := hierarchy.Build(m.Superclasses)
			if err != nil {
				return err
			}
			for _, root := range tree.Roots() {
				printTree(os.Stdout, tree, root, 0)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&swfPath, "swf", "", "SWF file to process")

	return cmd
}

func printTree(w io.Writer, tree *hierarchy.Tree, name string, depth int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), name)
	for _, child := range tree.Children(name) {
		printTree(w, tree, child, depth+1)
	}
}
