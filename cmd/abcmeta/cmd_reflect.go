package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/abcmeta/config"
	"github.com/dhamidi/abcmeta/reflection"
)

func newReflectCmd(g *globals) *cobra.Command {
	var (
		swfPath, jsonPath, cborPath string
		classList                   string
		classes, patterns           []string
	)

	cmd := &cobra.Command{
		Use:   "reflect [file]",
		Short: "Compute reflection data for selected classes and their ancestors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := g.inputPath(args, swfPath)
			if err != nil {
				return err
			}

			var names, exprs []string
			if classList == "" && len(classes) == 0 && len(patterns) == 0 {
				if names, exprs, err = g.config.ClassSelection(); err != nil {
					return err
				}
			}
			if classList != "" {
				if names, exprs, err = config.ReadClassList(classList); err != nil {
					return err
				}
			}
			names = append(names, classes...)
			exprs = append(exprs, patterns...)
			if len(names) == 0 && len(exprs) == 0 {
				return errors.New("no classes selected (use --classes, --class or --pattern)")
			}

			sel, err := reflection.NewSelector(names, exprs)
			if err != nil {
				return err
			}
			m, err := loadModule(path)
			if err != nil {
				return err
			}
			data, err := reflection.Compute(m, sel)
			if err != nil {
				return fmt.Errorf("compute reflection data: %w", err)
			}
			return writeOutputs(data, g.outputs(jsonPath, cborPath))
		},
	}

	cmd.Flags().StringVar(&swfPath, "swf", "", "SWF file to process")
	cmd.Flags().StringVar(&jsonPath, "json", "", "JSON output file")
	cmd.Flags().StringVar(&cborPath, "cbor", "", "CBOR output file")
	cmd.Flags().StringVar(&classList, "classes", "", "file listing classes to reflect, one per line; (regex) lines are patterns")
	cmd.Flags().StringArrayVar(&classes, "class", nil, "fully qualified class to reflect (repeatable)")
	cmd.Flags().StringArrayVar(&patterns, "pattern", nil, "regular expression matching whole class names (repeatable)")

	return cmd
}
