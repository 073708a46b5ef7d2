package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/abcmeta/inject"
)

func newInjectCmd(g *globals) *cobra.Command {
	var swfPath, jsonPath, cborPath string

	cmd := &cobra.Command{
		Use:   "inject [file]",
		Short: "Compute the injection points of every class",
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
			data, err := inject.Compute(m)
			if err != nil {
				return fmt.Errorf("compute injection points: %w", err)
			}
			return writeOutputs(data, g.outputs(jsonPath, cborPath))
		},
	}

	cmd.Flags().StringVar(&swfPath, "swf", "", "SWF file to process")
	cmd.Flags().StringVar(&jsonPath, "json", "", "JSON output file")
	cmd.Flags().StringVar(&cborPath, "cbor", "", "CBOR output file")

	return cmd
}
