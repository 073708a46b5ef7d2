package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/abcmeta/config"
)

// globals are the persistent flags shared by every command.
type globals struct {
	configPath string
	verbosity  int
	quiet      bool

	config *config.Config
}

func main() {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:           "abcmeta",
		Short:         "Extract injection points and reflection data from SWF bytecode",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "configuration file (default: nearest "+config.FileName+")")
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "only log warnings and errors")

	rootCmd.AddCommand(newInjectCmd(g))
	rootCmd.AddCommand(newReflectCmd(g))
	rootCmd.AddCommand(newDumpCmd(g))
	rootCmd.AddCommand(newTreeCmd(g))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "abcmeta:", err)
		os.Exit(1)
	}
}

func (g *globals) setup() error {
	var err error
	if g.configPath != "" {
		g.config, err = config.Load(g.configPath)
	} else {
		g.config, err = config.FindAndLoad(".")
	}
	if err != nil {
		return err
	}
	if g.config == nil {
		g.config = &config.Config{}
	}

	verbosity := g.verbosity
	if g.quiet || (g.config.Quiet && g.verbosity == 0) {
		verbosity = -1
	}
	commonlog.Configure(verbosity, nil)
	return nil
}
