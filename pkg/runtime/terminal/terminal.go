package terminal

import (
	"io"
	"os"

	"github.com/fin-tools/stock-atlas/pkg/runtime/terminal/commands"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	output  io.Writer
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{output: opts.Output}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock-atlas",
		Short: "Financial statement derivation and market data tool",
	}

	cmd.AddCommand(commands.NewDeriveCmd(cli.output))
	cmd.AddCommand(commands.NewFieldsCmd(cli.output))
	cmd.AddCommand(commands.NewFetchCmd(cli.output))
	cmd.AddCommand(commands.NewCleanCmd(cli.output))

	return cmd
}
