package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute runs the command tree with args and returns the first error.
//
// Logging:
//   - Default: info level
//   - With --verbose (-v): debug level, with observability hooks
//
// Example:
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.Execute(ctx, os.Args[1:]); err != nil {
//	    os.Exit(1)
//	}
func (c *CLI) Execute(ctx context.Context, args []string) error {
	var verbose bool

	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := LogInfo
		if verbose {
			level = LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
