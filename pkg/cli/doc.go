/*
Package cli provides helpers shared by the agentsmd commands.

Output Formatting:

Command results can be printed as text, JSON or YAML:

	formatter, err := cli.NewFormatterFor("json")
	if err != nil {
		return err
	}
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

Values that implement TextRenderer control their own text rendering.

Exit Status:

Commands return an *ExitError to end with a specific status without printing
an additional error message, and wrap other failures in a *CommandError.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()
*/
package cli
