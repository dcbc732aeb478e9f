package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aumos-oss/agentsmd/pkg/agentsmd"
	"aumos-oss/agentsmd/pkg/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Parse and validate an AGENTS.md file",
	Long: `Parse an AGENTS.md file and validate the resulting policy.

validate prints a one-line summary and exits non-zero when the file does not
parse or the policy is invalid. Use lint for detailed diagnostics.

Examples:
  agentsmd validate AGENTS.md`,
	Args: cobra.ExactArgs(1),
	RunE: validateFile,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateFile(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	parsed, err := agentsmd.ParseFile(path)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	if !parsed.Success {
		for _, e := range parsed.Errors {
			fmt.Fprintf(out, "%s: %s\n", path, e.Error())
		}
		return cli.NewExitError(1)
	}

	result := agentsmd.Validate(parsed.Policy)
	if !result.Valid {
		for _, problem := range result.Errors {
			fmt.Fprintf(out, "%s: %s\n", path, problem)
		}
		return cli.NewExitError(1)
	}

	logger.Debug("policy validated", "file", path, "warnings", len(parsed.Warnings))
	fmt.Fprintf(out, "%s: valid policy for %s (%d warning(s))\n",
		path, parsed.Policy.Identity.Site, len(parsed.Warnings))
	return nil
}
