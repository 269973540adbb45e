package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "schemabook",
	Short: "Schema workbook to metadata document converter",
	Long: `schemabook converts a spreadsheet description of a data schema (objects,
fields, relationships) into one normalized JSON metadata document per object,
then lets you query the result by object name.

The pipeline is offline and file-to-file: read workbook sheets, classify and
group rows per object, validate structure, write documents. No network, no
live credentials. Each run fully regenerates the output set.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Workbook missing or unreadable
  12 - Zero objects survived validation
  13 - Every surviving object failed to write`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
