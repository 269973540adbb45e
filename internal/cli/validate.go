package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/schemabook/internal/config"
	"github.com/vvka-141/schemabook/internal/logging"
	"github.com/vvka-141/schemabook/internal/schema"
	"github.com/vvka-141/schemabook/internal/workbook"
	"github.com/vvka-141/schemabook/pkg/schemabook"
)

var validateCmd = &cobra.Command{
	Use:   "validate [workbook]",
	Short: "Check a schema workbook without writing documents",
	Long: `Validate runs the read, classify, assemble, and validate stages against
the workbook and reports every issue found, without touching the output
directory.

The exit code is zero when at least one object would survive a real load,
matching the success semantics of the load command.

Examples:
  # Validate the default workbook
  schemabook validate

  # Validate an explicit workbook with JSON issue output
  schemabook validate ./exports/crm_schema.xlsx --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var validateJSON bool

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output issues as JSON")
}

func runValidate(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	log := logging.NewConsoleLogger(verbose)

	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		return err
	}

	workbookPath := cfg.Workbook
	if len(args) == 1 {
		workbookPath = args[0]
	}

	sheets, err := workbook.Read(workbookPath)
	if err != nil {
		return err
	}

	classifier := &schema.Classifier{
		TypeFallback:   cfg.Fallback(),
		SheetOverrides: sheetOverrides(cfg),
		Log:            log,
	}

	var issues []schemabook.Issue
	var rows []schema.Classified
	for _, sheet := range sheets {
		if classifier.SheetKind(sheet.Name) == schema.KindSkip {
			continue
		}
		for _, row := range sheet.Rows {
			classified, rowIssues := classifier.Classify(sheet.Name, row)
			issues = append(issues, rowIssues...)
			if classified.Kind != schema.KindSkip {
				rows = append(rows, classified)
			}
		}
	}

	assembler := &schema.Assembler{
		Options: schema.AssembleOptions{InjectStandardFields: *cfg.InjectStandardFields},
		Log:     log,
	}
	catalog, assembleIssues := assembler.Assemble(rows)
	issues = append(issues, assembleIssues...)

	validationIssues := schema.Validate(catalog)
	issues = append(issues, validationIssues...)
	excluded := schema.ExcludedObjects(validationIssues)

	if validateJSON {
		if err := printIssuesJSON(issues); err != nil {
			return err
		}
	} else {
		reportIssues(issues)
	}

	survivors := catalog.Len() - len(excluded)
	fmt.Fprintf(os.Stderr, "%d of %d object(s) would be written\n", survivors, catalog.Len())

	if survivors == 0 {
		return schemabook.ErrNoObjects
	}
	return nil
}

type issueJSON struct {
	Severity string `json:"severity"`
	Object   string `json:"object,omitempty"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
}

func printIssuesJSON(issues []schemabook.Issue) error {
	out := make([]issueJSON, len(issues))
	for i, issue := range issues {
		out[i] = issueJSON{
			Severity: string(issue.Severity),
			Object:   issue.Object,
			Field:    issue.Field,
			Message:  issue.Message,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
