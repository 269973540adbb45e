package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/schemabook/internal/config"
	"github.com/vvka-141/schemabook/internal/loader"
	"github.com/vvka-141/schemabook/internal/logging"
	"github.com/vvka-141/schemabook/internal/schema"
	"github.com/vvka-141/schemabook/internal/workbook"
	"github.com/vvka-141/schemabook/pkg/schemabook"
)

var loadCmd = &cobra.Command{
	Use:   "load [workbook]",
	Short: "Convert a schema workbook into per-object metadata documents",
	Long: `Load reads the workbook, groups rows into per-object schema records,
validates them, and writes one JSON document per surviving object.

The workbook path defaults to the configured (or standard) filename when
omitted. Configuration is read from schemabook.yaml and an optional .env in
the current directory; flags override both.

Objects with validation errors are excluded from the output, but the load
proceeds and succeeds as long as at least one object is written. All issues
are reported on stderr.

Examples:
  # Load the default workbook
  schemabook load

  # Explicit workbook and output directory
  schemabook load ./exports/crm_schema.xlsx --out ./data/metadata

  # Remove documents for objects no longer present in the source
  schemabook load --prune`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

var (
	loadOut          string
	loadPrune        bool
	loadTypeFallback string
	loadNoStandard   bool
)

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringVarP(&loadOut, "out", "o", "", "Output directory for object documents")
	loadCmd.Flags().BoolVar(&loadPrune, "prune", false, "Remove stale documents after a successful load")
	loadCmd.Flags().StringVar(&loadTypeFallback, "type-fallback", "", "Field type substituted for unrecognized types")
	loadCmd.Flags().BoolVar(&loadNoStandard, "no-standard-fields", false, "Do not inject Id/Name fields into objects lacking them")
}

func runLoad(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	log := logging.NewConsoleLogger(verbose)

	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		return err
	}
	applyLoadFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	workbookPath := cfg.Workbook
	if len(args) == 1 {
		workbookPath = args[0]
	}

	log.Info("Loading metadata from %s...", workbookPath)

	ldr := loader.New(loader.Options{
		OutputDir:            cfg.OutputDir,
		TypeFallback:         cfg.Fallback(),
		SheetOverrides:       sheetOverrides(cfg),
		InjectStandardFields: *cfg.InjectStandardFields,
		Prune:                cfg.Prune,
		Log:                  log,
	})

	ok, err := ldr.Load(workbookPath)
	if err != nil {
		return err
	}

	reportIssues(ldr.Issues())

	summary := ldr.Summary()
	fmt.Fprintf(os.Stderr, "Wrote %d object document(s) to %s (%d fields, %d relationships)\n",
		summary.Objects, cfg.OutputDir, summary.Fields, summary.Relationships)

	if !ok {
		if summary.WriteFailures > 0 {
			return schemabook.ErrWriteFailed
		}
		return schemabook.ErrNoObjects
	}
	return nil
}

func applyLoadFlags(cfg *config.ProjectConfig) {
	if loadOut != "" {
		cfg.OutputDir = loadOut
	}
	if loadPrune {
		cfg.Prune = true
	}
	if loadTypeFallback != "" {
		cfg.TypeFallback = loadTypeFallback
	}
	if loadNoStandard {
		inject := false
		cfg.InjectStandardFields = &inject
	}
}

// sheetOverrides converts configured exact sheet names into classifier
// overrides, keyed by normalized name.
func sheetOverrides(cfg *config.ProjectConfig) map[string]schema.RowKind {
	overrides := make(map[string]schema.RowKind)
	add := func(name string, kind schema.RowKind) {
		if name != "" {
			overrides[workbook.NormalizeHeader(name)] = kind
		}
	}
	add(cfg.Sheets.Objects, schema.KindObject)
	add(cfg.Sheets.Fields, schema.KindField)
	add(cfg.Sheets.Relationships, schema.KindRelationship)
	if len(overrides) == 0 {
		return nil
	}
	return overrides
}

func reportIssues(issues []schemabook.Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%d issue(s):\n", len(issues))
	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "  %s\n", issue)
	}
}
