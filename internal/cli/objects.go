package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/schemabook/internal/config"
	"github.com/vvka-141/schemabook/internal/loader"
	"github.com/vvka-141/schemabook/internal/logging"
	"github.com/vvka-141/schemabook/pkg/schemabook"
)

var objectsCmd = &cobra.Command{
	Use:   "objects",
	Short: "Query previously generated metadata documents",
	Long: `Objects commands read the documents produced by a prior load and answer
queries by object name, without needing the source workbook.

Available commands:
  list           List object names
  fields         List the fields of one object
  relationships  List the relationships of one object

Examples:
  schemabook objects list
  schemabook objects fields Account
  schemabook objects relationships Account --dir ./data/metadata`,
}

var objectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List object names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ldr, err := documentsLoader(cmd)
		if err != nil {
			return err
		}
		for _, name := range ldr.ObjectNames() {
			fmt.Println(name)
		}
		return nil
	},
}

var objectsFieldsCmd = &cobra.Command{
	Use:   "fields <object>",
	Short: "List the fields of one object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ldr, err := documentsLoader(cmd)
		if err != nil {
			return err
		}
		for _, f := range ldr.ObjectFields(args[0]) {
			line := fmt.Sprintf("%s\t%s", f.Name, f.Type)
			if f.Required {
				line += "\trequired"
			}
			if len(f.PicklistValues) > 0 {
				line += "\t[" + strings.Join(f.PicklistValues, ", ") + "]"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var objectsRelationshipsCmd = &cobra.Command{
	Use:   "relationships <object>",
	Short: "List the relationships of one object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ldr, err := documentsLoader(cmd)
		if err != nil {
			return err
		}
		for _, r := range ldr.ObjectRelationships(args[0]) {
			line := fmt.Sprintf("%s\t%s\t-> %s", r.Name, r.Type, r.Target)
			if r.Cardinality != "" {
				line += "\t(" + r.Cardinality + ")"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var objectsDir string

func init() {
	rootCmd.AddCommand(objectsCmd)
	objectsCmd.AddCommand(objectsListCmd)
	objectsCmd.AddCommand(objectsFieldsCmd)
	objectsCmd.AddCommand(objectsRelationshipsCmd)

	objectsCmd.PersistentFlags().StringVar(&objectsDir, "dir", "", "Directory holding object documents (default: configured output dir)")
}

// documentsLoader builds a loader populated from the document directory.
func documentsLoader(cmd *cobra.Command) (schemabook.Loader, error) {
	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		return nil, err
	}
	dir := cfg.OutputDir
	if objectsDir != "" {
		dir = objectsDir
	}

	ldr := loader.New(loader.Options{
		OutputDir: dir,
		Log:       logging.NewConsoleLogger(getVerboseFlag(cmd)),
	})
	if err := ldr.LoadDocuments(dir); err != nil {
		return nil, err
	}
	return ldr, nil
}
