package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mjs243/money-manager/internal/importer"
	"github.com/mjs243/money-manager/internal/ledger"
)

func newImportCommand(e *env) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import bank export CSVs from the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(e, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "mint", "export format")

	return cmd
}

func runImport(e *env, format string) error {
	registry := importer.DefaultRegistry()
	parser := registry.Get(format)
	if parser == nil {
		return fmt.Errorf("unknown import format %q", format)
	}

	files, err := importer.Scan(e.dataRoot)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("nothing to import")
		return nil
	}

	existing, err := ledger.Load(e.dataRoot)
	if err != nil {
		return err
	}

	now := time.Now()
	total := 0
	for _, file := range files {
		f, err := os.Open(file.Path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", file.Name, err)
		}
		parsed, err := parser.Parse(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("parsing %s: %w", file.Name, err)
		}

		res := ledger.Validate(parsed, now)
		if len(res.Skipped) > 0 {
			e.log.Warn().
				Str("file", file.Name).
				Int("skipped", len(res.Skipped)).
				Msg("rejected malformed records")
			for _, ve := range res.Skipped {
				e.log.Debug().Str("file", file.Name).Msg(ve.Error())
			}
		}

		fresh := importer.Dedupe(existing, res.Valid)
		existing = append(existing, fresh...)
		total += len(fresh)

		if err := importer.MarkProcessed(e.dataRoot, file.Name); err != nil {
			return err
		}
		e.log.Info().
			Str("file", file.Name).
			Int("imported", len(fresh)).
			Int("duplicates", len(res.Valid)-len(fresh)).
			Msg("imported file")
	}

	// Re-validate sorts the combined ledger by date.
	combined := ledger.Validate(existing, now)
	if err := ledger.Save(e.dataRoot, combined.Valid); err != nil {
		return err
	}

	fmt.Printf("imported %d new transactions (%d total)\n", total, len(combined.Valid))
	return nil
}
