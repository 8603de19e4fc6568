package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/layerkit/psimport/pkg/dialog"
	"github.com/layerkit/psimport/pkg/errors"
)

var (
	importFormat      string
	importFailOnError bool
)

var importCmd = &cobra.Command{
	Use:   "import <image>...",
	Short: "Import several images as layers of one document",
	Long: `Imports the given images, in order, into the active document (or a new
one). Files with unsupported extensions are skipped. A failed image does
not stop the others; the report lists every outcome.`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importFormat, "format", "text", "Report format: text, yaml, json")
	importCmd.Flags().BoolVar(&importFailOnError, "fail-on-error", false, "Exit non-zero if any image failed")
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := checkFormat(importFormat); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	r, err := newRunner(cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	ctx := cmd.Context()
	selected, err := dialog.StaticSelector(args).Select(ctx)
	if err != nil {
		return err
	}

	report, summary, err := r.importSelection(ctx, selected, dialog.LogNotifier{})
	if err != nil {
		return err
	}

	if err := writeReport(cmd.OutOrStdout(), importFormat, report, summary); err != nil {
		return errors.Wrap(err, "failed to write report")
	}

	if importFailOnError && summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d images", errors.ErrImportFailed, summary.Failed, summary.Total)
	}
	return nil
}
