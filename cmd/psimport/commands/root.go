package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/layerkit/psimport/pkg/errors"
)

var rootCmd = &cobra.Command{
	Use:   "psimport [image]",
	Short: "Import images into Photoshop as layers",
	Long: `Imports image files into a running Photoshop instance, one layer per image.

With one argument the image is placed into the active document, or into a
new 1920x1080 document when none is open. Use "pick" to choose images in a
native dialog, or "import" to place several images from the command line.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env file if present (ignore errors)
		_ = godotenv.Load()
	},
	RunE: runOpen,
}

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	)
}

func init() {
	rootCmd.PersistentFlags().String("prog-id", "Photoshop.Application", "COM ProgID of the host application")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Simulate the host in memory and log the scripts instead of running them")
	rootCmd.PersistentFlags().Float64("doc-width", 1920, "Width of a newly created document")
	rootCmd.PersistentFlags().Float64("doc-height", 1080, "Height of a newly created document")
	rootCmd.PersistentFlags().Float64("doc-resolution", 72, "Resolution of a newly created document")
	rootCmd.PersistentFlags().String("doc-name", "New Document", "Name of a newly created document")
	rootCmd.PersistentFlags().Bool("place-linked", false, "Place images as linked smart objects")
	rootCmd.PersistentFlags().Int64("max-file-size", 2*1024*1024*1024, "Max image file size in bytes (0 disables the check)")
	rootCmd.PersistentFlags().String("fsm-db-path", "", "FSM store directory (default: temporary per run)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")

	for _, name := range []string{
		"prog-id", "dry-run", "doc-width", "doc-height", "doc-resolution", "doc-name",
		"place-linked", "max-file-size", "fsm-db-path", "log-level",
	} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// runOpen places a single image, reusing the active document.
func runOpen(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no image path provided", errors.ErrSelectionEmpty)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	r, err := newRunner(cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	report, err := r.batch().Run(ctx, args)
	r.logDryRun()
	if err != nil {
		return err
	}

	for _, res := range report.Results {
		if !res.OK() {
			return fmt.Errorf("%w: %s: %s", errors.ErrImportFailed, res.Path, res.Error)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Placed %s into %q\n", args[0], report.Document.Name)
	return nil
}
