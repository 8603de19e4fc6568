package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/layerkit/psimport/pkg/dialog"
	"github.com/layerkit/psimport/pkg/errors"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose images in a file dialog and import them as layers",
	Args:  cobra.NoArgs,
	RunE:  runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().String("dialog-title", "Select images", "Title of the file dialog and message boxes")
	viper.BindPFlag("dialog-title", pickCmd.Flags().Lookup("dialog-title"))
}

func runPick(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	notifier := dialog.NewModalNotifier(cfg.DialogTitle)

	selected, err := dialog.NewFileSelector(cfg.DialogTitle).Select(ctx)
	if err != nil {
		notifier.Error(fmt.Sprintf("Could not open the file dialog: %v", err))
		return errors.Wrap(err, "file selection failed")
	}

	r, err := newRunner(cfg)
	if err != nil {
		notifier.Error(err.Error())
		return err
	}
	defer r.Close()

	_, _, err = r.importSelection(ctx, selected, notifier)
	return err
}
