package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/layerkit/psimport/pkg/jsx"
)

var scriptCmd = &cobra.Command{
	Use:   "script <image>",
	Short: "Print the place script that would be sent for an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	script, err := jsx.PlaceScript(args[0], cfg.PlaceLinked)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), script)
	return nil
}
