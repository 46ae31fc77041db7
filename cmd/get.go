package cmd

import (
	"fmt"
	"os"

	"droidclip/pkg/errors"
	"droidclip/pkg/logger"

	hostclip "github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var getCopyFlag bool

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the device clipboard content",
	Long: `Read the device clipboard and print it to stdout. An empty clipboard
prints a notice to stderr and exits non-zero; empty-string content is a
real value and prints normally.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := GetContext()
		defer cancel()

		client, err := newClient(cmd)
		if err != nil {
			return err
		}

		text, ok, err := client.Get(ctx)
		if err != nil {
			return mapCancellation(ctx, err)
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "(Clipboard is empty)")
			return errors.Silent(errors.ExitCodeGeneral)
		}

		fmt.Println(text)

		if getCopyFlag {
			if err := hostclip.WriteAll(text); err != nil {
				return errors.NewWithError(errors.ExitCodeGeneral, "Failed to copy to host clipboard", err)
			}
			logger.Debug().Msg("copied device clipboard to host clipboard")
		}
		return nil
	},
}

func init() {
	getCmd.Flags().BoolVar(&getCopyFlag, "copy", false, "Also copy the text to the host clipboard")
}
