package cmd

import (
	"fmt"
	"unicode/utf8"

	"droidclip/pkg/errors"

	hostclip "github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var setFromHostFlag bool

var setCmd = &cobra.Command{
	Use:   "set <text>",
	Short: "Set the device clipboard content",
	Long: `Place text on the device clipboard. Supports full Unicode including
emoji, embedded quotes, backslashes, and newlines. With --from-host the
text is read from the host clipboard instead of the argument.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := GetContext()
		defer cancel()

		var text string
		switch {
		case setFromHostFlag:
			var err error
			text, err = hostclip.ReadAll()
			if err != nil {
				return errors.NewWithError(errors.ExitCodeGeneral, "Failed to read host clipboard", err)
			}
		case len(args) == 1:
			text = args[0]
		default:
			_ = cmd.Usage()
			return errors.ValidationError("text argument required for 'set' (or use --from-host)")
		}

		client, err := newClient(cmd)
		if err != nil {
			return err
		}

		if err := client.Set(ctx, text); err != nil {
			return mapCancellation(ctx, err)
		}

		fmt.Printf("✓ Clipboard set successfully (%d chars)\n", utf8.RuneCountInString(text))
		return nil
	},
}

func init() {
	setCmd.Flags().BoolVar(&setFromHostFlag, "from-host", false, "Read the text from the host clipboard")
}
