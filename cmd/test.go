package cmd

import (
	"context"
	"time"

	"droidclip/pkg/errors"
	"droidclip/pkg/selftest"

	"github.com/spf13/cobra"
)

var (
	testBasicFlag  bool
	testStressFlag bool
)

// The full run makes a few dozen round trips against a real device, so
// it gets a longer default than single-shot commands.
var testDefaultTimeout = 5 * time.Minute

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the clipboard self-test suites against the device",
	Long: `Exercise set/get round trips with literal fixtures (emoji, multi-script
text, quotes, backslashes, the empty string) plus stress scenarios, and
report pass/fail counts. With neither --basic nor --stress both suites
run, followed by an aggregate report naming the transport used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout := globalTimeout
		if !cmd.Flags().Changed("timeout") {
			timeout = testDefaultTimeout
		}
		ctx, cancel := getContextWithTimeout(timeout)
		defer cancel()

		client, err := newClient(cmd)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		var ok bool
		switch {
		case testBasicFlag && !testStressFlag:
			ok = selftest.RunBasic(ctx, client, w).OK()
		case testStressFlag && !testBasicFlag:
			ok = selftest.RunStress(ctx, client, w).OK()
		default:
			ok = selftest.RunAll(ctx, client, w)
		}

		if ctx.Err() == context.Canceled {
			return mapCancellation(ctx, ctx.Err())
		}
		if !ok {
			// The report already printed the per-case details.
			return errors.Silent(errors.ExitCodeGeneral)
		}
		return nil
	},
}

func init() {
	testCmd.Flags().BoolVar(&testBasicFlag, "basic", false, "Run basic tests only")
	testCmd.Flags().BoolVar(&testStressFlag, "stress", false, "Run stress tests only")
}
