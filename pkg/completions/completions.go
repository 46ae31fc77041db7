package completions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"droidclip/pkg/adb"

	"github.com/spf13/cobra"
)

func CompleteMethod(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	methods := []string{"auto", "http", "adb"}
	results := filterPrefix(methods, toComplete)

	for i, method := range results {
		results[i] = fmt.Sprintf("%s\t%s", method, methodDescription(method))
	}
	return results, cobra.ShellCompDirectiveNoFileComp
}

func CompleteLogLevel(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	levels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	return filterPrefix(levels, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// CompleteSerial lists attached device serials via "adb devices".
func CompleteSerial(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	m := adb.NewManager("", "")
	if !m.IsAvailable() {
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}
	out, err := m.Exec(ctx, "devices")
	if err != nil {
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}

	return filterPrefix(parseDeviceSerials(out), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func parseDeviceSerials(out string) []string {
	var serials []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == "device" {
			serials = append(serials, fields[0])
		}
	}
	return serials
}

func filterPrefix(items []string, prefix string) []string {
	var result []string
	for _, item := range items {
		itemName := strings.Split(item, "\t")[0]
		if strings.HasPrefix(strings.ToLower(itemName), strings.ToLower(prefix)) {
			result = append(result, item)
		}
	}
	return result
}

func methodDescription(method string) string {
	switch method {
	case "auto":
		return "Try HTTP first, fall back to adb"
	case "http":
		return "HTTP socket server over a port forward"
	case "adb":
		return "adb shell content provider"
	default:
		return ""
	}
}

func RegisterCompletions(rootCmd *cobra.Command) {
	rootCmd.RegisterFlagCompletionFunc("method", CompleteMethod)
	rootCmd.RegisterFlagCompletionFunc("log-level", CompleteLogLevel)
	rootCmd.RegisterFlagCompletionFunc("serial", CompleteSerial)
}
