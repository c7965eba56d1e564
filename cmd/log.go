package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"blueiris-cli/pkg/models"
)

var logSeverity string

var logCmd = &cobra.Command{
	Use:     "log",
	Short:   "Show the server log",
	Example: `  blueiris-cli log --severity warning`,
	Run: func(cmd *cobra.Command, args []string) {
		var minimum models.LogSeverity
		if logSeverity != "" {
			s, err := models.ParseLogSeverity(logSeverity)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			minimum = s
		}

		api := getClient(cmd.Context())

		entries, err := api.Log(cmd.Context())
		if err != nil {
			fmt.Printf("Error fetching log: %v\n", err)
			os.Exit(1)
		}

		filtered := make([]models.LogEntry, 0, len(entries))
		for _, e := range entries {
			if e.Severity >= minimum {
				filtered = append(filtered, e)
			}
		}

		if jsonOutput {
			printJSON(filtered)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "DATE\tLEVEL\tOBJECT\tMESSAGE")
		fmt.Fprintln(w, "----\t-----\t------\t-------")

		for _, e := range filtered {
			msg := e.Message
			if e.Count > 1 {
				msg = fmt.Sprintf("%s (x%d)", msg, e.Count)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				time.Unix(e.Date, 0).Format(time.DateTime),
				e.Severity,
				e.Object,
				msg,
			)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVar(&logSeverity, "severity", "", "Minimum severity: info, warning or error")
}
