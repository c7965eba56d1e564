package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	sysArchive  bool
	sysSchedule bool
)

var sysconfigCmd = &cobra.Command{
	Use:   "sysconfig",
	Short: "Show or change global settings (admin only)",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient(cmd.Context())

		sysconfig, err := api.Sysconfig(cmd.Context())
		if err != nil {
			fmt.Printf("Error fetching sysconfig: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(sysconfig)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "ARCHIVE\t%t\n", sysconfig.Archive)
		fmt.Fprintf(w, "SCHEDULE\t%t\n", sysconfig.Schedule)
		w.Flush()
	},
}

var sysconfigSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Enable or disable global archiving and the global schedule",
	Example: `  blueiris-cli sysconfig set --archive=false
  blueiris-cli sysconfig set --schedule=true`,
	Run: func(cmd *cobra.Command, args []string) {
		var archive, schedule *bool
		if cmd.Flags().Changed("archive") {
			archive = &sysArchive
		}
		if cmd.Flags().Changed("schedule") {
			schedule = &sysSchedule
		}
		if archive == nil && schedule == nil {
			fmt.Println("Error: pass --archive and/or --schedule.")
			os.Exit(1)
		}

		api := getClient(cmd.Context())
		if err := api.SetSysconfig(cmd.Context(), archive, schedule); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Success.")
	},
}

func init() {
	rootCmd.AddCommand(sysconfigCmd)
	sysconfigCmd.AddCommand(sysconfigSetCmd)

	sysconfigSetCmd.Flags().BoolVar(&sysArchive, "archive", false, "Global archiving")
	sysconfigSetCmd.Flags().BoolVar(&sysSchedule, "schedule", false, "Global schedule")
}
