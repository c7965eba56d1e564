package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type namedEntry struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func printNamedEntries(entries []namedEntry) {
	if jsonOutput {
		printJSON(entries)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tACTIVE")
	fmt.Fprintln(w, "-----\t----\t------")
	for _, e := range entries {
		active := ""
		if e.Active {
			active = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.Index, e.Name, active)
	}
	w.Flush()
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the profiles defined on the server",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient(cmd.Context())

		status, err := api.Status(cmd.Context())
		if err != nil {
			fmt.Printf("Error fetching status: %v\n", err)
			os.Exit(1)
		}

		info, _ := api.Info()
		entries := make([]namedEntry, 0, len(info.Profiles))
		for i, name := range info.Profiles {
			entries = append(entries, namedEntry{Index: i, Name: name, Active: i == status.Profile})
		}
		printNamedEntries(entries)
	},
}

var schedulesCmd = &cobra.Command{
	Use:   "schedules",
	Short: "List the schedules defined on the server",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient(cmd.Context())

		status, err := api.Status(cmd.Context())
		if err != nil {
			fmt.Printf("Error fetching status: %v\n", err)
			os.Exit(1)
		}

		info, _ := api.Info()
		entries := make([]namedEntry, 0, len(info.Schedules))
		for i, name := range info.Schedules {
			entries = append(entries, namedEntry{Index: i, Name: name, Active: name == status.Schedule})
		}
		printNamedEntries(entries)
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(schedulesCmd)
}
