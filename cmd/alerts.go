package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"blueiris-cli/pkg/models"
)

var alertCamera string

// Parent Command
var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Inspect alerts",
	Long:  `List the alerts Blue Iris raised for one camera or for all of them.`,
}

// List Command
var alertsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List alerts",
	Example: `  blueiris-cli alerts list --camera front`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient(cmd.Context())

		alerts, err := api.FetchAlerts(cmd.Context(), alertCamera)
		if err != nil {
			fmt.Printf("Error fetching alerts: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(models.GroupAlertsByCamera(alerts))
			return
		}

		if len(alerts) == 0 {
			fmt.Println("No alerts.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CAMERA\tDATE\tZONES\tRES\tCLIP")
		fmt.Fprintln(w, "------\t----\t-----\t---\t----")

		for _, a := range alerts {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				a.Camera,
				time.Unix(a.Date, 0).Format(time.DateTime),
				a.Zones,
				a.Res,
				a.Clip,
			)
		}
		w.Flush()
	},
}

func init() {
	// Register Parent
	rootCmd.AddCommand(alertsCmd)

	// Register List
	alertsCmd.AddCommand(alertsListCmd)
	alertsListCmd.Flags().StringVar(&alertCamera, "camera", models.CameraIndex, "Camera short name, or index for all cameras")
}
