package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"blueiris-cli/pkg/models"
)

var clipCamera string

// Parent Command
var clipsCmd = &cobra.Command{
	Use:   "clips",
	Short: "Inspect recorded clips",
}

// List Command
var clipsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List recorded clips",
	Example: `  blueiris-cli clips list --camera garage`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient(cmd.Context())

		clips, err := api.FetchClips(cmd.Context(), clipCamera)
		if err != nil {
			fmt.Printf("Error fetching clips: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(models.GroupClipsByCamera(clips))
			return
		}

		if len(clips) == 0 {
			fmt.Println("No clips.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CAMERA\tDATE\tLENGTH\tSIZE\tPATH")
		fmt.Fprintln(w, "------\t----\t------\t----\t----")

		for _, c := range clips {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				c.Camera,
				time.Unix(c.Date, 0).Format(time.DateTime),
				(time.Duration(c.Msec) * time.Millisecond).String(),
				c.FileSize,
				c.Path,
			)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(clipsCmd)

	clipsCmd.AddCommand(clipsListCmd)
	clipsListCmd.Flags().StringVar(&clipCamera, "camera", models.CameraIndex, "Camera short name, or index for all cameras")
}
