package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"blueiris-cli/internal/client"
	"blueiris-cli/pkg/models"
)

// Variables to hold flag values
var (
	outputFile string
)

// Parent Command
var camerasCmd = &cobra.Command{
	Use:   "cameras",
	Short: "Manage cameras",
	Long:  `List cameras, take snapshots, move PTZ cameras or trigger recordings.`,
}

// List Command
var camerasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cameras and groups",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient(cmd.Context())

		cameras, err := api.CameraConfigs(cmd.Context())
		if err != nil {
			fmt.Printf("Error fetching cameras: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(cameras)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tENABLED\tONLINE\tRECORDING\tALERTING\tPTZ\tFPS")
		fmt.Fprintln(w, "----\t----\t-------\t------\t---------\t--------\t---\t---")

		for _, cam := range cameras {
			if cam.IsGroup() {
				fmt.Fprintf(w, "%s\t%s\t(group)\t\t\t\t\t\n", cam.Code, cam.DisplayName)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%t\t%t\t%t\t%t\t%t\t%.1f\n",
				cam.Code,
				cam.DisplayName,
				cam.Enabled,
				cam.Online,
				cam.Recording,
				cam.Alerting,
				cam.PTZ,
				cam.FPS,
			)
		}
		w.Flush()
	},
}

// Snapshot Command
var camerasSnapshotCmd = &cobra.Command{
	Use:     "snapshot <camera>",
	Short:   "Save a JPEG snapshot from a camera",
	Example: `  blueiris-cli cameras snapshot front --output front.jpg`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient(cmd.Context())

		fmt.Printf("Requesting snapshot for camera %s ...\n", args[0])

		imgData, err := api.GetSnapshot(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error getting snapshot: %v\n", err)
			os.Exit(1)
		}

		if err := os.WriteFile(outputFile, imgData, 0644); err != nil {
			fmt.Printf("Error writing file: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Snapshot saved to %s\n", outputFile)
	},
}

// PTZ Command
var camerasPTZCmd = &cobra.Command{
	Use:   "ptz <camera> <command>",
	Short: "Move a PTZ camera or recall a preset",
	Long: `Commands: left, right, up, down, home, zoom_in, zoom_out,
or preset1 .. preset20.`,
	Example: `  blueiris-cli cameras ptz driveway left
  blueiris-cli cameras ptz driveway preset3`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		command, err := models.ParsePTZCommand(args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		runCameraAction(cmd, args[0], fmt.Sprintf("Sending %s to", command),
			func(ctx context.Context, api *client.BlueIrisClient, camera string) error {
				return api.PTZ(ctx, camera, command)
			})
	},
}

var camerasTriggerCmd = &cobra.Command{
	Use:     "trigger <camera>",
	Short:   "Trigger a camera as if it detected motion",
	Example: `  blueiris-cli cameras trigger front`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCameraAction(cmd, args[0], "Triggering",
			func(ctx context.Context, api *client.BlueIrisClient, camera string) error {
				return api.Trigger(ctx, camera)
			})
	},
}

var camerasResetCmd = &cobra.Command{
	Use:   "reset <camera>",
	Short: "Reset a camera",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCameraAction(cmd, args[0], "Resetting",
			func(ctx context.Context, api *client.BlueIrisClient, camera string) error {
				return api.CameraReset(ctx, camera)
			})
	},
}

var camerasEnableCmd = &cobra.Command{
	Use:   "enable <camera>",
	Short: "Enable a camera",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCameraAction(cmd, args[0], "Enabling",
			func(ctx context.Context, api *client.BlueIrisClient, camera string) error {
				return api.CameraEnable(ctx, camera)
			})
	},
}

var camerasDisableCmd = &cobra.Command{
	Use:   "disable <camera>",
	Short: "Disable a camera",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCameraAction(cmd, args[0], "Disabling",
			func(ctx context.Context, api *client.BlueIrisClient, camera string) error {
				return api.CameraDisable(ctx, camera)
			})
	},
}

func runCameraAction(cmd *cobra.Command, camera, verb string, action func(ctx context.Context, api *client.BlueIrisClient, camera string) error) {
	ctx := cmd.Context()
	api := getClient(ctx)

	fmt.Printf("%s camera %s ...\n", verb, camera)
	if err := action(ctx, api, camera); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Success.")
}

func init() {
	// Register Parent
	rootCmd.AddCommand(camerasCmd)

	// Register Subcommands
	camerasCmd.AddCommand(camerasListCmd)
	camerasCmd.AddCommand(camerasSnapshotCmd)
	camerasCmd.AddCommand(camerasPTZCmd)
	camerasCmd.AddCommand(camerasTriggerCmd)
	camerasCmd.AddCommand(camerasResetCmd)
	camerasCmd.AddCommand(camerasEnableCmd)
	camerasCmd.AddCommand(camerasDisableCmd)

	camerasSnapshotCmd.Flags().StringVarP(&outputFile, "output", "o", "snapshot.jpg", "Output filename")
}
