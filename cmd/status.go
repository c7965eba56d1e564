package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"

	"blueiris-cli/internal/client"
	"blueiris-cli/pkg/models"
)

var watchInterval time.Duration

type statusView struct {
	System   string `json:"system"`
	Version  string `json:"version"`
	Signal   string `json:"signal"`
	Profile  string `json:"profile"`
	Schedule string `json:"schedule"`
	Lock     string `json:"lock"`
	Alerts   int    `json:"alerts"`
	Warnings int    `json:"warnings"`
}

func currentStatus(ctx context.Context, api *client.BlueIrisClient) (statusView, error) {
	status, err := api.Status(ctx)
	if err != nil {
		return statusView{}, err
	}
	profile, err := api.Profile(ctx)
	if err != nil {
		return statusView{}, err
	}
	info, _ := api.Info()

	return statusView{
		System:   info.SystemName,
		Version:  info.Version,
		Signal:   status.Signal.String(),
		Profile:  profile,
		Schedule: status.Schedule,
		Lock:     status.Lock.String(),
		Alerts:   status.Alerts,
		Warnings: status.Warnings,
	}, nil
}

func printStatus(view statusView) {
	if jsonOutput {
		printJSON(view)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "SYSTEM\t%s (%s)\n", view.System, view.Version)
	fmt.Fprintf(w, "SIGNAL\t%s\n", view.Signal)
	fmt.Fprintf(w, "PROFILE\t%s\n", view.Profile)
	fmt.Fprintf(w, "SCHEDULE\t%s (%s)\n", view.Schedule, view.Lock)
	fmt.Fprintf(w, "ALERTS\t%d\n", view.Alerts)
	fmt.Fprintf(w, "WARNINGS\t%d\n", view.Warnings)
	w.Flush()
}

// runStatusChange sends a status change and prints the snapshot the server
// answered with.
func runStatusChange(cmd *cobra.Command, describe string, change func(ctx context.Context, api *client.BlueIrisClient) error) {
	ctx := cmd.Context()
	api := getClient(ctx)

	fmt.Printf("%s...\n", describe)
	if err := change(ctx, api); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	view, err := currentStatus(ctx, api)
	if err != nil {
		fmt.Printf("Error fetching status: %v\n", err)
		os.Exit(1)
	}
	printStatus(view)
}

// Parent Command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show or change the server status",
	Long:  `Show signal, profile and schedule, or change them.`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient(cmd.Context())

		view, err := currentStatus(cmd.Context(), api)
		if err != nil {
			fmt.Printf("Error fetching status: %v\n", err)
			os.Exit(1)
		}
		printStatus(view)
	},
}

var statusSignalCmd = &cobra.Command{
	Use:     "signal <red|green|yellow|0-2>",
	Short:   "Set the traffic-light signal",
	Example: `  blueiris-cli status signal green`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		signal, err := models.ParseSignal(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		runStatusChange(cmd, fmt.Sprintf("Setting signal to %s", signal),
			func(ctx context.Context, api *client.BlueIrisClient) error {
				return api.SetSignal(ctx, signal)
			})
	},
}

var statusProfileCmd = &cobra.Command{
	Use:     "profile <name>",
	Short:   "Activate a profile",
	Example: `  blueiris-cli status profile Away`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStatusChange(cmd, fmt.Sprintf("Activating profile '%s'", args[0]),
			func(ctx context.Context, api *client.BlueIrisClient) error {
				return api.SetProfile(ctx, args[0])
			})
	},
}

var statusScheduleCmd = &cobra.Command{
	Use:     "schedule <name>",
	Short:   "Switch to a schedule",
	Example: `  blueiris-cli status schedule Vacation`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStatusChange(cmd, fmt.Sprintf("Switching to schedule '%s'", args[0]),
			func(ctx context.Context, api *client.BlueIrisClient) error {
				return api.SetSchedule(ctx, args[0])
			})
	},
}

var statusHoldCmd = &cobra.Command{
	Use:   "hold",
	Short: "Toggle the schedule between run and hold",
	Run: func(cmd *cobra.Command, args []string) {
		runStatusChange(cmd, "Toggling schedule hold",
			func(ctx context.Context, api *client.BlueIrisClient) error {
				return api.ToggleScheduleHold(ctx)
			})
	},
}

var statusPauseCmd = &cobra.Command{
	Use:   "pause <indefinitely|resume|30s|1m|1h>",
	Short: "Pause or resume the active profile",
	Example: `  blueiris-cli status pause 1h
  blueiris-cli status pause resume`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pause, err := models.ParsePauseConfig(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		runStatusChange(cmd, fmt.Sprintf("Pause: %s", pause),
			func(ctx context.Context, api *client.BlueIrisClient) error {
				return api.Pause(ctx, pause)
			})
	},
}

var statusWatchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Poll the status and print it whenever it changes",
	Example: `  blueiris-cli status watch --interval 30s`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		api := getClient(ctx)

		var last statusView
		s := gocron.NewScheduler(time.Local)
		s.SingletonModeAll()

		_, err := s.Every(watchInterval).Do(func() {
			if err := api.UpdateStatus(ctx); err != nil {
				fmt.Printf("Error refreshing status: %v\n", err)
				return
			}
			view, err := currentStatus(ctx, api)
			if err != nil {
				fmt.Printf("Error fetching status: %v\n", err)
				return
			}
			if view == last {
				return
			}
			last = view
			if !jsonOutput {
				fmt.Printf("--- %s\n", time.Now().Format(time.RFC3339))
			}
			printStatus(view)
		})
		if err != nil {
			fmt.Printf("Error scheduling status poll: %v\n", err)
			os.Exit(1)
		}

		s.StartAsync()
		<-ctx.Done()
		s.Stop()

		_ = api.Logout(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.AddCommand(statusSignalCmd)
	statusCmd.AddCommand(statusProfileCmd)
	statusCmd.AddCommand(statusScheduleCmd)
	statusCmd.AddCommand(statusHoldCmd)
	statusCmd.AddCommand(statusPauseCmd)
	statusCmd.AddCommand(statusWatchCmd)

	statusWatchCmd.Flags().DurationVar(&watchInterval, "interval", 10*time.Second, "Polling interval")
}
