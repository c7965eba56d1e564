package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"blueiris-cli/internal/client"
	"blueiris-cli/internal/config"
	"blueiris-cli/internal/logger"
)

var cfgFile string
var jsonOutput bool
var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "blueiris-cli",
	Short: "A CLI for remotely controlling a Blue Iris server",
	Long: `Query status, cameras, alerts, clips and logs, and change signal,
profile and schedule on a Blue Iris server via its JSON interface.`,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.blueiris-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every command and response")
}

func newLogger(settings config.Settings) *zap.Logger {
	l, err := logger.New(settings.LogLevel, settings.LogEncoding, verbose)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return l
}

func clientConfig(settings config.Settings) client.ClientConfig {
	return client.ClientConfig{
		BaseURL:  settings.BaseURL,
		Username: settings.Username,
		Password: settings.Password,
		Insecure: settings.Insecure,
		Timeout:  settings.Timeout,
		Debug:    verbose,
	}
}

// getClient builds a client from the stored configuration and opens a
// session. Blue Iris sessions are not persisted, so every invocation logs in.
func getClient(ctx context.Context) *client.BlueIrisClient {
	settings, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if settings.BaseURL == "" {
		fmt.Println("Error: No server configured. Please run 'blueiris-cli login' first.")
		os.Exit(1)
	}

	api := client.New(clientConfig(settings), client.WithLogger(newLogger(settings)))
	if err := api.Login(ctx); err != nil {
		fmt.Printf("Error: Login failed: %v\n", err)
		os.Exit(1)
	}
	return api
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Printf("Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
