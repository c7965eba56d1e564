package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"blueiris-cli/internal/client"
	"blueiris-cli/internal/config"
)

// Variables to hold flag values
var (
	host         string
	port         string
	protocol     string
	user         string
	pass         string
	insecure     bool
	savePassword bool
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the Blue Iris server",
	Long: `Performs the login handshake to verify the credentials, then saves the
server address and user locally for future commands. The session itself is
not saved; every command opens its own.

Example:
  blueiris-cli login --host 192.168.1.50 --port 81 --username admin --password pass`,
	Run: func(cmd *cobra.Command, args []string) {
		baseURL := client.BaseURL(protocol, host, port)

		settings, err := config.Load()
		if err != nil {
			log.Fatalf("Fatal: %v", err)
		}
		settings.BaseURL = baseURL
		settings.Username = user
		settings.Password = pass
		settings.Insecure = insecure

		fmt.Printf("Authenticating against %s as user '%s'...\n", baseURL, user)

		api := client.New(clientConfig(settings), client.WithLogger(newLogger(settings)))
		if err := api.Login(cmd.Context()); err != nil {
			log.Fatalf("Fatal: Login failed: %v", err)
		}

		info, _ := api.Info()
		fmt.Printf("Connected to '%s' (version %s, admin: %t).\n", info.SystemName, info.Version, info.Admin)

		if err := api.Logout(cmd.Context()); err != nil {
			fmt.Printf("Warning: logout failed: %v\n", err)
		}

		viper.Set("insecure", insecure)
		if err := config.SaveLogin(baseURL, user, pass, savePassword); err != nil {
			log.Fatalf("Failed to save configuration file: %v", err)
		}

		if !savePassword {
			fmt.Println("Configuration saved. Provide the password with BLUEIRIS_PASSWORD for later commands.")
			return
		}
		fmt.Println("Configuration saved. You can now run commands like 'blueiris-cli cameras list'.")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&host, "host", "", "Blue Iris host name or IP (e.g. 192.168.1.50)")
	loginCmd.Flags().StringVar(&port, "port", "", "Web server port (optional)")
	loginCmd.Flags().StringVar(&protocol, "protocol", "http", "http or https")
	loginCmd.Flags().StringVarP(&user, "username", "u", "admin", "Blue Iris user")
	loginCmd.Flags().StringVarP(&pass, "password", "p", "", "Blue Iris password")
	loginCmd.Flags().BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
	loginCmd.Flags().BoolVar(&savePassword, "save-password", false, "Store the password in the config file")

	_ = loginCmd.MarkFlagRequired("host")
	_ = loginCmd.MarkFlagRequired("password")
}
