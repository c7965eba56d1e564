package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <cmd> [params-json]",
	Short: "Send a raw JSON command and print the reply",
	Long: `Sends any command the Blue Iris JSON interface understands, with the
current session attached, and prints what came back.`,
	Example: `  blueiris-cli exec camlist
  blueiris-cli exec camconfig '{"camera":"front","motion":true}'`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var params map[string]interface{}
		if len(args) == 2 {
			if err := json.Unmarshal([]byte(args[1]), &params); err != nil {
				fmt.Printf("Error: params must be a JSON object: %v\n", err)
				os.Exit(1)
			}
		}

		api := getClient(cmd.Context())
		result := api.Execute(cmd.Context(), args[0], params)

		if !jsonOutput {
			fmt.Printf("Result: %s (%s)\n", result.Kind, result.Status)
		}
		if len(result.Data) > 0 {
			var data interface{}
			if err := json.Unmarshal(result.Data, &data); err == nil {
				printJSON(data)
			}
		}
		if !result.OK() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
