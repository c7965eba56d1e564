package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = ".blueiris-cli"
	envPrefix  = "BLUEIRIS"
)

// Settings is the connection and logging configuration shared by all commands.
type Settings struct {
	BaseURL     string        `mapstructure:"base_url"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	Insecure    bool          `mapstructure:"insecure"`
	Timeout     time.Duration `mapstructure:"timeout"`
	LogLevel    string        `mapstructure:"log_level"`
	LogEncoding string        `mapstructure:"log_encoding"`
}

func setDefaults() {
	viper.SetDefault("base_url", "")
	viper.SetDefault("username", "admin")
	viper.SetDefault("password", "")
	viper.SetDefault("insecure", false)
	viper.SetDefault("timeout", 10*time.Second)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_encoding", "console")
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	setDefaults()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".blueiris-cli" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	// BLUEIRIS_BASE_URL, BLUEIRIS_PASSWORD, ...
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine, everything can come from flags or env.
	_ = viper.ReadInConfig()
}

// Load returns the merged settings from file, env and bound flags.
func Load() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	return s, nil
}

// SaveLogin persists the server address and user. The password is only
// written when savePassword is set; the session token is never written.
func SaveLogin(baseURL, username, password string, savePassword bool) error {
	viper.Set("base_url", baseURL)
	viper.Set("username", username)
	if savePassword {
		viper.Set("password", password)
	}

	// Ensure the file exists before writing
	if err := viper.WriteConfig(); err != nil {
		// If file doesn't exist, create it
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, configName+".yaml")
		return viper.WriteConfigAs(path)
	}
	return nil
}
