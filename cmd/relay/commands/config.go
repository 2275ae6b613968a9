package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Masked replaces secret values in human-readable output.
const Masked = "***"

var errUnknownConfigKey = errors.New("unknown config key")

// configKeys are the settings the config command accepts.
var configKeys = []string{"api", "api_id", "token", "api_version", "output", "skip_ssl_validation", "max_retries"}

// Config represents the CLI configuration file.
type Config struct {
	API               string `json:"api,omitempty"         yaml:"api,omitempty"`
	APIID             string `json:"api_id,omitempty"      yaml:"api_id,omitempty"`
	Token             string `json:"token,omitempty"       yaml:"token,omitempty"`
	APIVersion        string `json:"api_version,omitempty" yaml:"api_version,omitempty"`
	Output            string `json:"output,omitempty"      yaml:"output,omitempty"`
	SkipSSLValidation bool   `json:"skip_ssl_validation"   yaml:"skip_ssl_validation"`
	MaxRetries        int    `json:"max_retries"           yaml:"max_retries"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and edit the settings stored in the config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			display := *config
			if display.Token != "" {
				display.Token = Masked
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(display)
			case OutputFormatYAML:
				return renderYAML(display)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Setting", "Value")
				_ = table.Append("api", display.API)
				_ = table.Append("api_id", display.APIID)
				_ = table.Append("token", display.Token)
				_ = table.Append("api_version", display.APIVersion)
				_ = table.Append("output", display.Output)
				_ = table.Append("skip_ssl_validation", fmt.Sprintf("%v", display.SkipSSLValidation))
				_ = table.Append("max_retries", fmt.Sprintf("%d", display.MaxRetries))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !knownConfigKey(key) {
				return fmt.Errorf("%w: %q (known keys: %v)", errUnknownConfigKey, key, configKeys)
			}

			viper.Set(key, value)
			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Printf("Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !knownConfigKey(key) {
				return fmt.Errorf("%w: %q (known keys: %v)", errUnknownConfigKey, key, configKeys)
			}

			viper.Set(key, "")
			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Printf("Unset %s\n", key)

			return nil
		},
	}
}

func knownConfigKey(key string) bool {
	for _, known := range configKeys {
		if key == known {
			return true
		}
	}

	return false
}

// loadConfig materializes the current viper state into a Config.
func loadConfig() *Config {
	return &Config{
		API:               viper.GetString("api"),
		APIID:             viper.GetString("api_id"),
		Token:             viper.GetString("token"),
		APIVersion:        viper.GetString("api_version"),
		Output:            viper.GetString("output"),
		SkipSSLValidation: viper.GetBool("skip_ssl_validation"),
		MaxRetries:        viper.GetInt("max_retries"),
	}
}

// saveConfig writes the current viper state back to the config file.
func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locating home directory: %w", err)
		}

		configDir := filepath.Join(home, ".relay")
		if err := os.MkdirAll(configDir, 0o700); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(loadConfig())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// 0600: the file holds the API secret token.
	if err := os.WriteFile(configFile, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
