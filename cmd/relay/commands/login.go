package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/relaypoint-io/relay-go/pkg/relay"
	"github.com/relaypoint-io/relay-go/pkg/relayclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiBase string
		apiID   string
		token   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Relay API",
		Long:  "Store API credentials in the config file after verifying them against the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiBase == "" {
				apiBase = viper.GetString("api")
			}

			if apiBase == "" {
				apiBase = relay.DefaultAPIBase
			}

			if apiID == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API ID: ")
				apiID, _ = reader.ReadString('\n')
				apiID = strings.TrimSpace(apiID)
			}

			if token == "" {
				fmt.Print("API token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = strings.TrimSpace(string(byteToken))

				fmt.Println()
			}

			config := relay.DefaultConfig()
			config.APIBase = apiBase
			config.APIID = apiID
			config.APIToken = token
			config.SkipTLSVerify = viper.GetBool("skip_ssl_validation")

			client, err := relayclient.New(config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			if err := client.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("credential check failed: %w", err)
			}

			viper.Set("api", apiBase)
			viper.Set("api_id", apiID)
			viper.Set("token", token)

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Printf("Logged in to %s\n", apiBase)

			return nil
		},
	}

	cmd.Flags().StringVarP(&apiBase, "api", "a", "", "API base URL")
	cmd.Flags().StringVar(&apiID, "api-id", "", "API account id")
	cmd.Flags().StringVarP(&token, "token", "t", "", "API secret token")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out from the Relay API",
		Long:  "Remove the stored API credentials from the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if viper.GetString("token") == "" {
				return ErrNotLoggedIn
			}

			viper.Set("token", "")
			viper.Set("api_id", "")

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}
