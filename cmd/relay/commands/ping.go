package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPingCommand creates the ping command.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check API connectivity and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}

			fmt.Println("OK")

			return nil
		},
	}
}
