package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/relaypoint-io/relay-go/pkg/relay"
)

// NewEventsCommand creates the events command group. Events are read-only.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "Inspect events",
		Long:    "List and inspect the events recorded for your account",
	}

	cmd.AddCommand(newGetSubcommand("event",
		func(ctx context.Context, client relay.Client, id string) (*relay.Resource, error) {
			return client.Events().Get(ctx, id)
		}))
	cmd.AddCommand(newListSubcommand("events",
		func(ctx context.Context, client relay.Client, params relay.Params) (*relay.Collection, error) {
			return client.Events().List(ctx, params)
		}))

	return cmd
}
