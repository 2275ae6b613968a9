package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/relaypoint-io/relay-go/pkg/relay"
)

// NewParticipantsCommand creates the participants command group.
func NewParticipantsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "participants",
		Aliases: []string{"participant"},
		Short:   "Manage participants",
		Long:    "Create, inspect, update, and delete transfer participants",
	}

	cmd.AddCommand(newCreateSubcommand("participant",
		func(ctx context.Context, client relay.Client, params relay.Params) (*relay.Resource, error) {
			return client.Participants().Create(ctx, params)
		}))
	cmd.AddCommand(newGetSubcommand("participant",
		func(ctx context.Context, client relay.Client, id string) (*relay.Resource, error) {
			return client.Participants().Get(ctx, id)
		}))
	cmd.AddCommand(newListSubcommand("participants",
		func(ctx context.Context, client relay.Client, params relay.Params) (*relay.Collection, error) {
			return client.Participants().List(ctx, params)
		}))
	cmd.AddCommand(newUpdateSubcommand("participant",
		func(ctx context.Context, client relay.Client, id string, params relay.Params) (*relay.Resource, error) {
			return client.Participants().Update(ctx, id, params)
		}))
	cmd.AddCommand(newDeleteSubcommand("participant",
		func(ctx context.Context, client relay.Client, id string) error {
			return client.Participants().Delete(ctx, id)
		}))

	return cmd
}
