package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/relaypoint-io/relay-go/pkg/relay"
)

// NewTransfersCommand creates the transfers command group. Transfers are
// immutable once created, so there is no update or delete.
func NewTransfersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transfers",
		Aliases: []string{"transfer"},
		Short:   "Manage transfers",
		Long:    "Create and inspect money transfers between participants",
	}

	cmd.AddCommand(newCreateSubcommand("transfer",
		func(ctx context.Context, client relay.Client, params relay.Params) (*relay.Resource, error) {
			return client.Transfers().Create(ctx, params)
		}))
	cmd.AddCommand(newGetSubcommand("transfer",
		func(ctx context.Context, client relay.Client, id string) (*relay.Resource, error) {
			return client.Transfers().Get(ctx, id)
		}))
	cmd.AddCommand(newListSubcommand("transfers",
		func(ctx context.Context, client relay.Client, params relay.Params) (*relay.Collection, error) {
			return client.Transfers().List(ctx, params)
		}))

	return cmd
}
