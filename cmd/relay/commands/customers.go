package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/relaypoint-io/relay-go/pkg/relay"
)

// NewCustomersCommand creates the customers command group.
func NewCustomersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Manage customers",
		Long:    "Create, inspect, update, and delete Relay customers",
	}

	cmd.AddCommand(newCreateSubcommand("customer",
		func(ctx context.Context, client relay.Client, params relay.Params) (*relay.Resource, error) {
			return client.Customers().Create(ctx, params)
		}))
	cmd.AddCommand(newGetSubcommand("customer",
		func(ctx context.Context, client relay.Client, id string) (*relay.Resource, error) {
			return client.Customers().Get(ctx, id)
		}))
	cmd.AddCommand(newListSubcommand("customers",
		func(ctx context.Context, client relay.Client, params relay.Params) (*relay.Collection, error) {
			return client.Customers().List(ctx, params)
		}))
	cmd.AddCommand(newUpdateSubcommand("customer",
		func(ctx context.Context, client relay.Client, id string, params relay.Params) (*relay.Resource, error) {
			return client.Customers().Update(ctx, id, params)
		}))
	cmd.AddCommand(newDeleteSubcommand("customer",
		func(ctx context.Context, client relay.Client, id string) error {
			return client.Customers().Delete(ctx, id)
		}))

	return cmd
}
