package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relaypoint-io/relay-go/pkg/relay"
)

// The subcommand constructors below are shared by every resource command
// group. Each takes a closure that picks the right typed client off the
// relay.Client built at run time.

type (
	createFunc func(ctx context.Context, client relay.Client, params relay.Params) (*relay.Resource, error)
	getFunc    func(ctx context.Context, client relay.Client, id string) (*relay.Resource, error)
	listFunc   func(ctx context.Context, client relay.Client, params relay.Params) (*relay.Collection, error)
	updateFunc func(ctx context.Context, client relay.Client, id string, params relay.Params) (*relay.Resource, error)
	deleteFunc func(ctx context.Context, client relay.Client, id string) error
)

func newCreateSubcommand(singular string, invoke createFunc) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + singular,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := ParseFieldArgs(fields)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			resource, err := invoke(cmd.Context(), client, params)
			if err != nil {
				return err
			}

			return RenderResource(resource)
		},
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "field to set, key=value (repeatable)")

	return cmd
}

func newGetSubcommand(singular string, invoke getFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a " + singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resource, err := invoke(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			return RenderResource(resource)
		},
	}
}

func newListSubcommand(plural string, invoke listFunc) *cobra.Command {
	var (
		limit         int
		startingAfter string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + plural,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := relay.Params{}
			if limit > 0 {
				params["limit"] = limit
			}

			if startingAfter != "" {
				params["starting_after"] = startingAfter
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			collection, err := invoke(cmd.Context(), client, params)
			if err != nil {
				return err
			}

			return RenderCollection(collection)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of items to return")
	cmd.Flags().StringVar(&startingAfter, "starting-after", "", "cursor: list items after this id")

	return cmd
}

func newUpdateSubcommand(singular string, invoke updateFunc) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a " + singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := ParseFieldArgs(fields)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			resource, err := invoke(cmd.Context(), client, args[0], params)
			if err != nil {
				return err
			}

			return RenderResource(resource)
		},
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "field to set, key=value (repeatable)")

	return cmd
}

func newDeleteSubcommand(singular string, invoke deleteFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := invoke(cmd.Context(), client, args[0]); err != nil {
				return err
			}

			fmt.Printf("Deleted %s %s\n", singular, args[0])

			return nil
		},
	}
}
