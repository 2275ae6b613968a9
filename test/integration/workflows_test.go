//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaypoint-io/relay-go/pkg/relay"
	"github.com/relaypoint-io/relay-go/pkg/relayclient"
)

// TestWorkflow_CustomerTransferJourney exercises a complete payment journey
// against a live test-mode account: customer, participants, transfer, event.
func TestWorkflow_CustomerTransferJourney(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client, err := relayclient.New(config.ClientConfig())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx))

	// Customer
	customer, err := client.Customers().Create(ctx, relay.Params{
		"name":  "Integration Test Corp",
		"email": "integration@example.com",
	})
	require.NoError(t, err)

	defer func() {
		_ = client.Customers().Delete(ctx, customer.ID())
	}()

	require.NotEmpty(t, customer.ID())

	// Participants on both ends of the transfer
	source, err := client.Participants().Create(ctx, relay.Params{
		"name":     "Source Account",
		"role":     "payer",
		"customer": customer,
	})
	require.NoError(t, err)

	defer func() {
		_ = client.Participants().Delete(ctx, source.ID())
	}()

	destination, err := client.Participants().Create(ctx, relay.Params{
		"name":     "Destination Account",
		"role":     "payee",
		"customer": customer,
	})
	require.NoError(t, err)

	defer func() {
		_ = client.Participants().Delete(ctx, destination.ID())
	}()

	// Transfer
	transfer, err := client.Transfers().Create(ctx, relay.Params{
		"amount":      100,
		"currency":    "usd",
		"source":      source,
		"destination": destination,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, transfer.GetString("status"))

	// The transfer shows up in listings
	page, err := client.Transfers().List(ctx, relay.Params{"limit": 100})
	require.NoError(t, err)

	found := false

	for _, item := range page.Data {
		if item.ID() == transfer.ID() {
			found = true

			break
		}
	}

	assert.True(t, found, "created transfer should appear in the listing")

	// Save round-trip on the customer
	customer.Set("email", "integration+updated@example.com")
	require.NoError(t, client.Save(ctx, customer))

	require.NoError(t, client.Refresh(ctx, customer))
	assert.Equal(t, "integration+updated@example.com", customer.GetString("email"))
}
