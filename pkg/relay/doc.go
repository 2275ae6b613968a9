// Package relay provides types, interfaces, and helpers for working with the
// Relay payments API.
//
// # Overview
//
// The relay package defines the client configuration, the generic Resource and
// Collection values every call produces, the declarative resource schemas
// consumed by the serializer, and the typed error taxonomy every failure is
// classified into. A concrete implementation of the Client interface is
// provided by the relayclient package, which wires configuration, transport,
// retry, and response caching. Most consumers should import relayclient to
// construct a client and then interact through the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/relaypoint-io/relay-go/pkg/relay"
//	  "github.com/relaypoint-io/relay-go/pkg/relayclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cfg := relay.DefaultConfig()
//	  cfg.APIID = "acct_123"
//	  cfg.APIToken = "sk_live_..."
//
//	  cli, err := relayclient.New(cfg)
//	  if err != nil { log.Fatal(err) }
//
//	  customers, err := cli.Customers().List(ctx, relay.Params{"limit": 20})
//	  if err != nil { log.Fatal(err) }
//	  _ = customers
//	}
//
// # Errors
//
// Every failure surfaces as one of the typed errors in this package
// (AuthenticationError, InvalidRequestError, ParticipantError, RateLimitError,
// APIConnectionError, and so on), each carrying the HTTP status, raw body,
// headers, and request id. Helpers such as IsNotFound and IsRateLimit make it
// easy to branch on common cases with errors.As underneath.
//
// # Retries
//
// Timeouts, connection failures, and 409 conflicts are retried transparently
// with capped exponential backoff and jitter up to Config.MaxNetworkRetries.
// When retries are enabled, POST and DELETE requests carry an idempotency key
// that stays constant across the attempts of one logical call.
//
// # Webhooks
//
// ConstructEvent verifies an inbound webhook payload against its signature
// header and returns the parsed event resource; failures are reported as
// SignatureVerificationError.
package relay

// ClientVersion is the release version of the bindings, echoed into the user
// agent of every request.
const ClientVersion = "1.3.0"
