// Package zosmf provides types, interfaces, and helpers for working with the
// z/OSMF REST services.
//
// # Overview
//
// The zosmf package defines the domain types (e.g., Dataset, UnixFile, Job,
// Variable) and the interfaces for resource-oriented clients (DatasetsClient,
// FilesClient, JobsClient, VariablesClient). A concrete implementation of
// these clients is provided by the zosmfclient package, which wires
// configuration, transport, and session authentication. Most consumers should
// import zosmfclient to construct a client and then interact with the resource
// client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/wmcgee3/z-osmf-go/pkg/zosmf"
//	  "github.com/wmcgee3/z-osmf-go/pkg/zosmfclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := zosmfclient.New(&zosmf.Config{BaseURL: "https://zosmf.example.com"})
//	  if err != nil { log.Fatal(err) }
//
//	  if err := cli.Login(ctx, "IBMUSER", "secret"); err != nil { log.Fatal(err) }
//
//	  // List datasets under a high-level qualifier
//	  list, err := cli.Datasets().List("IBMUSER.*").MaxItems(100).Execute(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = list
//	}
//
// # Builders
//
// Every operation with optional parameters is expressed as a builder. Builders
// are plain values: each setter returns a new configured builder, omitted
// setters leave the corresponding query parameter or header absent (so server
// defaults apply), and setting the same parameter twice keeps the last value.
// The terminal Execute call issues the request and decodes the response.
//
//	jobs, err := cli.Jobs().List().Owner("*").ActiveOnly().Execute(ctx)
//
// # Errors
//
// Server-reported failures are represented by Error, which carries the HTTP
// status and the z/OSMF error body (category, rc, reason, message, details).
// Network-level failures are TransportError and body-decoding failures are
// DecodeError. Helpers such as IsAuthError and IsNotFound make it easy to
// branch on common cases. No retries are performed at this layer.
//
// # Sessions
//
// Login exchanges username/password for a session cookie which is attached to
// every subsequent request. There is no automatic refresh: an expired session
// surfaces as an authentication error from the next call, and the caller
// re-authenticates. Login and Logout must not be called concurrently with
// in-flight requests.
package zosmf
