// Package zosmfclient provides the primary entry point for constructing a
// z/OSMF client that implements the zosmf.Client interface.
//
// It layers configuration, HTTP transport, and session management on top of
// the resource interfaces and types defined in the zosmf package. Most
// applications should import zosmfclient to build a client, then use the
// returned zosmf.Client to access resource-specific clients, for example
// Datasets(), Jobs(), Files(), etc.
//
// Quick start
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
//
//	  // Establish a session up front:
//	  cli, err := zosmfclient.NewWithPassword(ctx, "https://zosmf.example.com", "USER", "PASS")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or build the client first and log in later. Until Login succeeds,
//	  // requests fall back to basic auth with the configured credentials.
//	  cli, err = zosmfclient.New(&zosmf.Config{
//	    BaseURL:  "https://zosmf.example.com",
//	    Username: "USER",
//	    Password: "PASS",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the zosmf.Client interface
//	  jobs, err := cli.Jobs().List().Owner("*").Execute(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = jobs
//	}
//
// # TLS and development mode
//
// For local development, you can set Config.SkipTLSVerify=true. This is gated
// by the environment variable ZOSMF_DEV_MODE to avoid accidental insecure
// usage in production environments.
package zosmfclient
