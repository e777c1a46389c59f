// Package canvasclient provides the primary entry point for constructing a
// Canvas LMS API client that implements the canvas.Client interface.
//
// It layers configuration, HTTP transport, and authentication on top of the
// resource interfaces and types defined in the canvas package. Most
// applications should import canvasclient to build a client, then use the
// returned canvas.Client to access resource-specific clients, for example
// Courses(), Assignments(), Enrollments(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/edukit-io/canvas/pkg/canvas"
//	  "github.com/edukit-io/canvas/pkg/canvasclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Most common: a manually issued access token from the account settings
//	  // page of the Canvas instance.
//	  cli, err := canvasclient.New(&canvas.Config{
//	    APIEndpoint: "https://school.instructure.com",
//	    AccessToken: "1234~abcdef...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an OAuth2 developer key. When credentials are provided and no
//	  // token URL is set, canvasclient derives the token endpoint
//	  // (/login/oauth2/token) from the instance URL.
//	  cli, err = canvasclient.New(&canvas.Config{
//	    APIEndpoint:  "https://school.instructure.com",
//	    ClientID:     "client-id",
//	    ClientSecret: "client-secret",
//	    RefreshToken: "refresh-token",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the canvas.Client interface
//	  courses, err := cli.Courses().List(ctx, 1, canvas.NewListParams().WithPerPage(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = courses
//	}
//
// # TLS and development mode
//
// For local development installs, you can set Config.SkipTLSVerify=true. This
// is gated by the environment variable CANVAS_DEV_MODE to avoid accidental
// insecure usage against production instances.
//
// # Helpers
//
// The package also provides convenience constructors NewWithToken,
// NewWithClientCredentials, and NewWithRefreshToken that wrap New with the
// appropriate configuration.
package canvasclient
