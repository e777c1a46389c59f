// Package canvas provides types, interfaces, and helpers for working with the
// Canvas-style LMS REST API.
//
// # Overview
//
// The canvas package defines the domain types (e.g., Course, Assignment,
// Module, Enrollment, Submission) and the interfaces for resource-oriented
// clients (e.g., CoursesClient, AssignmentsClient). A concrete implementation
// of these clients is provided by the canvasclient package, which wires
// configuration, transport, and authentication. Most consumers should import
// canvasclient to construct a client and then interact with the resource
// client interfaces exposed here.
//
// Getting a client
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
//	  cli, err := canvasclient.New(&canvas.Config{
//	    APIEndpoint: "https://school.instructure.com",
//	    AccessToken: "token",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // List the first page of courses
//	  courses, err := cli.Courses().List(ctx, canvas.NewListParams().WithPerPage(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = courses
//	}
//
// # Queries and pagination
//
// Use ListParams to express common list options (page, per_page, search_term,
// include, filters). List responses arrive as bare JSON arrays; page
// boundaries travel in the RFC 5988 Link header, which the package parses into
// PageLinks. Helpers iterate or collect paginated results:
//
//	it := canvas.NewPageIterator(ctx, fetcher, "/api/v1/courses", canvas.NewListParams())
//	for it.HasNext() {
//	  course, err := it.Next()
//	  if err != nil { break }
//	  _ = course
//	}
//
// or fetch all results at once:
//
//	all, err := canvas.FetchAllPages(ctx, fetcher, "/api/v1/courses", nil, canvas.DefaultPaginationOptions())
//	if err != nil { /* handle error */ }
//	_ = all
//
// # Errors
//
// API errors are represented by APIError and ResponseError. Helpers such as
// IsNotFound, IsUnauthorized, IsForbidden, and IsRateLimited make it easy to
// branch on common cases; note that the LMS signals throttling with a 403 and
// a "Rate Limit Exceeded" body as well as with 429.
//
// # Interceptors and caching
//
// The package includes generic building blocks such as request/response
// interceptors (for logging, auth headers, masquerading, metrics, rate
// limiting, circuit breaking) and a simple pluggable Cache abstraction with
// in-memory and NATS KV backends. The canvasclient package composes these
// pieces for a sensible default client; applications with advanced needs can
// also use these primitives directly.
//
// # Resources
//
// Resource clients follow a consistent CRUD-and-actions pattern across LMS
// resources (Accounts, Courses, Modules, Module Items, Assignments,
// Submissions, Rubrics, Enrollments, Users, Sections, Files, Enrollment
// Terms, Progress). See the individual interfaces in interfaces.go for the
// full surface area.
package canvas
