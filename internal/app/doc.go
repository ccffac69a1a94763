// Package app wires configuration, logging, telemetry, services and the
// HTTP router into one Application and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, the YAML file and FD_* variables
//	2. Initialize logging and OpenTelemetry
//	3. Resolve and create the input, output and log directories
//	4. Build the resolver, catalog service, exporter and file manager
//	5. Set up middleware, handlers and the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
package app
