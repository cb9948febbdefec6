// Package httpserver runs an http.Handler with sane timeouts and graceful
// shutdown.
//
// Run binds the listener first, so address errors come back synchronously,
// then serves until the context is canceled, SIGINT/SIGTERM arrives or
// Shutdown is called. Shutdown drains in-flight requests within the
// configured timeout and is safe to call more than once.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler serves a JSON readiness report built from named checks.
package httpserver
