// Package environment carries the application environment (development,
// staging, production) through context.Context, HTTP requests and logs.
//
// Parse normalizes APP_ENV, including short forms like "prod":
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	r.Use(environment.Middleware(env))
//
// Code that behaves differently per environment, such as secret lookup that
// tolerates a missing secret in development, can then ask the context:
//
//	if environment.IsProduction(ctx) { ... }
package environment
