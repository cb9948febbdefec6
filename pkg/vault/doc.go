// Package vault loads application secrets such as encryption and signing keys.
//
// AWSProvider reads a JSON object secret from AWS Secrets Manager and caches
// it for a TTL. StaticProvider serves fixed values. WithDevelopmentFallback
// turns lookup failures into an empty map everywhere except production, so a
// developer machine without AWS access still boots with env-provided keys.
package vault
