// Package notify delivers account lifecycle events: signups and MFA changes.
//
// Notifier implementations cover e-mail (pkg/email senders with a templ body),
// AWS SNS and structured logs; MultiNotifier fans out to several of them.
// Dispatcher runs deliveries in the background so callers never wait on or
// fail because of a notification.
package notify
