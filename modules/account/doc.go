// Package account exposes account registration, login and MFA management as a
// JSON API on a chi router.
//
// Routes:
//
//	POST /signup              {"email","password"}          201 account
//	POST /login               {"email","password"}          200 bearer token
//	GET  /mfa-setup                                          200 provisioning URI and QR code
//	POST /mfa-validate        {"code"}                       200 recovery codes on first success
//	POST /mfa-disable         {"recovery_code"}              204
//	POST /mfa-activate        {"password"}                   204
//	GET  /mfa-status                                         200 MFA flags and remaining codes
//	POST /mfa-recovery-codes  {"code"}                       200 a fresh recovery code set
//	GET  /healthz                                            200 or 503
//
// The /mfa-* routes require "Authorization: Bearer <token>" from /login; the
// token subject selects the account. Errors use the handler package envelope
// and are mapped by ClassifyError. A login token is issued before the second
// factor is verified, and the otp_* flags in the login response let callers
// enforce MFA where they need it.
package account
