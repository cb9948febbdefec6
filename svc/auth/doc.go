// Package auth registers password accounts and issues HS256 bearer tokens.
//
// Login reports the account's MFA flags but does not demand a TOTP code;
// callers decide whether an unverified session may proceed.
package auth
