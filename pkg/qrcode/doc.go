// Package qrcode renders strings such as otpauth:// provisioning URIs as PNG
// QR codes, either raw or as a base64 data URI.
package qrcode
