// Package cli provides the interactive TrackIt command-line client.
//
// It wires configuration, the local session mirror, the identity provider
// and data store clients, and a REPL that behaves like the web app's pages:
// the user is always "on" a location (for example /login or /), commands
// depend on the screen that location renders, and emailed links can be
// pasted with `open <url>`.
//
// Key features:
//   - Login / Register / Forgot password / Resend verification
//   - List, search, add, edit and delete expenses
//   - Email verification links with an automatic redirect countdown
//   - Password reset links
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
