// Package identity is the client for the hosted identity provider (the
// Firebase Identity Toolkit "accounts" REST surface).
//
// Every operation returns a Result instead of an error: provider rejections
// and transport failures both end up as Result{OK: false, Message: ...},
// where Message is the provider error code rewritten for display by
// NormalizeMessage ("EMAIL_EXISTS" becomes "Email Exists").
//
// Endpoints are "{endpoint}:{operation}?key={apiKey}", all POST with JSON
// bodies. Nothing is retried.
package identity
