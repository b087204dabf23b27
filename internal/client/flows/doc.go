// Package flows implements the two pages reached from emailed links: email
// verification (with its redirect countdown) and password reset.
//
// A flow belongs to one screen visit. The owner must call Close when the
// screen is left; after Close returns no callback of that flow runs again.
package flows
