// Package server runs the short-lived loopback listener behind
// browser-assisted authentication.
//
// A [Flow] implements the OAuth2 authorization code callback used when
// the gateway sits behind an OIDC provider instead of accepting
// username/password logins directly. It validates the state parameter,
// exchanges the authorization code for tokens and publishes the result
// on a channel. Only one redirect is honored per flow, so a replayed
// callback cannot overwrite an earlier result.
//
// [Listen] serves the flow on the configured loopback address together
// with a /health probe, and shuts down once its context is cancelled.
// `gomero auth web` wires the two together: it opens the browser at the
// authorization URL, waits on [Flow.Done], and installs the returned
// token on the gateway as a bearer credential.
package server
