// Package gateway implements the low-level JSON client for the remote-object
// gateway of an OMERO-style image data management server.
//
// [Gateway] owns the HTTP transport and session state: session login with a
// CSRF token handshake, bearer-token mode for OIDC-fronted deployments, and
// a shared request helper that maps HTTP failures to typed errors
// ([ServiceError], [AccessError], [ServerError]).
//
// Server-side facilities are grouped the way the gateway exposes them:
//
//   - [Browser] : read-only queries over the container hierarchy,
//     annotations and ROIs, with transparent pagination
//   - [DataManager] : create/update/delete plus link and unlink operations
//     for the many-to-many container relations
//   - file transfer: image import, file annotation upload/download,
//     thumbnails and tables
//
// Higher-level typed wrappers live in internal/client; this package stays a
// thin, faithful projection of the wire API.
package gateway
