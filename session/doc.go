// Package session keeps a client side API session alive.
//
// A Manager attaches the stored access token to outgoing requests, refreshes
// it through the refresh cookie when the API answers 401, retries the request
// once and, when the session cannot be salvaged, terminates it: the server is
// told about the logout, the local store is wiped and the Navigator is sent to
// the entry page.
//
// Concurrent refreshes are collapsed into a single network call whose result
// every waiting caller shares.
package session
