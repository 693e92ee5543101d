// Package jwt handles the signed assertion credential: parsing its
// self-describing expiration from the payload, and minting assertions for
// callers that hold the signing key locally.
//
// Parsing is deliberately unverified. The authorization server verifies the
// assertion's signature during the exchange; the client side only needs the
// embedded expiration instant to decide whether an exchange is still worth
// attempting.
package jwt
