// Package common contains shared constants and sentinel errors used across
// the task service layers.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authentication scheme expected in AuthorizationHeaderName.
const BearerScheme = "Bearer"

// TokenSize is the number of random bytes behind a session token. The token
// itself is the hex encoding, so it is twice as long.
const TokenSize = 24
