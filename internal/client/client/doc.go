// Package client is the NoteMarket gRPC client used by the CLI.
//
// GRPCClient keeps the caller's token pair, attaches the access token to
// every call and, when the server reports an expired access token, redeems
// the refresh token once and replays the call. Status codes are mapped to
// the sentinel errors in errors.go so callers can match them with errors.Is.
package client
