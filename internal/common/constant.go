// Package common contains shared constants and sentinel errors used across
// NoteMarket components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// PurchasedTitleSuffix marks the buyer's private copy of a purchased listing.
const PurchasedTitleSuffix = " (Purchased)"
