// Package services holds the marketplace business logic behind the gRPC
// handlers: accounts and sessions, listings with their entitlement-aware
// views, the purchase ledger, purchase history, sales report export,
// personal notes and the transaction log.
//
// Services own transaction boundaries. Repositories are bound to the
// transaction handle with repomanager, so every write of a unit of work
// commits or rolls back together.
package services
