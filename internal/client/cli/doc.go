// Package cli provides the interactive NoteMarket command-line client.
//
// It wires configuration, the gRPC client and a small REPL. Typical flow:
// log in, browse listings, pay the seller on chain, then redeem the
// transaction hash with "buy" to unlock the note.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
