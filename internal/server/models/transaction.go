package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only record of a claimed on-chain payment,
// unique by TxHash.
type Transaction struct {
	ID               string
	TxHash           string
	SenderAddress    string
	RecipientAddress string
	Amount           decimal.Decimal
	UserID           string
	NoteID           *string
	NetworkID        *string
	Metadata         string
	CreatedAt        time.Time
}
