// Package domain contains the core domain types for the blockchain context.
package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Block represents a chain head.
type Block struct {
	Number     uint64
	Hash       common.Hash
	ParentHash common.Hash
	Timestamp  time.Time
}

// Age returns how long ago the block was produced, relative to now.
func (b *Block) Age(now time.Time) time.Duration {
	if b.Timestamp.IsZero() || now.Before(b.Timestamp) {
		return 0
	}
	return now.Sub(b.Timestamp)
}
