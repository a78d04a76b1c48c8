package domain

import "time"

// Snapshot is the on-chain state of every vault at one point in time.
type Snapshot struct {
	TakenAt    time.Time
	Block      uint64
	Vaults     []VaultParams
	DualVaults []DualVaultParams
}

// Validate checks every vault in the snapshot.
func (s *Snapshot) Validate() error {
	for _, v := range s.Vaults {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	for _, v := range s.DualVaults {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of vaults of both kinds.
func (s *Snapshot) Len() int {
	return len(s.Vaults) + len(s.DualVaults)
}
