package domain

import (
	"github.com/ethereum/go-ethereum/common"
)

var (
	irisToken = TokenInfo{
		Address:  common.HexToAddress("0xdab35042e63e93cc8556c9bae482e5415b5ac4b1"),
		Symbol:   "IRIS",
		Decimals: 18,
	}
	kavianAddress = common.HexToAddress("0xC4Df0E37e4ad3e5C6D1dF12d3Ca7Feb9d2B67104")
	usdcToken     = TokenInfo{
		Address:  common.HexToAddress("0x2791bca1f2de4661ed88a30c99a7a9449aa84174"),
		Symbol:   "USDC",
		Decimals: 6,
	}
)

// PolygonPools returns the IRIS staking pools deployed on Polygon PoS.
func PolygonPools() []StakePool {
	return []StakePool{
		{
			Address:     common.HexToAddress("0xFE3583513Ba38B228C7A62B200F71a0ecF337Eb9"),
			PoolSite:    "https://kavian.finance/",
			Active:      true,
			StakeToken:  irisToken,
			RewardToken: TokenInfo{Address: kavianAddress, Symbol: "KAVIAN", Decimals: 18},
		},
		{
			Address:     common.HexToAddress("0x7a99d3c5f6aafa527c7d58d579100284ba5f2d1a"),
			PoolSite:    "https://kavian.finance/",
			StakeToken:  irisToken,
			RewardToken: TokenInfo{Address: kavianAddress, Symbol: "KAVIAN (old)", Decimals: 18},
		},
		{
			Address:    common.HexToAddress("0xCa0eC1fAE7335469055A3e8B85a21D4CF6bf3F5d"),
			PoolSite:   "https://sandman.farm/",
			StakeToken: irisToken,
			RewardToken: TokenInfo{
				Address:  common.HexToAddress("0xf9b4dEFdDe04fe18F5ee6456607F8A2eC9fF6A75"),
				Symbol:   "SANDMAN",
				Decimals: 18,
			},
		},
		{
			Address:    common.HexToAddress("0x0F7B6984900A40a5A7Ae3dF41b2919d36cBa9815"),
			PoolSite:   "https://gamma.polypulsar.farm/",
			StakeToken: irisToken,
			RewardToken: TokenInfo{
				Address:  common.HexToAddress("0x8c9aAcA6e712e2193acCCbAC1a024e09Fb226E51"),
				Symbol:   "GBNT",
				Decimals: 18,
			},
		},
		{
			Address:     common.HexToAddress("0x768cc7c311Bf62d63FeBEA5bAf798AFEEa4D09AE"),
			PoolSite:    "https://www.centre.io/usdc",
			Special:     true,
			StakeToken:  irisToken,
			RewardToken: usdcToken,
		},
		{
			Address:     common.HexToAddress("0xFf11555aedf0cDCA44cA587AeAf7FF4b7F7CD32D"),
			PoolSite:    "https://www.centre.io/usdc",
			Active:      true,
			Special:     true,
			StakeToken:  irisToken,
			RewardToken: usdcToken,
		},
	}
}

// Registry holds staking pools per chain and serves those of one chain.
type Registry struct {
	chainID uint64
	byChain map[uint64][]StakePool
}

// NewRegistry creates a registry for chainID over the given per-chain lists.
func NewRegistry(chainID uint64, byChain map[uint64][]StakePool) *Registry {
	copied := make(map[uint64][]StakePool, len(byChain))
	for id, pools := range byChain {
		copied[id] = append([]StakePool(nil), pools...)
	}
	return &Registry{chainID: chainID, byChain: copied}
}

// DefaultRegistry returns the built-in pool lists selected for chainID.
func DefaultRegistry(chainID uint64) *Registry {
	return NewRegistry(chainID, map[uint64][]StakePool{
		137: PolygonPools(),
	})
}

// ChainID returns the selected chain.
func (r *Registry) ChainID() uint64 {
	return r.chainID
}

// Pools returns the enabled pools of the selected chain in listing order.
func (r *Registry) Pools() []StakePool {
	var out []StakePool
	for _, p := range r.byChain[r.chainID] {
		if !p.Disabled {
			out = append(out, p)
		}
	}
	return out
}

// ActivePools returns enabled pools flagged active.
func (r *Registry) ActivePools() []StakePool {
	var out []StakePool
	for _, p := range r.Pools() {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// Get finds an enabled pool of the selected chain by address.
func (r *Registry) Get(addr common.Address) (StakePool, bool) {
	for _, p := range r.Pools() {
		if p.Address == addr {
			return p, true
		}
	}
	return StakePool{}, false
}
