package asset

import "github.com/ethereum/go-ethereum/common"

// Chain IDs
const (
	ChainIDEthereum = 1
	ChainIDPolygon  = 137
	ChainIDMumbai   = 80001
)

// Token addresses on Polygon PoS
var (
	AddrIRISPolygon    = common.HexToAddress("0xdab35042e63e93cc8556c9bae482e5415b5ac4b1")
	AddrKAVIANPolygon  = common.HexToAddress("0xC4Df0E37e4ad3e5C6D1dF12d3Ca7Feb9d2B67104")
	AddrSANDMANPolygon = common.HexToAddress("0xf9b4dEFdDe04fe18F5ee6456607F8A2eC9fF6A75")
	AddrGBNTPolygon    = common.HexToAddress("0x8c9aAcA6e712e2193acCCbAC1a024e09Fb226E51")
	AddrUSDCPolygon    = common.HexToAddress("0x2791bca1f2de4661ed88a30c99a7a9449aa84174")
	AddrWMATICPolygon  = common.HexToAddress("0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270")
)

// Well-known AssetIDs
var (
	IDPolygonMATIC   = NewNativeAssetID(ChainIDPolygon)
	IDPolygonIRIS    = NewTokenAssetID(ChainIDPolygon, AddrIRISPolygon)
	IDPolygonKAVIAN  = NewTokenAssetID(ChainIDPolygon, AddrKAVIANPolygon)
	IDPolygonSANDMAN = NewTokenAssetID(ChainIDPolygon, AddrSANDMANPolygon)
	IDPolygonGBNT    = NewTokenAssetID(ChainIDPolygon, AddrGBNTPolygon)
	IDPolygonUSDC    = NewTokenAssetID(ChainIDPolygon, AddrUSDCPolygon)
	IDPolygonWMATIC  = NewTokenAssetID(ChainIDPolygon, AddrWMATICPolygon)
)

// Well-known Assets (pre-created instances)
var (
	MATIC   = NewAssetWithName(IDPolygonMATIC, "MATIC", "Polygon", 18)
	IRIS    = NewAssetWithName(IDPolygonIRIS, "IRIS", "Hermes IRIS", 18)
	KAVIAN  = NewAssetWithName(IDPolygonKAVIAN, "KAVIAN", "Kavian", 18)
	SANDMAN = NewAssetWithName(IDPolygonSANDMAN, "SANDMAN", "Sandman", 18)
	GBNT    = NewAssetWithName(IDPolygonGBNT, "GBNT", "Gamma Pulsar", 18)
	USDC    = NewAssetWithName(IDPolygonUSDC, "USDC", "USD Coin (PoS)", 6)
	WMATIC  = NewAssetWithName(IDPolygonWMATIC, "WMATIC", "Wrapped Matic", 18)
)

// DefaultRegistry returns a registry pre-populated with well-known assets.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(MATIC)
	r.Register(IRIS)
	r.Register(KAVIAN)
	r.Register(SANDMAN)
	r.Register(GBNT)
	r.Register(USDC)
	r.Register(WMATIC)

	return r
}

// MustNewToken creates a new ERC20 token asset with the given parameters.
func MustNewToken(chainID uint64, address common.Address, symbol, name string, decimals uint8) *Asset {
	id := NewTokenAssetID(chainID, address)
	return NewAssetWithName(id, symbol, name, decimals)
}
