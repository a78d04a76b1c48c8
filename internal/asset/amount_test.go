package asset_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fd1az/hermes-yield/internal/asset"
	"github.com/shopspring/decimal"
)

func TestAmount_ToDecimal(t *testing.T) {
	oneIRIS := asset.NewAmount(asset.IRIS, new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

	if !oneIRIS.ToDecimal().Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected 1, got %s", oneIRIS.ToDecimal())
	}
	if oneIRIS.String() != "1 IRIS" {
		t.Errorf("expected '1 IRIS', got %q", oneIRIS.String())
	}
}

func TestAmount_SixDecimals(t *testing.T) {
	amt := asset.NewAmount(asset.USDC, big.NewInt(2_500_000))

	if !amt.ToDecimal().Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("expected 2.5, got %s", amt.ToDecimal())
	}
}

func TestParseRaw(t *testing.T) {
	amt, err := asset.ParseRaw(asset.IRIS, "1500000000000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !amt.ToDecimal().Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("expected 1.5, got %s", amt.ToDecimal())
	}

	for _, bad := range []string{"", "1.5", "-10", "abc"} {
		if _, err := asset.ParseRaw(asset.IRIS, bad); err == nil {
			t.Errorf("ParseRaw(%q): expected error", bad)
		}
	}
}

func TestNewAmount_PanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	asset.NewAmount(asset.IRIS, big.NewInt(-1))
}

func TestAssetID_Kinds(t *testing.T) {
	if !asset.IDPolygonMATIC.IsNative() || asset.IDPolygonMATIC.IsToken() {
		t.Error("MATIC should be the native coin")
	}
	if !asset.IDPolygonIRIS.IsToken() {
		t.Error("IRIS should be a token")
	}
	if got := asset.IDPolygonMATIC.String(); got != "chain:137/native" {
		t.Errorf("String() = %q", got)
	}
}

func TestAsset_Unit(t *testing.T) {
	if !asset.USDC.Unit().Equal(decimal.NewFromInt(1_000_000)) {
		t.Errorf("USDC unit = %s", asset.USDC.Unit())
	}
}

func TestDefaultRegistry_PolygonTokens(t *testing.T) {
	r := asset.DefaultRegistry()

	got, ok := r.GetToken(asset.ChainIDPolygon, asset.AddrIRISPolygon)
	if !ok || got.Symbol() != "IRIS" {
		t.Fatalf("IRIS lookup = %v, %v", got, ok)
	}

	usdc, ok := r.GetBySymbolAndChain("USDC", asset.ChainIDPolygon)
	if !ok || usdc.Decimals() != 6 {
		t.Fatalf("USDC lookup = %v, %v", usdc, ok)
	}

	if _, ok := r.GetBySymbolAndChain("USDC", asset.ChainIDEthereum); ok {
		t.Error("USDC should not resolve on Ethereum")
	}
}

func TestRegistry_Ensure(t *testing.T) {
	r := asset.DefaultRegistry()
	before := r.Count()

	dup := asset.MustNewToken(asset.ChainIDPolygon, asset.AddrIRISPolygon, "IRIS2", "", 18)
	if got := r.Ensure(dup); got != asset.IRIS {
		t.Error("Ensure should return the existing instance")
	}

	if r.Count() != before {
		t.Errorf("count changed to %d", r.Count())
	}

	fresh := asset.MustNewToken(asset.ChainIDPolygon, common.HexToAddress("0x1111111111111111111111111111111111111111"), "NEW", "", 18)
	if got := r.Ensure(fresh); got != fresh {
		t.Error("Ensure should register a new token")
	}
	if r.Count() != before+1 {
		t.Errorf("count = %d, want %d", r.Count(), before+1)
	}
}
