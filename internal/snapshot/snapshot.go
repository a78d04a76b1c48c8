// Package snapshot loads the on-chain pool state file evaluated by the
// scanner. Amounts are decimal strings; token amounts are in base units.
package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fd1az/hermes-yield/internal/apperror"
)

// Decimal is a decimal.Decimal read from a YAML scalar.
type Decimal struct {
	decimal.Decimal
}

// UnmarshalYAML accepts quoted and bare numeric scalars.
func (d *Decimal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	v, err := decimal.NewFromString(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: invalid number %q", node.Line, node.Value)
	}
	d.Decimal = v
	return nil
}

// File is the snapshot document.
type File struct {
	TakenAt      time.Time     `yaml:"taken_at"`
	Block        uint64        `yaml:"block"`
	Vaults       []Vault       `yaml:"vaults"`
	DualVaults   []DualVault   `yaml:"dual_vaults"`
	StakingPools []StakingPool `yaml:"staking_pools"`
}

// Token is a token with its USD price.
type Token struct {
	Address  string  `yaml:"address"`
	Symbol   string  `yaml:"symbol"`
	Decimals uint8   `yaml:"decimals"`
	Price    Decimal `yaml:"price"`
}

// Vault is a single-reward vault farm.
type Vault struct {
	Name             string  `yaml:"name"`
	Pair             string  `yaml:"pair"`
	Multiplier       Decimal `yaml:"multiplier"`
	TokenPerBlock    Decimal `yaml:"token_per_block"`
	TotalAllocPoints Decimal `yaml:"total_alloc_points"`
	DepositFee       Decimal `yaml:"deposit_fee"`
	PerformanceFee   Decimal `yaml:"performance_fee"`
	RewardToken      Token   `yaml:"reward_token"`
	StakePrice       Decimal `yaml:"stake_price"`
	TotalStaked      Decimal `yaml:"total_staked"`
}

// Reward is one stream of a dual-reward vault.
type Reward struct {
	Token      Token   `yaml:"token"`
	RewardRate Decimal `yaml:"reward_rate"`
}

// DualVault is a vault emitting two reward tokens.
type DualVault struct {
	Name           string   `yaml:"name"`
	Pair           string   `yaml:"pair"`
	Rewards        []Reward `yaml:"rewards"`
	PerformanceFee Decimal  `yaml:"performance_fee"`
	StakePrice     Decimal  `yaml:"stake_price"`
	TotalStaked    Decimal  `yaml:"total_staked"`
}

// StakingPool is the state of a staking pool listed in the pool registry.
type StakingPool struct {
	Address          string  `yaml:"address"`
	RewardTokenPrice Decimal `yaml:"reward_token_price"`
	StakeTokenPrice  Decimal `yaml:"stake_token_price"`
	RewardsPerWeek   Decimal `yaml:"rewards_per_week"` // reward token base units
	TotalStaked      Decimal `yaml:"total_staked"`     // stake token base units
}

// Load reads and validates the snapshot at path.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.New(apperror.CodeInvalidSnapshot,
			apperror.WithCause(err),
			apperror.WithContext(path))
	}
	return Parse(bytes.NewReader(raw))
}

// Parse decodes and validates a snapshot document.
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, apperror.New(apperror.CodeInvalidSnapshot,
			apperror.WithCause(err),
			apperror.WithContext("decode"))
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks addresses, ranges and uniqueness.
func (f *File) Validate() error {
	names := make(map[string]bool)
	unique := func(name string) error {
		if name == "" {
			return invalid("vault name is required")
		}
		if names[name] {
			return invalid("duplicate vault name " + name)
		}
		names[name] = true
		return nil
	}

	for _, v := range f.Vaults {
		if err := unique(v.Name); err != nil {
			return err
		}
		if err := checkAddress(v.Name, "pair", v.Pair); err != nil {
			return err
		}
		if err := checkToken(v.Name, "reward_token", v.RewardToken); err != nil {
			return err
		}
		if !v.TotalAllocPoints.IsPositive() {
			return invalid(v.Name + ": total_alloc_points must be positive")
		}
		if err := checkFraction(v.Name, "deposit_fee", v.DepositFee); err != nil {
			return err
		}
		if err := checkFraction(v.Name, "performance_fee", v.PerformanceFee); err != nil {
			return err
		}
		if err := checkNonNegative(v.Name, map[string]Decimal{
			"multiplier":      v.Multiplier,
			"token_per_block": v.TokenPerBlock,
			"stake_price":     v.StakePrice,
			"total_staked":    v.TotalStaked,
		}); err != nil {
			return err
		}
	}

	for _, v := range f.DualVaults {
		if err := unique(v.Name); err != nil {
			return err
		}
		if err := checkAddress(v.Name, "pair", v.Pair); err != nil {
			return err
		}
		if len(v.Rewards) != 2 {
			return invalid(fmt.Sprintf("%s: dual vault needs 2 rewards, got %d", v.Name, len(v.Rewards)))
		}
		for i, rw := range v.Rewards {
			if err := checkToken(v.Name, fmt.Sprintf("rewards[%d]", i), rw.Token); err != nil {
				return err
			}
			if rw.RewardRate.IsNegative() {
				return invalid(fmt.Sprintf("%s: rewards[%d].reward_rate must not be negative", v.Name, i))
			}
		}
		if err := checkFraction(v.Name, "performance_fee", v.PerformanceFee); err != nil {
			return err
		}
		if err := checkNonNegative(v.Name, map[string]Decimal{
			"stake_price":  v.StakePrice,
			"total_staked": v.TotalStaked,
		}); err != nil {
			return err
		}
	}

	seen := make(map[common.Address]bool)
	for _, p := range f.StakingPools {
		if err := checkAddress("staking pool", "address", p.Address); err != nil {
			return err
		}
		addr := common.HexToAddress(p.Address)
		if seen[addr] {
			return invalid("duplicate staking pool " + addr.Hex())
		}
		seen[addr] = true
		if err := checkNonNegative(addr.Hex(), map[string]Decimal{
			"reward_token_price": p.RewardTokenPrice,
			"stake_token_price":  p.StakeTokenPrice,
			"rewards_per_week":   p.RewardsPerWeek,
			"total_staked":       p.TotalStaked,
		}); err != nil {
			return err
		}
	}

	return nil
}

func invalid(msg string) error {
	return apperror.Validation(apperror.CodeInvalidSnapshot, msg)
}

func checkAddress(owner, field, s string) error {
	if !common.IsHexAddress(s) {
		return invalid(fmt.Sprintf("%s: %s is not an address: %q", owner, field, s))
	}
	return nil
}

func checkToken(owner, field string, t Token) error {
	if err := checkAddress(owner, field+".address", t.Address); err != nil {
		return err
	}
	if t.Price.IsNegative() {
		return invalid(fmt.Sprintf("%s: %s.price must not be negative", owner, field))
	}
	return nil
}

func checkFraction(owner, field string, d Decimal) error {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
		return invalid(fmt.Sprintf("%s: %s must be within [0, 1]", owner, field))
	}
	return nil
}

func checkNonNegative(owner string, fields map[string]Decimal) error {
	for name, v := range fields {
		if v.IsNegative() {
			return invalid(fmt.Sprintf("%s: %s must not be negative", owner, name))
		}
	}
	return nil
}
