// Package app contains the staking application service.
package app

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fd1az/hermes-yield/business/staking/domain"
	yieldDomain "github.com/fd1az/hermes-yield/business/yield/domain"
	"github.com/fd1az/hermes-yield/internal/apm"
	"github.com/fd1az/hermes-yield/internal/apperror"
	"github.com/fd1az/hermes-yield/internal/asset"
	"github.com/fd1az/hermes-yield/internal/logger"
)

// StakingService computes staking pool APRs from registry pools and their
// on-chain state.
type StakingService struct {
	registry *domain.Registry
	source   PoolStateSource
	assets   *asset.Registry
	tracer   apm.Tracer
	log      logger.LoggerInterface
}

// NewStakingService creates a StakingService.
func NewStakingService(
	registry *domain.Registry,
	source PoolStateSource,
	assets *asset.Registry,
	log logger.LoggerInterface,
) *StakingService {
	return &StakingService{
		registry: registry,
		source:   source,
		assets:   assets,
		tracer:   apm.NewTracer("staking"),
		log:      log,
	}
}

// Pools returns the enabled pools of the configured chain.
func (s *StakingService) Pools() []domain.StakePool {
	return s.registry.Pools()
}

// PoolAprs computes the APR of every enabled pool in registry order. Pools
// without state are returned with Missing set.
func (s *StakingService) PoolAprs(ctx context.Context) ([]domain.PoolAprResult, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "staking.PoolAprs")
	defer span.End()

	states, err := s.source.PoolStates(ctx)
	if err != nil {
		span.NoticeError(err)
		return nil, err
	}

	byAddr := make(map[common.Address]domain.PoolState, len(states.States))
	for _, st := range states.States {
		byAddr[st.Address] = st
	}

	pools := s.registry.Pools()
	results := make([]domain.PoolAprResult, 0, len(pools))
	for _, pool := range pools {
		st, ok := byAddr[pool.Address]
		if !ok {
			s.log.Warn(ctx, "no state for staking pool", "pool", pool.Address.Hex(), "block", states.Block)
			results = append(results, domain.PoolAprResult{Pool: pool, Missing: true})
			continue
		}

		apr, err := s.poolApr(pool, st)
		if err != nil {
			span.NoticeError(err)
			return nil, err
		}
		results = append(results, domain.PoolAprResult{Pool: pool, Apr: apr})
	}

	span.SetAttributes(
		attribute.Int("staking.pools", len(results)),
		attribute.Int64("staking.block", int64(states.Block)),
	)
	return results, nil
}

// PoolApr computes the APR of a single registry pool.
func (s *StakingService) PoolApr(ctx context.Context, addr common.Address) (yieldDomain.PoolApr, error) {
	pool, ok := s.registry.Get(addr)
	if !ok {
		return yieldDomain.PoolApr{}, apperror.NotFound(apperror.CodeUnknownStakingPool, addr.Hex())
	}

	states, err := s.source.PoolStates(ctx)
	if err != nil {
		return yieldDomain.PoolApr{}, err
	}
	for _, st := range states.States {
		if st.Address == addr {
			return s.poolApr(pool, st)
		}
	}
	return yieldDomain.PoolApr{}, apperror.NotFound(apperror.CodePoolStateMissing,
		fmt.Sprintf("%s at block %d", addr.Hex(), states.Block))
}

func (s *StakingService) poolApr(pool domain.StakePool, st domain.PoolState) (yieldDomain.PoolApr, error) {
	rewards, err := s.toUnits(pool.RewardToken, st.RewardsPerWeek)
	if err != nil {
		return yieldDomain.PoolApr{}, apperror.New(apperror.CodeInvalidPoolParams,
			apperror.WithContext(pool.Address.Hex()+": rewards_per_week"), apperror.WithCause(err))
	}
	staked, err := s.toUnits(pool.StakeToken, st.TotalStaked)
	if err != nil {
		return yieldDomain.PoolApr{}, apperror.New(apperror.CodeInvalidPoolParams,
			apperror.WithContext(pool.Address.Hex()+": total_staked"), apperror.WithCause(err))
	}

	in := yieldDomain.PoolAprInput{
		RewardTokenPrice:   st.RewardTokenPrice,
		PoolRewardsPerWeek: rewards,
		PoolTokenPrice:     st.StakeTokenPrice,
		TotalStaked:        staked,
	}
	if err := in.Validate(); err != nil {
		return yieldDomain.PoolApr{}, err
	}
	return yieldDomain.CalculatePoolApr(in), nil
}

// toUnits scales a base-unit amount of token to human units.
func (s *StakingService) toUnits(token domain.TokenInfo, raw decimal.Decimal) (decimal.Decimal, error) {
	a := s.assets.Ensure(asset.MustNewToken(s.registry.ChainID(), token.Address, token.Symbol, token.Symbol, token.Decimals))
	amount, err := asset.ParseRaw(a, raw.String())
	if err != nil {
		return decimal.Zero, err
	}
	return amount.ToDecimal(), nil
}
