// Package di contains dependency injection tokens for the staking context.
package di

import (
	"github.com/fd1az/hermes-yield/business/staking/app"
	"github.com/fd1az/hermes-yield/business/staking/domain"
	"github.com/fd1az/hermes-yield/internal/di"
)

// Public service tokens
var (
	StakingService = di.NewToken[*app.StakingService]("staking.StakingService")
	PoolRegistry   = di.NewToken[*domain.Registry]("staking.PoolRegistry")
)

// Private dependency tokens
var (
	PoolStateSource = di.NewToken[app.PoolStateSource]("staking:poolStateSource")
)

func GetStakingService(c di.ServiceRegistry) *app.StakingService {
	return di.GetToken(c, StakingService)
}

func GetPoolRegistry(c di.ServiceRegistry) *domain.Registry {
	return di.GetToken(c, PoolRegistry)
}

func GetPoolStateSource(c di.ServiceRegistry) app.PoolStateSource {
	return di.GetToken(c, PoolStateSource)
}
