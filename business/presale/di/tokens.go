// Package di contains dependency injection tokens for the presale context.
package di

import (
	"github.com/fd1az/hermes-yield/business/presale/app"
	"github.com/fd1az/hermes-yield/internal/di"
)

// Public service tokens
var (
	PresaleService = di.NewToken[*app.PresaleService]("presale.PresaleService")
)

func GetPresaleService(c di.ServiceRegistry) *app.PresaleService {
	return di.GetToken(c, PresaleService)
}
