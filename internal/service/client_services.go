package service

import (
	"github.com/MKhiriev/go-accounts/internal/adapter"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
)

type ClientServices struct {
	AuthService    ClientAuthService
	AccountService ClientAccountService
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	logger.Info().Msg("creating new client services...")

	return &ClientServices{
		AuthService:    NewClientAuthService(storages.LocalSessionStore, serverAdapter, logger),
		AccountService: NewClientAccountService(serverAdapter, logger),
	}
}
