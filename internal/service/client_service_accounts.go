package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-accounts/internal/adapter"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

type clientAccountService struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger
}

func NewClientAccountService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientAccountService {
	return &clientAccountService{adapter: serverAdapter, logger: logger}
}

func (c *clientAccountService) List(ctx context.Context) ([]models.Account, error) {
	accounts, err := c.adapter.ListAccounts(ctx)
	return accounts, mapAdapterError(err)
}

func (c *clientAccountService) Search(ctx context.Context, query string) ([]models.Account, error) {
	accounts, err := c.adapter.SearchAccounts(ctx, strings.TrimSpace(query))
	return accounts, mapAdapterError(err)
}

func (c *clientAccountService) Show(ctx context.Context, id int64) (models.Account, error) {
	if id < 1 {
		return models.Account{}, ErrAccountUnavailable
	}
	account, err := c.adapter.ShowAccount(ctx, id)
	return account, mapAdapterError(err)
}

func (c *clientAccountService) Create(ctx context.Context, request models.AccountRequest) (models.Account, error) {
	account, err := c.adapter.CreateAccount(ctx, request)
	if err != nil {
		c.logger.Err(err).Str("func", "clientAccountService.Create").Msg("create account failed")
	}
	return account, mapAdapterError(err)
}

func (c *clientAccountService) Update(ctx context.Context, id int64, request models.AccountRequest) (models.Account, error) {
	if id < 1 {
		return models.Account{}, ErrAccountUnavailable
	}
	account, err := c.adapter.UpdateAccount(ctx, id, request)
	if err != nil {
		c.logger.Err(err).Str("func", "clientAccountService.Update").Int64("id", id).Msg("update account failed")
	}
	return account, mapAdapterError(err)
}

func (c *clientAccountService) Delete(ctx context.Context, id int64) error {
	if id < 1 {
		return ErrAccountUnavailable
	}
	return mapAdapterError(c.adapter.DeleteAccount(ctx, id))
}

func (c *clientAccountService) ServerVersion(ctx context.Context) (string, error) {
	version, err := c.adapter.Version(ctx)
	return version, mapAdapterError(err)
}
