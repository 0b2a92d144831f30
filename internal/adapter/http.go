package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/go-resty/resty/v2"
)

const exportContentType = "application/json"

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// The base URL comes from cfg.HTTPAddress; a missing scheme defaults to http.
func NewHTTPServerAdapter(cfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	client.SetHeader("Accept", exportContentType)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register POSTs the credentials to /api/user/register and keeps the token
// from the Authorization response header.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/api/user/register", user)
}

// Login POSTs the credentials to /api/user/login and keeps the token from
// the Authorization response header.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/api/user/login", user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) (models.User, error) {
	var found models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&found).
		Post(path)
	if err != nil {
		return user, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return user, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return user, fmt.Errorf("%s parse bearer token: %w", path, err)
	}

	h.SetToken(token)
	return found, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/user/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return h.accountList(h.authedRequest(ctx), "/accounts")
}

func (h *httpServerAdapter) SearchAccounts(ctx context.Context, query string) ([]models.Account, error) {
	return h.accountList(h.authedRequest(ctx).SetQueryParam("query", query), "/accounts/search")
}

func (h *httpServerAdapter) accountList(req *resty.Request, path string) ([]models.Account, error) {
	var list models.AccountList

	resp, err := req.SetResult(&list).Get(path)
	if err != nil {
		return nil, fmt.Errorf("list accounts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return list.Accounts, nil
}

func (h *httpServerAdapter) ShowAccount(ctx context.Context, id int64) (models.Account, error) {
	var account models.Account

	resp, err := h.authedRequest(ctx).
		SetResult(&account).
		Get(accountPath(id))
	if err != nil {
		return models.Account{}, fmt.Errorf("show account request: %w", err)
	}

	return account, mapHTTPError(resp)
}

func (h *httpServerAdapter) CreateAccount(ctx context.Context, request models.AccountRequest) (models.Account, error) {
	var account models.Account

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&account).
		Post("/accounts")
	if err != nil {
		return models.Account{}, fmt.Errorf("create account request: %w", err)
	}

	return account, mapHTTPError(resp)
}

func (h *httpServerAdapter) UpdateAccount(ctx context.Context, id int64, request models.AccountRequest) (models.Account, error) {
	var account models.Account

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&account).
		Put(accountPath(id))
	if err != nil {
		return models.Account{}, fmt.Errorf("update account request: %w", err)
	}

	return account, mapHTTPError(resp)
}

func (h *httpServerAdapter) DeleteAccount(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).Delete(accountPath(id))
	if err != nil {
		return fmt.Errorf("delete account request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func accountPath(id int64) string {
	return "/accounts/" + strconv.FormatInt(id, 10)
}
