package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/blackcloro/transaction-validator/internal/api"
	"github.com/blackcloro/transaction-validator/internal/config"
	"github.com/blackcloro/transaction-validator/internal/domain/transaction"
	"github.com/blackcloro/transaction-validator/internal/testutil"
	"github.com/blackcloro/transaction-validator/internal/validator"
	"github.com/blackcloro/transaction-validator/pkg/logger"
)

type IntegrationTestSuite struct {
	suite.Suite
	server    *api.Server
	validator *validator.TransactionValidator
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	logger.InitLogger()

	cfg := &config.Config{
		Port: 8080,
		Env:  "test",
	}

	s.validator = validator.New()
	_, err := s.validator.CreateAccount("acc-1", decimal.RequireFromString("1000.00"))
	s.Require().NoError(err)

	s.server = api.NewServer(cfg, s.validator)
}

func (s *IntegrationTestSuite) request(method, path string, body any) (*http.Response, map[string]json.RawMessage) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.server.App().Test(req)
	s.Require().NoError(err)

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())

	fields := make(map[string]json.RawMessage)
	if len(raw) > 0 && json.Valid(raw) {
		s.Require().NoError(json.Unmarshal(raw, &fields))
	}
	return resp, fields
}

func (s *IntegrationTestSuite) decimalField(fields map[string]json.RawMessage, key string) decimal.Decimal {
	raw, ok := fields[key]
	s.Require().True(ok, "missing field %q", key)
	var d decimal.Decimal
	s.Require().NoError(json.Unmarshal(raw, &d))
	return d
}

func (s *IntegrationTestSuite) TestHealthcheck() {
	resp, _ := s.request(http.MethodGet, "/api/v1/livez", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestAccountLifecycle() {
	resp, fields := s.request(http.MethodPost, "/api/v1/accounts", map[string]any{
		"id":              "acc-2",
		"initial_balance": "250.00",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)
	s.True(s.decimalField(fields, "balance").Equal(decimal.RequireFromString("250.00")))

	resp, _ = s.request(http.MethodPost, "/api/v1/accounts", map[string]any{
		"id":              "acc-2",
		"initial_balance": "1.00",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)

	resp, fields = s.request(http.MethodGet, "/api/v1/accounts/acc-2", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.True(s.decimalField(fields, "balance").Equal(decimal.RequireFromString("250.00")))

	resp, _ = s.request(http.MethodGet, "/api/v1/accounts/missing", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestTransactionFlow() {
	deposit := map[string]any{
		"transaction_id": "flow-1",
		"account_id":     "acc-1",
		"kind":           "deposit",
		"amount":         "100.00",
	}

	resp, fields := s.request(http.MethodPost, "/api/v1/transactions", deposit)
	s.Equal(http.StatusCreated, resp.StatusCode)
	s.True(s.decimalField(fields, "balance").Equal(decimal.RequireFromString("1100.00")))

	// Same id again is a replay, whatever the payload says.
	resp, _ = s.request(http.MethodPost, "/api/v1/transactions", deposit)
	s.Equal(http.StatusConflict, resp.StatusCode)

	resp, fields = s.request(http.MethodPost, "/api/v1/transactions", map[string]any{
		"transaction_id": "flow-2",
		"account_id":     "acc-1",
		"kind":           "withdrawal",
		"amount":         "5000.00",
	})
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	s.True(s.decimalField(fields, "shortfall").Equal(decimal.RequireFromString("3900.00")))

	resp, _ = s.request(http.MethodPost, "/api/v1/transactions", map[string]any{
		"transaction_id": "flow-3",
		"account_id":     "missing",
		"kind":           "deposit",
		"amount":         "10.00",
	})
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp, _ = s.request(http.MethodPost, "/api/v1/transactions", map[string]any{
		"transaction_id": "flow-4",
		"account_id":     "acc-1",
		"kind":           "deposit",
		"amount":         "-10.00",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	// Omitted transaction id gets a generated one, so this is not a replay.
	resp, _ = s.request(http.MethodPost, "/api/v1/transactions", map[string]any{
		"account_id": "acc-1",
		"kind":       "deposit",
		"amount":     "1.00",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)
}

// Drives the validator directly rather than through HTTP so the burst is not
// throttled by the rate limiter.
func (s *IntegrationTestSuite) TestConcurrentDepositBurst() {
	_, err := s.validator.CreateAccount("burst", decimal.Zero)
	s.Require().NoError(err)

	txs := testutil.GenerateDeposits(50, "burst")
	results := make([]validator.ValidationResult, len(txs))

	var wg sync.WaitGroup
	for i, tx := range txs {
		wg.Add(1)
		go func(i int, tx *transaction.Transaction) {
			defer wg.Done()
			results[i] = s.validator.Process(tx)
		}(i, tx)
	}
	wg.Wait()

	counts := testutil.CountResults(results)
	s.Equal(50, counts.Success)
	s.Zero(counts.Duplicate)
	s.Zero(counts.InsufficientFunds)
	s.Zero(counts.InvalidInput)

	acc, ok := s.validator.GetAccount("burst")
	s.Require().True(ok)
	// Amounts are 10, 20, ..., 500; their sum is 12750.
	s.Equal("12750", acc.Balance().String())
}

func (s *IntegrationTestSuite) TestSeedAccountsConfig() {
	cfg := &config.Config{
		Seed: config.SeedConfig{Accounts: "seed-1:100.50, seed-2:0"},
	}
	seeds, err := cfg.SeedAccounts()
	s.Require().NoError(err)
	s.Require().Len(seeds, 2)
	s.Equal("seed-1", seeds[0].ID)
	s.True(seeds[0].Balance.Equal(decimal.RequireFromString("100.50")))
	s.Equal("seed-2", seeds[1].ID)
	s.True(seeds[1].Balance.IsZero())

	bad := &config.Config{Seed: config.SeedConfig{Accounts: "nope"}}
	_, err = bad.SeedAccounts()
	s.Error(err)

	empty := &config.Config{}
	seeds, err = empty.SeedAccounts()
	s.NoError(err)
	s.Nil(seeds)
}
