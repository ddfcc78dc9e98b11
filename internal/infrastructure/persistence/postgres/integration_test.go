package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/payflow-labs/transfer-service/internal/application/services"
	"github.com/payflow-labs/transfer-service/internal/domain"
	"github.com/payflow-labs/transfer-service/internal/infrastructure/persistence/postgres"
	"github.com/payflow-labs/transfer-service/internal/infrastructure/persistence/postgres/testhelpers"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	td       *testhelpers.TestDatabase
	registry *postgres.AccountRegistry
	repo     *postgres.TransactionRepository
	uow      *postgres.UnitOfWork
	service  *services.TransferService
}

func TestPostgresIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.td = testhelpers.SetupTestDatabase(s.T())
	s.registry = postgres.NewAccountRegistry(s.td.DB)
	s.repo = postgres.NewTransactionRepository(s.td.DB)
	s.uow = postgres.NewUnitOfWork(s.td.DB)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = services.NewTransferService(s.uow, &services.MockDisplay{}, &services.MockEventPublisher{}, logger)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	s.td.Cleanup(s.T())
}

func (s *PostgresIntegrationSuite) SetupTest() {
	s.td.CleanTables(s.T())

	ctx := context.Background()
	s.Require().NoError(s.registry.Create(ctx, domain.NewAccount("client-account", domain.NewAmount(2000, "EUR"))))
	s.Require().NoError(s.registry.Create(ctx, domain.NewAccount("merchant-account", domain.NewAmount(500, "EUR"))))
}

func (s *PostgresIntegrationSuite) balance(number string) int64 {
	account, err := s.registry.LoadByNumber(context.Background(), number)
	s.Require().NoError(err)
	s.Require().NotNil(account)
	return account.Balance.Value
}

func (s *PostgresIntegrationSuite) TestTransferCommitsBothLegsAndLog() {
	ctx := context.Background()

	log, err := s.service.Execute(ctx, services.PayTransferCommand{
		ClientAccountNumber:   "client-account",
		MerchantAccountNumber: "merchant-account",
		Amount:                1000,
		Currency:              "EUR",
	})
	s.Require().NoError(err)

	s.Equal(int64(1000), s.balance("client-account"))
	s.Equal(int64(1500), s.balance("merchant-account"))

	stored, err := s.repo.FindByID(ctx, log.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Require().Len(stored.Entries, 2)
	s.Equal("client-account", stored.Entries[0].AccountNumber)
	s.Equal(int64(-1000), stored.Entries[0].Amount.Value)
	s.Equal(int64(1000), stored.Entries[0].NewBalance.Value)
	s.Equal("merchant-account", stored.Entries[1].AccountNumber)
	s.Equal(int64(1000), stored.Entries[1].Amount.Value)
	s.Equal(int64(1500), stored.Entries[1].NewBalance.Value)
	s.True(stored.IsBalanced())
}

func (s *PostgresIntegrationSuite) TestInsufficientFundsLeavesNoTrace() {
	ctx := context.Background()

	_, err := s.service.Execute(ctx, services.PayTransferCommand{
		ClientAccountNumber:   "client-account",
		MerchantAccountNumber: "merchant-account",
		Amount:                3000,
		Currency:              "EUR",
	})
	s.True(domain.IsErrorCode(err, domain.ErrCodeInsufficientFunds))

	s.Equal(int64(2000), s.balance("client-account"))
	s.Equal(int64(500), s.balance("merchant-account"))

	logs, err := s.repo.List(ctx, 10, 0)
	s.Require().NoError(err)
	s.Empty(logs)
}

func (s *PostgresIntegrationSuite) TestUnknownAccountRollsBack() {
	ctx := context.Background()

	_, err := s.service.Execute(ctx, services.PayTransferCommand{
		ClientAccountNumber:   "client-account",
		MerchantAccountNumber: "ghost",
		Amount:                1000,
		Currency:              "EUR",
	})
	s.True(domain.IsErrorCode(err, domain.ErrCodeAccountNotFound))

	s.Equal(int64(2000), s.balance("client-account"))
}

func (s *PostgresIntegrationSuite) TestListReturnsNewestFirst() {
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		log, err := s.service.Execute(ctx, services.PayTransferCommand{
			ClientAccountNumber:   "client-account",
			MerchantAccountNumber: "merchant-account",
			Amount:                100,
			Currency:              "EUR",
		})
		s.Require().NoError(err)
		ids = append(ids, log.ID)
	}

	logs, err := s.repo.List(ctx, 2, 0)
	s.Require().NoError(err)
	s.Require().Len(logs, 2)
	s.Equal(ids[2], logs[0].ID)
}

func (s *PostgresIntegrationSuite) TestConcurrentOppositeTransfersConserveFunds() {
	ctx := context.Background()
	const rounds = 25

	var wg sync.WaitGroup
	run := func(client, merchant string) {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := s.service.Execute(ctx, services.PayTransferCommand{
				ClientAccountNumber:   client,
				MerchantAccountNumber: merchant,
				Amount:                1,
				Currency:              "EUR",
			})
			s.NoError(err)
		}
	}

	wg.Add(2)
	go run("client-account", "merchant-account")
	go run("merchant-account", "client-account")
	wg.Wait()

	total := s.balance("client-account") + s.balance("merchant-account")
	s.Equal(int64(2500), total)

	logs, err := s.repo.List(ctx, 2*rounds, 0)
	s.Require().NoError(err)
	s.Len(logs, 2*rounds)
	for _, log := range logs {
		s.True(log.IsBalanced(), "log %s must balance", log.ID)
	}
}

func (s *PostgresIntegrationSuite) TestSaveUnknownAccountFails() {
	err := s.registry.Save(context.Background(), domain.NewAccount("ghost", domain.NewAmount(1, "EUR")))
	s.Error(err)
}
