package services

import (
	"context"
	"log/slog"

	"github.com/payflow-labs/transfer-service/internal/application"
	"github.com/payflow-labs/transfer-service/internal/domain"
)

// EventPublisher announces completed transfers to interested parties.
// Publishing happens after the unit of work commits and is fire-and-forget:
// a publish failure never fails the transfer.
type EventPublisher interface {
	PublishTransferCompleted(ctx context.Context, log *domain.TransactionLog) error
}

// TransferService executes funds transfers between a client account and a
// merchant account. Both balance mutations and the transaction log append
// happen inside one unit of work, so a transfer either fully commits or
// leaves no trace.
type TransferService struct {
	uow     application.UnitOfWork
	display domain.TransactionDisplay
	events  EventPublisher
	logger  *slog.Logger
}

func NewTransferService(
	uow application.UnitOfWork,
	display domain.TransactionDisplay,
	events EventPublisher,
	logger *slog.Logger,
) *TransferService {
	return &TransferService{
		uow:     uow,
		display: display,
		events:  events,
		logger:  logger,
	}
}

// Execute runs the transfer pipeline: validate the amount, resolve both
// accounts, validate currencies, debit the client, credit the merchant,
// then append the transaction log. Each step short-circuits on failure and
// no step before the debit touches any state. On success the log is
// rendered and published outside the transaction boundary.
func (s *TransferService) Execute(ctx context.Context, cmd PayTransferCommand) (*domain.TransactionLog, error) {
	if cmd.Amount <= 0 {
		return nil, domain.NewInvalidAmountError(cmd.Amount)
	}

	var log *domain.TransactionLog
	err := s.uow.WithinTransfer(ctx, cmd.ClientAccountNumber, cmd.MerchantAccountNumber, func(store application.TransferStore) error {
		client, err := s.loadAccount(ctx, store, cmd.ClientAccountNumber)
		if err != nil {
			return err
		}

		merchant := client
		if cmd.MerchantAccountNumber != cmd.ClientAccountNumber {
			merchant, err = s.loadAccount(ctx, store, cmd.MerchantAccountNumber)
			if err != nil {
				return err
			}
		}

		if client.Currency() != cmd.Currency {
			return domain.NewCurrencyMismatchError(domain.RoleClient, client.Currency(), cmd.Currency)
		}
		if merchant.Currency() != cmd.Currency {
			return domain.NewCurrencyMismatchError(domain.RoleMerchant, merchant.Currency(), cmd.Currency)
		}

		if err := client.Debit(cmd.Amount); err != nil {
			return err
		}
		clientEntry := domain.NewDebitEntry(client, cmd.Amount)

		merchant.Credit(cmd.Amount)
		merchantEntry := domain.NewCreditEntry(merchant, cmd.Amount)

		log = domain.NewTransactionLog(clientEntry, merchantEntry)

		if err := store.Accounts().Save(ctx, client); err != nil {
			return domain.NewPersistenceFailureError(err)
		}
		if merchant != client {
			if err := store.Accounts().Save(ctx, merchant); err != nil {
				return domain.NewPersistenceFailureError(err)
			}
		}
		if err := store.Transactions().Add(ctx, log); err != nil {
			return domain.NewPersistenceFailureError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("transfer completed",
		"transaction_id", log.ID,
		"client_account", cmd.ClientAccountNumber,
		"merchant_account", cmd.MerchantAccountNumber,
		"amount", cmd.Amount,
		"currency", cmd.Currency,
	)

	s.display.Render(log)
	if err := s.events.PublishTransferCompleted(ctx, log); err != nil {
		s.logger.Warn("failed to publish transfer event", "transaction_id", log.ID, "error", err)
	}

	return log, nil
}

func (s *TransferService) loadAccount(ctx context.Context, store application.TransferStore, number string) (*domain.Account, error) {
	account, err := store.Accounts().LoadByNumber(ctx, number)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	if account == nil {
		return nil, domain.NewAccountNotFoundError(number)
	}
	return account, nil
}
