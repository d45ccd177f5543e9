package service

import (
	"regexp"

	"github.com/efreitasn/ledgermatch/internal/domain"
	"github.com/efreitasn/ledgermatch/internal/journal"
	"github.com/efreitasn/ledgermatch/internal/ledger"
)

var accountIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// AccountService handles participant registration and balance queries.
type AccountService struct {
	ledger  *ledger.Ledger
	journal *journal.Journal // nil when journaling is disabled
}

// NewAccountService creates a new AccountService.
func NewAccountService(l *ledger.Ledger, j *journal.Journal) *AccountService {
	return &AccountService{
		ledger:  l,
		journal: j,
	}
}

// Register validates the account id and creates a ledger account with
// the given initial balance in base units.
func (s *AccountService) Register(accountID string, initialBalance uint64) error {
	if !accountIDRegex.MatchString(accountID) {
		return &domain.ValidationError{
			Message: "account_id must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}

	if err := s.ledger.CreateAccount(accountID, initialBalance); err != nil {
		return err
	}

	if s.journal != nil {
		if err := s.journal.Append(journal.Entry{
			Type: journal.EntryAccountCreated,
			AccountCreated: &journal.AccountCreated{
				AccountID: accountID,
				Balance:   initialBalance,
			},
		}); err != nil {
			return err
		}
	}
	return nil
}

// GetBalance returns the account's ledger balance.
func (s *AccountService) GetBalance(accountID string) (uint64, error) {
	return s.ledger.Balance(accountID)
}
