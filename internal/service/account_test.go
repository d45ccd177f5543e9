package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/efreitasn/ledgermatch/internal/domain"
)

func TestAccountRegister(t *testing.T) {
	accounts, _, _, _, _ := newTestServices(t)

	if err := accounts.Register("alice", 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bal, err := accounts.GetBalance("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bal != 1000 {
		t.Errorf("balance = %d, want 1000", bal)
	}

	if err := accounts.Register("alice", 0); !errors.Is(err, domain.ErrAccountAlreadyExists) {
		t.Errorf("expected ErrAccountAlreadyExists, got %v", err)
	}
}

func TestAccountRegisterValidation(t *testing.T) {
	accounts, _, _, _, _ := newTestServices(t)

	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"whitespace", "has space"},
		{"slash", "a/b"},
		{"too long", strings.Repeat("a", 65)},
		{"unicode", "ålice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounts.Register(tt.id, 0)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestAccountGetBalanceUnknown(t *testing.T) {
	accounts, _, _, _, _ := newTestServices(t)
	if _, err := accounts.GetBalance("ghost"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
