package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/khanhng/orderflow/internal/domain/errors"
	"github.com/khanhng/orderflow/internal/domain/model"
	testhelpers "github.com/khanhng/orderflow/internal/test"
	. "github.com/khanhng/orderflow/internal/usecase"
)

func newAuthUseCase() (*AuthUseCase, *testhelpers.UserRepositoryStub) {
	users := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{})
	return uc, users
}

func TestRegister(t *testing.T) {
	uc, _ := newAuthUseCase()

	usr, token, err := uc.Register(context.Background(), "printer1", "pass", "Minh", model.RoleSet{model.RolePrinter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if !usr.Roles.Has(model.RolePrinter) {
		t.Fatalf("expected printer role, got %v", usr.Roles)
	}
}

func TestRegisterFailures(t *testing.T) {
	uc, _ := newAuthUseCase()

	if _, _, err := uc.Register(context.Background(), "  ", "pass", "", nil); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for blank login, got %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "x", "pass", "", model.RoleSet{"JANITOR"}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}

	if _, _, err := uc.Register(context.Background(), "dup", "pass", "", model.RoleSet{model.RoleSale}); err != nil {
		t.Fatalf("seed register failed: %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "dup", "pass", "", model.RoleSet{model.RoleSale}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	uc, _ := newAuthUseCase()
	if _, _, err := uc.Register(context.Background(), "sale1", "secret", "Lan", model.RoleSet{model.RoleSale}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	usr, token, err := uc.Authenticate(context.Background(), "sale1", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" || usr.Login != "sale1" {
		t.Fatalf("unexpected result: user=%+v token=%q", usr, token)
	}

	if _, _, err := uc.Authenticate(context.Background(), "sale1", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "ghost", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown login, got %v", err)
	}
}
