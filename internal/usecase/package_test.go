package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	testhelpers "github.com/polkiloo/undangan/internal/test"
)

func TestPackageUseCase(t *testing.T) {
	uc := NewPackageUseCase(testhelpers.NewPackageRepositoryStub())

	all, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 packages, got %d", len(all))
	}

	pkg, err := uc.Get(context.Background(), 2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if pkg.FinalPrice() != 135000 {
		t.Fatalf("unexpected final price %d", pkg.FinalPrice())
	}

	if _, err := uc.Get(context.Background(), 9); !errors.Is(err, domainErrors.ErrPackageNotFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
}
