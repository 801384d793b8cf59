package usecase

import (
	"context"

	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/domain/repository"
)

// PackageUseCase exposes the package catalog.
type PackageUseCase struct {
	packages repository.PackageRepository
}

// NewPackageUseCase constructs PackageUseCase.
func NewPackageUseCase(packages repository.PackageRepository) *PackageUseCase {
	return &PackageUseCase{packages: packages}
}

func (u *PackageUseCase) List(ctx context.Context) ([]model.Package, error) {
	return u.packages.List(ctx)
}

func (u *PackageUseCase) Get(ctx context.Context, id int64) (*model.Package, error) {
	return u.packages.GetByID(ctx, id)
}
