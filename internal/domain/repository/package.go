package repository

import (
	"context"

	"github.com/polkiloo/undangan/internal/domain/model"
)

// PackageRepository provides read access to the package catalog.
type PackageRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Package, error)
	List(ctx context.Context) ([]model.Package, error)
}
