package postgres

import (
	"context"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

const selectUser = `SELECT id, email, name, phone, password_hash, role, created_at FROM users`

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (email, name, phone, password_hash, role)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	role := user.Role
	if role == "" {
		role = model.RoleUser
	}
	created := *user
	created.Role = role
	err := r.storage.pool.QueryRow(ctx, query, user.Email, user.Name, user.Phone, user.PasswordHash, role).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, mapUnique(err, domainErrors.ErrAlreadyExists)
	}
	return &created, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, selectUser+` WHERE email=$1`, email)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, selectUser+` WHERE id=$1`, id)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err, domainErrors.ErrNotFound)
	}
	return &u, nil
}
