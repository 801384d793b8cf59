package postgres

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
)

type packageRepository struct {
	storage *Storage
}

// Package ids double as activation tiers, so the catalog is seeded with fixed ids.
var defaultPackages = []model.Package{
	{ID: 1, Name: "Economy", Price: 100000, Features: []string{
		"200 tamu undangan + grup", "4 foto galeri (max)", "Informasi acara", "Background musik (list)",
		"Timer countdown", "Maps lokasi", "Story", "RSVP", "Ucapan tamu", "1 bulan masa aktif",
	}},
	{ID: 2, Name: "Premium", Price: 150000, Features: []string{
		"500 tamu undangan + grup", "10 foto galeri (max)", "1 video", "Informasi acara",
		"Background musik custom", "Timer countdown", "Maps lokasi", "Tambah ke kalender",
		"Story", "RSVP", "Ucapan tamu", "Kirim hadiah", "3 bulan masa aktif",
	}},
	{ID: 3, Name: "Business", Price: 200000, Features: []string{
		"1000 tamu undangan + grup", "20 foto galeri (max)", "5 video (max)", "Informasi acara",
		"Background musik custom", "Timer countdown", "Maps lokasi", "Tambah ke kalender",
		"Story", "RSVP", "Ucapan tamu", "Kirim hadiah", "6 bulan masa aktif",
	}},
	{ID: 4, Name: "First Class", Price: 300000, Features: []string{
		"Unlimited tamu undangan + grup", "Unlimited foto galeri", "Unlimited video", "Informasi acara",
		"Background musik custom", "Timer countdown", "Maps lokasi", "Tambah ke kalender",
		"Story", "RSVP", "Ucapan tamu", "Kirim hadiah", "12 bulan masa aktif", "Custom domain",
	}},
}

const seedPackageQuery = `INSERT INTO packages (id, name, price, discount, features)
                          VALUES ($1, $2, $3, $4, $5)
                          ON CONFLICT (id) DO NOTHING`

func (s *Storage) seedPackages(ctx context.Context) error {
	for _, p := range defaultPackages {
		if _, err := s.pool.Exec(ctx, seedPackageQuery, p.ID, p.Name, p.Price, p.Discount, p.Features); err != nil {
			return fmt.Errorf("seed package %d: %w", p.ID, err)
		}
	}
	return nil
}

const selectPackage = `SELECT id, name, price, discount, features, created_at FROM packages`

func (r *packageRepository) GetByID(ctx context.Context, id int64) (*model.Package, error) {
	var p model.Package
	err := r.storage.pool.QueryRow(ctx, selectPackage+` WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Discount, &p.Features, &p.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err, domainErrors.ErrPackageNotFound)
	}
	return &p, nil
}

func (r *packageRepository) List(ctx context.Context) ([]model.Package, error) {
	rows, err := r.storage.pool.Query(ctx, selectPackage+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Package
	for rows.Next() {
		var p model.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Discount, &p.Features, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
