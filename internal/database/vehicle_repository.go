package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/limmers2015/Car-Part-Connection/internal/domain"
)

// VehicleRepo implements domain.VehicleRepository backed by PostgreSQL.
type VehicleRepo struct {
	pool *pgxpool.Pool
}

func NewVehicleRepo(pool *pgxpool.Pool) *VehicleRepo {
	return &VehicleRepo{pool: pool}
}

func (r *VehicleRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.Vehicle, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, year, make, model, COALESCE(nickname, ''), created_at
		FROM vehicles
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Year, &v.Make, &v.Model, &v.Nickname, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vehicles: %w", err)
	}

	return vehicles, nil
}

func (r *VehicleRepo) Create(ctx context.Context, userID uuid.UUID, nv domain.NewVehicle) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.pool.QueryRow(ctx, `
		INSERT INTO vehicles (id, user_id, year, make, model, nickname)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, year, make, model, COALESCE(nickname, ''), created_at
	`, uuid.New(), userID, nv.Year, nv.Make, nv.Model, nv.Nickname).Scan(
		&v.ID, &v.Year, &v.Make, &v.Model, &v.Nickname, &v.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert vehicle: %w", err)
	}

	return &v, nil
}
