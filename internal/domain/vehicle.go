package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Vehicle struct {
	ID        uuid.UUID `json:"id"`
	Year      int       `json:"year"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"-"`
}

// NewVehicle carries the client-supplied fields of a vehicle to create.
type NewVehicle struct {
	Year     int
	Make     string
	Model    string
	Nickname string
}

type VehicleRepository interface {
	// List returns the user's vehicles, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]Vehicle, error)

	Create(ctx context.Context, userID uuid.UUID, v NewVehicle) (*Vehicle, error)
}
