// Package repository implements the persistence side of the transit catalogue:
// one repository per entity, the line/stop association manager and the
// translation of store failures into NotFound, Conflict and Persistence errors.
//
// Existence and uniqueness checks run before the write transaction opens and
// are only a fast path. The database constraints stay authoritative, and their
// violations are reported with the same error kinds as the checks.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Store is the persistence gateway. It owns the database handle and exposes
// the entity repositories built on it.
type Store struct {
	db *gorm.DB

	Stops     *StopRepository
	Lines     *LineRepository
	Vehicles  *VehicleRepository
	Positions *PositionRepository
}

// NewStore wires every repository to db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Stops:     NewStopRepository(db),
		Lines:     NewLineRepository(db),
		Vehicles:  NewVehicleRepository(db),
		Positions: NewPositionRepository(db),
	}
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return &PersistenceError{Op: "ping", Err: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &PersistenceError{Op: "ping", Err: err}
	}
	return nil
}

// exists reports whether a row of model with the given primary key exists.
func exists(ctx context.Context, db *gorm.DB, model interface{}, id int64) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, &PersistenceError{Op: fmt.Sprintf("lookup %T id=%d", model, id), Err: err}
	}
	return count > 0, nil
}

// idChanges reports whether an update moves a row from currentID to a new key.
func idChanges(newID *int64, currentID int64) bool {
	return newID != nil && *newID != currentID
}
