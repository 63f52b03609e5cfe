package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"transit_api/internal/models"
)

const msgPositionNotFound = "Posição não encontrada!"

// PositionRepository manages vehicle position reports.
type PositionRepository struct {
	db *gorm.DB
}

// NewPositionRepository creates a PositionRepository backed by db.
func NewPositionRepository(db *gorm.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

func (r *PositionRepository) List(ctx context.Context) ([]models.VehiclePosition, error) {
	var positions []models.VehiclePosition
	if err := r.db.WithContext(ctx).Order("id").Find(&positions).Error; err != nil {
		return nil, &PersistenceError{Op: "list positions", Err: err}
	}
	return positions, nil
}

func (r *PositionRepository) Get(ctx context.Context, id int64) (*models.VehiclePosition, error) {
	var pos models.VehiclePosition
	err := r.db.WithContext(ctx).First(&pos, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Message: msgPositionNotFound}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get position", Err: err}
	}
	return &pos, nil
}

// Create inserts pos and fills in its generated id. The vehicle it reports
// for must exist.
func (r *PositionRepository) Create(ctx context.Context, pos *models.VehiclePosition) error {
	if pos.VehicleID == nil {
		return &NotFoundError{Message: msgVehicleNotFound}
	}
	if err := r.ensureVehicle(ctx, *pos.VehicleID); err != nil {
		return err
	}

	pos.ID = 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(pos).Error
	})
	return translate("create position", err, msgPositionNotFound, msgVehicleNotFound)
}

// Update applies the supplied fields of in and returns the stored result.
func (r *PositionRepository) Update(ctx context.Context, id int64, in models.VehiclePositionInput) (*models.VehiclePosition, error) {
	found, err := exists(ctx, r.db, &models.VehiclePosition{}, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{Message: msgPositionNotFound}
	}

	if in.VehicleID != nil {
		if err := r.ensureVehicle(ctx, *in.VehicleID); err != nil {
			return nil, err
		}
	}

	if cols := in.Columns(); len(cols) > 0 {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Model(&models.VehiclePosition{}).Where("id = ?", id).Updates(cols).Error
		})
		if err := translate("update position", err, msgPositionNotFound, msgVehicleNotFound); err != nil {
			return nil, err
		}
	}

	return r.Get(ctx, id)
}

func (r *PositionRepository) Delete(ctx context.Context, id int64) error {
	found, err := exists(ctx, r.db, &models.VehiclePosition{}, id)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Message: msgPositionNotFound}
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&models.VehiclePosition{}).Error
	})
	return translate("delete position", err, msgPositionNotFound, msgPositionNotFound)
}

func (r *PositionRepository) ensureVehicle(ctx context.Context, vehicleID int64) error {
	found, err := exists(ctx, r.db, &models.Vehicle{}, vehicleID)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Message: msgVehicleNotFound}
	}
	return nil
}
