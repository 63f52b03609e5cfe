package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"transit_api/internal/models"
)

const (
	msgVehicleNotFound = "Veículo não encontrado!"
	msgVehicleConflict = "Veículo com mesmo id já foi cadastrado no sistema!"
)

// VehicleRepository manages the vehicles table.
type VehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a VehicleRepository backed by db.
func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := r.db.WithContext(ctx).Order("id").Find(&vehicles).Error; err != nil {
		return nil, &PersistenceError{Op: "list vehicles", Err: err}
	}
	return vehicles, nil
}

func (r *VehicleRepository) Get(ctx context.Context, id int64) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Message: msgVehicleNotFound}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get vehicle", Err: err}
	}
	return &vehicle, nil
}

// Create inserts vehicle. A supplied line id must reference an existing line.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	if err := r.ensureLine(ctx, vehicle.LineID); err != nil {
		return err
	}

	found, err := exists(ctx, r.db, &models.Vehicle{}, vehicle.ID)
	if err != nil {
		return err
	}
	if found {
		return &ConflictError{Message: msgVehicleConflict}
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(vehicle).Error
	})
	return translate("create vehicle", err, msgVehicleConflict, msgLineNotFound)
}

// Update applies the supplied fields of in to the vehicle keyed by currentID.
func (r *VehicleRepository) Update(ctx context.Context, currentID int64, in models.VehicleInput) error {
	found, err := exists(ctx, r.db, &models.Vehicle{}, currentID)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Message: msgVehicleNotFound}
	}

	if err := r.ensureLine(ctx, in.LineID); err != nil {
		return err
	}

	if idChanges(in.ID, currentID) {
		taken, err := exists(ctx, r.db, &models.Vehicle{}, *in.ID)
		if err != nil {
			return err
		}
		if taken {
			return &ConflictError{Message: msgVehicleConflict}
		}
	}

	cols := in.Columns()
	if len(cols) == 0 {
		return nil
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Vehicle{}).Where("id = ?", currentID).Updates(cols).Error
	})
	return translate("update vehicle", err, msgVehicleConflict, msgLineNotFound)
}

// Delete removes the vehicle; its positions keep existing with no vehicle.
func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	found, err := exists(ctx, r.db, &models.Vehicle{}, id)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Message: msgVehicleNotFound}
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&models.Vehicle{}).Error
	})
	return translate("delete vehicle", err, msgVehicleConflict, msgVehicleNotFound)
}

func (r *VehicleRepository) ensureLine(ctx context.Context, lineID *int64) error {
	if lineID == nil {
		return nil
	}
	found, err := exists(ctx, r.db, &models.Line{}, *lineID)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Message: msgLineNotFound}
	}
	return nil
}
