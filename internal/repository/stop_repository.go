package repository

import (
	"context"
	"errors"

	"github.com/twpayne/go-geom"
	"gorm.io/gorm"

	"transit_api/internal/models"
)

const (
	msgStopNotFound = "Parada não encontrada!"
	msgStopConflict = "Parada com mesmo id já foi cadastrada no sistema!"
)

// NearWindowDegrees is the half-width of the box searched by ListNear,
// applied independently to latitude and longitude.
const NearWindowDegrees = 1.0

// StopRepository manages the stops table.
type StopRepository struct {
	db *gorm.DB
}

// NewStopRepository creates a StopRepository backed by db.
func NewStopRepository(db *gorm.DB) *StopRepository {
	return &StopRepository{db: db}
}

// List returns every stop ordered by id.
func (r *StopRepository) List(ctx context.Context) ([]models.Stop, error) {
	var stops []models.Stop
	if err := r.db.WithContext(ctx).Order("id").Find(&stops).Error; err != nil {
		return nil, &PersistenceError{Op: "list stops", Err: err}
	}
	return stops, nil
}

// Get returns the stop with the given id.
func (r *StopRepository) Get(ctx context.Context, id int64) (*models.Stop, error) {
	var stop models.Stop
	err := r.db.WithContext(ctx).First(&stop, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Message: msgStopNotFound}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get stop", Err: err}
	}
	return &stop, nil
}

// Create inserts stop under its caller-assigned id.
func (r *StopRepository) Create(ctx context.Context, stop *models.Stop) error {
	found, err := exists(ctx, r.db, &models.Stop{}, stop.ID)
	if err != nil {
		return err
	}
	if found {
		return &ConflictError{Message: msgStopConflict}
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(stop).Error
	})
	return translate("create stop", err, msgStopConflict, msgStopNotFound)
}

// Update applies the supplied fields of in to the stop currently keyed by
// currentID. The id itself may change; associations follow through the
// ON UPDATE CASCADE rule.
func (r *StopRepository) Update(ctx context.Context, currentID int64, in models.StopInput) error {
	found, err := exists(ctx, r.db, &models.Stop{}, currentID)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Message: msgStopNotFound}
	}

	if idChanges(in.ID, currentID) {
		taken, err := exists(ctx, r.db, &models.Stop{}, *in.ID)
		if err != nil {
			return err
		}
		if taken {
			return &ConflictError{Message: msgStopConflict}
		}
	}

	cols := in.Columns()
	if len(cols) == 0 {
		return nil
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Stop{}).Where("id = ?", currentID).Updates(cols).Error
	})
	return translate("update stop", err, msgStopConflict, msgStopNotFound)
}

// Delete removes the stop and, through the schema, its line associations.
func (r *StopRepository) Delete(ctx context.Context, id int64) error {
	found, err := exists(ctx, r.db, &models.Stop{}, id)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Message: msgStopNotFound}
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&models.Stop{}).Error
	})
	return translate("delete stop", err, msgStopConflict, msgStopNotFound)
}

// ListNear returns the stops inside the box of NearWindowDegrees around
// (lat, lon), bounds included. Results are ordered by id, not by distance.
func (r *StopRepository) ListNear(ctx context.Context, lat, lon float64) ([]models.Stop, error) {
	box := nearBox(lat, lon)

	var stops []models.Stop
	err := r.db.WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", box.Min(1), box.Max(1)).
		Where("longitude BETWEEN ? AND ?", box.Min(0), box.Max(0)).
		Order("id").
		Find(&stops).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list stops near", Err: err}
	}
	return stops, nil
}

// GetWithLines returns the stop merged with the lines associated to it.
func (r *StopRepository) GetWithLines(ctx context.Context, id int64) (*models.StopWithLines, error) {
	stop, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	lines, err := linesForStop(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	return &models.StopWithLines{Stop: *stop, Lines: lines}, nil
}

// nearBox builds the search box in XY layout: x is longitude, y is latitude.
func nearBox(lat, lon float64) *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(
		lon-NearWindowDegrees, lat-NearWindowDegrees,
		lon+NearWindowDegrees, lat+NearWindowDegrees,
	)
}
