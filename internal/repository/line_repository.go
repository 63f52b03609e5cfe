package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"transit_api/internal/models"
)

const (
	msgLineNotFound = "Linha não encontrada!"
	msgLineConflict = "Linha com mesmo id já foi cadastrada no sistema!"
)

// LineRepository manages the lines table together with its stop associations.
type LineRepository struct {
	db *gorm.DB
}

// NewLineRepository creates a LineRepository backed by db.
func NewLineRepository(db *gorm.DB) *LineRepository {
	return &LineRepository{db: db}
}

// List returns every line, ordered by id, each merged with its stops.
func (r *LineRepository) List(ctx context.Context) ([]models.LineWithStops, error) {
	var lines []models.Line
	if err := r.db.WithContext(ctx).Order("id").Find(&lines).Error; err != nil {
		return nil, &PersistenceError{Op: "list lines", Err: err}
	}

	ids := make([]int64, len(lines))
	for i, l := range lines {
		ids[i] = l.ID
	}
	stops, err := stopsByLine(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.LineWithStops, len(lines))
	for i, l := range lines {
		out[i] = models.LineWithStops{Line: l, Stops: nonNilStops(stops[l.ID])}
	}
	return out, nil
}

// Get returns the line merged with its stops in association order.
func (r *LineRepository) Get(ctx context.Context, id int64) (*models.LineWithStops, error) {
	line, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}

	stops, err := stopsByLine(ctx, r.db, []int64{id})
	if err != nil {
		return nil, err
	}

	return &models.LineWithStops{Line: *line, Stops: nonNilStops(stops[id])}, nil
}

// GetWithVehicles returns the line merged with the vehicles assigned to it.
func (r *LineRepository) GetWithVehicles(ctx context.Context, id int64) (*models.LineWithVehicles, error) {
	line, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}

	vehicles := []models.Vehicle{}
	if err := r.db.WithContext(ctx).Where("line_id = ?", id).Order("id").Find(&vehicles).Error; err != nil {
		return nil, &PersistenceError{Op: "list line vehicles", Err: err}
	}

	return &models.LineWithVehicles{Line: *line, Vehicles: vehicles}, nil
}

// Create inserts line and one association per stop id in a single
// transaction. Every stop id is resolved before anything is written.
func (r *LineRepository) Create(ctx context.Context, line *models.Line, stopIDs []int64) error {
	found, err := exists(ctx, r.db, &models.Line{}, line.ID)
	if err != nil {
		return err
	}
	if found {
		return &ConflictError{Message: msgLineConflict}
	}

	stopIDs = uniqueIDs(stopIDs)
	if err := ensureStopsExist(ctx, r.db, stopIDs); err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(line).Error; err != nil {
			return err
		}
		return insertLineStops(tx, line.ID, stopIDs)
	})
	return translate("create line", err, msgLineConflict, msgStopNotFound)
}

// Update applies the supplied scalar fields to the line keyed by currentID.
// When stopIDs is non-nil the association set is replaced by it, even if it
// is empty. Both happen in one transaction.
func (r *LineRepository) Update(ctx context.Context, currentID int64, in models.LineInput, stopIDs *[]int64) error {
	found, err := exists(ctx, r.db, &models.Line{}, currentID)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Message: msgLineNotFound}
	}

	var replacement []int64
	if stopIDs != nil {
		replacement = uniqueIDs(*stopIDs)
		if err := ensureStopsExist(ctx, r.db, replacement); err != nil {
			return err
		}
	}

	targetID := currentID
	if idChanges(in.ID, currentID) {
		taken, err := exists(ctx, r.db, &models.Line{}, *in.ID)
		if err != nil {
			return err
		}
		if taken {
			return &ConflictError{Message: msgLineConflict}
		}
		targetID = *in.ID
	}

	cols := in.Columns()
	if len(cols) == 0 && stopIDs == nil {
		return nil
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(cols) > 0 {
			if err := tx.Model(&models.Line{}).Where("id = ?", currentID).Updates(cols).Error; err != nil {
				return err
			}
		}
		if stopIDs != nil {
			// After an id change the cascaded rows already carry targetID.
			return replaceLineStops(tx, targetID, replacement)
		}
		return nil
	})
	return translate("update line", err, msgLineConflict, msgStopNotFound)
}

// Delete removes the line. The schema drops its associations and detaches
// its vehicles.
func (r *LineRepository) Delete(ctx context.Context, id int64) error {
	found, err := exists(ctx, r.db, &models.Line{}, id)
	if err != nil {
		return err
	}
	if !found {
		return &NotFoundError{Message: msgLineNotFound}
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&models.Line{}).Error
	})
	return translate("delete line", err, msgLineConflict, msgLineNotFound)
}

func (r *LineRepository) find(ctx context.Context, id int64) (*models.Line, error) {
	var line models.Line
	err := r.db.WithContext(ctx).First(&line, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Message: msgLineNotFound}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get line", Err: err}
	}
	return &line, nil
}

func nonNilStops(stops []models.Stop) []models.Stop {
	if stops == nil {
		return []models.Stop{}
	}
	return stops
}
