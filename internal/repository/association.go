package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"transit_api/internal/models"
)

// uniqueIDs drops repeated ids, keeping the first occurrence of each.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// missingStopMessage names the stop id that could not be resolved.
func missingStopMessage(id int64) string {
	return fmt.Sprintf("Parada com id %d não foi encontrada no sistema!", id)
}

// ensureStopsExist fails with a NotFoundError naming the first id in stopIDs
// that has no stop row.
func ensureStopsExist(ctx context.Context, db *gorm.DB, stopIDs []int64) error {
	if len(stopIDs) == 0 {
		return nil
	}

	var found []int64
	err := db.WithContext(ctx).Model(&models.Stop{}).Where("id IN ?", stopIDs).Pluck("id", &found).Error
	if err != nil {
		return &PersistenceError{Op: "resolve stops", Err: err}
	}

	present := make(map[int64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	for _, id := range stopIDs {
		if _, ok := present[id]; !ok {
			return &NotFoundError{Message: missingStopMessage(id)}
		}
	}
	return nil
}

// insertLineStops adds one association row per stop id, in order.
// Must run inside the caller's transaction.
func insertLineStops(tx *gorm.DB, lineID int64, stopIDs []int64) error {
	if len(stopIDs) == 0 {
		return nil
	}
	rows := make([]models.LineStop, len(stopIDs))
	for i, stopID := range stopIDs {
		rows[i] = models.LineStop{LineID: lineID, StopID: stopID}
	}
	return tx.Create(&rows).Error
}

// replaceLineStops swaps the whole association set of lineID for stopIDs.
// Must run inside the caller's transaction.
func replaceLineStops(tx *gorm.DB, lineID int64, stopIDs []int64) error {
	if err := tx.Where("line_id = ?", lineID).Delete(&models.LineStop{}).Error; err != nil {
		return err
	}
	return insertLineStops(tx, lineID, stopIDs)
}

// stopRow is a stop tagged with the line it was reached through.
type stopRow struct {
	LineID int64
	models.Stop
}

// stopsByLine loads the stops of every line in lineIDs, each list in
// association order.
func stopsByLine(ctx context.Context, db *gorm.DB, lineIDs []int64) (map[int64][]models.Stop, error) {
	out := make(map[int64][]models.Stop, len(lineIDs))
	if len(lineIDs) == 0 {
		return out, nil
	}

	var rows []stopRow
	err := db.WithContext(ctx).
		Table("stops").
		Select("line_stops.line_id AS line_id, stops.id, stops.name, stops.latitude, stops.longitude").
		Joins("JOIN line_stops ON line_stops.stop_id = stops.id").
		Where("line_stops.line_id IN ?", lineIDs).
		Order("line_stops.id").
		Scan(&rows).Error
	if err != nil {
		return nil, &PersistenceError{Op: "load line stops", Err: err}
	}

	for _, row := range rows {
		out[row.LineID] = append(out[row.LineID], row.Stop)
	}
	return out, nil
}

// linesForStop loads the lines associated with stopID.
func linesForStop(ctx context.Context, db *gorm.DB, stopID int64) ([]models.Line, error) {
	lines := []models.Line{}
	err := db.WithContext(ctx).
		Select("lines.*").
		Joins("JOIN line_stops ON line_stops.line_id = lines.id").
		Where("line_stops.stop_id = ?", stopID).
		Order("lines.id").
		Find(&lines).Error
	if err != nil {
		return nil, &PersistenceError{Op: "load stop lines", Err: err}
	}
	return lines, nil
}
