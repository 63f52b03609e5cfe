// Package models holds the GORM models of the transit catalogue and the
// composite shapes returned by the "show" endpoints.
package models

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{&Stop{}, &Line{}, &Vehicle{}, &VehiclePosition{}, &LineStop{}}
}
