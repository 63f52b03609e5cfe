package models

// VehiclePosition is a coordinate reading reported for a vehicle.
// Its ID is generated by the database.
type VehiclePosition struct {
	ID        int64   `gorm:"primaryKey" json:"id"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
	VehicleID *int64  `gorm:"index" json:"vehicleId"`

	Vehicle *Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

// VehiclePositionInput carries the fields of a position create or update request.
type VehiclePositionInput struct {
	Latitude  *float64
	Longitude *float64
	VehicleID *int64
}

func (in VehiclePositionInput) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if in.Latitude != nil {
		cols["latitude"] = *in.Latitude
	}
	if in.Longitude != nil {
		cols["longitude"] = *in.Longitude
	}
	if in.VehicleID != nil {
		cols["vehicle_id"] = *in.VehicleID
	}
	return cols
}
