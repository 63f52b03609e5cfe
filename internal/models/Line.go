package models

// Line is a transit route ("linha"). Stops are attached through LineStop rows;
// vehicles reference it through Vehicle.LineID.
type Line struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// LineWithStops is a line merged with its stops, in association order.
type LineWithStops struct {
	Line
	Stops []Stop `json:"paradas"`
}

// LineWithVehicles is a line merged with the vehicles assigned to it.
type LineWithVehicles struct {
	Line
	Vehicles []Vehicle `json:"veiculos"`
}

// LineInput carries the scalar fields of a line create or update request.
type LineInput struct {
	ID   *int64
	Name *string
}

// Columns returns the supplied scalar fields keyed by column name.
func (in LineInput) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if in.ID != nil {
		cols["id"] = *in.ID
	}
	if in.Name != nil {
		cols["name"] = *in.Name
	}
	return cols
}
