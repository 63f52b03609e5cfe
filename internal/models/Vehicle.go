package models

// Vehicle is a bus, optionally assigned to a line.
type Vehicle struct {
	ID     int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	Model  string `gorm:"not null" json:"model"`
	LineID *int64 `gorm:"index" json:"lineId"`

	Line *Line `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

// VehicleInput carries the fields of a vehicle create or update request.
type VehicleInput struct {
	ID     *int64
	Name   *string
	Model  *string
	LineID *int64
}

func (in VehicleInput) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if in.ID != nil {
		cols["id"] = *in.ID
	}
	if in.Name != nil {
		cols["name"] = *in.Name
	}
	if in.Model != nil {
		cols["model"] = *in.Model
	}
	if in.LineID != nil {
		cols["line_id"] = *in.LineID
	}
	return cols
}
