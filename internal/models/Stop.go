package models

// Stop is a physical stop location ("parada").
// IDs are assigned by the caller, never by the database.
type Stop struct {
	ID        int64   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	Latitude  float64 `gorm:"not null;index" json:"latitude"`
	Longitude float64 `gorm:"not null;index" json:"longitude"`
}

// StopWithLines is a stop merged with the lines that serve it.
type StopWithLines struct {
	Stop
	Lines []Line `json:"linhas"`
}

// StopInput carries the fields of a stop create or update request.
// A nil field was not supplied by the caller.
type StopInput struct {
	ID        *int64
	Name      *string
	Latitude  *float64
	Longitude *float64
}

// Columns returns the supplied fields keyed by column name.
func (in StopInput) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if in.ID != nil {
		cols["id"] = *in.ID
	}
	if in.Name != nil {
		cols["name"] = *in.Name
	}
	if in.Latitude != nil {
		cols["latitude"] = *in.Latitude
	}
	if in.Longitude != nil {
		cols["longitude"] = *in.Longitude
	}
	return cols
}
