package models

// LineStop associates a Line with a Stop. Rows are removed with either side
// and follow primary key changes on either side.
type LineStop struct {
	ID     int64 `gorm:"primaryKey"`
	LineID int64 `gorm:"not null;uniqueIndex:idx_line_stop"`
	StopID int64 `gorm:"not null;uniqueIndex:idx_line_stop;index"`

	Line *Line `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Stop *Stop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
