package models

// Job line item sources. Closed set, stored as-is in the type column.
const (
	ItemTypeCatalog = "catalog"
	ItemTypeManual  = "manual"
	ItemTypeWork    = "work"
)

// Job is one billable service engagement. Rows are immutable after creation;
// the only mutation is a full cascading delete.
type Job struct {
	ID            uint   `gorm:"primaryKey"`
	JobID         string `gorm:"size:40;not null;uniqueIndex"`
	ClientName    string `gorm:"not null;index"`
	ClientAddress string
	JobDate       string `gorm:"size:10;not null;index"` // ISO 8601 date (YYYY-MM-DD)
	Notes         string
	TotalAmount   float64 `gorm:"not null"`
	Timestamp     string  `gorm:"size:19;not null"` // creation time, YYYY-MM-DD HH:MM:SS

	Items []JobItem `gorm:"foreignKey:JobID;references:JobID"`
}

// JobItem is one billable unit within a job: a catalog part, a manually
// entered part, or labor hours. Quantity is fractional for hours.
type JobItem struct {
	ID          uint   `gorm:"primaryKey"`
	JobID       string `gorm:"size:40;not null;index"`
	Type        string `gorm:"size:10;not null"`
	Description string `gorm:"not null"`
	Price       float64 `gorm:"not null"` // unit price
	Quantity    float64 `gorm:"not null"`
}

func (i JobItem) LineTotal() float64 { return i.Price * i.Quantity }
