package models

// CatalogEntry mirrors one row of the external parts catalog. The catalog
// lives in its own database and is never written by this application; an
// article number maps to one or more sub-items, each with its own price.
type CatalogEntry struct {
	ID           uint    `gorm:"primaryKey"`
	ArticleNo    string  `gorm:"size:40;not null;index"`
	SubItemNo    string  `gorm:"size:40;not null"`
	SubItemLabel string  `gorm:"not null"`
	Price        float64 `gorm:"not null"`
	Description  string
}

func (CatalogEntry) TableName() string { return "catalog_entries" }
