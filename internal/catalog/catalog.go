// Package catalog queries the external parts catalog. Lookups are exact-match
// on the article number; the catalog is never written by this application.
package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rkradolfer/jobadmin/internal/models"
)

// ErrNotFound is returned when no catalog row matches the lookup.
var ErrNotFound = errors.New("catalog entry not found")

type Catalog struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Catalog { return &Catalog{db: db} }

// Search returns the candidate sub-items for an article number, one row per
// distinct sub-item, for user selection. An unknown article number yields an
// empty slice, not an error.
func (c *Catalog) Search(articleNo string) ([]models.CatalogEntry, error) {
	var entries []models.CatalogEntry
	err := c.db.
		Distinct("article_no", "sub_item_no", "sub_item_label").
		Where("article_no = ?", articleNo).
		Order("sub_item_no").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("catalog search %s: %w", articleNo, err)
	}
	return entries, nil
}

// Get fetches the full catalog row (price and description included) for a
// selected article/sub-item pair.
func (c *Catalog) Get(articleNo, subItemNo string) (models.CatalogEntry, error) {
	var entry models.CatalogEntry
	err := c.db.
		Where("article_no = ? AND sub_item_no = ?", articleNo, subItemNo).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CatalogEntry{}, ErrNotFound
		}
		return models.CatalogEntry{}, fmt.Errorf("catalog get %s/%s: %w", articleNo, subItemNo, err)
	}
	return entry, nil
}
