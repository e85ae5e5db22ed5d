// Package services holds the job entry business logic: accumulating draft
// line items from the three sources and committing a finished draft to the
// store.
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rkradolfer/jobadmin/internal/models"
	"github.com/rkradolfer/jobadmin/internal/validation"
)

// JobCreator is the slice of the store the builder needs to commit a draft.
type JobCreator interface {
	CreateJob(job models.Job, items []models.JobItem) error
}

// CatalogLine is a catalog row chosen from a prior lookup plus a quantity.
type CatalogLine struct {
	Entry    models.CatalogEntry
	Quantity float64
}

func (l CatalogLine) Total() float64 { return l.Entry.Price * l.Quantity }

type ManualLine struct {
	Description string
	Price       float64
	Quantity    float64
}

func (l ManualLine) Total() float64 { return l.Price * l.Quantity }

type WorkLine struct {
	Description string
	Rate        float64
	Hours       float64
}

func (l WorkLine) Total() float64 { return l.Rate * l.Hours }

// Draft is the transient accumulation of pending line items for one job
// entry session. It lives only in memory: cleared on save or cancel, lost on
// restart. Callers hold it explicitly and pass it through the builder API.
type Draft struct {
	CatalogItems []CatalogLine
	ManualItems  []ManualLine
	WorkItems    []WorkLine
}

func (d *Draft) Empty() bool {
	return len(d.CatalogItems) == 0 && len(d.ManualItems) == 0 && len(d.WorkItems) == 0
}

func (d *Draft) Clear() {
	d.CatalogItems = nil
	d.ManualItems = nil
	d.WorkItems = nil
}

// Subtotals recomputes the per-source sums from scratch.
func (d *Draft) Subtotals() (catalog, manual, work float64) {
	for _, l := range d.CatalogItems {
		catalog += l.Total()
	}
	for _, l := range d.ManualItems {
		manual += l.Total()
	}
	for _, l := range d.WorkItems {
		work += l.Total()
	}
	return catalog, manual, work
}

// Total is always recomputed from the current items; there is no cached sum
// that could drift.
func (d *Draft) Total() float64 {
	catalog, manual, work := d.Subtotals()
	return catalog + manual + work
}

// JobInfo carries the client fields entered alongside the draft items.
type JobInfo struct {
	ClientName    string
	ClientAddress string
	JobDate       time.Time
	Notes         string
}

// Builder validates draft mutations and commits finished drafts.
type Builder struct {
	store JobCreator
}

func NewBuilder(store JobCreator) *Builder { return &Builder{store: store} }

// AddCatalogItem appends a catalog row from a prior successful lookup.
func (b *Builder) AddCatalogItem(d *Draft, entry models.CatalogEntry, quantity float64) validation.Violations {
	v := make(validation.Violations)
	validation.Required("article_no", entry.ArticleNo, v)
	validation.PositiveFloat("quantity", quantity, v)
	if !v.Empty() {
		return v
	}
	d.CatalogItems = append(d.CatalogItems, CatalogLine{Entry: entry, Quantity: quantity})
	return nil
}

// AddManualItem appends a manually entered part. Zero and negative quantities
// are rejected; there is no silent default to 1.
func (b *Builder) AddManualItem(d *Draft, description string, price, quantity float64) validation.Violations {
	v := make(validation.Violations)
	validation.Required("description", description, v)
	validation.PositiveFloat("price", price, v)
	validation.PositiveFloat("quantity", quantity, v)
	if !v.Empty() {
		return v
	}
	d.ManualItems = append(d.ManualItems, ManualLine{Description: description, Price: price, Quantity: quantity})
	return nil
}

// AddWorkItem appends labor hours; hours may be fractional.
func (b *Builder) AddWorkItem(d *Draft, description string, rate, hours float64) validation.Violations {
	v := make(validation.Violations)
	validation.Required("description", description, v)
	validation.PositiveFloat("rate", rate, v)
	validation.PositiveFloat("hours", hours, v)
	if !v.Empty() {
		return v
	}
	d.WorkItems = append(d.WorkItems, WorkLine{Description: description, Rate: rate, Hours: hours})
	return nil
}

// Save validates the client fields, turns the draft into a Job plus its
// items, and persists them. The draft is cleared only on success; on failure
// it is retained so the user can retry.
func (b *Builder) Save(d *Draft, info JobInfo) (models.Job, validation.Violations, error) {
	v := make(validation.Violations)
	validation.Required("client_name", info.ClientName, v)
	if !v.Empty() {
		return models.Job{}, v, nil
	}

	now := time.Now()
	job := models.Job{
		JobID:         NewJobID(now),
		ClientName:    info.ClientName,
		ClientAddress: info.ClientAddress,
		JobDate:       info.JobDate.Format("2006-01-02"),
		Notes:         info.Notes,
		TotalAmount:   d.Total(),
		Timestamp:     now.Format("2006-01-02 15:04:05"),
	}

	items := make([]models.JobItem, 0, len(d.CatalogItems)+len(d.ManualItems)+len(d.WorkItems))
	for _, l := range d.CatalogItems {
		items = append(items, models.JobItem{
			Type:        models.ItemTypeCatalog,
			Description: CatalogDescription(l.Entry),
			Price:       l.Entry.Price,
			Quantity:    l.Quantity,
		})
	}
	for _, l := range d.ManualItems {
		items = append(items, models.JobItem{
			Type:        models.ItemTypeManual,
			Description: l.Description,
			Price:       l.Price,
			Quantity:    l.Quantity,
		})
	}
	for _, l := range d.WorkItems {
		items = append(items, models.JobItem{
			Type:        models.ItemTypeWork,
			Description: l.Description,
			Price:       l.Rate,
			Quantity:    l.Hours,
		})
	}

	if err := b.store.CreateJob(job, items); err != nil {
		return models.Job{}, nil, err
	}
	d.Clear()
	return job, nil, nil
}

// CatalogDescription embeds the source article metadata in the stored item
// text, e.g. "Absperrventil 1/2\" (AFNr: 102 - Messing)".
func CatalogDescription(e models.CatalogEntry) string {
	return fmt.Sprintf("%s (AFNr: %s - %s)", e.Description, e.SubItemNo, e.SubItemLabel)
}

// NewJobID derives a job identifier from the creation time, sortable by
// creation order at second granularity. The random suffix keeps two saves
// within the same second from colliding.
func NewJobID(t time.Time) string {
	return t.Format("20060102_150405") + "_" + uuid.NewString()[:8]
}
