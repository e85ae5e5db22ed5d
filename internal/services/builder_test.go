package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rkradolfer/jobadmin/internal/models"
)

type fakeStore struct {
	job   models.Job
	items []models.JobItem
	calls int
	err   error
}

func (f *fakeStore) CreateJob(job models.Job, items []models.JobItem) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.job = job
	f.items = items
	return nil
}

func sampleEntry() models.CatalogEntry {
	return models.CatalogEntry{
		ArticleNo:    "4711",
		SubItemNo:    "102",
		SubItemLabel: "Messing",
		Price:        12.50,
		Description:  "Absperrventil 1/2\"",
	}
}

func TestDraftTotalRecomputed(t *testing.T) {
	b := NewBuilder(&fakeStore{})
	d := &Draft{}

	require.Nil(t, b.AddManualItem(d, "Pipe repair", 50, 2))
	require.Nil(t, b.AddWorkItem(d, "Labor", 80, 1.5))
	require.Equal(t, 220.0, d.Total())

	require.Nil(t, b.AddCatalogItem(d, sampleEntry(), 4))
	catalog, manual, work := d.Subtotals()
	require.Equal(t, 50.0, catalog)
	require.Equal(t, 100.0, manual)
	require.Equal(t, 120.0, work)
	require.Equal(t, 270.0, d.Total())

	d.Clear()
	require.True(t, d.Empty())
	require.Zero(t, d.Total())
}

func TestAddItemValidation(t *testing.T) {
	b := NewBuilder(&fakeStore{})
	d := &Draft{}

	v := b.AddManualItem(d, "", 50, 1)
	require.Equal(t, "required", v["description"])

	v = b.AddManualItem(d, "Part", 0, 1)
	require.Equal(t, "must_be_positive", v["price"])

	// zero quantity is rejected, not defaulted to 1
	v = b.AddManualItem(d, "Part", 50, 0)
	require.Equal(t, "must_be_positive", v["quantity"])

	v = b.AddWorkItem(d, "Labor", 80, 0)
	require.Equal(t, "must_be_positive", v["hours"])

	v = b.AddWorkItem(d, "Labor", -1, 2)
	require.Equal(t, "must_be_positive", v["rate"])

	v = b.AddCatalogItem(d, sampleEntry(), -2)
	require.Equal(t, "must_be_positive", v["quantity"])

	require.True(t, d.Empty())
}

func TestSavePersistsAndClearsDraft(t *testing.T) {
	fs := &fakeStore{}
	b := NewBuilder(fs)
	d := &Draft{}

	require.Nil(t, b.AddCatalogItem(d, sampleEntry(), 2))
	require.Nil(t, b.AddManualItem(d, "Pipe repair", 50, 2))
	require.Nil(t, b.AddWorkItem(d, "Labor", 80, 1.5))

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	job, violations, err := b.Save(d, JobInfo{
		ClientName:    "A. Muster",
		ClientAddress: "Bahnhofstrasse 1\n8000 Zürich",
		JobDate:       date,
		Notes:         "Bad im EG",
	})
	require.NoError(t, err)
	require.Empty(t, violations)

	require.Equal(t, 1, fs.calls)
	require.Equal(t, "2025-03-14", job.JobDate)
	require.Equal(t, 245.0, job.TotalAmount) // 12.50*2 + 50*2 + 80*1.5
	require.Len(t, fs.items, 3)

	// items are stored in source order: catalog, manual, work
	require.Equal(t, models.ItemTypeCatalog, fs.items[0].Type)
	require.Equal(t, `Absperrventil 1/2" (AFNr: 102 - Messing)`, fs.items[0].Description)
	require.Equal(t, 12.50, fs.items[0].Price)
	require.Equal(t, models.ItemTypeManual, fs.items[1].Type)
	require.Equal(t, models.ItemTypeWork, fs.items[2].Type)
	require.Equal(t, 80.0, fs.items[2].Price)
	require.Equal(t, 1.5, fs.items[2].Quantity)

	require.True(t, d.Empty())
}

func TestSaveRetainsDraftOnStoreFailure(t *testing.T) {
	fs := &fakeStore{err: errors.New("disk full")}
	b := NewBuilder(fs)
	d := &Draft{}

	require.Nil(t, b.AddManualItem(d, "Pipe repair", 50, 2))

	_, violations, err := b.Save(d, JobInfo{ClientName: "A. Muster", JobDate: time.Now()})
	require.Error(t, err)
	require.Empty(t, violations)
	require.False(t, d.Empty(), "draft must survive a failed save for retry")

	// retry succeeds once the store recovers
	fs.err = nil
	_, _, err = b.Save(d, JobInfo{ClientName: "A. Muster", JobDate: time.Now()})
	require.NoError(t, err)
	require.True(t, d.Empty())
}

func TestSaveRequiresClientName(t *testing.T) {
	fs := &fakeStore{}
	b := NewBuilder(fs)
	d := &Draft{}
	require.Nil(t, b.AddManualItem(d, "Part", 10, 1))

	_, violations, err := b.Save(d, JobInfo{ClientName: "  ", JobDate: time.Now()})
	require.NoError(t, err)
	require.Equal(t, "required", violations["client_name"])
	require.Zero(t, fs.calls)
	require.False(t, d.Empty())
}

func TestNewJobID(t *testing.T) {
	at := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	pattern := regexp.MustCompile(`^20250314_150926_[0-9a-f]{8}$`)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := NewJobID(at)
		require.Regexp(t, pattern, id)
		require.False(t, seen[id], "job ids must not collide within one second")
		seen[id] = true
	}
}
