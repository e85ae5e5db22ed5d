// Package store owns the persisted job collections. All multi-row writes are
// transactional so a job and its line items are always visible together or
// not at all.
package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rkradolfer/jobadmin/internal/models"
)

// ErrNotFound is returned when a job identifier does not exist.
var ErrNotFound = errors.New("job not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// ListFilter narrows ListJobs results. Dates are ISO 8601 (YYYY-MM-DD) and
// inclusive on both ends; empty fields are ignored. Search matches the client
// name or the job identifier as a case-insensitive substring.
type ListFilter struct {
	DateFrom string
	DateTo   string
	Search   string
}

// ItemSummary is the structured per-item view carried alongside each listed
// job. Formatting (currency prefix, joining) happens at the presentation
// boundary, not here.
type ItemSummary struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

type JobSummary struct {
	Job   models.Job
	Items []ItemSummary
}

// ListJobs returns jobs matching the filter ordered by job date descending
// (job id breaks ties, newest first). One summary per job regardless of item
// count; jobs without items carry an empty slice.
func (s *Store) ListJobs(f ListFilter) ([]JobSummary, error) {
	q := s.db.Model(&models.Job{})
	if f.DateFrom != "" {
		q = q.Where("job_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("job_date <= ?", f.DateTo)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("lower(client_name) LIKE ? OR lower(job_id) LIKE ?", like, like)
	}
	var jobs []models.Job
	if err := q.Order("job_date DESC, job_id DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	if len(jobs) == 0 {
		return []JobSummary{}, nil
	}

	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.JobID)
	}
	var items []models.JobItem
	if err := s.db.Where("job_id IN ?", ids).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list job items: %w", err)
	}
	byJob := make(map[string][]ItemSummary, len(jobs))
	for _, it := range items {
		byJob[it.JobID] = append(byJob[it.JobID], ItemSummary{
			Description: it.Description,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	out := make([]JobSummary, 0, len(jobs))
	for _, j := range jobs {
		sums := byJob[j.JobID]
		if sums == nil {
			sums = []ItemSummary{}
		}
		out = append(out, JobSummary{Job: j, Items: sums})
	}
	return out, nil
}

// GetJobDetails returns a job and its line items. A job that exists with no
// items yields an empty slice; an unknown id yields ErrNotFound.
func (s *Store) GetJobDetails(jobID string) (models.Job, []models.JobItem, error) {
	var job models.Job
	if err := s.db.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Job{}, nil, ErrNotFound
		}
		return models.Job{}, nil, fmt.Errorf("get job %s: %w", jobID, err)
	}
	items := []models.JobItem{}
	if err := s.db.Where("job_id = ?", jobID).Order("id").Find(&items).Error; err != nil {
		return models.Job{}, nil, fmt.Errorf("get job items %s: %w", jobID, err)
	}
	return job, items, nil
}

// CreateJob inserts the job row and all item rows in one transaction.
func (s *Store) CreateJob(job models.Job, items []models.JobItem) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&job).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].JobID = job.JobID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return fmt.Errorf("create job %s: %w", job.JobID, err)
	}
	return nil
}

// DeleteJob removes the job row and every item row sharing its identifier in
// one transaction. Deleting an id that does not exist is a no-op success, so
// a repeated delete is harmless.
func (s *Store) DeleteJob(jobID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", jobID).Delete(&models.JobItem{}).Error; err != nil {
			return err
		}
		return tx.Where("job_id = ?", jobID).Delete(&models.Job{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete job %s: %w", jobID, err)
	}
	return nil
}
