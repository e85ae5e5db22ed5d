package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rkradolfer/jobadmin/internal/catalog"
	"github.com/rkradolfer/jobadmin/internal/format"
	"github.com/rkradolfer/jobadmin/internal/httpx"
	"github.com/rkradolfer/jobadmin/internal/models"
	"github.com/rkradolfer/jobadmin/internal/services"
	"github.com/rkradolfer/jobadmin/internal/store"
)

// JobHandler exposes the job store and builder over JSON.
type JobHandler struct {
	Store   *store.Store
	Builder *services.Builder
	Catalog *catalog.Catalog
}

func NewJobHandler(st *store.Store, b *services.Builder, cat *catalog.Catalog) *JobHandler {
	return &JobHandler{Store: st, Builder: b, Catalog: cat}
}

type itemView struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Display     string  `json:"display"`
}

type jobView struct {
	JobID         string     `json:"job_id"`
	ClientName    string     `json:"client_name"`
	ClientAddress string     `json:"client_address"`
	JobDate       string     `json:"job_date"`
	Notes         string     `json:"notes"`
	Total         float64    `json:"total"`
	TotalDisplay  string     `json:"total_display"`
	Items         []itemView `json:"items"`
}

// List: GET /jobs?from=&to=&q=
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	for field, val := range map[string]string{"from": from, "to": to} {
		if val == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", val); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_date", map[string]string{field: "expected YYYY-MM-DD"})
			return
		}
	}

	summaries, err := h.Store.ListJobs(store.ListFilter{
		DateFrom: from,
		DateTo:   to,
		Search:   r.URL.Query().Get("q"),
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_jobs", nil)
		return
	}

	views := make([]jobView, 0, len(summaries))
	for _, s := range summaries {
		items := make([]itemView, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, itemView{
				Description: it.Description,
				Quantity:    it.Quantity,
				Price:       it.Price,
				Display:     it.Description + " - " + format.Quantity(it.Quantity) + " x " + format.CHF(it.Price),
			})
		}
		views = append(views, jobView{
			JobID:         s.Job.JobID,
			ClientName:    s.Job.ClientName,
			ClientAddress: s.Job.ClientAddress,
			JobDate:       s.Job.JobDate,
			Notes:         s.Job.Notes,
			Total:         s.Job.TotalAmount,
			TotalDisplay:  format.CHF(s.Job.TotalAmount),
			Items:         items,
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": views, "total": len(views)})
}

type createItemReq struct {
	Type        string  `json:"type"`
	ArticleNo   string  `json:"article_no"`
	SubItemNo   string  `json:"sub_item_no"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Hours       float64 `json:"hours"`
}

type createJobReq struct {
	ClientName    string          `json:"client_name"`
	ClientAddress string          `json:"client_address"`
	JobDate       string          `json:"job_date"`
	Notes         string          `json:"notes"`
	Items         []createItemReq `json:"items"`
}

// Create: POST /jobs – accumulates the request items into a draft and saves.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createJobReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	jobDate := time.Now()
	if req.JobDate != "" {
		parsed, err := time.Parse("2006-01-02", req.JobDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_date", map[string]string{"job_date": "expected YYYY-MM-DD"})
			return
		}
		jobDate = parsed
	}

	draft := &services.Draft{}
	for _, it := range req.Items {
		var violations map[string]string
		switch it.Type {
		case models.ItemTypeCatalog:
			entry, err := h.Catalog.Get(it.ArticleNo, it.SubItemNo)
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					httpx.JSONError(w, http.StatusBadRequest, "catalog_entry_not_found",
						map[string]string{"article_no": it.ArticleNo, "sub_item_no": it.SubItemNo})
					return
				}
				httpx.JSONError(w, http.StatusInternalServerError, "catalog_unavailable", nil)
				return
			}
			violations = h.Builder.AddCatalogItem(draft, entry, it.Quantity)
		case models.ItemTypeManual:
			violations = h.Builder.AddManualItem(draft, it.Description, it.Price, it.Quantity)
		case models.ItemTypeWork:
			violations = h.Builder.AddWorkItem(draft, it.Description, it.Rate, it.Hours)
		default:
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"type": "must be catalog, manual or work"})
			return
		}
		if len(violations) > 0 {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", violations)
			return
		}
	}

	job, violations, err := h.Builder.Save(draft, services.JobInfo{
		ClientName:    req.ClientName,
		ClientAddress: req.ClientAddress,
		JobDate:       jobDate,
		Notes:         req.Notes,
	})
	if len(violations) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", violations)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_job", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"job_id":        job.JobID,
		"total":         job.TotalAmount,
		"total_display": format.CHF(job.TotalAmount),
	})
}

// Details: GET /jobs/details?id=...
func (h *JobHandler) Details(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	job, items, err := h.Store.GetJobDetails(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "job_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_job", nil)
		return
	}
	views := make([]map[string]any, 0, len(items))
	for _, it := range items {
		views = append(views, map[string]any{
			"type":        it.Type,
			"description": it.Description,
			"price":       it.Price,
			"quantity":    it.Quantity,
			"line_total":  it.LineTotal(),
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"job_id":         job.JobID,
		"client_name":    job.ClientName,
		"client_address": job.ClientAddress,
		"job_date":       job.JobDate,
		"notes":          job.Notes,
		"total":          job.TotalAmount,
		"total_display":  format.CHF(job.TotalAmount),
		"created_at":     job.Timestamp,
		"items":          views,
	})
}

// Delete: POST /jobs/delete?id=... Deleting an already-deleted id succeeds.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Store.DeleteJob(id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_job", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted", "job_id": id})
}
