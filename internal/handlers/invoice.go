package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rkradolfer/jobadmin/internal/httpx"
	"github.com/rkradolfer/jobadmin/internal/pdf"
	"github.com/rkradolfer/jobadmin/internal/store"
)

// InvoiceHandler renders selected jobs as one downloadable PDF.
type InvoiceHandler struct {
	Store *store.Store
}

func NewInvoiceHandler(st *store.Store) *InvoiceHandler {
	return &InvoiceHandler{Store: st}
}

// PDF: GET /invoices/pdf?ids=a,b,c – jobs are rendered in the order given.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("ids"))
	if raw == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_ids", nil)
		return
	}

	var docs []pdf.JobDocument
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		job, items, err := h.Store.GetJobDetails(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.JSONError(w, http.StatusNotFound, "job_not_found", map[string]string{"job_id": id})
				return
			}
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_job", nil)
			return
		}
		docs = append(docs, pdf.JobDocument{Job: job, Items: items})
	}
	if len(docs) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_ids", nil)
		return
	}

	data, err := pdf.Invoice(docs)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_render_invoice", nil)
		return
	}
	httpx.PDF(w, "invoices.pdf", data)
}
