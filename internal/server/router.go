package server

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/rkradolfer/jobadmin/internal/catalog"
	"github.com/rkradolfer/jobadmin/internal/handlers"
	"github.com/rkradolfer/jobadmin/internal/httpx"
	"github.com/rkradolfer/jobadmin/internal/services"
	"github.com/rkradolfer/jobadmin/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(jobDB, catalogDB *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	st := store.New(jobDB)
	cat := catalog.New(catalogDB)
	builder := services.NewBuilder(st)

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := jobDB.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	jh := handlers.NewJobHandler(st, builder, cat)
	mux.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			jh.List(w, r)
		case http.MethodPost:
			jh.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/jobs/details", jh.Details)
	mux.HandleFunc("/jobs/delete", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		jh.Delete(w, r)
	})

	ch := handlers.NewCatalogHandler(cat)
	mux.HandleFunc("/catalog", ch.Search)

	ih := handlers.NewInvoiceHandler(st)
	mux.HandleFunc("/invoices/pdf", ih.PDF)

	return withRecover(withLogging(mux))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
