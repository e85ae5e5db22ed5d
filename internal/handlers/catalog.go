package handlers

import (
	"net/http"
	"strings"

	"github.com/rkradolfer/jobadmin/internal/catalog"
	"github.com/rkradolfer/jobadmin/internal/httpx"
)

// CatalogHandler serves article-number lookups against the external parts
// catalog.
type CatalogHandler struct {
	Catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{Catalog: cat}
}

// Search: GET /catalog?article=... – returns the candidate sub-items for an
// exact article number so the caller can pick one.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	article := strings.TrimSpace(r.URL.Query().Get("article"))
	if article == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_article", nil)
		return
	}
	entries, err := h.Catalog.Search(article)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "catalog_unavailable", nil)
		return
	}
	views := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		views = append(views, map[string]string{
			"article_no":     e.ArticleNo,
			"sub_item_no":    e.SubItemNo,
			"sub_item_label": e.SubItemLabel,
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": views})
}
