package server

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rcliao/paper-catalog/internal/catalog"
	"github.com/rcliao/paper-catalog/internal/model"
	"github.com/rcliao/paper-catalog/internal/render"
	"github.com/rcliao/paper-catalog/internal/tree"
)

// LoadErrorMessage is returned while no papers document is available.
const LoadErrorMessage = "Error loading papers data. Make sure papers_data.json is in the same directory."

type API struct {
	holder      *catalog.Holder
	builder     *tree.Builder
	defaultSort model.SortMode
}

func NewAPI(h *catalog.Holder, b *tree.Builder, sort model.SortMode) *API {
	if b == nil {
		b = tree.NewBuilder(nil)
	}
	if sort == "" {
		sort = model.SortByYear
	}
	return &API{holder: h, builder: b, defaultSort: sort}
}

func registerRoutes(r *gin.Engine, api *API, staticDir string) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", api.handleHealth)
		apiGroup.GET("/filters", api.handleFilters)
		apiGroup.GET("/past-papers", api.handlePastPapers)
		apiGroup.GET("/specimen-papers", api.handleSpecimenPapers)
	}

	r.GET("/papers_data.json", api.handleDocument)

	if staticDir != "" {
		r.Static("/past_papers", filepath.Join(staticDir, "past_papers"))
		r.Static("/specimen_papers", filepath.Join(staticDir, "specimen_papers"))
	}
}

func (a *API) handleHealth(c *gin.Context) {
	_, err := a.holder.Current()
	body := gin.H{"ok": true, "loaded": err == nil, "source": a.holder.Source().String()}
	if err == nil {
		body["loaded_at"] = a.holder.LoadedAt().UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, body)
}

func (a *API) handleFilters(c *gin.Context) {
	doc, ok := a.document(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, catalog.Options(doc))
}

func (a *API) handlePastPapers(c *gin.Context) {
	mode := a.defaultSort
	if s := c.Query("sort"); s != "" {
		m, err := model.ParseSortMode(s)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		mode = m
	}

	filters := model.FilterState{
		Year:        c.Query("year"),
		Subject:     c.Query("subject"),
		Level:       c.Query("level"),
		Timezone:    c.Query("timezone"),
		PaperNumber: c.Query("paper"),
		Type:        c.Query("type"),
		Search:      c.Query("q"),
	}
	if err := filters.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	doc, ok := a.document(c)
	if !ok {
		return
	}
	t := a.builder.BuildPastPapers(doc.PastPapers, filters, mode)
	c.JSON(http.StatusOK, render.PastPapersResult(t))
}

func (a *API) handleSpecimenPapers(c *gin.Context) {
	filters := model.SpecimenFilter{
		Group:  c.Query("group"),
		Search: c.Query("q"),
	}

	doc, ok := a.document(c)
	if !ok {
		return
	}
	t := a.builder.BuildSpecimen(doc.SpecimenPapers, filters)
	c.JSON(http.StatusOK, render.SpecimenResult(t))
}

func (a *API) handleDocument(c *gin.Context) {
	doc, ok := a.document(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, doc)
}

// document returns the current document or answers 503.
func (a *API) document(c *gin.Context) (*model.Document, bool) {
	doc, err := a.holder.Current()
	if err != nil {
		respondMessage(c, http.StatusServiceUnavailable, LoadErrorMessage)
		return nil, false
	}
	return doc, true
}

func respondError(c *gin.Context, status int, err error) {
	respondMessage(c, status, err.Error())
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
