package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/logging"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/service"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/summarizer"
)

//go:embed web/index.html web/script.js
var webFS embed.FS

const (
	maxBodyBytes     = 64 << 10
	commonTermsLimit = 10
)

// Service is what the handlers need from the recipe service. *service.Finder
// satisfies it.
type Service interface {
	domain.RecipeService
	LoadError() error
	Engine() *service.Engine
}

// Handler serves every HTTP route.
type Handler struct {
	svc      Service
	chunker  domain.Chunker
	terms    *summarizer.FrequencySummarizer
	page     *template.Template
	script   []byte
	validate *validator.Validate
	started  time.Time
}

// NewHandler parses the embedded page template.
func NewHandler(svc Service, chunker domain.Chunker) (*Handler, error) {
	page, err := template.ParseFS(webFS, "web/index.html")
	if err != nil {
		return nil, err
	}
	script, err := webFS.ReadFile("web/script.js")
	if err != nil {
		return nil, err
	}
	return &Handler{
		svc:      svc,
		chunker:  chunker,
		terms:    summarizer.NewFrequencySummarizer(),
		page:     page,
		script:   script,
		validate: validator.New(),
		started:  time.Now(),
	}, nil
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Ingredients string `json:"ingredients" validate:"max=4096"`
}

type resultView struct {
	Name        string
	Ingredients string
	Phrases     []string
	Similarity  float64
}

type pageData struct {
	Available bool
	Searched  bool
	Query     string
	Results   []resultView
}

// Index renders the empty search form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{Available: h.svc.Available()})
}

// IndexSubmit handles the form post and renders ranked recipes under the form.
func (h *Handler) IndexSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	query := r.PostFormValue("ingredients")
	res, err := h.svc.Search(r.Context(), query)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("search failed")
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}
	data := pageData{Available: h.svc.Available(), Searched: true, Query: query}
	if res.Found() {
		for i, v := range res.Views() {
			data.Results = append(data.Results, resultView{
				Name:        v.RecipeName,
				Ingredients: v.Ingredients,
				Phrases:     h.chunker.Chunk(res[i].Recipe.IngredientsText),
				Similarity:  v.Similarity,
			})
		}
	}
	h.render(w, r, data)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data pageData) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("template execution failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Search answers POST /search with a JSON array of
// {recipe_name, ingredients, similarity}. Nothing found, including a missing
// dataset, is an empty array.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_JSON", "request body must be {\"ingredients\": \"...\"}", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "ingredients must be at most 4096 characters", nil)
		return
	}
	res, err := h.svc.Search(r.Context(), req.Ingredients)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "SEARCH_FAILED", "search failed", err)
		return
	}
	views := []domain.MatchView{}
	if res.Found() {
		views = res.Views()
	}
	respondJSON(w, http.StatusOK, views)
}

// Script serves the page script.
func (h *Handler) Script(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	_, _ = w.Write(h.script)
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status        string  `json:"status"`
	DatasetLoaded bool    `json:"dataset_loaded"`
	Error         string  `json:"error,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Health reports "ok", or "degraded" when the dataset could not be loaded.
// Both are 200: the process is live either way.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{
		Status:        "ok",
		DatasetLoaded: h.svc.Available(),
		UptimeSeconds: time.Since(h.started).Seconds(),
	}
	if !resp.DatasetLoaded {
		resp.Status = "degraded"
		if err := h.svc.LoadError(); err != nil {
			resp.Error = err.Error()
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// StatsResponse is the body of GET /api/v1/stats.
type StatsResponse struct {
	service.Stats
	TopK              int                    `json:"top_k"`
	CommonIngredients []summarizer.TermCount `json:"common_ingredients"`
}

var errNoIndex = errors.New("no dataset loaded")

// Stats describes the loaded index and its most common ingredients.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	engine := h.svc.Engine()
	if engine == nil {
		respondError(w, r, http.StatusServiceUnavailable, "DATASET_UNAVAILABLE", "no dataset loaded", errNoIndex)
		return
	}
	respondJSON(w, http.StatusOK, StatsResponse{
		Stats:             engine.Stats(),
		TopK:              engine.TopK(),
		CommonIngredients: h.terms.TopTerms(engine.Recipes(), commonTermsLimit),
	})
}
