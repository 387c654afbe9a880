package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matst80/shophub-catalog/pkg/catalog"
	"github.com/matst80/shophub-catalog/pkg/insights"
	"github.com/matst80/shophub-catalog/pkg/store"
	"github.com/matst80/shophub-catalog/pkg/types"
)

var (
	noQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shophub_queries_total",
		Help: "The total number of processed catalog queries",
	})
	noFacetReads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shophub_facet_reads_total",
		Help: "The total number of facet summary reads",
	})
	noInsightRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shophub_insight_requests_total",
		Help: "The total number of insight requests",
	})
	noInsightFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shophub_insight_failures_total",
		Help: "The total number of failed insight requests",
	})
	noFeedReloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shophub_feed_reloads_total",
		Help: "The total number of product feed reloads",
	})
	noFeedFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shophub_feed_failures_total",
		Help: "The total number of failed product feed loads",
	})
)

type WebServer struct {
	Catalog  *catalog.Catalog
	Store    store.ProductStore
	Insights insights.Generator
	Cache    *Cache

	sessions *sessionStore
}

func NewWebServer(c *catalog.Catalog, productStore store.ProductStore, generator insights.Generator) *WebServer {
	return &WebServer{
		Catalog:  c,
		Store:    productStore,
		Insights: generator,
		sessions: newSessionStore(),
	}
}

func defaultHeaders(w http.ResponseWriter, r *http.Request, cacheTime string) {
	w.Header().Set("Cache-Control", "private, stale-while-revalidate="+cacheTime)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
}

func writeJson(w http.ResponseWriter, data any) {
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type annotatedProduct struct {
	types.Product
	PriceTrend catalog.PriceTrend `json:"priceTrend"`
}

type queryResponse struct {
	Items     []annotatedProduct `json:"items"`
	TotalHits int                `json:"totalHits"`
	Total     int                `json:"total"`
	Query     types.QueryState   `json:"query"`
}

// QueryProducts serves the filtered and sorted view for the session,
// with optional query-string overrides on top of the stored state.
func (ws *WebServer) QueryProducts(w http.ResponseWriter, r *http.Request) {
	noQueries.Inc()
	session := ws.session(w, r)
	session.mu.Lock()
	base := session.Query
	session.mu.Unlock()

	state, err := queryFromRequest(r, base)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	matching := ws.Catalog.Query(&state)
	items := make([]annotatedProduct, len(matching))
	for i := range matching {
		items[i] = annotatedProduct{
			Product:    matching[i],
			PriceTrend: catalog.AnnotateTrend(&matching[i]),
		}
	}

	defaultHeaders(w, r, "120")
	w.WriteHeader(http.StatusOK)
	writeJson(w, queryResponse{
		Items:     items,
		TotalHits: len(items),
		Total:     ws.Catalog.Len(),
		Query:     state,
	})
}

// GetFacets serves the derived facet summary, cached per collection
// generation when a cache is wired.
func (ws *WebServer) GetFacets(w http.ResponseWriter, r *http.Request) {
	noFacetReads.Inc()
	defaultHeaders(w, r, "120")

	var summary types.FacetSummary
	if ws.Cache != nil {
		key := fmt.Sprintf("facets:%d", ws.Catalog.Generation())
		if err := ws.Cache.Get(key, &summary); err != nil {
			summary = ws.Catalog.Facets()
			if err := ws.Cache.Set(key, summary, time.Minute*10); err != nil {
				log.Printf("Failed to cache facet summary: %v", err)
			}
		}
	} else {
		summary = ws.Catalog.Facets()
	}

	w.WriteHeader(http.StatusOK)
	writeJson(w, summary)
}

// UpdateFilters mutates individual query-state fields for the session.
func (ws *WebServer) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var update filterUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session := ws.session(w, r)
	session.mu.Lock()
	err := update.apply(&session.Query)
	state := session.Query
	session.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defaultHeaders(w, r, "0")
	w.WriteHeader(http.StatusOK)
	writeJson(w, state)
}

// ResetFilters restores the session's defaults, with price bounds from
// the current facet summary.
func (ws *WebServer) ResetFilters(w http.ResponseWriter, r *http.Request) {
	session := ws.session(w, r)
	bounds := ws.Catalog.Facets().Price
	session.mu.Lock()
	session.Query.Reset(bounds)
	state := session.Query
	session.mu.Unlock()

	defaultHeaders(w, r, "0")
	w.WriteHeader(http.StatusOK)
	writeJson(w, state)
}

// ApplyTrending applies a named preset to the session's query state.
func (ws *WebServer) ApplyTrending(w http.ResponseWriter, r *http.Request) {
	preset, err := types.ParsePreset(r.PathValue("preset"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session := ws.session(w, r)
	session.mu.Lock()
	catalog.ApplyPreset(&session.Query, preset)
	state := session.Query
	session.mu.Unlock()

	defaultHeaders(w, r, "0")
	w.WriteHeader(http.StatusOK)
	writeJson(w, state)
}

type compareResponse struct {
	Items  []types.Product `json:"items"`
	Active bool            `json:"active"`
}

func (ws *WebServer) GetComparison(w http.ResponseWriter, r *http.Request) {
	session := ws.session(w, r)
	session.mu.Lock()
	response := compareResponse{
		Items:  session.Compare.Items(),
		Active: session.Compare.Active(),
	}
	session.mu.Unlock()

	defaultHeaders(w, r, "0")
	w.WriteHeader(http.StatusOK)
	writeJson(w, response)
}

// ToggleComparison adds or removes a product from the session's
// comparison set.
func (ws *WebServer) ToggleComparison(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}
	product, ok := ws.Catalog.Get(uint(id))
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	session := ws.session(w, r)
	session.mu.Lock()
	session.Compare.Toggle(product)
	response := compareResponse{
		Items:  session.Compare.Items(),
		Active: session.Compare.Active(),
	}
	session.mu.Unlock()

	defaultHeaders(w, r, "0")
	w.WriteHeader(http.StatusOK)
	writeJson(w, response)
}

func (ws *WebServer) ClearComparison(w http.ResponseWriter, r *http.Request) {
	session := ws.session(w, r)
	session.mu.Lock()
	session.Compare.Clear()
	session.mu.Unlock()

	defaultHeaders(w, r, "0")
	w.WriteHeader(http.StatusOK)
	writeJson(w, compareResponse{Items: []types.Product{}, Active: false})
}

type insightResponse struct {
	Insights string `json:"insights"`
}

// GetInsights sends the session's current filtered view to the insight
// generator. A failure never touches the loaded collection.
func (ws *WebServer) GetInsights(w http.ResponseWriter, r *http.Request) {
	noInsightRequests.Inc()
	session := ws.session(w, r)
	session.mu.Lock()
	state := session.Query
	session.mu.Unlock()

	matching := ws.Catalog.Query(&state)
	text, err := ws.Insights.Generate(r.Context(), matching)
	if err != nil {
		noInsightFailures.Inc()
		if errors.Is(err, insights.ErrInFlight) {
			http.Error(w, "An insight request is already in progress", http.StatusTooManyRequests)
			return
		}
		log.Printf("Insight request failed: %v", err)
		http.Error(w, "Failed to generate insights", http.StatusBadGateway)
		return
	}

	defaultHeaders(w, r, "0")
	w.WriteHeader(http.StatusOK)
	writeJson(w, insightResponse{Insights: text})
}

// ReloadProducts re-fetches the feed. On failure the previous collection
// stays in place and the error is reported as retryable.
func (ws *WebServer) ReloadProducts(w http.ResponseWriter, r *http.Request) {
	noFeedReloads.Inc()
	if err := ws.Catalog.Load(r.Context(), ws.Store); err != nil {
		noFeedFailures.Inc()
		log.Printf("Product feed load failed: %v", err)
		http.Error(w, "Failed to load product feed", http.StatusBadGateway)
		return
	}
	defaultHeaders(w, r, "0")
	w.WriteHeader(http.StatusOK)
	writeJson(w, map[string]int{"total": ws.Catalog.Len()})
}

func (ws *WebServer) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /query", ws.QueryProducts)
	mux.HandleFunc("GET /facets", ws.GetFacets)
	mux.HandleFunc("PUT /filters", ws.UpdateFilters)
	mux.HandleFunc("POST /filters/reset", ws.ResetFilters)
	mux.HandleFunc("POST /trending/{preset}", ws.ApplyTrending)
	mux.HandleFunc("GET /compare", ws.GetComparison)
	mux.HandleFunc("POST /compare/{id}", ws.ToggleComparison)
	mux.HandleFunc("DELETE /compare", ws.ClearComparison)
	mux.HandleFunc("POST /insights", ws.GetInsights)
	mux.HandleFunc("POST /reload", ws.ReloadProducts)
	return mux
}
