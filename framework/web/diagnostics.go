// Package web serves the container diagnostics endpoint: a small read-only
// JSON surface over the container's introspection API, intended for debug
// builds and admin tooling.
package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/km-arc/go-spring/framework/container"
	"github.com/km-arc/go-spring/framework/logging"
)

// componentView is the wire shape of one component's metadata.
type componentView struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Lifecycle    string   `json:"lifecycle"`
	RegisteredAt string   `json:"registered_at"`
	Description  string   `json:"description,omitempty"`
	Dependencies []string `json:"dependencies"`
}

// NewRouter builds the diagnostics router. Everything it exposes goes
// through the container's read-only facade; no handler mutates state.
func NewRouter(c *container.Container, log *logging.Logger) http.Handler {
	h := &handler{c: c, log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/debug/container", func(r chi.Router) {
		r.Get("/components", h.listComponents)
		r.Get("/components/{name}", h.showComponent)
		r.Get("/stats", h.stats)
		r.Get("/order", h.order)
	})
	return r
}

type handler struct {
	c   *container.Container
	log *logging.Logger
}

func (h *handler) listComponents(w http.ResponseWriter, r *http.Request) {
	metas := h.c.List()
	views := make([]componentView, 0, len(metas))
	for _, m := range metas {
		views = append(views, h.view(m))
	}
	writeJSON(w, http.StatusOK, envelope{"data": views})
}

func (h *handler) showComponent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	for _, m := range h.c.List() {
		if m.Name == name {
			writeJSON(w, http.StatusOK, envelope{"data": h.view(m)})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, envelope{
		"message": container.ErrComponentNotFound.Error() + ": " + name,
	})
}

func (h *handler) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"data": h.c.Stats()})
}

func (h *handler) order(w http.ResponseWriter, r *http.Request) {
	order, err := h.c.InitializationOrder()
	if err != nil {
		h.log.Warn("initialization order unavailable", zap.Error(err))
		writeJSON(w, http.StatusConflict, envelope{"message": err.Error()})
		return
	}
	names := make([]string, len(order))
	for i, id := range order {
		names[i] = id.ShortName()
	}
	writeJSON(w, http.StatusOK, envelope{"data": names})
}

func (h *handler) view(m container.Metadata) componentView {
	deps := h.c.Registry().Dependencies(m.Type)
	depNames := make([]string, len(deps))
	for i, d := range deps {
		depNames[i] = d.ShortName()
	}
	return componentView{
		Name:         m.Name,
		Type:         m.Type.String(),
		Lifecycle:    m.Lifecycle.String(),
		RegisteredAt: m.RegisteredAt.Format(time.RFC3339),
		Description:  m.Description,
		Dependencies: depNames,
	}
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
