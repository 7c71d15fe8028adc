package recipes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/recipebook-go/auth"
)

// Handler handles HTTP requests for recipes.
type Handler struct {
	service *Service
}

// NewHandler creates a new Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the recipe API routes with a chi.Router.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.listRecipes)
}

// listRecipes serves GET /recipes: the full catalog as a JSON array, no
// parameters, no authentication. Filtering happens client-side.
func (h *Handler) listRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.ListAll(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, recipes)
}
