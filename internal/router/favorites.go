package router

import (
	"net/http"

	"mentorapp/internal/activity"
	"mentorapp/internal/auth"
	"mentorapp/internal/models"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
)

func FavoritesRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx())

	router.Get("/", getFavoritesHandler)
	router.Get("/itens", listFavoriteItemsHandler)
	router.Post("/", addFavoriteHandler)
	router.Delete("/{type}/{itemID}", removeFavoriteHandler)

	return router
}

// GET: /
func getFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	favorites, err := repo.Repository.GetFavorites(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, favorites)
}

// GET: /itens
func listFavoriteItemsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	items, err := repo.Repository.ListFavoriteItems(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

// POST: /
func addFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.FavoriteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := repo.Repository.AddFavorite(r.Context(), id.UserID, req.Type, req.ItemID); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Adicionou "+string(req.Type)+" aos favoritos", models.ActionFavoriteAdd)

	writeMessage(w, r, http.StatusCreated, "adicionado aos favoritos")
}

// DELETE: /{type}/{itemID}
func removeFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	req := models.FavoriteRequest{
		Type:   models.FavoriteType(chi.URLParam(r, "type")),
		ItemID: chi.URLParam(r, "itemID"),
	}
	if err := models.Validate(&req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := repo.Repository.RemoveFavorite(r.Context(), id.UserID, req.Type, req.ItemID); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Removeu "+string(req.Type)+" dos favoritos", models.ActionFavoriteRemove)

	writeMessage(w, r, http.StatusOK, "removido dos favoritos")
}
