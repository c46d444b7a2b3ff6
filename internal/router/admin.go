package router

import (
	"fmt"
	"net/http"
	"time"

	"mentorapp/internal/activity"
	"mentorapp/internal/auth"
	"mentorapp/internal/models"
	"mentorapp/internal/notify"
	"mentorapp/internal/qerrors"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

func AdminRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx())

	// Any user may ask to be promoted.
	router.Post("/promocoes", requestPromotionHandler)

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin())

		r.Get("/promocoes", listPromotionsHandler)
		r.Post("/promocoes/{requestID}/aprovar", approvePromotionHandler)
		r.Post("/promocoes/{requestID}/rejeitar", rejectPromotionHandler)
		r.Post("/promover-mentor/{userID}", promoteHandler(models.RoleMentor))
		r.Post("/promover-admin/{userID}", promoteHandler(models.RoleAdmin))

		r.Get("/usuarios", listUsersHandler)
		r.Delete("/usuarios/{userID}", removeUserHandler)
		r.Get("/pedidos-exclusao", listDeletionRequestsHandler)
	})

	return router
}

// POST: /promocoes
func requestPromotionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.CreatePromotionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if !req.Role.Outranks(id.Role) {
		writeError(w, r, qerrors.InvalidPromotionRoleError)
		return
	}

	pending, err := repo.Repository.HasPendingPromotionRequest(r.Context(), id.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if pending {
		writeError(w, r, qerrors.PendingPromotionExists)
		return
	}

	promotion := &models.PromotionRequest{
		UserID:    id.UserID,
		Email:     id.Email,
		Role:      req.Role,
		Reason:    req.Reason,
		Status:    models.RequestPending,
		CreatedAt: time.Now(),
	}
	if err := repo.Repository.CreatePromotionRequest(r.Context(), promotion); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Pediu promoção a "+string(req.Role), models.ActionPromotionRequest)

	writeJSON(w, r, http.StatusCreated, promotion)
}

// GET: /promocoes
func listPromotionsHandler(w http.ResponseWriter, r *http.Request) {
	requests, err := repo.Repository.ListPromotionRequests(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, requests)
}

// POST: /promocoes/{requestID}/aprovar
func approvePromotionHandler(w http.ResponseWriter, r *http.Request) {
	resolvePromotion(w, r, models.RequestApproved)
}

// POST: /promocoes/{requestID}/rejeitar
func rejectPromotionHandler(w http.ResponseWriter, r *http.Request) {
	resolvePromotion(w, r, models.RequestRejected)
}

func resolvePromotion(w http.ResponseWriter, r *http.Request, status models.RequestStatus) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.ResolvePromotionRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}

	promotion, err := repo.Repository.GetPromotionRequest(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if promotion.Status != models.RequestPending {
		writeError(w, r, qerrors.PromotionNotPendingError)
		return
	}

	promotion.Status = status
	promotion.ResolvedBy = id.UserID
	promotion.ResolvedAt = time.Now()
	promotion.Observation = req.Observation
	if err := repo.Repository.ResolvePromotionRequest(r.Context(), promotion); err != nil {
		writeError(w, r, err)
		return
	}

	title := "Pedido de promoção rejeitado"
	message := fmt.Sprintf("O seu pedido para %s foi rejeitado.", promotion.Role)
	action := models.ActionPromotionRejected
	if status == models.RequestApproved {
		if err := promoteIfHigher(r, promotion.UserID, promotion.Role); err != nil {
			writeError(w, r, err)
			return
		}
		title = "Pedido de promoção aprovado"
		message = fmt.Sprintf("O seu pedido para %s foi aprovado.", promotion.Role)
		action = models.ActionPromotionApproved
	}
	activity.Record(id.UserID, fmt.Sprintf("Tratou o pedido de promoção de %s", promotion.Email), action)
	notify.Notify([]string{promotion.UserID}, models.NotificationPromotion, title, message)

	writeJSON(w, r, http.StatusOK, promotion)
}

// POST: /promover-mentor/{userID}, /promover-admin/{userID}
func promoteHandler(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(w, r)
		if !ok {
			return
		}

		userID := chi.URLParam(r, "userID")
		if err := promoteIfHigher(r, userID, role); err != nil {
			writeError(w, r, err)
			return
		}
		activity.Record(id.UserID, fmt.Sprintf("Promoveu %s a %s", userID, role), models.ActionPromotion)
		notify.Notify([]string{userID}, models.NotificationPromotion, "Nova função",
			fmt.Sprintf("A sua conta foi promovida a %s.", role))

		writeMessage(w, r, http.StatusOK, fmt.Sprintf("utilizador promovido a %s", role))
	}
}

// promoteIfHigher sets the user's role to role unless they already hold it or a higher one.
func promoteIfHigher(r *http.Request, userID string, role models.Role) error {
	user, err := repo.Repository.GetUserByID(r.Context(), userID)
	if err != nil {
		return err
	}
	if !role.Outranks(user.Role) {
		return nil
	}
	return repo.Repository.SetRole(r.Context(), userID, role)
}

// GET: /usuarios
func listUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := repo.Repository.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, users)
}

// DELETE: /usuarios/{userID}
func removeUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	userID := chi.URLParam(r, "userID")
	if userID == id.UserID {
		writeError(w, r, qerrors.AdminSelfDeleteError)
		return
	}

	if err := repo.Repository.DeleteUser(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Removeu o utilizador "+userID, models.ActionUserRemoved)

	writeMessage(w, r, http.StatusOK, "utilizador removido")
}

// GET: /pedidos-exclusao
//
// Requests whose user no longer exists are dropped. The user id is never exposed.
func listDeletionRequestsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		requests []*models.DeletionRequest
		users    []*models.User
	)

	eg, ctx := errgroup.WithContext(r.Context())
	eg.Go(func() (err error) {
		requests, err = repo.Repository.ListDeletionRequests(ctx)
		return err
	})
	eg.Go(func() (err error) {
		users, err = repo.Repository.ListUsers(ctx)
		return err
	})
	if err := eg.Wait(); err != nil {
		writeError(w, r, err)
		return
	}

	exists := make(map[string]bool, len(users))
	for _, u := range users {
		exists[u.ID] = true
	}

	views := make([]*models.DeletionRequestView, 0, len(requests))
	for _, d := range requests {
		if !exists[d.UserID] {
			glog.V(1).Infof("skipping deletion request %s of a removed user", d.ID)
			continue
		}
		views = append(views, d.View())
	}
	writeJSON(w, r, http.StatusOK, views)
}
