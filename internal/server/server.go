package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mentorapp/internal/config"
	"mentorapp/internal/middleware"
	rtr "mentorapp/internal/router"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

const shutdownTimeout = 10 * time.Second

func Routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestLogger(), // Log API Request Calls
		chiMiddleware.StripSlashes,
	)

	router.Handle("/metrics", promhttp.Handler())

	// The mobile client calls the unversioned paths; /v1 serves the same API.
	router.Group(mountAPI)
	router.Route("/v1", mountAPI)

	return router
}

func mountAPI(r chi.Router) {
	groups := []struct {
		pattern string
		group   string
		routes  http.Handler
	}{
		{"/auth", "auth", rtr.AuthRoutes()},
		{"/dicionario", "dicionario", rtr.DictionaryRoutes()},
		{"/quiz", "quiz", rtr.QuizRoutes()},
		{"/notas", "notas", rtr.NotesRoutes()},
		{"/mentoria", "mentoria", rtr.MentorshipRoutes()},
		{"/chat", "chat", rtr.ChatRoutes()},
		{"/favoritos", "favoritos", rtr.FavoritesRoutes()},
		{"/perfil", "perfil", rtr.ProfileRoutes()},
		{"/configuracoes", "configuracoes", rtr.SettingsRoutes()},
		{"/sugestoes", "sugestoes", rtr.SuggestionsRoutes()},
		{"/historico", "historico", rtr.HistoryRoutes()},
		{"/tokens", "notificacoes", rtr.TokenRoutes()},
		{"/notificar", "notificacoes", rtr.NotifyRoutes()},
		{"/notificacoes", "notificacoes", rtr.NotificationRoutes()},
		{"/admin", "admin", rtr.AdminRoutes()},
		{"/relatorios", "relatorios", rtr.ReportRoutes()},
	}
	for _, g := range groups {
		r.With(middleware.RouteGroup(g.group)).Mount(g.pattern, g.routes)
	}

	health := rtr.HealthRoutes()
	r.With(middleware.RouteGroup("status")).Handle("/status", health)
	r.With(middleware.RouteGroup("status")).Handle("/sobre", health)
}

// Start serves the API until ctx is cancelled, then drains in-flight requests.
func Start(ctx context.Context) error {
	if config.Config == nil {
		return errors.New("missing or invalid configuration")
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   config.Config.AllowedOrigins,
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH"},
		ExposedHeaders:   []string{middleware.TraceHeader},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", config.Config.Port),
		Handler:           c.Handler(Routes()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		glog.Infof("server is listening on port %v", config.Config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return errors.Wrap(err, "http server error")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown error")
	}
	glog.Infof("server stopped")
	return nil
}
