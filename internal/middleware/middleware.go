package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"mentorapp/internal/metrics"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

type contextKey string

const (
	traceIDKey contextKey = "traceID"
	groupKey   contextKey = "routeGroup"
)

// TraceHeader carries the request's trace id back to the client.
const TraceHeader = "X-Trace-Id"

// RequestLogger assigns each request a trace id, recovers panics into a JSON 500 and logs the
// method, path, status and latency once the request has been served.
func RequestLogger() func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			traceID := uuid.NewString()
			w.Header().Set(TraceHeader, traceID)

			ctx := context.WithValue(r.Context(), traceIDKey, traceID)
			group := &routeGroup{name: "root"}
			ctx = context.WithValue(ctx, groupKey, group)
			r = r.WithContext(ctx)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if re := recover(); re != nil {
					glog.Errorf("handler panicked: %v, trace: %s\n%s", re, traceID, debug.Stack())
					if ww.Status() == 0 {
						render.Status(r, http.StatusInternalServerError)
						render.JSON(ww, r, map[string]string{"message": "erro interno do servidor"})
					}
				}

				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				metrics.HTTPResponses.WithLabelValues(group.name, metrics.StatusClass(status)).Inc()
				glog.Infof("%s %s %d %dms trace=%s", r.Method, r.URL.Path, status, time.Since(start).Milliseconds(), traceID)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// RouteGroup labels the request with the feature it belongs to, for metrics.
func RouteGroup(name string) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if group, ok := r.Context().Value(groupKey).(*routeGroup); ok {
				group.name = name
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TraceID returns the trace id assigned by RequestLogger, or "" outside of a request.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

type routeGroup struct {
	name string
}
