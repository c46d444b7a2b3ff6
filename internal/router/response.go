package router

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mentorapp/internal/auth"
	"mentorapp/internal/middleware"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"

	"github.com/go-chi/render"
	"github.com/golang/glog"
)

// writeError renders err as {"message": ...} with the status of its kind. Unclassified errors are
// logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := qerrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		glog.Errorf("%s %s failed: %v trace=%s", r.Method, r.URL.Path, err, middleware.TraceID(r.Context()))
	}

	render.Status(r, status)
	render.JSON(w, r, map[string]string{"message": qerrors.Message(err)})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, map[string]string{"message": message})
}

// decodeBody decodes the JSON body into dst and checks its validate tags.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return qerrors.InvalidBody
	}
	return models.Validate(dst)
}

// identity returns the caller of a route behind auth.AuthCtx.
func identity(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	id, err := auth.GetIdentity(r)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return id, true
}

// queryInt reads a positive integer query parameter, returning fallback when absent or invalid.
func queryInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
