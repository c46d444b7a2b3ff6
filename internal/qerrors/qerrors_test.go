package qerrors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{InvalidBody, http.StatusBadRequest},
		{UserNotFoundError, http.StatusNotFound},
		{DuplicateEmailError, http.StatusConflict},
		{MissingTokenError, http.StatusUnauthorized},
		{ChatClosedError, http.StatusForbidden},
		{errors.Wrap(SessionNotFoundError, "loading session"), http.StatusNotFound},
		{errors.New("firestore unavailable"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := StatusCode(c.err); got != c.want {
			t.Errorf("Expected %d for %v, got %d", c.want, c.err, got)
		}
	}
}

func TestMessageHidesInternalErrors(t *testing.T) {
	if got := Message(errors.New("rpc error: code = Unavailable")); got != "erro interno do servidor" {
		t.Errorf("Expected the generic message, got %q", got)
	}

	wrapped := errors.Wrap(InvalidRatingError, "rating session s1")
	if got := Message(wrapped); got != InvalidRatingError.Error() {
		t.Errorf("Expected %q, got %q", InvalidRatingError.Error(), got)
	}
}
