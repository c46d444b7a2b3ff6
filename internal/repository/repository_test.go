package repository

import (
	"testing"

	"mentorapp/internal/qerrors"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestTranslate(t *testing.T) {
	notFound := status.Error(codes.NotFound, "no document")
	if err := translate(notFound, qerrors.NoteNotFoundError, "failed to get note %s", "n1"); err != qerrors.NoteNotFoundError {
		t.Errorf("Expected NoteNotFoundError, got %v", err)
	}

	unavailable := status.Error(codes.Unavailable, "backend down")
	err := translate(unavailable, qerrors.NoteNotFoundError, "failed to get note %s", "n1")
	if errors.Is(err, qerrors.NotFound) {
		t.Errorf("Expected other errors not to be reported as not found, got %v", err)
	}
	if errors.Cause(err) != unavailable {
		t.Errorf("Expected the original error to be wrapped, got %v", err)
	}
	if qerrors.StatusCode(err) != 500 {
		t.Errorf("Expected a 500, got %d", qerrors.StatusCode(err))
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(status.Error(codes.NotFound, "missing")) {
		t.Errorf("Expected NotFound to be detected")
	}
	if isNotFound(errors.New("plain")) {
		t.Errorf("Expected a plain error not to be NotFound")
	}
}
