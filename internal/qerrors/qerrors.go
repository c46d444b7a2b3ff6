package qerrors

import (
	"errors"
	"net/http"
)

// Error kinds. Every error returned to a handler should unwrap to one of these;
// anything else is reported as an internal error.
var (
	BadRequest   = errors.New("bad request")
	NotFound     = errors.New("not found")
	Conflict     = errors.New("conflict")
	Unauthorized = errors.New("unauthorized")
	Forbidden    = errors.New("forbidden")
)

// Error is a client-facing error. Its message is safe to send back in a response body.
type Error struct {
	kind    error
	message string
}

func New(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.kind
}

var (
	// Request errors
	InvalidBody = New(BadRequest, "corpo do pedido inválido")

	// Auth errors
	MissingTokenError       = New(Unauthorized, "autenticação necessária")
	InvalidCredentialsError = New(Unauthorized, "credenciais inválidas")
	PermissionDeniedError   = New(Forbidden, "sem permissão para este recurso")

	// User errors
	UserNotFoundError         = New(NotFound, "utilizador não encontrado")
	DuplicateEmailError       = New(Conflict, "já existe um utilizador com este email")
	AdminSelfDeleteError      = New(Forbidden, "administradores não podem eliminar a própria conta")
	SuperAdminProtectedError  = New(Forbidden, "esta conta não pode ser eliminada")
	PendingDeletionExists     = New(Conflict, "já existe um pedido de exclusão pendente")
	PendingPromotionExists    = New(Conflict, "já existe um pedido de promoção pendente")
	PromotionNotFoundError    = New(NotFound, "pedido de promoção não encontrado")
	PromotionNotPendingError  = New(Conflict, "o pedido de promoção já foi tratado")
	InvalidPromotionRoleError = New(BadRequest, "cargo de promoção inválido")
	NotAMentorError           = New(BadRequest, "o utilizador não é mentor")

	// Content errors
	TermNotFoundError       = New(NotFound, "termo não encontrado")
	InvalidQuestionError    = New(BadRequest, "índice da resposta correta fora das opções")
	NoteNotFoundError       = New(NotFound, "nota não encontrada")
	SuggestionNotFoundError = New(NotFound, "sugestão não encontrada")
	NotificationNotFound    = New(NotFound, "notificação não encontrada")
	PushTokenNotFoundError  = New(NotFound, "token de notificação não registado")
	EmptySearchError        = New(BadRequest, "o parâmetro de pesquisa é obrigatório")

	// Mentorship errors
	SessionNotFoundError       = New(NotFound, "sessão de mentoria não encontrada")
	SessionInPastError         = New(BadRequest, "a sessão tem de ser agendada no futuro")
	InvalidScheduleError       = New(BadRequest, "data ou hora inválida")
	InvalidTransitionError     = New(Conflict, "a sessão não pode mudar para este estado")
	StaleSessionError          = New(Conflict, "a sessão foi alterada por outro pedido")
	InvalidRatingError         = New(BadRequest, "a nota tem de estar entre 1 e 5")
	ChatClosedError            = New(Forbidden, "o chat só está disponível com a sessão em curso")
	NotSessionParticipantError = New(Forbidden, "não participa nesta sessão")
	EmptyMessageError          = New(BadRequest, "a mensagem não pode estar vazia")
)

// StatusCode maps an error to the HTTP status that should be returned for it.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, BadRequest):
		return http.StatusBadRequest
	case errors.Is(err, NotFound):
		return http.StatusNotFound
	case errors.Is(err, Conflict):
		return http.StatusConflict
	case errors.Is(err, Unauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, Forbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err. Unclassified errors get a
// generic message so that store or provider details never leak.
func Message(err error) string {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.message
	}
	return "erro interno do servidor"
}
