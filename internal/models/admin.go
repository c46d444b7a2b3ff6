package models

import "time"

const (
	FirestorePromotionRequestsCollection = "pedidos_promocao"
	FirestoreDeletionRequestsCollection  = "pedidos_exclusao"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pendente"
	RequestApproved RequestStatus = "aprovado"
	RequestRejected RequestStatus = "rejeitado"
)

// PromotionRequest is a user's ask to be elevated to mentor or admin.
type PromotionRequest struct {
	ID          string        `json:"id" mapstructure:"id"`
	UserID      string        `json:"userId" mapstructure:"userId"`
	Email       string        `json:"email" mapstructure:"email"`
	Role        Role          `json:"cargo" mapstructure:"cargo"`
	Reason      string        `json:"motivo,omitempty" mapstructure:"motivo"`
	Status      RequestStatus `json:"status" mapstructure:"status"`
	CreatedAt   time.Time     `json:"criadoEm" mapstructure:"criadoEm"`
	ResolvedBy  string        `json:"resolvidoPor,omitempty" mapstructure:"resolvidoPor"`
	ResolvedAt  time.Time     `json:"resolvidoEm" mapstructure:"resolvidoEm"`
	Observation string        `json:"observacao,omitempty" mapstructure:"observacao"`
}

type CreatePromotionRequest struct {
	Role   Role   `json:"cargo" validate:"required,oneof=MENTOR ADMIN"`
	Reason string `json:"motivo"`
}

type ResolvePromotionRequest struct {
	Observation string `json:"observacao"`
}

type DeletionRequest struct {
	ID        string        `json:"id" mapstructure:"id"`
	UserID    string        `json:"userId" mapstructure:"userId"`
	Email     string        `json:"email" mapstructure:"email"`
	Reason    string        `json:"motivo,omitempty" mapstructure:"motivo"`
	Status    RequestStatus `json:"status" mapstructure:"status"`
	CreatedAt time.Time     `json:"criadoEm" mapstructure:"criadoEm"`
}

// DeletionRequestView is a DeletionRequest as shown to admins, without the user id.
type DeletionRequestView struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	Reason    string        `json:"motivo,omitempty"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"criadoEm"`
}

func (d *DeletionRequest) View() *DeletionRequestView {
	return &DeletionRequestView{
		ID:        d.ID,
		Email:     d.Email,
		Reason:    d.Reason,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
	}
}

type CreateDeletionRequest struct {
	Reason string `json:"motivo" validate:"max=1000"`
}
