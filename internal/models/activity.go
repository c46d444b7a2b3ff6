package models

import "time"

const (
	FirestoreActivitiesCollection = "atividades"
)

// Activity is an append-only audit record of something a user did.
type Activity struct {
	ID          string    `json:"id" mapstructure:"id"`
	UserID      string    `json:"userId" mapstructure:"userId"`
	Description string    `json:"descricao" mapstructure:"descricao"`
	Action      string    `json:"acao" mapstructure:"acao"`
	CreatedAt   time.Time `json:"criadoEm" mapstructure:"criadoEm"`
}

// Action tags.
const (
	ActionLogin             = "login"
	ActionLogout            = "logout"
	ActionRegister          = "registo"
	ActionPasswordReset     = "redefinir_senha"
	ActionProfileUpdate     = "atualizar_perfil"
	ActionAccountDelete     = "eliminar_conta"
	ActionDeletionRequest   = "pedido_exclusao"
	ActionPromotionRequest  = "pedido_promocao"
	ActionPromotionApproved = "promocao_aprovada"
	ActionPromotionRejected = "promocao_rejeitada"
	ActionPromotion         = "promocao"
	ActionUserRemoved       = "remover_utilizador"
	ActionTermCreate        = "criar_termo"
	ActionTermUpdate        = "atualizar_termo"
	ActionTermDelete        = "eliminar_termo"
	ActionQuestionCreate    = "criar_pergunta"
	ActionQuizSubmit        = "responder_quiz"
	ActionNoteCreate        = "criar_nota"
	ActionNoteUpdate        = "atualizar_nota"
	ActionNoteDelete        = "eliminar_nota"
	ActionSessionSchedule   = "agendar_mentoria"
	ActionSessionAccept     = "aceitar_mentoria"
	ActionSessionReject     = "rejeitar_mentoria"
	ActionSessionCancel     = "cancelar_mentoria"
	ActionSessionRate       = "avaliar_mentoria"
	ActionFavoriteAdd       = "adicionar_favorito"
	ActionFavoriteRemove    = "remover_favorito"
	ActionSuggestionCreate  = "criar_sugestao"
	ActionSuggestionUpdate  = "atualizar_sugestao"
	ActionSettingsUpdate    = "atualizar_configuracoes"
	ActionNotify            = "notificar"
	ActionReportSeed        = "gerar_relatorios"
)
