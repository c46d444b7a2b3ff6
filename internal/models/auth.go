package models

import "time"

const (
	FirestoreUsersCollection = "usuarios"
)

type Role string

const (
	RoleUser   Role = "USER"
	RoleMentor Role = "MENTOR"
	RoleAdmin  Role = "ADMIN"
)

// rank orders roles by privilege. Promotions may only move a user up this list.
func (r Role) rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleMentor:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// Outranks reports whether r carries strictly more privilege than other.
func (r Role) Outranks(other Role) bool {
	return r.rank() > other.rank()
}

// User represents a registered user.
type User struct {
	ID           string    `json:"id" mapstructure:"id"`
	Name         string    `json:"nome" mapstructure:"nome"`
	Email        string    `json:"email" mapstructure:"email"`
	PasswordHash string    `json:"-" mapstructure:"senhaHash"`
	Role         Role      `json:"role" mapstructure:"role"`
	Online       bool      `json:"online" mapstructure:"online"`
	LastLogin    time.Time `json:"ultimoLogin" mapstructure:"ultimoLogin"`
	CreatedAt    time.Time `json:"criadoEm" mapstructure:"criadoEm"`

	Phone    string `json:"telefone,omitempty" mapstructure:"telefone"`
	Bio      string `json:"bio,omitempty" mapstructure:"bio"`
	PhotoURL string `json:"fotoUrl,omitempty" mapstructure:"fotoUrl"`
}

// PublicUser is the subset of a User that other users (e.g. someone picking a mentor) may see.
type PublicUser struct {
	ID       string `json:"id"`
	Name     string `json:"nome"`
	Role     Role   `json:"role"`
	Online   bool   `json:"online"`
	Bio      string `json:"bio,omitempty"`
	PhotoURL string `json:"fotoUrl,omitempty"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Role:     u.Role,
		Online:   u.Online,
		Bio:      u.Bio,
		PhotoURL: u.PhotoURL,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// RegisterRequest is the parameter struct for both user and admin registration.
type RegisterRequest struct {
	Name     string `json:"nome" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"novaSenha" validate:"required,min=6"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateProfileRequest replaces only the fields that are present.
type UpdateProfileRequest struct {
	Name     *string `json:"nome" validate:"omitempty,min=1"`
	Phone    *string `json:"telefone"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	PhotoURL *string `json:"fotoUrl" validate:"omitempty,url"`
}
