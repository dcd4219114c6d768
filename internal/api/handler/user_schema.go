package handler

import (
	"time"

	"github.com/banki/finanzas-api/internal/core/domain"
)

// userResponse is the public view of a user. The password hash never
// appears in any response.
type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// userRefResponse is the compact identity embedded in product responses.
type userRefResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty"`
}

// updateUserRequest is a partial update: absent fields stay untouched.
type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role"`
}

type userEnvelope struct {
	Success bool         `json:"success"`
	Data    userResponse `json:"data"`
}

type listUsersResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Data    []userResponse `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserRefResponse(r domain.UserRef) userRefResponse {
	return userRefResponse{ID: r.ID, Name: r.Name, Email: r.Email, Role: string(r.Role)}
}
