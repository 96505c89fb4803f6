// Package schemas holds the request and response shapes of the HTTP API.
package schemas

import (
	"time"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/models"
)

type UserCreate struct {
	Email    string  `json:"email" binding:"required,email"`
	Username string  `json:"username" binding:"required,min=3,max=50"`
	FullName *string `json:"full_name"`
	Password string  `json:"password" binding:"required,min=8,max=100"`
}

type UserResponse struct {
	ID        uint       `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	FullName  *string    `json:"full_name"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=100"`
}

type UserPreferencesUpdate struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"full_name"`
}

type AccountDeletionRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

type ProfileResponse struct {
	UserResponse
	ContactsCount int64 `json:"contacts_count"`
	RecordsCount  int64 `json:"records_count"`
}

type ContactCreate struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
}

type ContactUpdate struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

type ContactResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	AvatarKey   *string    `json:"avatar_key"`
	UserID      uint       `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func NewContactResponse(c *models.Contact) ContactResponse {
	return ContactResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		AvatarKey:   c.AvatarKey,
		UserID:      c.UserID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Size     int               `json:"size"`
}

type RecordCreate struct {
	ContactID uint   `json:"contact_id" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

type RecordUpdate struct {
	Category *string `json:"category"`
	Content  *string `json:"content"`
}

type RecordResponse struct {
	ID        uint       `json:"id"`
	Category  string     `json:"category"`
	Content   string     `json:"content"`
	ContactID uint       `json:"contact_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func NewRecordResponse(r *models.Record) RecordResponse {
	return RecordResponse{
		ID:        r.ID,
		Category:  string(r.Category),
		Content:   r.Content,
		ContactID: r.ContactID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type RecordListResponse struct {
	Records []RecordResponse `json:"records"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Size    int              `json:"size"`
}

type FileUploadResponse struct {
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}
