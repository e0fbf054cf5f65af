package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PromptStatus string

const (
	PromptStatusPending  PromptStatus = "PENDING"
	PromptStatusApproved PromptStatus = "APPROVED"
	PromptStatusRejected PromptStatus = "REJECTED"
)

type Prompt struct {
	ID              uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID         uuid.UUID    `json:"owner_id" gorm:"type:uuid;not null;index"`
	Owner           User         `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Title           string       `json:"title" gorm:"size:255;not null"`
	Content         string       `json:"content" gorm:"type:text;not null"`
	PreviewImageURL string       `json:"preview_image_url"`
	IsPublic        bool         `json:"is_public" gorm:"not null;default:false"`
	Status          PromptStatus `json:"status" gorm:"size:20;not null;default:'PENDING'"`
	TimesUsed       int          `json:"times_used" gorm:"not null;default:0"`
	LikesCount      int          `json:"likes_count" gorm:"not null;default:0"`
	Reward          int          `json:"reward" gorm:"not null;default:0"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func (p *Prompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type CreatePromptRequest struct {
	OwnerID         string `json:"ownerId" validate:"required"`
	Title           string `json:"title" validate:"required"`
	Content         string `json:"content" validate:"required"`
	PreviewImageURL string `json:"previewImageUrl"`
	IsPublic        bool   `json:"isPublic"`
}

type UpdatePromptRequest struct {
	Title           *string `json:"title"`
	Content         *string `json:"content"`
	PreviewImageURL *string `json:"previewImageUrl"`
	IsPublic        *bool   `json:"isPublic"`
}

type PromptResponse struct {
	PromptID        string         `json:"promptId"`
	Title           string         `json:"title"`
	Content         string         `json:"content"`
	PreviewImageURL string         `json:"previewImageUrl,omitempty"`
	IsPublic        bool           `json:"isPublic"`
	Status          PromptStatus   `json:"status"`
	TimesUsed       int            `json:"timesUsed"`
	LikesCount      int            `json:"likesCount"`
	Reward          int            `json:"reward"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt,omitempty"`
	Author          *PromptAuthor  `json:"author,omitempty"`
}

type PromptAuthor struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// NewPromptResponse converts a Prompt row into its API shape. The owner block
// is included only when the row was loaded with its owner.
func NewPromptResponse(p *Prompt, withAuthor bool) PromptResponse {
	resp := PromptResponse{
		PromptID:        p.ID.String(),
		Title:           p.Title,
		Content:         p.Content,
		PreviewImageURL: p.PreviewImageURL,
		IsPublic:        p.IsPublic,
		Status:          p.Status,
		TimesUsed:       p.TimesUsed,
		LikesCount:      p.LikesCount,
		Reward:          p.Reward,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.Format(time.RFC3339),
	}
	if withAuthor {
		resp.Author = &PromptAuthor{
			UserID:   p.Owner.ID.String(),
			Username: p.Owner.Username,
		}
	}
	return resp
}

type UserPromptsResponse struct {
	UserID     string           `json:"userId"`
	Username   string           `json:"username"`
	Prompts    []PromptResponse `json:"prompts"`
	TotalCount int64            `json:"totalCount"`
}

type PublicPromptsResponse struct {
	Prompts []PromptResponse `json:"prompts"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}
