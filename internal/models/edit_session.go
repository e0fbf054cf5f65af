package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EditSessionStatus string

const (
	SessionStatusCreated    EditSessionStatus = "created"
	SessionStatusGenerating EditSessionStatus = "generating"
	SessionStatusCompleted  EditSessionStatus = "completed"
)

// EditSession is one image-generation request: a prompt/model pair plus the
// source images attached to it and the images generated from it.
type EditSession struct {
	ID              uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          *uuid.UUID        `json:"user_id" gorm:"type:uuid;index"`
	User            *User             `json:"-" gorm:"foreignKey:UserID"`
	Prompt          string            `json:"prompt" gorm:"type:text;not null"`
	Model           string            `json:"model" gorm:"size:100;not null"`
	Status          EditSessionStatus `json:"status" gorm:"size:20;not null;default:'created'"`
	SourceImages    []SourceImage     `json:"source_images" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	GeneratedImages []GeneratedImage  `json:"generated_images" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (s *EditSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type SourceImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID uuid.UUID `json:"session_id" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *SourceImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// GeneratedImage.Position is the image's index within its session. Positions
// are assigned contiguously across repeated generate calls and never reused.
type GeneratedImage struct {
	ID        uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID uuid.UUID   `json:"session_id" gorm:"type:uuid;not null;index"`
	Session   EditSession `json:"-" gorm:"foreignKey:SessionID"`
	URL       string      `json:"url" gorm:"type:text;not null"`
	Position  int         `json:"index" gorm:"not null"`
	Shared    bool        `json:"shared" gorm:"not null;default:false"`
	CreatedAt time.Time   `json:"created_at"`
}

func (i *GeneratedImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type CreateSessionRequest struct {
	Prompt string `json:"prompt"`
	// The web client sends modelName; model is accepted as well.
	Model     string `json:"model"`
	ModelName string `json:"modelName"`
	UserID    string `json:"userId"`
}

type UpdateSessionRequest struct {
	Prompt *string `json:"prompt"`
	Model  *string `json:"model"`
}

type AddSourceImagesRequest struct {
	URLs []string `json:"urls"`
}

type GenerateRequest struct {
	NumImages int `json:"numImages"`
}

type SourceImageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type GeneratedImageResponse struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Shared bool   `json:"shared"`
	Index  int    `json:"index"`
}

type EditSessionResponse struct {
	ID              string                   `json:"id"`
	Prompt          string                   `json:"prompt"`
	Model           string                   `json:"model"`
	Status          EditSessionStatus        `json:"status"`
	UserID          string                   `json:"userId,omitempty"`
	CreatedAt       string                   `json:"createdAt"`
	UpdatedAt       string                   `json:"updatedAt"`
	SourceImages    []SourceImageResponse    `json:"sourceImages"`
	GeneratedImages []GeneratedImageResponse `json:"generatedImages"`
}

func NewSourceImageResponse(i *SourceImage) SourceImageResponse {
	return SourceImageResponse{ID: i.ID.String(), URL: i.URL}
}

func NewGeneratedImageResponse(i *GeneratedImage) GeneratedImageResponse {
	return GeneratedImageResponse{
		ID:     i.ID.String(),
		URL:    i.URL,
		Shared: i.Shared,
		Index:  i.Position,
	}
}

func NewEditSessionResponse(s *EditSession) EditSessionResponse {
	resp := EditSessionResponse{
		ID:              s.ID.String(),
		Prompt:          s.Prompt,
		Model:           s.Model,
		Status:          s.Status,
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
		SourceImages:    make([]SourceImageResponse, 0, len(s.SourceImages)),
		GeneratedImages: make([]GeneratedImageResponse, 0, len(s.GeneratedImages)),
	}
	if s.UserID != nil {
		resp.UserID = s.UserID.String()
	}
	for i := range s.SourceImages {
		resp.SourceImages = append(resp.SourceImages, NewSourceImageResponse(&s.SourceImages[i]))
	}
	for i := range s.GeneratedImages {
		resp.GeneratedImages = append(resp.GeneratedImages, NewGeneratedImageResponse(&s.GeneratedImages[i]))
	}
	return resp
}
