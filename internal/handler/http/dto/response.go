package dto

import (
	"time"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
)

// ErrorResponse is a response for errors.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Fields  []string `json:"fields,omitempty"`
}

// MessageResponse is a generic response for success messages.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LikeResponse is returned by recipe and comment like toggles.
type LikeResponse struct {
	Success   bool `json:"success"`
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

// CommentResponse is the DTO for a single comment.
type CommentResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Text      string `json:"text"`
	LikeCount int    `json:"likeCount"`
	CreatedAt string `json:"created_at"`
}

// CommentResult wraps a comment mutation response.
type CommentResult struct {
	Success bool            `json:"success"`
	Comment CommentResponse `json:"comment"`
}

// ToCommentResponse converts an entity.Comment to its DTO.
func ToCommentResponse(comment entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		Username:  comment.Username,
		AvatarURL: comment.AvatarURL,
		Text:      comment.Text,
		LikeCount: comment.LikeCount(),
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
	}
}
