package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gvanmetre/BiteBook/internal/handler/http/dto"
	"github.com/gvanmetre/BiteBook/internal/handler/http/middleware"
	"github.com/gvanmetre/BiteBook/internal/infrastructure/metrics"
	"github.com/gvanmetre/BiteBook/internal/usecase"
	usecasecontract "github.com/gvanmetre/BiteBook/internal/usecase/contract"
)

// EngagementHandler serves the like and comment JSON endpoints.
type EngagementHandler struct {
	engagementUC usecase.IEngagementUseCase
	logger       usecasecontract.IAppLogger
}

func NewEngagementHandler(engagementUC usecase.IEngagementUseCase, logger usecasecontract.IAppLogger) *EngagementHandler {
	return &EngagementHandler{
		engagementUC: engagementUC,
		logger:       logger,
	}
}

// LikeRecipe toggles the caller's like on a recipe.
func (h *EngagementHandler) LikeRecipe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	liked, likeCount, err := h.engagementUC.ToggleRecipeLike(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	metrics.RecordLikeToggled()
	SuccessHandler(c, http.StatusOK, dto.LikeResponse{Success: true, Liked: liked, LikeCount: likeCount})
}

// AddComment appends a comment to a recipe.
func (h *EngagementHandler) AddComment(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "comment text is required")
		return
	}
	comment, err := h.engagementUC.AddComment(c.Request.Context(), c.Param("id"), user, req.Text)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.CommentResult{Success: true, Comment: dto.ToCommentResponse(*comment)})
}

// EditComment replaces a comment's text, author or admin only.
func (h *EngagementHandler) EditComment(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "comment text is required")
		return
	}
	comment, err := h.engagementUC.EditComment(c.Request.Context(), c.Param("id"), c.Param("commentId"), user, req.Text)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.CommentResult{Success: true, Comment: dto.ToCommentResponse(*comment)})
}

// DeleteComment removes a comment, author or admin only.
func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.engagementUC.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("commentId"), user); err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.MessageResponse{Success: true, Message: "comment deleted"})
}

// LikeComment toggles the caller's like on one comment.
func (h *EngagementHandler) LikeComment(c *gin.Context) {
	user := middleware.CurrentUser(c)
	liked, likeCount, err := h.engagementUC.ToggleCommentLike(c.Request.Context(), c.Param("id"), c.Param("commentId"), user.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	metrics.RecordLikeToggled()
	SuccessHandler(c, http.StatusOK, dto.LikeResponse{Success: true, Liked: liked, LikeCount: likeCount})
}
