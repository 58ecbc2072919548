package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/httpresp"
	"github.com/pro-master/backend/internal/middleware"
	reviewuc "github.com/pro-master/backend/internal/usecase/review"
)

type ReviewHandler struct {
	reviews *reviewuc.Reviews
	log     *zap.Logger
}

func NewReviewHandler(reviews *reviewuc.Reviews, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, log: log}
}

// --------- Requests ---------

type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text" binding:"omitempty,min=1"`
	Score *int    `json:"score"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// --------- Reviews ---------

func (h *ReviewHandler) List(c *gin.Context) {
	profileID, ok := paramID(c, "id")
	if !ok {
		return
	}

	reviews, err := h.reviews.List(c.Request.Context(), profileID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, reviews)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	profileID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	rv, err := h.reviews.Get(c.Request.Context(), profileID, reviewID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	profileID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	rv, err := h.reviews.Create(c.Request.Context(), reviewuc.CreateReviewInput{
		Actor:            middleware.CurrentPrincipal(c),
		ServiceProfileID: profileID,
		Text:             req.Text,
		Score:            req.Score,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	profileID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	rv, err := h.reviews.Update(c.Request.Context(), reviewuc.UpdateReviewInput{
		Actor:            middleware.CurrentPrincipal(c),
		Method:           c.Request.Method,
		ServiceProfileID: profileID,
		ReviewID:         reviewID,
		Text:             req.Text,
		Score:            req.Score,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	profileID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	err := h.reviews.Delete(c.Request.Context(), reviewuc.DeleteReviewInput{
		Actor:            middleware.CurrentPrincipal(c),
		ServiceProfileID: profileID,
		ReviewID:         reviewID,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --------- Comments ---------

func (h *ReviewHandler) ListComments(c *gin.Context) {
	profileID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	comments, err := h.reviews.ListComments(c.Request.Context(), profileID, reviewID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, comments)
}

func (h *ReviewHandler) GetComment(c *gin.Context) {
	ref, ok := commentPath(c)
	if !ok {
		return
	}

	cm, err := h.reviews.GetComment(c.Request.Context(), ref)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (h *ReviewHandler) CreateComment(c *gin.Context) {
	profileID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	cm, err := h.reviews.CreateComment(c.Request.Context(), reviewuc.CreateCommentInput{
		Actor:            middleware.CurrentPrincipal(c),
		ServiceProfileID: profileID,
		ReviewID:         reviewID,
		Text:             req.Text,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

func (h *ReviewHandler) UpdateComment(c *gin.Context) {
	ref, ok := commentPath(c)
	if !ok {
		return
	}

	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	cm, err := h.reviews.UpdateComment(c.Request.Context(), middleware.CurrentPrincipal(c), c.Request.Method, ref, req.Text)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (h *ReviewHandler) DeleteComment(c *gin.Context) {
	ref, ok := commentPath(c)
	if !ok {
		return
	}

	if err := h.reviews.DeleteComment(c.Request.Context(), middleware.CurrentPrincipal(c), ref); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func reviewPath(c *gin.Context) (profileID, reviewID uint, ok bool) {
	if profileID, ok = paramID(c, "id"); !ok {
		return
	}
	reviewID, ok = paramID(c, "review_id")
	return
}

func commentPath(c *gin.Context) (reviewuc.CommentRef, bool) {
	profileID, reviewID, ok := reviewPath(c)
	if !ok {
		return reviewuc.CommentRef{}, false
	}
	commentID, ok := paramID(c, "comment_id")
	if !ok {
		return reviewuc.CommentRef{}, false
	}
	return reviewuc.CommentRef{ServiceProfileID: profileID, ReviewID: reviewID, CommentID: commentID}, true
}
