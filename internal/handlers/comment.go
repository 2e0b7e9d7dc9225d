package handlers

import (
	"marketplace/internal/models"
	"marketplace/internal/services/comment"
	"marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const defaultCommentPageSize = 20

type CommentHandler struct {
	commentService comment.Service
}

func NewCommentHandler(commentService comment.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List serves GET /restaurants/:id/comments/ with page/limit pagination.
func (h *CommentHandler) List(c *fiber.Ctx) error {
	restaurantID, err := idParam(c, "id")
	if err != nil {
		return utils.Error(c, err)
	}
	p := utils.GetPagination(c, 1, defaultCommentPageSize)

	comments, total, err := h.commentService.List(c.UserContext(), restaurantID, p.Offset, p.Limit)
	if err != nil {
		return utils.Error(c, err)
	}
	p.SetTotal(total)

	data := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		data = append(data, comments[i].Response())
	}
	return utils.Success(c, utils.NewPaginatedResponse(data, p))
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	restaurantID, err := idParam(c, "id")
	if err != nil {
		return utils.Error(c, err)
	}
	var input models.CommentInput
	if err := parseBody(c, &input); err != nil {
		return utils.Error(c, err)
	}

	created, err := h.commentService.Create(c.UserContext(), id, restaurantID, &input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, created.Response())
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	commentID, err := idParam(c, "id")
	if err != nil {
		return utils.Error(c, err)
	}

	if err := h.commentService.Delete(c.UserContext(), id, commentID); err != nil {
		return utils.Error(c, err)
	}
	return utils.NoContent(c)
}
