package controller

import (
	"errors"
	"qna_community_backend/internal/service"
	"qna_community_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	CommentService *service.CommentService
}

func NewCommentController(commentService *service.CommentService) *CommentController {
	return &CommentController{CommentService: commentService}
}

// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param articleId path int true "文章ID"
// @Param comment body service.CommentRequest true "评论内容"
// @Success 201 {object} util.Response
// @Router /articles/{articleId}/comments [post]
func (c *CommentController) CreateComment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	articleID, err := util.ParseUintParam(ctx.Param("articleId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid article ID")
		return
	}

	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommentService.CreateComment(articleID, user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound), errors.Is(err, util.ErrArticleNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrNotEditable):
			util.UnprocessableEntity(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, comment)
}

// @Summary 评论列表
// @Tags 评论
// @Produce json
// @Param articleId path int true "文章ID"
// @Success 200 {object} util.Response
// @Router /articles/{articleId}/comments [get]
func (c *CommentController) GetComments(ctx *gin.Context) {
	articleID, err := util.ParseUintParam(ctx.Param("articleId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid article ID")
		return
	}

	var requesterID uint
	if user := util.GetUserFromContext(ctx); user != nil {
		requesterID = user.UserID
	}

	comments, err := c.CommentService.GetComments(articleID, requesterID)
	if err != nil {
		if errors.Is(err, util.ErrArticleNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, comments)
}

// @Summary 删除评论
// @Tags 评论
// @Produce json
// @Security ApiKeyAuth
// @Param commentId path int true "评论ID"
// @Success 200 {object} util.Response
// @Router /comments/{commentId} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	commentID, err := util.ParseUintParam(ctx.Param("commentId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid comment ID")
		return
	}

	if err := c.CommentService.DeleteComment(commentID, user.UserID, user.Role); err != nil {
		switch {
		case errors.Is(err, util.ErrCommentNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Comment deleted"})
}
