package controller

import (
	"errors"
	"qna_community_backend/internal/model"
	"qna_community_backend/internal/service"
	"qna_community_backend/internal/util"
	"qna_community_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	AnswerService *service.AnswerService
}

func NewAnswerController(answerService *service.AnswerService) *AnswerController {
	return &AnswerController{AnswerService: answerService}
}

// @Summary 回答问题
// @Description 在问答类文章下新增回答，可附带已上传的文件
// @Tags 回答
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param articleId path int true "文章ID"
// @Param answer body service.AnswerRequest true "回答内容"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /articles/{articleId}/answers [post]
func (c *AnswerController) PostAnswer(ctx *gin.Context) {
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

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	draft := &model.Answer{Content: req.Content}

	answer, err := c.AnswerService.PostAnswer(articleID, user.UserID, draft, req.FileIDs)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound), errors.Is(err, util.ErrArticleNotFound):
			monitoring.AnswerCounter.WithLabelValues("not_found").Inc()
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrUnableToAnswer):
			monitoring.AnswerCounter.WithLabelValues("rejected").Inc()
			util.UnprocessableEntity(ctx, err.Error())
		default:
			monitoring.AnswerCounter.WithLabelValues("error").Inc()
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.AnswerCounter.WithLabelValues("created").Inc()
	util.Created(ctx, answer)
}

// @Summary 回答列表
// @Description 分页获取文章下的回答，被采纳的置顶
// @Tags 回答
// @Produce json
// @Param articleId path int true "文章ID"
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /articles/{articleId}/answers [get]
func (c *AnswerController) GetAnswers(ctx *gin.Context) {
	articleID, err := util.ParseUintParam(ctx.Param("articleId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid article ID")
		return
	}

	page, size := util.ParsePagination(ctx.DefaultQuery("page", "1"), ctx.DefaultQuery("size", "20"))

	var requesterID uint
	if user := util.GetUserFromContext(ctx); user != nil {
		requesterID = user.UserID
	}

	answers, total, err := c.AnswerService.GetAnswers(articleID, page, size, requesterID)
	if err != nil {
		if errors.Is(err, util.ErrArticleNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  answers,
		Total: total,
		Page:  page,
		Size:  size,
	})
}

// @Summary 修改回答
// @Tags 回答
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param answerId path int true "回答ID"
// @Param answer body service.AnswerRequest true "回答内容"
// @Success 200 {object} util.Response
// @Router /answers/{answerId} [put]
func (c *AnswerController) UpdateAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	answerID, err := util.ParseUintParam(ctx.Param("answerId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid answer ID")
		return
	}

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.AnswerService.UpdateAnswer(answerID, user.UserID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAnswerNotFound), errors.Is(err, util.ErrArticleNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrNotEditable):
			util.UnprocessableEntity(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, answer)
}

// @Summary 删除回答
// @Tags 回答
// @Produce json
// @Security ApiKeyAuth
// @Param answerId path int true "回答ID"
// @Success 200 {object} util.Response
// @Router /answers/{answerId} [delete]
func (c *AnswerController) DeleteAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	answerID, err := util.ParseUintParam(ctx.Param("answerId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid answer ID")
		return
	}

	if err := c.AnswerService.DeleteAnswer(answerID, user.UserID, user.Role); err != nil {
		switch {
		case errors.Is(err, util.ErrAnswerNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Answer deleted"})
}

// @Summary 采纳回答
// @Description 提问者采纳一个回答，问题随之关闭
// @Tags 回答
// @Produce json
// @Security ApiKeyAuth
// @Param articleId path int true "文章ID"
// @Param answerId path int true "回答ID"
// @Success 200 {object} util.Response
// @Router /articles/{articleId}/answers/{answerId}/pick [post]
func (c *AnswerController) PickAnswer(ctx *gin.Context) {
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
	answerID, err := util.ParseUintParam(ctx.Param("answerId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid answer ID")
		return
	}

	if err := c.AnswerService.PickAnswer(articleID, answerID, user.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrArticleNotFound), errors.Is(err, util.ErrAnswerNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrOnlyQuestionPick), errors.Is(err, util.ErrUnableToAnswer):
			util.UnprocessableEntity(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Answer picked"})
}
