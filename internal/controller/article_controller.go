package controller

import (
	"errors"
	"qna_community_backend/internal/service"
	"qna_community_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ArticleController struct {
	ArticleService *service.ArticleService
}

func NewArticleController(articleService *service.ArticleService) *ArticleController {
	return &ArticleController{ArticleService: articleService}
}

// @Summary 搜索文章
// @Description 按关键字/分类/标签搜索文章，支持分页和排序
// @Tags 文章
// @Produce json
// @Param keyword query string false "标题或正文关键字"
// @Param category query string false "分类" Enums(qna, info, free)
// @Param tag query string false "标签"
// @Param sort query string false "排序方式" Enums(new, popular) default(new)
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /articles [get]
func (c *ArticleController) Search(ctx *gin.Context) {
	page, size := util.ParsePagination(ctx.DefaultQuery("page", "1"), ctx.DefaultQuery("size", "20"))
	keyword := ctx.Query("keyword")
	category := ctx.Query("category")
	tag := ctx.Query("tag")
	sort := ctx.DefaultQuery("sort", "new")

	articles, total, err := c.ArticleService.Search(page, size, keyword, category, tag, sort)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  articles,
		Total: total,
		Page:  page,
		Size:  size,
	})
}

// @Summary 发布文章
// @Tags 文章
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param article body service.ArticleRequest true "文章内容"
// @Success 201 {object} util.Response
// @Router /articles [post]
func (c *ArticleController) CreateArticle(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	article, err := c.ArticleService.CreateArticle(user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound), errors.Is(err, util.ErrArticleNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, article)
}

// @Summary 文章详情
// @Description 返回文章详情，带当前用户的点赞/收藏状态
// @Tags 文章
// @Produce json
// @Param articleId path int true "文章ID"
// @Success 200 {object} util.Response
// @Router /articles/{articleId} [get]
func (c *ArticleController) GetArticleDetail(ctx *gin.Context) {
	articleID, err := util.ParseUintParam(ctx.Param("articleId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid article ID")
		return
	}

	var requesterID uint
	if user := util.GetUserFromContext(ctx); user != nil {
		requesterID = user.UserID
	}

	detail, err := c.ArticleService.GetArticleDetail(articleID, requesterID, ctx.ClientIP())
	if err != nil {
		if errors.Is(err, util.ErrArticleNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary 修改文章
// @Tags 文章
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param articleId path int true "文章ID"
// @Param article body service.ArticleRequest true "文章内容"
// @Success 200 {object} util.Response
// @Router /articles/{articleId} [put]
func (c *ArticleController) UpdateArticle(ctx *gin.Context) {
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

	var req service.ArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	article, err := c.ArticleService.UpdateArticle(articleID, user.UserID, req, user.Role)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrArticleNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, article)
}

// @Summary 删除文章
// @Tags 文章
// @Produce json
// @Security ApiKeyAuth
// @Param articleId path int true "文章ID"
// @Success 200 {object} util.Response
// @Router /articles/{articleId} [delete]
func (c *ArticleController) DeleteArticle(ctx *gin.Context) {
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

	if err := c.ArticleService.DeleteArticle(articleID, user.UserID, user.Role); err != nil {
		switch {
		case errors.Is(err, util.ErrArticleNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Article deleted"})
}

// @Summary 关闭问题
// @Description 提问者主动关闭问题，不再接受新回答
// @Tags 文章
// @Produce json
// @Security ApiKeyAuth
// @Param articleId path int true "文章ID"
// @Success 200 {object} util.Response
// @Router /articles/{articleId}/close [post]
func (c *ArticleController) CloseArticle(ctx *gin.Context) {
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

	if err := c.ArticleService.CloseArticle(articleID, user.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrArticleNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Article closed"})
}

// @Summary 点赞内容
// @Description 给文章、回答或评论点赞，再次调用取消
// @Tags 互动
// @Produce json
// @Security ApiKeyAuth
// @Param type path string true "内容类型" Enums(article, answer, comment)
// @Param id path int true "内容ID"
// @Success 200 {object} util.Response
// @Router /likes/{type}/{id} [post]
func (c *ArticleController) ToggleLike(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	contentType := ctx.Param("type")
	contentID, err := util.ParseUintParam(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid content ID")
		return
	}

	liked, count, err := c.ArticleService.ToggleLike(user.UserID, contentType, contentID)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.BadRequest(ctx, "Invalid content type")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"liked": liked, "count": count})
}

type bookmarkRequest struct {
	Memo string `json:"memo" binding:"max=255"`
}

// @Summary 收藏文章
// @Description 收藏/取消收藏文章，可附带备注
// @Tags 互动
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param articleId path int true "文章ID"
// @Success 200 {object} util.Response
// @Router /articles/{articleId}/bookmark [post]
func (c *ArticleController) ToggleBookmark(ctx *gin.Context) {
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

	var req bookmarkRequest
	ctx.ShouldBindJSON(&req)

	bookmarked, err := c.ArticleService.ToggleBookmark(user.UserID, articleID, req.Memo)
	if err != nil {
		if errors.Is(err, util.ErrArticleNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"bookmarked": bookmarked})
}

// @Summary 分类列表
// @Tags 字典
// @Produce json
// @Success 200 {object} util.Response
// @Router /categories [get]
func (c *ArticleController) GetCategories(ctx *gin.Context) {
	categories, err := c.ArticleService.GetCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// @Summary 标签列表
// @Tags 字典
// @Produce json
// @Success 200 {object} util.Response
// @Router /tags [get]
func (c *ArticleController) GetTags(ctx *gin.Context) {
	tags, err := c.ArticleService.GetTags()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tags)
}
