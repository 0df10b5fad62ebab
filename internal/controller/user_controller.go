package controller

import (
	"errors"
	"qna_community_backend/internal/service"
	"qna_community_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
	FileService *service.FileService
}

func NewUserController(userService *service.UserService, fileService *service.FileService) *UserController {
	return &UserController{UserService: userService, FileService: fileService}
}

// @Summary 修改个人资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param profile body service.ProfileUpdateRequest true "资料"
// @Success 200 {object} util.Response
// @Router /user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.UserService.UpdateProfile(user.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, updated)
}

// @Summary 上传头像
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "头像文件"
// @Success 200 {object} util.Response
// @Router /user/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	url, err := c.FileService.UploadAvatar(ctx.Request.Context(), user.UserID, header)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	avatar, err := c.UserService.SetAvatar(user.UserID, header.Filename, url)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, avatar)
}

// @Summary 我的收藏
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /user/bookmarks [get]
func (c *UserController) GetBookmarks(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, size := util.ParsePagination(ctx.DefaultQuery("page", "1"), ctx.DefaultQuery("size", "20"))

	articles, total, err := c.UserService.GetBookmarks(user.UserID, page, size)
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
