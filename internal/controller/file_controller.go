package controller

import (
	"errors"
	"qna_community_backend/internal/service"
	"qna_community_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FileController struct {
	FileService *service.FileService
}

func NewFileController(fileService *service.FileService) *FileController {
	return &FileController{FileService: fileService}
}

// @Summary 上传文件
// @Description 上传附件，返回的文件ID可在发文/回答时挂载
// @Tags 文件
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "文件"
// @Success 201 {object} util.Response
// @Router /files [post]
func (c *FileController) Upload(ctx *gin.Context) {
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

	file, err := c.FileService.Upload(ctx.Request.Context(), user.UserID, header)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, file)
}
