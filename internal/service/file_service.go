package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"qna_community_backend/internal/model"
	"qna_community_backend/internal/repository"

	"github.com/google/uuid"
)

// FileService 文件先上传拿到记录，之后由文章/回答流程挂载
type FileService struct {
	FileRepo *repository.FileRepository
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewFileService(fileRepo *repository.FileRepository, userRepo *repository.UserRepository, storage *StorageService) *FileService {
	return &FileService{
		FileRepo: fileRepo,
		UserRepo: userRepo,
		Storage:  storage,
	}
}

func (s *FileService) Upload(ctx context.Context, userID uint, header *multipart.FileHeader) (*model.File, error) {
	if _, err := s.UserRepo.FindVerifiedByID(userID); err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contentType := header.Header.Get("Content-Type")
	storedName := fmt.Sprintf("files/%s%s", uuid.New().String(), filepath.Ext(header.Filename))

	url, err := s.Storage.Upload(ctx, storedName, src, header.Size, contentType)
	if err != nil {
		return nil, err
	}

	file := &model.File{
		UserID:           userID,
		OriginalFilename: header.Filename,
		LocalPath:        storedName,
		RemotePath:       url,
		ContentType:      contentType,
		Size:             header.Size,
	}

	if err := s.FileRepo.Create(file); err != nil {
		return nil, err
	}

	return file, nil
}

func (s *FileService) UploadAvatar(ctx context.Context, userID uint, header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	storedName := fmt.Sprintf("avatars/%d%s", userID, filepath.Ext(header.Filename))
	return s.Storage.Upload(ctx, storedName, src, header.Size, header.Header.Get("Content-Type"))
}
