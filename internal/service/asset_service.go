package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"

	config "github.com/jordibrook/marketing-api/configs"
	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/repository"
)

type AssetService interface {
	// Upload sniffs, stores and records each file, returning the public
	// URLs in upload order.
	Upload(ctx context.Context, userID int64, files []*multipart.FileHeader) ([]string, error)
	ListAssets(ctx context.Context, userID int64) ([]*models.MediaAsset, error)
}

type assetService struct {
	cfg config.Config
	ma  repository.MediaAssetRepository
	r2  *R2Service
}

func NewAssetService(cfg config.Config, ma repository.MediaAssetRepository, r2 *R2Service) AssetService {
	return &assetService{
		cfg: cfg,
		ma:  ma,
		r2:  r2,
	}
}

// Type allow-list is based on content sniffing, not file extensions.
var allowedUploadTypes = map[string]struct{}{
	"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {},
}

func (s *assetService) Upload(ctx context.Context, userID int64, files []*multipart.FileHeader) ([]string, error) {
	if userID == 0 {
		return nil, errors.New("user not found")
	}
	if len(files) == 0 {
		return nil, errors.New("no files to upload")
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		fileURL, err := s.uploadOne(ctx, userID, file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fileURL)
	}
	return urls, nil
}

func (s *assetService) uploadOne(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error) {
	fileContent, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return "", fmt.Errorf("unsupported file type: %w", err)
	}
	if _, ok := allowedUploadTypes[fileType.Extension]; !ok {
		return "", fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	key, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	if err := s.r2.UploadToR2(ctx, key, fileBytes, fileType.MIME.Value); err != nil {
		return "", fmt.Errorf("error uploading file: %w", err)
	}

	asset := &models.MediaAsset{
		UserID:   userID,
		FileName: key,
		FileType: fileType.MIME.Value,
		FileSize: int64(len(fileBytes)),
		FileURL:  fmt.Sprintf("%s/%s", s.cfg.R2.PublicURL, key),
	}
	if _, err := s.ma.Create(ctx, asset); err != nil {
		return "", fmt.Errorf("error saving media asset: %w", err)
	}
	return asset.FileURL, nil
}

func (s *assetService) ListAssets(ctx context.Context, userID int64) ([]*models.MediaAsset, error) {
	if userID == 0 {
		return nil, errors.New("user not found")
	}
	return s.ma.ListByUserID(ctx, userID)
}
