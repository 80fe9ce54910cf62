package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/SketchShifter/warbler_backend/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// ImageService プロフィール画像の保存先を抽象化するインターフェース
type ImageService interface {
	UploadImage(ctx context.Context, file io.Reader, fileName string) (publicID, url string, err error)
	DeleteImage(ctx context.Context, publicID string) error
}

// NewImageService 設定に応じたImageServiceを作成（無効な場合は nil を返す）
func NewImageService(cfg *config.Config) (ImageService, error) {
	switch cfg.Storage.Provider {
	case "cloudinary":
		return NewCloudinaryService(cfg)
	case "s3":
		return NewS3ImageService(cfg)
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("未対応のストレージです: %s", cfg.Storage.Provider)
	}
}

// cloudinaryService Cloudinaryとの連携を管理するサービス
type cloudinaryService struct {
	cld *cloudinary.Cloudinary
	cfg *config.Config
}

// NewCloudinaryService CloudinaryのImageServiceを作成
func NewCloudinaryService(cfg *config.Config) (ImageService, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.Storage.Cloudinary.CloudName,
		cfg.Storage.Cloudinary.APIKey,
		cfg.Storage.Cloudinary.APISecret,
	)
	if err != nil {
		return nil, err
	}

	return &cloudinaryService{
		cld: cld,
		cfg: cfg,
	}, nil
}

// UploadImage 画像をアップロード
func (s *cloudinaryService) UploadImage(ctx context.Context, file io.Reader, fileName string) (string, string, error) {
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(file); err != nil {
		return "", "", fmt.Errorf("ファイルの読み込みに失敗しました: %w", err)
	}

	result, err := s.cld.Upload.Upload(ctx, buf, uploader.UploadParams{
		Folder:       s.cfg.Storage.Cloudinary.Folder,
		PublicID:     objectName(fileName),
		ResourceType: "image",
	})
	if err != nil {
		return "", "", fmt.Errorf("Cloudinaryへのアップロードに失敗しました: %w", err)
	}

	return result.PublicID, result.SecureURL, nil
}

// DeleteImage 画像を削除
func (s *cloudinaryService) DeleteImage(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	}); err != nil {
		return fmt.Errorf("Cloudinaryからの削除に失敗しました: %w", err)
	}

	return nil
}

// s3ImageService S3に画像を保存するサービス
type s3ImageService struct {
	uploader *s3manager.Uploader
	client   *s3.S3
	bucket   string
	prefix   string
}

// NewS3ImageService S3のImageServiceを作成
func NewS3ImageService(cfg *config.Config) (ImageService, error) {
	if cfg.Storage.S3.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET が設定されていません")
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.Storage.S3.Region),
	}
	if cfg.Storage.S3.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Storage.S3.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("AWSセッションの初期化に失敗しました: %w", err)
	}

	return &s3ImageService{
		uploader: s3manager.NewUploader(sess),
		client:   s3.New(sess),
		bucket:   cfg.Storage.S3.Bucket,
		prefix:   cfg.Storage.S3.Prefix,
	}, nil
}

// UploadImage 画像をアップロード
func (s *s3ImageService) UploadImage(ctx context.Context, file io.Reader, fileName string) (string, string, error) {
	key := path.Join(s.prefix, objectName(fileName)+strings.ToLower(path.Ext(fileName)))

	result, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return "", "", fmt.Errorf("S3へのアップロードに失敗しました: %w", err)
	}

	return key, result.Location, nil
}

// DeleteImage 画像を削除
func (s *s3ImageService) DeleteImage(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	if _, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	}); err != nil {
		return fmt.Errorf("S3からの削除に失敗しました: %w", err)
	}

	return nil
}

// objectName 元のファイル名に依存しない一意なオブジェクト名
func objectName(fileName string) string {
	base := strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	if base == "" || base == "." || base == "/" {
		return uuid.NewString()
	}
	return base + "-" + uuid.NewString()
}
