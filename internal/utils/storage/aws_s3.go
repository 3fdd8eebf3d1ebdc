package storage

import (
	"Recipe-Website/domain"
	"Recipe-Website/internal/utils"
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var AllowImage = []string{"jpg", "jpeg", "png", "webp"}

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
		Enabled() bool
	}

	objectAPI interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	}

	awsS3 struct {
		client objectAPI
		bucket string
		region string
	}
)

// NewAwsS3 builds the recipe image store from configuration. Without a bucket
// the store is disabled and uploads fail with ErrImageStorageUnavailable.
func NewAwsS3() AwsS3 {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" || region == "" {
		log.Warn("AWS_S3_BUCKET or AWS_S3_REGION not set, image upload disabled")
		return &awsS3{}
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if key := utils.GetConfig("AWS_ACCESS_KEY"); key != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Errorf("failed to load aws config: %v", err)
		return &awsS3{}
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

func (a *awsS3) Enabled() bool {
	return a.client != nil && a.bucket != ""
}

func (a *awsS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	if !a.Enabled() {
		return "", domain.ErrImageStorageUnavailable
	}

	ext, err := checkExtension(file.Filename, allowed)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if fileName == "" {
		fileName = uuid.NewString()
	}
	objectKey := path.Join(folder, fileName+"."+ext)

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/" + ext
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Errorf("failed to upload %s: %v", objectKey, err)
		return "", err
	}
	return objectKey, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	if !a.Enabled() || objectKey == "" {
		return nil
	}
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("%s/%s", a.baseURL(), objectKey)
}

// GetObjectKeyFromLink returns the object key for links that point into this
// bucket and "" for anything else.
func (a *awsS3) GetObjectKeyFromLink(link string) string {
	if a.bucket == "" {
		return ""
	}
	prefix := a.baseURL() + "/"
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

func (a *awsS3) baseURL() string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", a.bucket, a.region)
}

func checkExtension(fileName string, allowed []string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if len(allowed) == 0 {
		return ext, nil
	}
	for _, a := range allowed {
		if ext == a {
			return ext, nil
		}
	}
	return "", domain.ErrInvalidImageFormat
}
