package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	// 拼接对外访问地址用，为空时用 http(s)://Endpoint
	PublicURL string
}

// MinioStorage 把上传的文件存进MinIO，对象Key形如 videos/<uuid>.mp4
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioStorage(ctx context.Context, opts Options) (*MinioStorage, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "create minio client")
	}

	// 检查存储桶是否存在，不存在则创建
	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, errors.WithMessage(err, "check bucket")
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.WithMessage(err, "create bucket")
		}
	}

	publicURL := opts.PublicURL
	if publicURL == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, opts.Endpoint)
	}
	return &MinioStorage{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Store 上传本地文件，返回可访问的URL和用于删除的Key
func (s *MinioStorage) Store(ctx context.Context, folder, path, contentType string) (string, string, error) {
	key := ObjectKey(folder, path)
	_, err := s.client.FPutObject(ctx, s.bucket, key, path, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", "", errors.WithMessage(err, "upload object")
	}
	return s.URL(key), key, nil
}

func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	return errors.WithMessage(err, "remove object")
}

func (s *MinioStorage) URL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key)
}

// ObjectKey 文件夹 + 随机UUID + 原文件扩展名
func ObjectKey(folder, path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.NewString(), ext)
}
