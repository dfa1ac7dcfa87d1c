package database

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	errprocess "convert_gateway_service/pkg/err"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClientRepo 物件儲存的能力介面，orchestrator 只依賴這層
type MinIOClientRepo interface {
	PutObject(ctx context.Context, objectName string, data []byte, contentType string) error
	GetObject(ctx context.Context, objectName string) (io.ReadCloser, string, error)
	RemoveObject(ctx context.Context, objectName string) error
	ListObjects(ctx context.Context) ([]string, error)
	BucketExists(ctx context.Context) (bool, error)
}

// MinIOClient definition minio client
type MinIOClient struct {
	Client     *minio.Client
	BucketName string
}

// NewMinIOConnection create a new minio connection have retry
func NewMinIOConnection(d MinIOConnection) (*MinIOClient, error) {
	var mc *MinIOClient
	var err error

	for i := 1; i <= d.RetryCount; i++ {
		mc, err = NewMinioClient(d.Endpoint, d.User, d.Password, d.BucketName, d.UseSSL)
		if err == nil {
			log.Printf("minIO[%s] 連線成功 (嘗試 %d 次)", d.Endpoint, i)
			return mc, nil
		}

		log.Printf("minIO[%s] 連線失敗 (嘗試 %d/%d): %v", d.Endpoint, i, d.RetryCount, err)
		time.Sleep(d.RetryInterval)
	}

	return mc, err
}

// NewMinioClient create a new minio
func NewMinioClient(endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinIOClient, error) {
	minioClient, err := minio.New(endpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
			Secure: useSSL,
		})
	if err != nil {
		return nil, fmt.Errorf("初始化 MinIO 失敗: %v", err)
	}

	ctx := context.Background()
	exists, err := minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("檢查 bucket [%s] 失敗: %v", bucketName, err)
	}

	// bucket 不存在就建立
	if !exists {
		if err = minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("建立 bucket [%s] 失敗: %v", bucketName, err)
		}
		log.Printf("Bucket [%s] 建立成功", bucketName)
	} else {
		log.Printf("Bucket [%s] 已存在", bucketName)
	}

	return &MinIOClient{
		Client:     minioClient,
		BucketName: bucketName,
	}, nil
}

// PutObject minio upload object func
func (m *MinIOClient) PutObject(ctx context.Context, objectName string, data []byte, contentType string) error {
	_, err := m.Client.PutObject(ctx, m.BucketName, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// GetObject minio download object func, 回傳串流與 content type
func (m *MinIOClient) GetObject(ctx context.Context, objectName string) (io.ReadCloser, string, error) {
	// 先 Stat 確認物件存在並取得 content type，GetObject 是 lazy 的
	info, err := m.Client.StatObject(ctx, m.BucketName, objectName, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", errprocess.New(errprocess.KindNotFound, "Object not found in storage.")
		}
		return nil, "", err
	}

	obj, err := m.Client.GetObject(ctx, m.BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return obj, contentType, nil
}

// RemoveObject minio remove object func
func (m *MinIOClient) RemoveObject(ctx context.Context, objectName string) error {
	err := m.Client.RemoveObject(ctx, m.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return errprocess.New(errprocess.KindNotFound, "Object not found in storage.")
	}
	return err
}

// ListObjects minio list object names in bucket
func (m *MinIOClient) ListObjects(ctx context.Context) ([]string, error) {
	names := []string{}
	for obj := range m.Client.ListObjects(ctx, m.BucketName, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

// BucketExists check bucket
func (m *MinIOClient) BucketExists(ctx context.Context) (bool, error) {
	return m.Client.BucketExists(ctx, m.BucketName)
}
