package app

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockMinIOClient 是 MinIOClientRepo 的 Mock
type MockMinIOClient struct {
	mock.Mock
}

// PutObject 模擬 MinIO 上傳行為
func (m *MockMinIOClient) PutObject(ctx context.Context, objectName string, data []byte, contentType string) error {
	args := m.Called(ctx, objectName, data, contentType)
	return args.Error(0)
}

// GetObject 模擬 MinIO 取得 object
func (m *MockMinIOClient) GetObject(ctx context.Context, objectName string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, objectName)
	if args.Get(0) != nil {
		return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

// RemoveObject 模擬 MinIO 刪除行為
func (m *MockMinIOClient) RemoveObject(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

// ListObjects 模擬 MinIO 列出 bucket 物件
func (m *MockMinIOClient) ListObjects(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// BucketExists 模擬檢查 bucket
func (m *MockMinIOClient) BucketExists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockRabbitRepo 是 RabbitRepo 的 Mock
type MockRabbitRepo struct {
	mock.Mock
}

// Publish 模擬發布訊息
func (m *MockRabbitRepo) Publish(ctx context.Context, exchange, key string, body []byte) error {
	args := m.Called(ctx, exchange, key, body)
	return args.Error(0)
}

// Close 模擬關閉連線
func (m *MockRabbitRepo) Close() error {
	args := m.Called()
	return args.Error(0)
}
