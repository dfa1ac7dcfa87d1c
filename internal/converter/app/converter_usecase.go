package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"convert_gateway_service/internal/converter/domain"
	"convert_gateway_service/pkg/database"
	errprocess "convert_gateway_service/pkg/err"
)

// ConverterUseCase 這裡封裝了對外提供的應用服務
type ConverterUseCase interface {
	Upload(ctx context.Context, meta domain.FileMetadata, data []byte, clientEmail string) error
	Download(ctx context.Context, objectName string) (io.ReadCloser, string, error)
	ListFiles(ctx context.Context) ([]string, error)
}

type converterUseCase struct {
	MinioClient database.MinIOClientRepo
	RabbitRepo  database.RabbitRepo // 發布轉檔工作訊息的 RabbitMQ 管理器

	Exchange   string
	RoutingKey string
}

// NewConverterUseCase 建立一個新的 ConverterUseCase
func NewConverterUseCase(minIO database.MinIOClientRepo,
	rabbit database.RabbitRepo,
	exchange, routingKey string,
) ConverterUseCase {
	return &converterUseCase{
		MinioClient: minIO,
		RabbitRepo:  rabbit,
		Exchange:    exchange,
		RoutingKey:  routingKey,
	}
}

// Upload 驗證 → 寫入 MinIO → 發布轉檔訊息。
// storage 與 broker 之間沒有跨系統交易：publish 失敗時補償刪除剛寫入的物件，
// 這是 best-effort，不是原子性。補償刪除也失敗時，兩個錯誤都要浮上來，
// 因為會留下一個沒有對應工作的孤兒物件。
func (s *converterUseCase) Upload(ctx context.Context, meta domain.FileMetadata, data []byte, clientEmail string) error {
	// 無效輸入在碰到任何外部系統之前就拒絕
	if err := meta.Validate(); err != nil {
		return err
	}

	key := meta.ObjectKey()
	if err := s.MinioClient.PutObject(ctx, key, data, meta.ContentType); err != nil {
		return errprocess.Set(errprocess.KindStorageWrite, fmt.Sprintf("fileName[%s] 上傳 MinIO 失敗 : %v", key, err))
	}

	msg := domain.QueueMessage{
		FileName:    key,
		ContentType: meta.ContentType,
	}
	if clientEmail != "" {
		msg.ClientEmail = &clientEmail
	}

	body, err := json.Marshal(msg)
	if err != nil {
		// 訊息發不出去，物件也不能留下
		return s.compensate(ctx, key, fmt.Errorf("訊息序列化失敗 : %v", err))
	}

	if err := s.RabbitRepo.Publish(ctx, s.Exchange, s.RoutingKey, body); err != nil {
		return s.compensate(ctx, key, err)
	}

	return nil
}

// compensate 刪除剛寫入的物件，回報 publish 失敗；刪除也失敗時升級為 consistency risk
func (s *converterUseCase) compensate(ctx context.Context, key string, pubErr error) error {
	if delErr := s.MinioClient.RemoveObject(ctx, key); delErr != nil {
		// 物件已經不在了不算補償失敗
		if errprocess.KindOf(delErr) != errprocess.KindNotFound {
			return errprocess.Set(errprocess.KindConsistencyRisk,
				fmt.Sprintf("fileName[%s] 發布與補償刪除皆失敗，留下孤兒物件 publish: %v / delete: %v", key, pubErr, delErr))
		}
	}
	return errprocess.Set(errprocess.KindPublish, fmt.Sprintf("fileName[%s] 發送 RabbitMQ 訊息失敗 : %v", key, pubErr))
}

// Download 讀取已轉檔物件，回傳串流與原始 content type
func (s *converterUseCase) Download(ctx context.Context, objectName string) (io.ReadCloser, string, error) {
	obj, contentType, err := s.MinioClient.GetObject(ctx, objectName)
	if err != nil {
		if errprocess.KindOf(err) == errprocess.KindNotFound {
			return nil, "", err
		}
		return nil, "", errprocess.Set(errprocess.KindStorageRead, fmt.Sprintf("objectName[%s] 讀取 MinIO 失敗 : %v", objectName, err))
	}
	return obj, contentType, nil
}

// ListFiles 列出 bucket 內的物件
func (s *converterUseCase) ListFiles(ctx context.Context) ([]string, error) {
	names, err := s.MinioClient.ListObjects(ctx)
	if err != nil {
		return nil, errprocess.Set(errprocess.KindStorageRead, fmt.Sprintf("列出 bucket 物件失敗 : %v", err))
	}
	return names, nil
}
