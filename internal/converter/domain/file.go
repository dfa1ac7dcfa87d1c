package domain

import (
	"path/filepath"
	"strings"

	"convert_gateway_service/pkg"
	errprocess "convert_gateway_service/pkg/err"
)

// AllowedVideoTypes 上傳允許的 content type，其餘一律在邊界拒絕
var AllowedVideoTypes = []string{
	"video/mp4",
	"video/x-matroska", // .mkv
	"video/avi",
	"video/webm",
	"video/ogg",
}

// FileMetadata 上傳宣告的檔案資訊，進任何外部系統之前先驗證
type FileMetadata struct {
	FileName    string
	ContentType string
}

// Validate 檢查檔名與 content type
func (f FileMetadata) Validate() error {
	if strings.TrimSpace(f.FileName) == "" {
		return errprocess.New(errprocess.KindValidation, "file name must not be empty")
	}
	if !pkg.Contains(AllowedVideoTypes, f.ContentType) {
		return errprocess.New(errprocess.KindValidation, "File Type not allowed, please send a video file")
	}
	return nil
}

// ObjectKey 由檔名決定 object key。
// key 同時是 storage 與下游 conversion worker 之間的 correlation id，
// 改掉這個推導會讓下游對不上物件。
func (f FileMetadata) ObjectKey() string {
	return filepath.Base(f.FileName)
}

// QueueMessage 發布給 conversion worker 的訊息，原樣序列化上 broker
type QueueMessage struct {
	FileName     string  `json:"file_name"`
	ContentType  string  `json:"content_type"`
	ClientEmail  *string `json:"client_email"`
	DownloadLink *string `json:"download_link"`
}
