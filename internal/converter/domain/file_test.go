package domain

import (
	"testing"

	errprocess "convert_gateway_service/pkg/err"

	"github.com/stretchr/testify/assert"
)

// 測試 FileMetadata.Validate
func TestFileMetadataValidate(t *testing.T) {
	t.Run("允許的影片類型通過", func(t *testing.T) {
		for _, ct := range AllowedVideoTypes {
			meta := FileMetadata{FileName: "clip.mp4", ContentType: ct}
			assert.NoError(t, meta.Validate(), ct)
		}
	})

	t.Run("非影片類型拒絕", func(t *testing.T) {
		for _, ct := range []string{"image/jpeg", "application/pdf", "text/plain", ""} {
			meta := FileMetadata{FileName: "clip.mp4", ContentType: ct}
			err := meta.Validate()
			assert.Error(t, err, ct)
			assert.Equal(t, errprocess.KindValidation, errprocess.KindOf(err))
		}
	})

	t.Run("空檔名拒絕", func(t *testing.T) {
		for _, name := range []string{"", "   "} {
			meta := FileMetadata{FileName: name, ContentType: "video/mp4"}
			err := meta.Validate()
			assert.Error(t, err)
			assert.Equal(t, errprocess.KindValidation, errprocess.KindOf(err))
		}
	})
}

// 測試 ObjectKey 推導：檔名就是 key，路徑部分去掉
func TestFileMetadataObjectKey(t *testing.T) {
	assert.Equal(t, "clip.mp4", FileMetadata{FileName: "clip.mp4"}.ObjectKey())
	assert.Equal(t, "clip.mp4", FileMetadata{FileName: "some/dir/clip.mp4"}.ObjectKey())
}
