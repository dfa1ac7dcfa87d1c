package handlers

import (
	"io"

	converterapp "convert_gateway_service/internal/converter/app"
	converterdomain "convert_gateway_service/internal/converter/domain"

	authdomain "convert_gateway_service/internal/auth/domain"
	errprocess "convert_gateway_service/pkg/err"
	"convert_gateway_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// ConverterHandler 處理上傳 / 下載相關的 HTTP 請求
type ConverterHandler struct {
	ConverterUseCase converterapp.ConverterUseCase

	// 下載是否要求 same-id（政策開關，見 config）
	DownloadRequiresOwner bool
}

// NewConverterHandler 建立新的 ConverterHandler
func NewConverterHandler(converter converterapp.ConverterUseCase, downloadRequiresOwner bool) *ConverterHandler {
	return &ConverterHandler{
		ConverterUseCase:      converter,
		DownloadRequiresOwner: downloadRequiresOwner,
	}
}

// uploadRoles 允許上傳 / 下載的角色
var uploadRoles = []authdomain.Role{authdomain.RoleModerator, authdomain.RoleBaseUser}

// Upload 接收 multipart 上傳，寫入物件儲存並發布轉檔工作訊息
// @Summary Upload a video file for conversion
// @Description Stores the file and enqueues a conversion job; roles moderator/base_user
// @Tags Converter
// @Accept mpfd
// @Param file formData file true "video file"
// @Param email path string false "client email"
// @Security BearerAuth
// @Success 204 "queued"
// @Failure 401 {object} string "invalid token"
// @Failure 403 {object} string "not enough permissions"
// @Failure 422 {object} string "invalid filename or content type"
// @Failure 500 {object} string "storage or publish failure"
// @Router /v1/converter/upload [post]
func (h *ConverterHandler) Upload(c *fiber.Ctx) error {
	// 授權檢查在任何副作用之前
	user := middlewares.CurrentUser(c)
	if err := authdomain.Authorize(user, uploadRoles, false, ""); err != nil {
		return c.Status(errprocess.StatusCode(err)).JSON(fiber.Map{"detail": errprocess.Detail(err)})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "file field is required"})
	}

	meta := converterdomain.FileMetadata{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}
	if err := meta.Validate(); err != nil {
		return c.Status(errprocess.StatusCode(err)).JSON(fiber.Map{"detail": errprocess.Detail(err)})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "unable to read uploaded file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "unable to read uploaded file"})
	}

	clientEmail := c.Params("email")

	if err := h.ConverterUseCase.Upload(c.UserContext(), meta, data, clientEmail); err != nil {
		return c.Status(errprocess.StatusCode(err)).JSON(fiber.Map{"detail": errprocess.Detail(err)})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Download 代理回傳已儲存的物件串流
// @Summary Download a stored artifact
// @Description Streams the object with its original content type
// @Tags Converter
// @Param file_name query string true "object key"
// @Param user_id query string false "resource owner id, for same-id policy"
// @Security BearerAuth
// @Success 200 {file} binary "stream"
// @Failure 401 {object} string "invalid token"
// @Failure 403 {object} string "not enough permissions"
// @Failure 404 {object} string "object not found"
// @Router /v1/converter/download [get]
func (h *ConverterHandler) Download(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)
	if err := authdomain.Authorize(user, uploadRoles, h.DownloadRequiresOwner, c.Query("user_id")); err != nil {
		return c.Status(errprocess.StatusCode(err)).JSON(fiber.Map{"detail": errprocess.Detail(err)})
	}

	fileName := c.Query("file_name")
	if fileName == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "file_name is required"})
	}

	obj, contentType, err := h.ConverterUseCase.Download(c.UserContext(), fileName)
	if err != nil {
		return c.Status(errprocess.StatusCode(err)).JSON(fiber.Map{"detail": errprocess.Detail(err)})
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.SendStream(obj)
}

// ListFiles 列出 upload bucket 內的物件，admin 專用
// @Summary List stored objects
// @Description Lists object keys in the upload bucket; admin only
// @Tags Converter
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string "object keys"
// @Failure 401 {object} string "invalid token"
// @Failure 403 {object} string "not enough permissions"
// @Router /v1/converter/files [get]
func (h *ConverterHandler) ListFiles(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)
	if err := authdomain.Authorize(user, []authdomain.Role{authdomain.RoleAdmin}, false, ""); err != nil {
		return c.Status(errprocess.StatusCode(err)).JSON(fiber.Map{"detail": errprocess.Detail(err)})
	}

	names, err := h.ConverterUseCase.ListFiles(c.UserContext())
	if err != nil {
		return c.Status(errprocess.StatusCode(err)).JSON(fiber.Map{"detail": errprocess.Detail(err)})
	}

	return c.JSON(names)
}
