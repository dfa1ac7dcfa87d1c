package errprocess

import (
	"errors"
	"net/http"

	"convert_gateway_service/pkg/logger"
)

// Kind 分類錯誤，對應 HTTP 回應狀態
type Kind int

// 錯誤分類
const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindPermissionDenied
	KindUpstreamUnavailable
	KindNotFound
	KindStorageRead
	KindStorageWrite
	KindPublish
	KindConsistencyRisk
)

// Error carries a failure kind plus a caller-facing detail message
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Detail + " : " + e.Err.Error()
	}
	return e.Detail
}

// Unwrap expose the wrapped cause
func (e *Error) Unwrap() error {
	return e.Err
}

// New build a typed error without a cause
func New(kind Kind, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap build a typed error around a cause
func Wrap(kind Kind, detail string, err error) error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// Set set err info
func Set(kind Kind, errMsg string) error {
	logger.Log.Error(errMsg)
	return &Error{Kind: kind, Detail: errMsg}
}

// KindOf 取得錯誤分類
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Detail 取得對外的錯誤訊息
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return err.Error()
}

// StatusCode 將錯誤分類對應到 HTTP 狀態碼
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case KindNotFound:
		return http.StatusNotFound
	case KindStorageRead, KindStorageWrite, KindPublish, KindConsistencyRisk:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
