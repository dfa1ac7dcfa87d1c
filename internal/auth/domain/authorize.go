package domain

import (
	"convert_gateway_service/pkg"
	errprocess "convert_gateway_service/pkg/err"
)

// Authorize 角色授權檢查，必須在身份解析之後、任何副作用之前呼叫。
// user.Role 在 roles 內放行；allowSameID 開啟且 ownerID 等於 user.ID 時，
// 不論角色一律放行（self-service 操作）。
func Authorize(user *User, roles []Role, allowSameID bool, ownerID string) error {
	if user == nil {
		return errprocess.New(errprocess.KindAuthentication, "Invalid authorization code")
	}

	if allowSameID && ownerID != "" && ownerID == user.ID {
		return nil
	}

	if !pkg.Contains(roles, user.Role) {
		return errprocess.New(errprocess.KindPermissionDenied, "Not enough permissions")
	}
	return nil
}
