package server

import (
	"errors"

	"github.com/uvenla/home-admin/auth"
	"github.com/uvenla/home-admin/backend"
	apperrors "github.com/uvenla/home-admin/internal/errors"
)

// User facing texts.
const (
	msgSignedIn           = "Đăng nhập thành công!"
	msgSignedOut          = "Đăng xuất thành công"
	msgSessionExpired     = "Phiên đăng nhập đã hết hạn. Vui lòng đăng nhập lại."
	msgNoAccess           = "Bạn không có quyền truy cập"
	msgMissingEmail       = "Vui lòng nhập email của bạn"
	msgMissingPassword    = "Vui lòng nhập mật khẩu của bạn"
	msgInvalidCredentials = "Email hoặc mật khẩu không đúng"
	msgInvalidToken       = "Token không hợp lệ. Vui lòng đăng nhập lại."
	msgDataUnauthorized   = "Máy chủ từ chối yêu cầu (401). Vui lòng đăng nhập lại nếu lỗi tiếp diễn."
	msgDataNotFound       = "Không tìm thấy dữ liệu"
	msgUnavailable        = "Không thể kết nối tới máy chủ. Vui lòng thử lại sau."
)

// userMessage maps an error onto the text shown to the user. Raw errors never
// reach the page.
func userMessage(err error) string {
	var credErr *backend.CredentialsError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, auth.ErrMissingEmail):
		return msgMissingEmail
	case errors.Is(err, auth.ErrMissingPassword):
		return msgMissingPassword
	case errors.As(err, &credErr):
		if credErr.Message != "" {
			return credErr.Message
		}
		return msgInvalidCredentials
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return msgInvalidCredentials
	case errors.Is(err, apperrors.ErrUnauthorizedRole):
		return msgNoAccess
	case errors.Is(err, apperrors.ErrInvalidToken):
		return msgInvalidToken
	case errors.Is(err, apperrors.ErrSessionExpired):
		return msgSessionExpired
	case errors.Is(err, apperrors.ErrUnauthorized):
		return msgDataUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		return msgDataNotFound
	default:
		return msgUnavailable
	}
}
