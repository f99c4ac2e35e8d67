package errno

import (
	"errors"
	"fmt"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	SuccessCode             = 0
	ServiceErrCode          = 10001
	ParamErrCode            = 10002
	AuthorizationFailedCode = 10003
	NotFoundCode            = 10004
	StoreErrCode            = 10005
	ForbiddenCode           = 10006
	UserAlreadyExistCode    = 10007
	RateLimitCode           = 10008
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// Is 只比较错误码，WithMessage 之后仍然可以用 errors.Is 判断类别
func (e ErrNo) Is(target error) bool {
	t, ok := target.(ErrNo)
	if !ok {
		return false
	}
	return e.ErrCode == t.ErrCode
}

// StatusCode 错误码对应的 HTTP 状态码
func (e ErrNo) StatusCode() int {
	switch e.ErrCode {
	case SuccessCode:
		return consts.StatusOK
	case ParamErrCode:
		return consts.StatusBadRequest
	case AuthorizationFailedCode:
		return consts.StatusUnauthorized
	case ForbiddenCode:
		return consts.StatusForbidden
	case NotFoundCode:
		return consts.StatusNotFound
	case UserAlreadyExistCode:
		return consts.StatusConflict
	case RateLimitCode:
		return consts.StatusTooManyRequests
	default:
		return consts.StatusInternalServerError
	}
}

var (
	Success                = NewErrNo(SuccessCode, "Success")
	ServiceErr             = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	ParamErr               = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	AuthorizationFailedErr = NewErrNo(AuthorizationFailedCode, "Authorization failed")
	NotFoundErr            = NewErrNo(NotFoundCode, "Resource not found")
	StoreErr               = NewErrNo(StoreErrCode, "Store operation failed")
	ForbiddenErr           = NewErrNo(ForbiddenCode, "Operation not allowed")
	UserAlreadyExistErr    = NewErrNo(UserAlreadyExistCode, "User already exists")
	RateLimitErr           = NewErrNo(RateLimitCode, "Too many requests")
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}

	s := ServiceErr
	s.ErrMsg = err.Error()
	return s
}

// WrapStoreErr 持久层错误统一上抛为 StoreErr，保留原始错误信息
func WrapStoreErr(err error, action string) error {
	if err == nil {
		return nil
	}
	return StoreErr.WithMessage(fmt.Sprintf("%s: %v", action, err))
}
