package event

import "github.com/ripple-lab/backend/pkg/errorx"

const (
	AuthorizeOp = "authorize"
	NavigateOp  = "navigate"
	ErrorOp     = "error"
)

// AUTHORIZE EVENT
type AuthorizeEvent struct {
	UserID string `json:"id"`
}

func (*AuthorizeEvent) Op() string {
	return AuthorizeOp
}

// NAVIGATE EVENT
type NavigateEvent struct {
	Path string `json:"path"`
}

func (*NavigateEvent) Op() string {
	return NavigateOp
}

// ERROR EVENT
type ErrorEvent struct {
	Code    errorx.Code `json:"code"`
	Message string      `json:"message"`
}

func (*ErrorEvent) Op() string {
	return ErrorOp
}
