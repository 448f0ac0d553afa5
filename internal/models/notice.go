package models

// NoticeLevel classifies a user-facing acknowledgement.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a short message shown to the user after an action.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// IsFailure reports whether the notice signals that an action did not take
// effect.
func (n Notice) IsFailure() bool {
	return n.Level == NoticeError
}
