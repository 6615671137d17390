package strata

// NoticeLevel indicates a Notice's level of severity
type NoticeLevel int

const (
	// InfoNoticeLevel indicates a Notice's level of severity
	InfoNoticeLevel NoticeLevel = iota
	// WarnNoticeLevel indicates a Notice's level of severity
	WarnNoticeLevel
	// ErrorNoticeLevel indicates a Notice's level of severity
	ErrorNoticeLevel
)

// NoticeLevelToString translates a NoticeLevel to a string representation
func NoticeLevelToString(level NoticeLevel) string {
	switch level {
	case WarnNoticeLevel:
		return "WARN"
	case ErrorNoticeLevel:
		return "ERROR"
	default:
		return "INFO"
	}
}

// A Notice is a non-fatal diagnostic produced while planning or executing
// a DataFrameOperation, such as a whitelisted field which does not exist
// in the Schema. Notices are logged as they are produced, and retained so
// that clients can inspect them programmatically.
type Notice struct {
	Level   NoticeLevel
	Message string
}
