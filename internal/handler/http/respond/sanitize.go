package respond

import (
	"regexp"
)

var (
	// Authorization ヘッダー値（LINE チャネルアクセストークン等）
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9+/=._~-]+`)
	// Google OAuth アクセストークン
	googleTokenPattern = regexp.MustCompile(`ya29\.[A-Za-z0-9._-]+`)

	// データベースパスワードパターン（DSN内）
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = googleTokenPattern.ReplaceAllString(msg, "ya29.****")

	// DBパスワードのマスク
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
