package session

import "net/url"

// ユーザーIDとプロジェクトIDとして受け付けるクエリパラメータ（優先順）
var (
	userIDKeys    = []string{"user_id", "userId", "uid"}
	projectIDKeys = []string{"project_id", "projectId"}
)

// Session 親アプリから引き渡されたログイン情報
type Session struct {
	UserID    string
	ProjectID string
}

// ResolveSession クエリパラメータからSessionを解決
func ResolveSession(query url.Values) Session {
	return Session{
		UserID:    firstValue(query, userIDKeys...),
		ProjectID: firstValue(query, projectIDKeys...),
	}
}

// IsLoggedIn ユーザーIDとプロジェクトIDが揃っているかどうかを返す
func (s Session) IsLoggedIn() bool {
	return s.UserID != "" && s.ProjectID != ""
}

// Validate ログイン情報が揃っているかを検証
func (s Session) Validate() error {
	if !s.IsLoggedIn() {
		return ErrMissingIdentity
	}
	return nil
}

// firstValue 最初に見つかった空でない値を返す
func firstValue(query url.Values, keys ...string) string {
	for _, key := range keys {
		if v := query.Get(key); v != "" {
			return v
		}
	}
	return ""
}

// FirstNonEmpty 最初の空でない文字列を返す
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Coalesce 最初のnilでない値を返す（空文字列でも採用する）
func Coalesce(values ...*string) string {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return ""
}
