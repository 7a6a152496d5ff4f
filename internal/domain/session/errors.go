package session

import "errors"

var (
	// ErrMissingIdentity ユーザーIDまたはプロジェクトIDが無い
	ErrMissingIdentity = errors.New("missing userId or projectId")
	// ErrStatusCheckFailed ステータス確認に失敗
	ErrStatusCheckFailed = errors.New("status check failed")
)
