package donation

import "errors"

var (
	// ErrInvalidAmount 金額が不正
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidTier ティア名が不正
	ErrInvalidTier = errors.New("invalid tier")
	// ErrMissingIdentity 購入者IDまたはプロジェクトIDが無い
	ErrMissingIdentity = errors.New("missing uid or projectId")
	// ErrPaymentFailed 決済処理に失敗
	ErrPaymentFailed = errors.New("payment processing failed")
)
