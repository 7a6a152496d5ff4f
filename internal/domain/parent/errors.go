package parent

import "errors"

var (
	// ErrNotConfigured 親アプリの接続先が未設定
	ErrNotConfigured = errors.New("PARENT_API_BASE env var not set")
	// ErrCheckoutFailed 親アプリが決済セッション作成を拒否した
	ErrCheckoutFailed = errors.New("parent checkout request failed")
	// ErrUnavailable 親アプリに到達できない、または応答を解釈できない
	ErrUnavailable = errors.New("parent api unavailable")
)
