package parent

import (
	"context"
	"encoding/json"
)

// CheckoutSessionRequest 決済セッション作成リクエスト
type CheckoutSessionRequest struct {
	ProjectID   string `json:"projectId"`
	ProductName string `json:"productName"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
}

// CheckoutSession 親アプリが作成した決済セッション
type CheckoutSession struct {
	URL string `json:"url"`
}

// StatusResult ステータス確認APIの応答（そのまま中継する）
type StatusResult struct {
	StatusCode int
	Body       []byte
}

// OK 2xx応答かどうかを返す
func (r *StatusResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsAdmin 応答が管理者であることを示しているかを返す
func (r *StatusResult) IsAdmin() bool {
	if r == nil || !r.OK() {
		return false
	}
	var body struct {
		IsAdmin bool `json:"isAdmin"`
	}
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return false
	}
	return body.IsAdmin
}

// CheckoutGateway 決済セッション作成のゲートウェイ
type CheckoutGateway interface {
	// CreateCheckout 購入者の決済セッションを作成
	CreateCheckout(ctx context.Context, userID string, req *CheckoutSessionRequest) (*CheckoutSession, error)
}

// StatusGateway ステータス確認のゲートウェイ
type StatusGateway interface {
	// CheckStatus ユーザーとプロジェクトのステータスを取得
	CheckStatus(ctx context.Context, userID, projectID string) (*StatusResult, error)
}
