package handler

// CreatePaymentRequest 決済作成リクエスト
// @Description 決済作成リクエスト（uidとprojectIdはクエリでも指定可能）
type CreatePaymentRequest struct {
	Amount    float64 `json:"amount" example:"5"`
	Type      string  `json:"type" example:"one-time" enums:"one-time,subscription"`
	Tier      string  `json:"tier,omitempty" example:"Champion"`
	ProjectID string  `json:"projectId,omitempty" example:"proj_42"`
}

// CreateCheckoutRequest 認証済み決済作成リクエスト
// @Description 認証済み決済作成リクエスト（ユーザーはトークンから決定）
type CreateCheckoutRequest struct {
	Amount    float64 `json:"amount" example:"8"`
	Type      string  `json:"type" example:"subscription" enums:"one-time,subscription"`
	Tier      string  `json:"tier,omitempty" example:"Champion"`
	ProjectID string  `json:"projectId,omitempty" example:"proj_42"`
}

// CreatePaymentResponse 決済作成レスポンス
// @Description 決済作成レスポンス
type CreatePaymentResponse struct {
	Success bool   `json:"success" example:"true"`
	URL     string `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_123"`
}
