package payment

import (
	"encoding/json"
	"net/url"
)

// CreatePaymentBody 決済作成リクエストのボディ
type CreatePaymentBody struct {
	Amount         json.RawMessage `json:"amount"`
	Type           string          `json:"type"`
	Tier           string          `json:"tier"`
	ProjectID      string          `json:"projectId"`
	ProjectIDSnake string          `json:"project_id"`
}

// UnmarshalJSON 文字列以外の値が入ったtype/tier/projectIdは空として読み込む
func (b *CreatePaymentBody) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*b = CreatePaymentBody{
		Amount:         fields["amount"],
		Type:           looseString(fields["type"]),
		Tier:           looseString(fields["tier"]),
		ProjectID:      looseString(fields["projectId"]),
		ProjectIDSnake: looseString(fields["project_id"]),
	}
	return nil
}

func looseString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// CreatePaymentInput 決済作成の入力（クエリとボディをそのまま受け取る）
type CreatePaymentInput struct {
	Query url.Values
	Body  CreatePaymentBody
}

// checkoutCommand 正規化済みの決済作成コマンド
type checkoutCommand struct {
	UserID    string `validate:"required,max=255"`
	ProjectID string `validate:"required,max=255"`
	Tier      string `validate:"omitempty,max=64"`
}

// CreatePaymentResult 決済作成結果
type CreatePaymentResult struct {
	URL         string
	ProductName string
	PriceCents  int64
}
