package handler

// CheckStatusRequest ステータス確認リクエスト
// @Description ステータス確認リクエスト（snake_caseも可）
type CheckStatusRequest struct {
	UserID    string `json:"userId" example:"user123"`
	ProjectID string `json:"projectId" example:"proj_42"`
}

// CheckStatusResponse 親アプリのステータス応答（そのまま中継される）
// @Description 親アプリのステータス応答
type CheckStatusResponse struct {
	IsAdmin bool  `json:"isAdmin" example:"false"`
	Credits int64 `json:"credits,omitempty" example:"120"`
}
