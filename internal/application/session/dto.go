package session

// CheckStatusRequest ステータス確認リクエスト
// camelCaseのキーが無い（またはnullの）場合だけsnake_caseのキーを参照する
type CheckStatusRequest struct {
	UserID         *string `json:"userId"`
	UserIDSnake    *string `json:"user_id"`
	ProjectID      *string `json:"projectId"`
	ProjectIDSnake *string `json:"project_id"`
}

// CheckStatusResponse 親アプリの応答（そのまま中継する）
type CheckStatusResponse struct {
	StatusCode int
	Body       []byte
}
