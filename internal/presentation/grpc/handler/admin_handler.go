package handler

import (
	"context"

	authapp "coffee-server/internal/application/auth"

	"google.golang.org/protobuf/types/known/structpb"
)

// AdminHandler gRPC管理サービスハンドラー
type AdminHandler struct {
	authService *authapp.AuthApplicationService
}

var _ AdminServiceServer = (*AdminHandler)(nil)

// NewAdminHandler 新しいAdminHandlerを作成
func NewAdminHandler(authService *authapp.AuthApplicationService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// IssueToken サービストークンを発行
// 入力: {user_id, project_id}、出力: {token, expires_in, token_type}
func (h *AdminHandler) IssueToken(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	resp, err := h.authService.GenerateToken(ctx, &authapp.GenerateTokenRequest{
		UserID:    stringField(req, "user_id"),
		ProjectID: stringField(req, "project_id"),
	})
	if err != nil {
		return nil, handleError(err)
	}

	return structpb.NewStruct(map[string]interface{}{
		"token":      resp.Token,
		"expires_in": resp.ExpiresIn,
		"token_type": resp.TokenType,
	})
}
