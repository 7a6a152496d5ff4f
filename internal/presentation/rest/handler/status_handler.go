package handler

import (
	sessionapp "coffee-server/internal/application/session"

	"github.com/labstack/echo/v4"
)

// StatusHandler ステータス確認ハンドラー
type StatusHandler struct {
	sessionService *sessionapp.SessionApplicationService
}

// NewStatusHandler 新しいStatusHandlerを作成
func NewStatusHandler(sessionService *sessionapp.SessionApplicationService) *StatusHandler {
	return &StatusHandler{
		sessionService: sessionService,
	}
}

// CheckStatus ステータス確認ハンドラー
// @Summary ユーザーのステータスを確認
// @Description 親アプリのステータスAPIの応答をステータスコードごと中継します
// @Tags session
// @Accept json
// @Produce json
// @Param request body CheckStatusRequest true "ステータス確認リクエスト"
// @Success 200 {object} CheckStatusResponse "親アプリの応答"
// @Failure 400 {object} ErrorResponse "userIdまたはprojectIdが無い"
// @Failure 500 {object} ErrorResponse "ステータス確認エラー"
// @Router /status [post]
func (h *StatusHandler) CheckStatus(c echo.Context) error {
	var req sessionapp.CheckStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	resp, err := h.sessionService.CheckStatus(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return c.Blob(resp.StatusCode, echo.MIMEApplicationJSON, resp.Body)
}
