package handler

import (
	"fmt"
	"net/http"
	"net/url"

	paymentapp "coffee-server/internal/application/payment"
	"coffee-server/internal/domain/donation"

	"github.com/labstack/echo/v4"
)

// PaymentHandler 決済関連ハンドラー
type PaymentHandler struct {
	paymentService *paymentapp.PaymentApplicationService
}

// NewPaymentHandler 新しいPaymentHandlerを作成
func NewPaymentHandler(paymentService *paymentapp.PaymentApplicationService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreatePayment 決済作成ハンドラー
// @Summary 決済セッションを作成
// @Description 親アプリに決済セッションを作成させ、決済ページのURLを返します
// @Tags payment
// @Accept json
// @Produce json
// @Param uid query string true "購入者ID（user_id, userIdも可）"
// @Param projectId query string false "プロジェクトID（project_idも可、ボディでも指定可）"
// @Param request body CreatePaymentRequest true "決済作成リクエスト"
// @Success 200 {object} CreatePaymentResponse "決済セッション作成成功"
// @Failure 400 {object} ErrorResponse "IDまたは金額が不正"
// @Failure 500 {object} ErrorResponse "決済処理エラー（不正なJSONを含む）"
// @Router /create-payment [post]
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	body, err := decodePaymentBody(c)
	if err != nil {
		return err
	}

	return h.create(c, &paymentapp.CreatePaymentInput{
		Query: c.QueryParams(),
		Body:  body,
	})
}

// CreateCheckout 認証済み決済作成ハンドラー
// @Summary 決済セッションを作成（トークン認証）
// @Description トークンのユーザーで親アプリに決済セッションを作成させます
// @Tags payment
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateCheckoutRequest true "決済作成リクエスト"
// @Success 200 {object} CreatePaymentResponse "決済セッション作成成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 500 {object} ErrorResponse "決済処理エラー"
// @Router /v1/checkouts [post]
func (h *PaymentHandler) CreateCheckout(c echo.Context) error {
	// トークンからuser_idを取得
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "user_id not found in token")
	}

	body, err := decodePaymentBody(c)
	if err != nil {
		return err
	}

	query := url.Values{"uid": {userID}}
	// トークンにプロジェクトがあればボディより優先
	if projectID, _ := c.Get("project_id").(string); projectID != "" {
		query.Set("projectId", projectID)
	}

	return h.create(c, &paymentapp.CreatePaymentInput{
		Query: query,
		Body:  body,
	})
}

func (h *PaymentHandler) create(c echo.Context, in *paymentapp.CreatePaymentInput) error {
	result, err := h.paymentService.CreatePayment(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CreatePaymentResponse{
		Success: true,
		URL:     result.URL,
	})
}

// decodePaymentBody 決済作成のJSONボディを読み込む
// 空や不正なボディは決済処理の失敗として扱う
func decodePaymentBody(c echo.Context) (paymentapp.CreatePaymentBody, error) {
	var body paymentapp.CreatePaymentBody
	if err := c.Echo().JSONSerializer.Deserialize(c, &body); err != nil {
		return body, fmt.Errorf("%w: invalid request body: %v", donation.ErrPaymentFailed, err)
	}
	return body, nil
}

// bindBody JSONボディを読み込む（空のボディは許可）
func bindBody(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}
