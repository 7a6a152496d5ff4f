package handler

import (
	"context"
	"encoding/json"
	"net/url"

	paymentapp "coffee-server/internal/application/payment"
	sessionapp "coffee-server/internal/application/session"
	"coffee-server/internal/presentation/grpc/interceptor"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// CheckoutHandler gRPC決済サービスハンドラー
type CheckoutHandler struct {
	paymentService *paymentapp.PaymentApplicationService
	sessionService *sessionapp.SessionApplicationService
}

var _ CheckoutServiceServer = (*CheckoutHandler)(nil)

// NewCheckoutHandler 新しいCheckoutHandlerを作成
func NewCheckoutHandler(
	paymentService *paymentapp.PaymentApplicationService,
	sessionService *sessionapp.SessionApplicationService,
) *CheckoutHandler {
	return &CheckoutHandler{
		paymentService: paymentService,
		sessionService: sessionService,
	}
}

// CreatePayment 決済セッション作成
// 入力: {amount, type, tier, projectId|project_id}、出力: {success, url}
func (h *CheckoutHandler) CreatePayment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := interceptor.UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "user_id not found in token")
	}

	body := paymentapp.CreatePaymentBody{
		Type:           stringField(req, "type"),
		Tier:           stringField(req, "tier"),
		ProjectID:      stringField(req, "projectId"),
		ProjectIDSnake: stringField(req, "project_id"),
	}
	if v, ok := req.GetFields()["amount"]; ok {
		raw, err := v.MarshalJSON()
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, "Invalid amount")
		}
		body.Amount = json.RawMessage(raw)
	}

	query := url.Values{"uid": {userID}}
	if projectID := interceptor.ProjectIDFromContext(ctx); projectID != "" {
		query.Set("projectId", projectID)
	}

	result, err := h.paymentService.CreatePayment(ctx, &paymentapp.CreatePaymentInput{
		Query: query,
		Body:  body,
	})
	if err != nil {
		return nil, handleError(err)
	}

	return structpb.NewStruct(map[string]interface{}{
		"success": true,
		"url":     result.URL,
	})
}

// CheckStatus 親アプリのステータス確認
// 出力: {statusCode, body}。bodyは親アプリの応答（JSONオブジェクトでなければ文字列）
func (h *CheckoutHandler) CheckStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := interceptor.UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "user_id not found in token")
	}

	statusReq := &sessionapp.CheckStatusRequest{
		UserID:         &userID,
		ProjectID:      optionalStringField(req, "projectId"),
		ProjectIDSnake: optionalStringField(req, "project_id"),
	}
	// トークンにプロジェクトがあればリクエストより優先
	if projectID := interceptor.ProjectIDFromContext(ctx); projectID != "" {
		statusReq.ProjectID = &projectID
	}

	resp, err := h.sessionService.CheckStatus(ctx, statusReq)
	if err != nil {
		return nil, handleError(err)
	}

	out := &structpb.Struct{Fields: map[string]*structpb.Value{
		"statusCode": structpb.NewNumberValue(float64(resp.StatusCode)),
	}}
	upstream := &structpb.Struct{}
	if err := upstream.UnmarshalJSON(resp.Body); err == nil {
		out.Fields["body"] = structpb.NewStructValue(upstream)
	} else {
		out.Fields["body"] = structpb.NewStringValue(string(resp.Body))
	}
	return out, nil
}

// optionalStringField フィールドが無いかnullの場合はnilを返す
func optionalStringField(s *structpb.Struct, key string) *string {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil
	}
	str := v.GetStringValue()
	return &str
}

func stringField(s *structpb.Struct, key string) string {
	v, ok := s.GetFields()[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}
