package payment

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coffee-server/internal/domain/donation"
	"coffee-server/internal/domain/parent"
	"coffee-server/internal/domain/session"
	otelinfra "coffee-server/internal/infrastructure/observability/otel"
)

// PaymentApplicationService 決済アプリケーションサービス
type PaymentApplicationService struct {
	gateway  parent.CheckoutGateway
	records  donation.CheckoutRecordRepository
	validate *validator.Validate
	logger   *otelinfra.Logger
	metrics  *otelinfra.Metrics
	tracer   trace.Tracer
}

// NewPaymentApplicationService 新しいPaymentApplicationServiceを作成
// recordsがnilの場合は決済セッションを記録しない
func NewPaymentApplicationService(
	gateway parent.CheckoutGateway,
	records donation.CheckoutRecordRepository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *PaymentApplicationService {
	return &PaymentApplicationService{
		gateway:  gateway,
		records:  records,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
		tracer:   otel.Tracer("payment-service"),
	}
}

// CreatePayment 親アプリに決済セッションを作成させ、決済URLを返す
func (s *PaymentApplicationService) CreatePayment(ctx context.Context, in *CreatePaymentInput) (*CreatePaymentResult, error) {
	ctx, span := s.tracer.Start(ctx, "PaymentApplicationService.CreatePayment")
	defer span.End()

	cmd := normalize(in)
	span.SetAttributes(
		attribute.String("user_id", cmd.UserID),
		attribute.String("project_id", cmd.ProjectID),
		attribute.String("type", in.Body.Type),
		attribute.String("tier", cmd.Tier),
	)

	if err := s.validateCommand(cmd); err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	amount, err := parseAmount(in.Body.Amount)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	d, err := donation.NewDonation(amount, donation.ParseKind(in.Body.Type), cmd.Tier)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Creating checkout session", map[string]interface{}{
		"user_id":     cmd.UserID,
		"project_id":  cmd.ProjectID,
		"kind":        d.Kind().String(),
		"tier":        d.Tier(),
		"price_cents": d.PriceCents(),
	})

	checkout, err := s.gateway.CreateCheckout(ctx, cmd.UserID, &parent.CheckoutSessionRequest{
		ProjectID:   cmd.ProjectID,
		ProductName: d.ProductName(),
		Description: d.Description(),
		PriceCents:  d.PriceCents(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Payment processing failed", err, map[string]interface{}{
			"user_id":    cmd.UserID,
			"project_id": cmd.ProjectID,
		})
		if errors.Is(err, parent.ErrNotConfigured) || errors.Is(err, parent.ErrCheckoutFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", donation.ErrPaymentFailed, err)
	}

	s.metrics.RecordCheckout(ctx, d.Kind().String(), d.Tier())
	s.record(ctx, cmd, d)

	return &CreatePaymentResult{
		URL:         checkout.URL,
		ProductName: d.ProductName(),
		PriceCents:  d.PriceCents(),
	}, nil
}

// record 作成された決済セッションを記録（失敗はログのみ）
func (s *PaymentApplicationService) record(ctx context.Context, cmd *checkoutCommand, d *donation.Donation) {
	if s.records == nil {
		return
	}
	rec := donation.NewCheckoutRecord(cmd.UserID, cmd.ProjectID, d)
	if err := s.records.Save(ctx, rec); err != nil {
		s.logger.Warn(ctx, "Failed to save checkout record", map[string]interface{}{
			"record_id": rec.ID(),
			"error":     err.Error(),
		})
	}
}

func (s *PaymentApplicationService) validateCommand(cmd *checkoutCommand) error {
	err := s.validate.Struct(cmd)
	if err == nil {
		return nil
	}
	// IDのエラーをティアのエラーより優先する
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return donation.ErrMissingIdentity
	}
	invalidTier := false
	for _, fe := range verrs {
		switch fe.Field() {
		case "UserID", "ProjectID":
			return donation.ErrMissingIdentity
		case "Tier":
			invalidTier = true
		}
	}
	if invalidTier {
		return donation.ErrInvalidTier
	}
	return donation.ErrMissingIdentity
}

// normalize クエリとボディの表記揺れを吸収
func normalize(in *CreatePaymentInput) *checkoutCommand {
	userID := session.FirstNonEmpty(
		in.Query.Get("uid"),
		in.Query.Get("user_id"),
		in.Query.Get("userId"),
	)
	projectID := session.FirstNonEmpty(
		in.Query.Get("projectId"),
		in.Query.Get("project_id"),
		in.Body.ProjectID,
		in.Body.ProjectIDSnake,
	)
	return &checkoutCommand{
		UserID:    userID,
		ProjectID: projectID,
		Tier:      in.Body.Tier,
	}
}

// parseAmount JSONの数値リテラルのみを金額として受け付ける
func parseAmount(raw []byte) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return decimal.Decimal{}, donation.ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(string(raw))
	if err != nil || !amount.IsPositive() {
		return decimal.Decimal{}, donation.ErrInvalidAmount
	}
	return amount, nil
}
