package session

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coffee-server/internal/domain/parent"
	"coffee-server/internal/domain/session"
	otelinfra "coffee-server/internal/infrastructure/observability/otel"
)

// SessionApplicationService セッション・管理者判定のアプリケーションサービス
type SessionApplicationService struct {
	gateway parent.StatusGateway
	logger  *otelinfra.Logger
	metrics *otelinfra.Metrics
	tracer  trace.Tracer
}

// NewSessionApplicationService 新しいSessionApplicationServiceを作成
func NewSessionApplicationService(
	gateway parent.StatusGateway,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *SessionApplicationService {
	return &SessionApplicationService{
		gateway: gateway,
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("session-service"),
	}
}

// CheckStatus 親アプリのステータス確認APIを中継
func (s *SessionApplicationService) CheckStatus(ctx context.Context, req *CheckStatusRequest) (*CheckStatusResponse, error) {
	ctx, span := s.tracer.Start(ctx, "SessionApplicationService.CheckStatus")
	defer span.End()

	sess := session.Session{
		UserID:    session.Coalesce(req.UserID, req.UserIDSnake),
		ProjectID: session.Coalesce(req.ProjectID, req.ProjectIDSnake),
	}
	span.SetAttributes(
		attribute.String("user_id", sess.UserID),
		attribute.String("project_id", sess.ProjectID),
	)

	if err := sess.Validate(); err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	result, err := s.gateway.CheckStatus(ctx, sess.UserID, sess.ProjectID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Status check failed", err, map[string]interface{}{
			"user_id":    sess.UserID,
			"project_id": sess.ProjectID,
		})
		return nil, fmt.Errorf("%w: %w", session.ErrStatusCheckFailed, err)
	}

	span.SetAttributes(attribute.Int("upstream.status_code", result.StatusCode))
	return &CheckStatusResponse{
		StatusCode: result.StatusCode,
		Body:       result.Body,
	}, nil
}

// AdminStatus 管理者かどうかを判定
// ログインしていない場合はnil、判定に失敗した場合はfalseを返す
func (s *SessionApplicationService) AdminStatus(ctx context.Context, sess session.Session) *bool {
	if !sess.IsLoggedIn() {
		return nil
	}

	ctx, span := s.tracer.Start(ctx, "SessionApplicationService.AdminStatus")
	defer span.End()

	isAdmin := false
	result, err := s.gateway.CheckStatus(ctx, sess.UserID, sess.ProjectID)
	if err != nil {
		span.RecordError(err)
		s.logger.Warn(ctx, "Failed to check admin status", map[string]interface{}{
			"user_id":    sess.UserID,
			"project_id": sess.ProjectID,
			"error":      err.Error(),
		})
	} else {
		isAdmin = result.IsAdmin()
	}

	span.SetAttributes(attribute.Bool("is_admin", isAdmin))
	s.metrics.RecordAdminCheck(ctx, isAdmin)
	return &isAdmin
}
