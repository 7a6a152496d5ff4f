package storefront

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"coffee-server/internal/domain/donation"
	"coffee-server/internal/domain/session"
	otelinfra "coffee-server/internal/infrastructure/observability/otel"
)

// AdminChecker 管理者判定
type AdminChecker interface {
	AdminStatus(ctx context.Context, sess session.Session) *bool
}

// StorefrontApplicationService ストアフロントページのアプリケーションサービス
type StorefrontApplicationService struct {
	catalog     donation.Catalog
	baseline    donation.Stats
	creatorName string
	records     donation.CheckoutRecordRepository
	cache       donation.StatsCache
	admin       AdminChecker
	printer     *message.Printer
	logger      *otelinfra.Logger
	tracer      trace.Tracer
}

// NewStorefrontApplicationService 新しいStorefrontApplicationServiceを作成
// recordsとcacheはnilでもよい
func NewStorefrontApplicationService(
	catalog donation.Catalog,
	baseline donation.Stats,
	creatorName string,
	records donation.CheckoutRecordRepository,
	cache donation.StatsCache,
	admin AdminChecker,
	logger *otelinfra.Logger,
) *StorefrontApplicationService {
	return &StorefrontApplicationService{
		catalog:     catalog,
		baseline:    baseline,
		creatorName: creatorName,
		records:     records,
		cache:       cache,
		admin:       admin,
		printer:     message.NewPrinter(language.English),
		logger:      logger,
		tracer:      otel.Tracer("storefront-service"),
	}
}

// Page ページの表示モデルを組み立てる
func (s *StorefrontApplicationService) Page(ctx context.Context, query url.Values) *PageView {
	ctx, span := s.tracer.Start(ctx, "StorefrontApplicationService.Page")
	defer span.End()

	stats := s.Stats(ctx)
	sess := session.ResolveSession(query)

	view := &PageView{
		CreatorName: s.creatorName,
		Supporters:  s.printer.Sprintf("%d", stats.Supporters),
		Coffees:     s.printer.Sprintf("%d", stats.Coffees),
		Tiers:       make([]TierView, 0, len(s.catalog.Tiers)),
		OneTime:     make([]OneTimeView, 0, len(s.catalog.OneTime)),
		EntryTier:   tierView(s.catalog.EntryTier()),
		Auth: AuthView{
			LoggedIn:  sess.IsLoggedIn(),
			UserID:    sess.UserID,
			ProjectID: sess.ProjectID,
		},
	}
	for _, t := range s.catalog.Tiers {
		view.Tiers = append(view.Tiers, tierView(t))
	}
	for _, o := range s.catalog.OneTime {
		view.OneTime = append(view.OneTime, OneTimeView{
			Amount:   o.Price.String(),
			Label:    "$" + o.Price.String() + " - " + o.Label,
			ButtonID: o.ButtonID(),
		})
	}

	if s.admin != nil {
		if isAdmin := s.admin.AdminStatus(ctx, sess); isAdmin != nil {
			view.Auth.IsAdmin = *isAdmin
		}
	}

	span.SetAttributes(
		attribute.Bool("logged_in", view.Auth.LoggedIn),
		attribute.Bool("is_admin", view.Auth.IsAdmin),
	)
	return view
}

// Stats 表示用の集計値（基準値＋記録の集計）を返す
// 集計に失敗した場合は基準値のみを返す
func (s *StorefrontApplicationService) Stats(ctx context.Context) donation.Stats {
	if s.records == nil {
		return s.baseline
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn(ctx, "Failed to read stats cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else if ok {
			return s.baseline.Add(cached)
		}
	}

	recorded, err := s.records.Stats(ctx)
	if err != nil {
		s.logger.Warn(ctx, "Failed to aggregate checkout records", map[string]interface{}{
			"error": err.Error(),
		})
		return s.baseline
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, recorded); err != nil {
			s.logger.Warn(ctx, "Failed to write stats cache", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return s.baseline.Add(recorded)
}

func tierView(t donation.Tier) TierView {
	return TierView{
		Name:        t.Name,
		Tagline:     t.Tagline,
		Amount:      t.Price.String(),
		PriceLabel:  "$" + t.Price.String(),
		Perks:       t.Perks,
		Icon:        t.Icon,
		Highlighted: t.Highlighted,
		ButtonLabel: t.ButtonLabel(),
	}
}
