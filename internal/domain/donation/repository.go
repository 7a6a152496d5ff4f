package donation

import "context"

// CheckoutRecordRepository 決済セッション記録のリポジトリインターフェース
type CheckoutRecordRepository interface {
	// Save 記録を保存
	Save(ctx context.Context, record *CheckoutRecord) error

	// Stats 集計値を取得
	Stats(ctx context.Context) (Stats, error)
}

// StatsCache 集計値のキャッシュインターフェース
type StatsCache interface {
	// Get キャッシュされた集計値を取得（無ければfalse）
	Get(ctx context.Context) (Stats, bool, error)

	// Set 集計値をキャッシュ
	Set(ctx context.Context, stats Stats) error
}
