package donation

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutRecord 親アプリで作成された決済セッションの記録
type CheckoutRecord struct {
	id         string
	userID     string
	projectID  string
	kind       Kind
	tier       string
	priceCents int64
	createdAt  time.Time
}

// NewCheckoutRecord 新しいCheckoutRecordを作成
func NewCheckoutRecord(userID, projectID string, d *Donation) *CheckoutRecord {
	return &CheckoutRecord{
		id:         uuid.NewString(),
		userID:     userID,
		projectID:  projectID,
		kind:       d.Kind(),
		tier:       d.Tier(),
		priceCents: d.PriceCents(),
		createdAt:  time.Now(),
	}
}

// RestoreCheckoutRecord 永続化された値からCheckoutRecordを復元
func RestoreCheckoutRecord(id, userID, projectID string, kind Kind, tier string, priceCents int64, createdAt time.Time) *CheckoutRecord {
	return &CheckoutRecord{
		id:         id,
		userID:     userID,
		projectID:  projectID,
		kind:       kind,
		tier:       tier,
		priceCents: priceCents,
		createdAt:  createdAt,
	}
}

// ID 記録IDを返す
func (r *CheckoutRecord) ID() string {
	return r.id
}

// UserID 購入者IDを返す
func (r *CheckoutRecord) UserID() string {
	return r.userID
}

// ProjectID プロジェクトIDを返す
func (r *CheckoutRecord) ProjectID() string {
	return r.projectID
}

// Kind 支援の種類を返す
func (r *CheckoutRecord) Kind() Kind {
	return r.kind
}

// Tier ティア名を返す
func (r *CheckoutRecord) Tier() string {
	return r.tier
}

// PriceCents セント単位の価格を返す
func (r *CheckoutRecord) PriceCents() int64 {
	return r.priceCents
}

// CreatedAt 作成日時を返す
func (r *CheckoutRecord) CreatedAt() time.Time {
	return r.createdAt
}

// Stats ストアフロントに表示する集計値
type Stats struct {
	Supporters int64 // 支援者数（ユニークな購入者）
	Coffees    int64 // 単発支援の件数
}

// Add 別の集計値を加算した結果を返す
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Supporters: s.Supporters + other.Supporters,
		Coffees:    s.Coffees + other.Coffees,
	}
}
