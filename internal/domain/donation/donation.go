package donation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MaxPriceCents 親アプリに渡せる価格の上限（float64で正確に表せる最大の整数）
const MaxPriceCents = 1<<53 - 1

// Donation 支援1回分の値オブジェクト
type Donation struct {
	amount     decimal.Decimal // ドル建て
	priceCents int64
	kind       Kind
	tier       string
}

// NewDonation 新しいDonationを作成
func NewDonation(amount decimal.Decimal, kind Kind, tier string) (*Donation, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	cents, ok := toPriceCents(amount)
	if !ok {
		return nil, ErrInvalidAmount
	}
	return &Donation{
		amount:     amount,
		priceCents: cents,
		kind:       kind,
		tier:       tier,
	}, nil
}

// toPriceCents 金額をfloat64に変換して100倍し、0.5を切り上げる（1.005は100セント）
// 1セント未満になる金額と上限を超える金額はfalse
func toPriceCents(amount decimal.Decimal) (int64, bool) {
	cents := math.Floor(amount.InexactFloat64()*100 + 0.5)
	if cents < 1 || cents > MaxPriceCents {
		return 0, false
	}
	return int64(cents), true
}

// Amount 金額を返す
func (d *Donation) Amount() decimal.Decimal {
	return d.amount
}

// Kind 支援の種類を返す
func (d *Donation) Kind() Kind {
	return d.kind
}

// Tier ティア名を返す
func (d *Donation) Tier() string {
	return d.tier
}

// PriceCents セント単位の価格を返す
func (d *Donation) PriceCents() int64 {
	return d.priceCents
}

// ProductName 親アプリに渡す商品名を返す
func (d *Donation) ProductName() string {
	if d.kind.IsSubscription() {
		if d.tier != "" {
			return fmt.Sprintf("%s (monthly credits)", d.tier)
		}
		return "Subscription (monthly credits)"
	}
	return fmt.Sprintf("Coffee x%s", d.amount.String())
}

// Description 親アプリに渡す商品説明を返す
func (d *Donation) Description() string {
	if d.kind.IsSubscription() {
		return "Recurring support converted to credits"
	}
	return "One-time support converted to credits"
}
