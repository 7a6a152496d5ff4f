package donation

import "github.com/shopspring/decimal"

// Tier 月額支援のティア
type Tier struct {
	Name        string
	Tagline     string
	Price       decimal.Decimal
	Perks       []string
	Icon        string
	Highlighted bool
}

// ButtonLabel 申し込みボタンの文言
func (t Tier) ButtonLabel() string {
	return "Become a " + t.Name
}

// OneTimeOption 単発支援の選択肢
type OneTimeOption struct {
	Price decimal.Decimal
	Label string
}

// ButtonID ボタンの識別子（ローディング表示に使う）
func (o OneTimeOption) ButtonID() string {
	return KindOneTime.String() + "-" + o.Price.String()
}

// Catalog ストアフロントに並べる商品一覧
type Catalog struct {
	Tiers   []Tier
	OneTime []OneTimeOption
}

// DefaultCatalog 標準の商品一覧を返す
func DefaultCatalog() Catalog {
	return Catalog{
		Tiers: []Tier{
			{
				Name:    "Supporter",
				Tagline: "Perfect for occasional support",
				Price:   decimal.NewFromInt(3),
				Icon:    "coffee",
				Perks: []string{
					"Access to supporter-only posts",
					"Monthly behind-the-scenes updates",
					"My eternal gratitude ❤️",
				},
			},
			{
				Name:        "Champion",
				Tagline:     "For dedicated community members",
				Price:       decimal.NewFromInt(8),
				Icon:        "users",
				Highlighted: true,
				Perks: []string{
					"Everything from Supporter tier",
					"Early access to new content",
					"Monthly Q&A sessions",
					"Discord community access",
				},
			},
			{
				Name:    "Super Fan",
				Tagline: "For the ultimate supporters",
				Price:   decimal.NewFromInt(15),
				Icon:    "gift",
				Perks: []string{
					"Everything from Champion tier",
					"1-on-1 monthly video call",
					"Custom content requests",
					"Exclusive merchandise",
				},
			},
		},
		OneTime: []OneTimeOption{
			{Price: decimal.NewFromInt(3), Label: "One Coffee"},
			{Price: decimal.NewFromInt(5), Label: "Large Coffee"},
			{Price: decimal.NewFromInt(10), Label: "Coffee & Pastry"},
		},
	}
}

// FindTier 名前でティアを検索
func (c Catalog) FindTier(name string) (Tier, bool) {
	for _, t := range c.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}

// EntryTier 最も安いティアを返す（CTAボタン用）
func (c Catalog) EntryTier() Tier {
	entry := c.Tiers[0]
	for _, t := range c.Tiers[1:] {
		if t.Price.LessThan(entry.Price) {
			entry = t
		}
	}
	return entry
}
