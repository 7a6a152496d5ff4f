package storefront

// PageView ストアフロントページの表示モデル
type PageView struct {
	CreatorName string
	Supporters  string
	Coffees     string
	Tiers       []TierView
	OneTime     []OneTimeView
	EntryTier   TierView
	Auth        AuthView
}

// TierView 月額ティアの表示モデル
type TierView struct {
	Name        string
	Tagline     string
	Amount      string // data属性に埋め込む金額（例: "3"）
	PriceLabel  string // 表示用（例: "$3"）
	Perks       []string
	Icon        string
	Highlighted bool
	ButtonLabel string
}

// OneTimeView 単発支援ボタンの表示モデル
type OneTimeView struct {
	Amount   string
	Label    string
	ButtonID string
}

// AuthView ログイン状態バナーの表示モデル
type AuthView struct {
	LoggedIn  bool
	UserID    string
	ProjectID string
	IsAdmin   bool
}
