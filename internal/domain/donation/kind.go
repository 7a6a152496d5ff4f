package donation

// Kind 支援の種類を表す値オブジェクト
type Kind string

const (
	KindOneTime      Kind = "one-time"     // 単発
	KindSubscription Kind = "subscription" // 月額
)

// ParseKind 文字列からKindを作成（subscription以外は単発として扱う）
func ParseKind(s string) Kind {
	if s == string(KindSubscription) {
		return KindSubscription
	}
	return KindOneTime
}

// String 文字列表現を返す
func (k Kind) String() string {
	return string(k)
}

// IsSubscription 月額支援かどうかを返す
func (k Kind) IsSubscription() bool {
	return k == KindSubscription
}
