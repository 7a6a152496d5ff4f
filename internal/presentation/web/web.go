package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PageTemplate ストアフロントページのテンプレート名
const PageTemplate = "index.html"

var icons = map[string]string{
	"coffee": "☕",
	"users":  "👥",
	"gift":   "🎁",
	"heart":  "❤️",
	"star":   "⭐",
}

// ParseTemplates 埋め込みテンプレートを読み込む
func ParseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"icon": func(name string) string {
			if s, ok := icons[name]; ok {
				return s
			}
			return icons["coffee"]
		},
	}).ParseFS(templateFS, "templates/*.html")
}

// StaticFS /static 配下で配信するファイル
func StaticFS() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
