package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	storefrontapp "coffee-server/internal/application/storefront"
	"coffee-server/internal/presentation/web"

	"github.com/labstack/echo/v4"
)

// StorefrontHandler ストアフロントページのハンドラー
type StorefrontHandler struct {
	storefrontService *storefrontapp.StorefrontApplicationService
	tmpl              *template.Template
}

// NewStorefrontHandler 新しいStorefrontHandlerを作成
func NewStorefrontHandler(storefrontService *storefrontapp.StorefrontApplicationService) (*StorefrontHandler, error) {
	tmpl, err := web.ParseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &StorefrontHandler{
		storefrontService: storefrontService,
		tmpl:              tmpl,
	}, nil
}

// Page ストアフロントページを描画
func (h *StorefrontHandler) Page(c echo.Context) error {
	view := h.storefrontService.Page(c.Request().Context(), c.QueryParams())

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, web.PageTemplate, view); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
