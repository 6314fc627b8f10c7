package service

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/gommon/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Logger 為 service 使用的最小日誌介面，echo.Logger 與 gommon log 皆滿足
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// IconResolver 解析網站圖示，失敗時回傳 nil
type IconResolver interface {
	Resolve(ctx context.Context, rawURL string) *string
}

// FaviconResolver 對網站根目錄的 /favicon.ico 發出 GET，2xx 視為存在
type FaviconResolver struct {
	client *http.Client
	logger Logger
}

func NewFaviconResolver(timeout time.Duration, logger Logger) *FaviconResolver {
	if logger == nil {
		logger = log.New("favicon")
	}
	return &FaviconResolver{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

func (r *FaviconResolver) Resolve(ctx context.Context, rawURL string) *string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		r.logger.Warnf("favicon: unusable url %q", rawURL)
		return nil
	}
	icon := u.Scheme + "://" + u.Host + "/favicon.ico"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, icon, nil)
	if err != nil {
		r.logger.Warnf("favicon: %v", err)
		return nil
	}
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warnf("favicon: fetch %s: %v", icon, err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.logger.Infof("favicon: %s returned %d", icon, resp.StatusCode)
		return nil
	}
	return &icon
}
