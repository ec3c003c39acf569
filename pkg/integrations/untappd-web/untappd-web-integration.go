package untappdweb

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

const (
	IntegrationName = "untappd_web"
	userAgent       = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:15.0) Gecko/20100101 Firefox/15.0.1"
)

type UntappdWebIntegration struct {
	baseURL *url.URL
	logger  *zap.Logger
}

func NewUntappdWebIntegration(baseURL string, logger *zap.Logger) (*UntappdWebIntegration, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Hostname() == "" {
		return nil, fmt.Errorf("invalid untappd url %q", baseURL)
	}

	return &UntappdWebIntegration{baseURL: parsed, logger: logger}, nil
}

func (u *UntappdWebIntegration) pageURL(path string, query url.Values) string {
	page := u.baseURL.JoinPath(path)
	page.RawQuery = query.Encode()

	return page.String()
}
