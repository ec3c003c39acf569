package integrations

import (
	"context"

	"go.uber.org/zap"

	"droscher.com/Taproom/configs"
	untappdweb "droscher.com/Taproom/pkg/integrations/untappd-web"
	"droscher.com/Taproom/pkg/model"
)

// BeerIntegration searches an external beer catalog. Suggestions are never stored; they only
// help fill in a new beer.
type BeerIntegration interface {
	FindBeer(ctx context.Context, search string) ([]model.BeerSuggestion, error)
}

func GetIntegration(name string, conf *configs.Config, logger *zap.Logger) (BeerIntegration, error) {
	if name == untappdweb.IntegrationName {
		return untappdweb.NewUntappdWebIntegration(conf.Integrations.UntappdURL, logger)
	}

	return nil, nil //nolint:nilnil // unknown integrations are skipped by the caller
}

// FromConfig builds every beer integration named in the configuration, keyed by name.
// Unknown or misconfigured integrations are logged and left out.
func FromConfig(conf *configs.Config, logger *zap.Logger) map[string]BeerIntegration {
	result := make(map[string]BeerIntegration, len(conf.Integrations.Beer))

	for _, name := range conf.Integrations.Beer {
		integration, err := GetIntegration(name, conf, logger)
		if err != nil {
			logger.Error("failed to configure beer integration", zap.String("integration", name), zap.Error(err))

			continue
		}

		if integration == nil {
			logger.Warn("unknown beer integration", zap.String("integration", name))

			continue
		}

		result[name] = integration
	}

	return result
}
