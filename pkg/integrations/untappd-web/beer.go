package untappdweb

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.openly.dev/pointy"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"droscher.com/Taproom/pkg/model"
)

type BeerJSON struct {
	Description string `json:"description"`
	Brand       struct {
		Name string `json:"name"`
	} `json:"brand"`
	Sku             uint64 `json:"sku"`
	AggregateRating struct {
		RatingValue float64 `json:"ratingValue"`
	} `json:"aggregateRating"`
}

type BeerScraped struct {
	IDLink  string `attr:"href"          selector:"a.label"`
	Name    string `selector:".name > a"`
	Brewery string `selector:".brewery > a"`
}

type BeerContent struct {
	Description string `selector:".beer-descrption-read-more"`
	Rating      string `selector:".details .num"`
}

// FindBeer scrapes the search results for the query, then every beer page it links to for
// the description, catalog id and rating.
func (u *UntappdWebIntegration) FindBeer(ctx context.Context, search string) ([]model.BeerSuggestion, error) {
	collector := colly.NewCollector(
		colly.AllowedDomains(u.baseURL.Hostname()),
		colly.UserAgent(userAgent),
		colly.StdlibContext(ctx),
	)

	var (
		errs     error
		listings []model.BeerSuggestion
		pages    []string
	)

	collector.OnHTML(".beer-item", func(element *colly.HTMLElement) {
		scraped := BeerScraped{}

		err := element.Unmarshal(&scraped)
		if multierr.AppendInto(&errs, err) {
			u.logger.Error("failed to unmarshal scraped beer", zap.Error(err))

			return
		}

		idString := scraped.IDLink[strings.LastIndex(scraped.IDLink, "/")+1:]

		u.logger.Debug("scraped item from results", zap.String("id", idString), zap.String("name", scraped.Name))

		suggestion := model.BeerSuggestion{
			Name:           scraped.Name,
			Brewery:        scraped.Brewery,
			Style:          trimmedText(element.DOM.Find(".style")),
			Degree:         extractABV(trimmedText(element.DOM.Find(".abv"))),
			ExternalSource: IntegrationName,
		}

		if externalID, err := strconv.ParseUint(idString, 10, 64); err == nil {
			suggestion.ExternalID = pointy.Uint64(externalID)
		}

		listings = append(listings, suggestion)
		pages = append(pages, idString)
	})

	collector.OnError(func(response *colly.Response, err error) {
		u.logger.Error("error while scraping beer search results", zap.String("url", response.Request.URL.String()), zap.Error(err))
	})

	u.logger.Info("scraping query results", zap.String("query", search))

	if err := collector.Visit(u.pageURL("search", url.Values{"q": {search}})); err != nil {
		return nil, err
	}

	var (
		wg    sync.WaitGroup
		mutex sync.Mutex
	)

	for index := range listings {
		wg.Add(1)

		go func() {
			defer wg.Done()

			err := u.getBeerData(collector.Clone(), pages[index], &listings[index])

			mutex.Lock()
			multierr.AppendInto(&errs, err)
			mutex.Unlock()
		}()
	}

	wg.Wait()

	u.logger.Info("finished scraping query results", zap.Int("results", len(listings)), zap.Error(errs))

	return listings, errs
}

func (u *UntappdWebIntegration) getBeerData(detailCollector *colly.Collector, idString string, suggestion *model.BeerSuggestion) error {
	detailCollector.OnHTML("head script[type='application/ld+json']", func(element *colly.HTMLElement) {
		var beerJSON BeerJSON
		if err := json.Unmarshal([]byte(element.Text), &beerJSON); err != nil {
			u.logger.Warn("failed to parse beer JSON data", zap.String("id", idString), zap.Error(err))

			return
		}

		suggestion.Description = beerJSON.Description

		if beerJSON.Sku != 0 {
			suggestion.ExternalID = pointy.Uint64(beerJSON.Sku)
		}

		if beerJSON.AggregateRating.RatingValue > 0 {
			suggestion.ExternalRating = pointy.Float64(beerJSON.AggregateRating.RatingValue)
		}

		if suggestion.Brewery == "" {
			suggestion.Brewery = beerJSON.Brand.Name
		}
	})

	detailCollector.OnHTML(".content", func(element *colly.HTMLElement) {
		beerContent := BeerContent{}
		if err := element.Unmarshal(&beerContent); err != nil {
			return
		}

		if len(suggestion.Description) == 0 {
			suggestion.Description = strings.TrimSpace(beerContent.Description)
		}

		if suggestion.ExternalRating == nil {
			if rating, err := strconv.ParseFloat(strings.TrimSpace(beerContent.Rating), 64); err == nil {
				suggestion.ExternalRating = pointy.Float64(rating)
			}
		}
	})

	u.logger.Debug("scraping beer page", zap.String("id", idString))

	return detailCollector.Visit(u.pageURL("beer/"+idString, nil))
}

func trimmedText(selection *goquery.Selection) string {
	return strings.TrimSpace(selection.First().Text())
}

func extractABV(abv string) *float64 {
	before, _, found := strings.Cut(abv, "%")
	if !found {
		return nil
	}

	degree, err := strconv.ParseFloat(strings.TrimSpace(before), 64)
	if err != nil {
		return nil
	}

	return &degree
}
