package server

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"droscher.com/Taproom/pkg/integrations"
	"droscher.com/Taproom/pkg/model"
	"droscher.com/Taproom/pkg/query"
	"droscher.com/Taproom/pkg/repository"
)

type BeerServer struct {
	repository   repository.BeerRepository
	integrations map[string]integrations.BeerIntegration
	logger       *zap.Logger
}

func NewBeerServer(repository repository.BeerRepository, beerIntegrations map[string]integrations.BeerIntegration, logger *zap.Logger) *BeerServer {
	return &BeerServer{repository: repository, integrations: beerIntegrations, logger: logger}
}

type addBeerRequest struct {
	Name        string   `binding:"required"       json:"name"`
	Description *string  `json:"description"`
	Degree      *float64 `binding:"required,gte=0" json:"degree"`
	Price       *float64 `binding:"required,gte=0" json:"price"`
}

type updateBeerRequest struct {
	Name        *string  `binding:"omitempty,min=1" json:"name"`
	Description *string  `json:"description"`
	Degree      *float64 `binding:"omitempty,gte=0" json:"degree"`
	Price       *float64 `binding:"omitempty,gte=0" json:"price"`
	BarID       *uint    `binding:"omitempty,gt=0"  json:"bar_id"`
}

// LookupBeers searches every configured catalog integration. A failing integration is logged
// and skipped so the others can still answer.
func (b *BeerServer) LookupBeers(c *gin.Context) {
	search := c.Query("q")
	if search == "" {
		abortWithError(c, b.logger, invalidInput(errMissingQuery))

		return
	}

	names := make([]string, 0, len(b.integrations))
	for name := range b.integrations {
		names = append(names, name)
	}

	sort.Strings(names)

	suggestions := []model.BeerSuggestion{}

	for _, name := range names {
		found, err := b.integrations[name].FindBeer(c.Request.Context(), search)
		if err != nil {
			b.logger.Error("failed beer search", zap.String("integration", name), zap.Error(err))

			continue
		}

		suggestions = append(suggestions, found...)
	}

	c.JSON(http.StatusOK, SuggestionsFromModel(suggestions))
}

func (b *BeerServer) AddBeer(c *gin.Context) {
	barID, err := pathID(c, "bar_id")
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	var request addBeerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, b.logger, invalidInput(err))

		return
	}

	beer, err := b.repository.AddBeer(c.Request.Context(), model.Beer{
		Name:        request.Name,
		Description: request.Description,
		Degree:      *request.Degree,
		Price:       *request.Price,
		BarID:       barID,
	})
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	c.JSON(http.StatusCreated, BeerFromModel(beer))
}

func (b *BeerServer) GetBeer(c *gin.Context) {
	beerID, err := pathID(c, "beer_id")
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	beer, err := b.repository.GetBeerByID(c.Request.Context(), beerID)
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	c.JSON(http.StatusOK, BeerFromModel(beer))
}

// ListBeers lists the beers of a bar, filtered by the degree_min, degree_max, price_min,
// price_max, name, sort, limit and offset query parameters.
func (b *BeerServer) ListBeers(c *gin.Context) {
	barID, err := pathID(c, "bar_id")
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	filter, err := query.ParseBeerFilter(c.Request.URL.Query())
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	filter.BarID = &barID

	beers, err := b.repository.ListBeers(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	c.JSON(http.StatusOK, BeersFromModel(beers))
}

// AverageDegree reports the mean degree of a bar's beers, null when it has none.
func (b *BeerServer) AverageDegree(c *gin.Context) {
	barID, err := pathID(c, "bar_id")
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	average, err := b.repository.AverageDegree(c.Request.Context(), barID)
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	c.JSON(http.StatusOK, BarDegree{BarID: barID, AverageDegree: average})
}

func (b *BeerServer) UpdateBeer(c *gin.Context) {
	beerID, err := pathID(c, "beer_id")
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	var request updateBeerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, b.logger, invalidInput(err))

		return
	}

	beer, err := b.repository.UpdateBeer(c.Request.Context(), beerID, model.BeerPatch(request))
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	c.JSON(http.StatusOK, BeerFromModel(beer))
}

func (b *BeerServer) DeleteBeer(c *gin.Context) {
	beerID, err := pathID(c, "beer_id")
	if err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	if err := b.repository.DeleteBeer(c.Request.Context(), beerID); err != nil {
		abortWithError(c, b.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}
