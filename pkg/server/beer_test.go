package server_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/stretchr/testify/mock"

	"droscher.com/Taproom/pkg/model"
	"droscher.com/Taproom/pkg/query"
	"droscher.com/Taproom/pkg/repository"
	"droscher.com/Taproom/pkg/server"
)

func (suite *ServerTestSuite) TestAddBeer() {
	expected := model.Beer{Name: "IPA", Degree: 6, Price: 5, BarID: 1}
	stored := expected
	stored.ID = 1

	suite.beers.On("AddBeer", mock.Anything, expected).Return(&stored, nil).Once()

	recorder := suite.do(http.MethodPost, "/bars/1/beers", `{"name":"IPA","degree":6.0,"price":5.0}`, true)
	suite.Require().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())

	var beer server.Beer
	suite.decode(recorder, &beer)
	suite.Equal(uint(1), beer.ID)
	suite.Equal(uint(1), beer.BarID)
	suite.InDelta(6.0, beer.Degree, 0.001)
}

func (suite *ServerTestSuite) TestAddBeer_ZeroValuesAllowed() {
	expected := model.Beer{Name: "Water", BarID: 1}
	stored := expected
	stored.ID = 2

	suite.beers.On("AddBeer", mock.Anything, expected).Return(&stored, nil).Once()

	recorder := suite.do(http.MethodPost, "/bars/1/beers", `{"name":"Water","degree":0,"price":0}`, true)
	suite.Equal(http.StatusCreated, recorder.Code, recorder.Body.String())
}

func (suite *ServerTestSuite) TestAddBeer_MissingFields() {
	recorder := suite.do(http.MethodPost, "/bars/1/beers", `{"name":"IPA"}`, true)
	suite.requireError(recorder, http.StatusBadRequest, "validation_error")
}

func (suite *ServerTestSuite) TestAddBeer_NegativePrice() {
	recorder := suite.do(http.MethodPost, "/bars/1/beers", `{"name":"IPA","degree":6,"price":-1}`, true)
	suite.requireError(recorder, http.StatusBadRequest, "validation_error")
}

func (suite *ServerTestSuite) TestAddBeer_UnknownBar() {
	suite.beers.On("AddBeer", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: bar 9", repository.ErrNotFound)).Once()

	recorder := suite.do(http.MethodPost, "/bars/9/beers", `{"name":"IPA","degree":6,"price":5}`, true)
	suite.requireError(recorder, http.StatusNotFound, "not_found")
}

func (suite *ServerTestSuite) TestListBeers() {
	matches := mock.MatchedBy(func(filter query.BeerFilter) bool {
		return filter.BarID != nil && *filter.BarID == 1 &&
			filter.DegreeMin != nil && *filter.DegreeMin == 5 &&
			filter.PriceMax != nil && *filter.PriceMax == 6 &&
			filter.DegreeMax == nil && filter.PriceMin == nil
	})
	suite.beers.On("ListBeers", mock.Anything, matches).
		Return([]*model.Beer{{ID: 1, Name: "IPA", Degree: 6, Price: 5, BarID: 1}}, nil).Once()

	recorder := suite.do(http.MethodGet, "/bars/1/beers?degree_min=5&price_max=6", "", false)
	suite.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var beers []server.Beer
	suite.decode(recorder, &beers)
	suite.Require().Len(beers, 1)
	suite.Equal("IPA", beers[0].Name)
}

func (suite *ServerTestSuite) TestListBeers_InvalidFilters() {
	recorder := suite.do(http.MethodGet, "/bars/1/beers?degree_min=-1&price_max=cheap", "", false)
	body := suite.requireError(recorder, http.StatusBadRequest, "validation_error")
	suite.Contains(body["message"], "degree_min: must not be negative")
	suite.Contains(body["message"], `price_max: "cheap" is not a number`)
}

func (suite *ServerTestSuite) TestUpdateBeer_MoveToOtherBar() {
	barID := uint(2)
	suite.beers.On("UpdateBeer", mock.Anything, uint(1), model.BeerPatch{BarID: &barID}).
		Return(&model.Beer{ID: 1, Name: "IPA", BarID: 2}, nil).Once()

	recorder := suite.do(http.MethodPut, "/beers/1", `{"bar_id":2}`, true)
	suite.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var beer server.Beer
	suite.decode(recorder, &beer)
	suite.Equal(uint(2), beer.BarID)
}

func (suite *ServerTestSuite) TestGetBeer() {
	suite.beers.On("GetBeerByID", mock.Anything, uint(4)).Return(&model.Beer{ID: 4, Name: "Stout"}, nil).Once()

	recorder := suite.do(http.MethodGet, "/beers/4", "", false)
	suite.Require().Equal(http.StatusOK, recorder.Code)
}

func (suite *ServerTestSuite) TestDeleteBeer() {
	suite.beers.On("DeleteBeer", mock.Anything, uint(4)).Return(nil).Once()

	recorder := suite.do(http.MethodDelete, "/beers/4", "", true)
	suite.Equal(http.StatusNoContent, recorder.Code)
}

func (suite *ServerTestSuite) TestLookupBeers() {
	degree := 6.5
	suite.catalog.On("FindBeer", mock.Anything, "hazy").
		Return([]model.BeerSuggestion{{Name: "Hazy IPA", Degree: &degree, Brewery: "Cloudwater", ExternalSource: "catalog"}}, nil).Once()

	recorder := suite.do(http.MethodGet, "/beers/lookup?q=hazy", "", false)
	suite.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var suggestions []server.BeerSuggestion
	suite.decode(recorder, &suggestions)
	suite.Require().Len(suggestions, 1)
	suite.Equal("Cloudwater", suggestions[0].Brewery)
}

func (suite *ServerTestSuite) TestLookupBeers_IntegrationFailure() {
	suite.catalog.On("FindBeer", mock.Anything, "hazy").Return(nil, errors.New("catalog unavailable")).Once()

	recorder := suite.do(http.MethodGet, "/beers/lookup?q=hazy", "", false)
	suite.Require().Equal(http.StatusOK, recorder.Code)
	suite.JSONEq(`[]`, recorder.Body.String())
	suite.Equal(1, suite.observedLogs.FilterMessage("failed beer search").Len())
}

func (suite *ServerTestSuite) TestLookupBeers_MissingQuery() {
	recorder := suite.do(http.MethodGet, "/beers/lookup", "", false)
	body := suite.requireError(recorder, http.StatusBadRequest, "validation_error")
	suite.Contains(body["message"], "query parameter q is required")
}

func (suite *ServerTestSuite) TestAverageDegree() {
	average := 6.5
	suite.beers.On("AverageDegree", mock.Anything, uint(1)).Return(&average, nil).Once()

	recorder := suite.do(http.MethodGet, "/bars/1/degree", "", false)
	suite.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())
	suite.JSONEq(`{"bar_id":1,"average_degree":6.5}`, recorder.Body.String())
}

func (suite *ServerTestSuite) TestAverageDegree_NoBeers() {
	suite.beers.On("AverageDegree", mock.Anything, uint(1)).Return(nil, nil).Once()

	recorder := suite.do(http.MethodGet, "/bars/1/degree", "", false)
	suite.Require().Equal(http.StatusOK, recorder.Code)
	suite.JSONEq(`{"bar_id":1,"average_degree":null}`, recorder.Body.String())
}

func (suite *ServerTestSuite) TestAverageDegree_UnknownBar() {
	suite.beers.On("AverageDegree", mock.Anything, uint(9)).
		Return(nil, fmt.Errorf("%w: bar 9", repository.ErrNotFound)).Once()

	recorder := suite.do(http.MethodGet, "/bars/9/degree", "", false)
	suite.requireError(recorder, http.StatusNotFound, "not_found")
}
