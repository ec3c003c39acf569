package server_test

import (
	"fmt"
	"net/http"

	"github.com/stretchr/testify/mock"

	"droscher.com/Taproom/pkg/model"
	"droscher.com/Taproom/pkg/repository"
	"droscher.com/Taproom/pkg/server"
)

// TestBarLifecycle walks a bar from creation through a completed order to its deletion.
func (suite *ServerTestSuite) TestBarLifecycle() {
	bar := &model.Bar{ID: 1, Name: "Joe's", Address: "1 Main St", Email: "joe@x.com", UserID: &suite.owner.ID}
	beer := &model.Beer{ID: 1, Name: "IPA", Degree: 6, Price: 5, BarID: 1}
	order := &model.Order{ID: 1, Name: "Order-A", Price: 5, BarID: 1, Date: orderDay, Status: model.OrderStatusInProgress}
	completed := *order
	completed.Status = model.OrderStatusCompleted
	name := "x"

	suite.bars.On("AddBar", mock.Anything, mock.Anything).Return(bar, nil).Once()
	suite.beers.On("AddBeer", mock.Anything, mock.Anything).Return(beer, nil).Once()
	suite.orders.On("AddOrder", mock.Anything, mock.Anything).Return(order, nil).Once()
	suite.orders.On("AddBeerToOrder", mock.Anything, uint(1), uint(1), 2).
		Return(&model.BeerOrderLine{OrderID: 1, BeerID: 1, Quantity: 2}, nil).Once()
	suite.orders.On("ListBeersForOrder", mock.Anything, uint(1)).
		Return([]*model.OrderedBeer{{Beer: *beer, Quantity: 2}}, nil).Once()
	suite.orders.On("UpdateOrder", mock.Anything, uint(1), mock.MatchedBy(func(patch model.OrderPatch) bool {
		return patch.Status != nil && *patch.Status == model.OrderStatusCompleted
	})).Return(&completed, nil).Once()
	suite.orders.On("UpdateOrder", mock.Anything, uint(1), model.OrderPatch{Name: &name}).
		Return(nil, fmt.Errorf("%w: order 1", repository.ErrOrderCompleted)).Once()
	suite.bars.On("DeleteBar", mock.Anything, uint(1)).Return(nil).Once()
	suite.beers.On("GetBeerByID", mock.Anything, uint(1)).Return(nil, fmt.Errorf("%w: beer 1", repository.ErrNotFound)).Once()
	suite.orders.On("GetOrderByID", mock.Anything, uint(1)).Return(nil, fmt.Errorf("%w: order 1", repository.ErrNotFound)).Once()

	suite.Require().Equal(http.StatusCreated,
		suite.do(http.MethodPost, "/bars", `{"name":"Joe's","address":"1 Main St","email":"joe@x.com"}`, true).Code)
	suite.Require().Equal(http.StatusCreated,
		suite.do(http.MethodPost, "/bars/1/beers", `{"name":"IPA","degree":6.0,"price":5.0}`, true).Code)
	suite.Require().Equal(http.StatusCreated,
		suite.do(http.MethodPost, "/bars/1/orders", `{"name":"Order-A","price":5.0,"date":"2024-06-15","status":"in-progress"}`, true).Code)
	suite.Require().Equal(http.StatusCreated,
		suite.do(http.MethodPost, "/orders/1/beers/1", `{"quantity":2}`, true).Code)

	recorder := suite.do(http.MethodGet, "/orders/1/beers", "", false)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var beers []server.OrderedBeer
	suite.decode(recorder, &beers)
	suite.Require().Len(beers, 1)
	suite.Equal(server.OrderedBeer{Beer: server.BeerFromModel(beer), Quantity: 2}, beers[0])

	suite.Require().Equal(http.StatusOK, suite.do(http.MethodPut, "/orders/1", `{"status":"completed"}`, true).Code)
	suite.requireError(suite.do(http.MethodPut, "/orders/1", `{"name":"x"}`, true), http.StatusConflict, "order_completed")

	suite.Require().Equal(http.StatusNoContent, suite.do(http.MethodDelete, "/bars/1", "", true).Code)
	suite.requireError(suite.do(http.MethodGet, "/beers/1", "", false), http.StatusNotFound, "not_found")
	suite.requireError(suite.do(http.MethodGet, "/orders/1", "", false), http.StatusNotFound, "not_found")
}
