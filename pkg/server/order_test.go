package server_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/stretchr/testify/mock"

	"droscher.com/Taproom/pkg/model"
	"droscher.com/Taproom/pkg/query"
	"droscher.com/Taproom/pkg/repository"
	"droscher.com/Taproom/pkg/server"
)

var orderDay = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func (suite *ServerTestSuite) TestAddOrder() {
	expected := model.Order{Name: "Order-A", Price: 5, BarID: 1, Date: orderDay, Status: model.OrderStatusInProgress}
	stored := expected
	stored.ID = 1

	suite.orders.On("AddOrder", mock.Anything, expected).Return(&stored, nil).Once()

	recorder := suite.do(http.MethodPost, "/bars/1/orders",
		`{"name":"Order-A","price":5.0,"date":"2024-06-15","status":"in-progress"}`, true)
	suite.Require().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())

	var order server.Order
	suite.decode(recorder, &order)
	suite.Equal("2024-06-15", order.Date)
	suite.Equal("in-progress", order.Status)
}

func (suite *ServerTestSuite) TestAddOrder_TimestampDate() {
	expected := model.Order{Name: "Order-A", Price: 5, BarID: 1, Date: orderDay, Status: model.OrderStatusDraft}
	stored := expected
	stored.ID = 1

	suite.orders.On("AddOrder", mock.Anything, expected).Return(&stored, nil).Once()

	recorder := suite.do(http.MethodPost, "/bars/1/orders", `{"name":"Order-A","price":5,"date":"2024-06-15T18:30:00Z","status":"draft"}`, true)
	suite.Require().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())

	var order server.Order
	suite.decode(recorder, &order)
	suite.Equal("2024-06-15", order.Date)
}

func (suite *ServerTestSuite) TestAddOrder_InvalidInput() {
	tests := map[string]string{
		"unknown status": `{"name":"Order-A","price":5,"date":"2024-06-15","status":"shipped"}`,
		"bad date":       `{"name":"Order-A","price":5,"date":"15/06/2024","status":"draft"}`,
		"missing price":  `{"name":"Order-A","date":"2024-06-15","status":"draft"}`,
		"missing status": `{"name":"Order-A","price":5,"date":"2024-06-15"}`,
	}

	for name, body := range tests {
		suite.Run(name, func() {
			recorder := suite.do(http.MethodPost, "/bars/1/orders", body, true)
			suite.requireError(recorder, http.StatusBadRequest, "validation_error")
		})
	}
}

func (suite *ServerTestSuite) TestListOrders() {
	matches := mock.MatchedBy(func(filter query.OrderFilter) bool {
		return filter.BarID != nil && *filter.BarID == 1 &&
			filter.Status != nil && *filter.Status == model.OrderStatusCompleted &&
			filter.Date != nil && filter.Date.Equal(orderDay)
	})
	suite.orders.On("ListOrders", mock.Anything, matches).
		Return([]*model.Order{{ID: 1, Name: "Order-A", BarID: 1, Date: orderDay, Status: model.OrderStatusCompleted}}, nil).Once()

	recorder := suite.do(http.MethodGet, "/bars/1/orders?status=completed&date=2024-06-15", "", false)
	suite.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var orders []server.Order
	suite.decode(recorder, &orders)
	suite.Require().Len(orders, 1)
	suite.Equal("completed", orders[0].Status)
}

func (suite *ServerTestSuite) TestUpdateOrder() {
	status := model.OrderStatusCompleted
	suite.orders.On("UpdateOrder", mock.Anything, uint(1), model.OrderPatch{Status: &status}).
		Return(&model.Order{ID: 1, Name: "Order-A", Date: orderDay, Status: status}, nil).Once()

	recorder := suite.do(http.MethodPut, "/orders/1", `{"status":"completed"}`, true)
	suite.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())
}

func (suite *ServerTestSuite) TestUpdateOrder_Completed() {
	name := "x"
	suite.orders.On("UpdateOrder", mock.Anything, uint(1), model.OrderPatch{Name: &name}).
		Return(nil, fmt.Errorf("%w: order 1", repository.ErrOrderCompleted)).Once()

	recorder := suite.do(http.MethodPut, "/orders/1", `{"name":"x"}`, true)
	body := suite.requireError(recorder, http.StatusConflict, "order_completed")
	suite.Equal("a completed order cannot be modified: order 1", body["message"])
}

func (suite *ServerTestSuite) TestDeleteOrder() {
	suite.orders.On("DeleteOrder", mock.Anything, uint(1)).Return(nil).Once()

	recorder := suite.do(http.MethodDelete, "/orders/1", "", true)
	suite.Equal(http.StatusNoContent, recorder.Code)
}

func (suite *ServerTestSuite) TestAddBeerToOrder_DefaultQuantity() {
	suite.orders.On("AddBeerToOrder", mock.Anything, uint(1), uint(2), 0).
		Return(&model.BeerOrderLine{OrderID: 1, BeerID: 2, Quantity: 1}, nil).Once()

	recorder := suite.do(http.MethodPost, "/orders/1/beers/2", "", true)
	suite.Require().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())

	var line server.OrderLine
	suite.decode(recorder, &line)
	suite.Equal(server.OrderLine{OrderID: 1, BeerID: 2, Quantity: 1}, line)
}

func (suite *ServerTestSuite) TestAddBeerToOrder_WithQuantity() {
	suite.orders.On("AddBeerToOrder", mock.Anything, uint(1), uint(2), 3).
		Return(&model.BeerOrderLine{OrderID: 1, BeerID: 2, Quantity: 3}, nil).Once()

	recorder := suite.do(http.MethodPost, "/orders/1/beers/2", `{"quantity":3}`, true)
	suite.Require().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())
}

func (suite *ServerTestSuite) TestAddBeerToOrder_CompletedOrder() {
	suite.orders.On("AddBeerToOrder", mock.Anything, uint(1), uint(2), 0).
		Return(nil, fmt.Errorf("%w: order 1", repository.ErrOrderCompleted)).Once()

	recorder := suite.do(http.MethodPost, "/orders/1/beers/2", "", true)
	suite.requireError(recorder, http.StatusConflict, "order_completed")
}

func (suite *ServerTestSuite) TestRemoveBeerFromOrder_NotAssociated() {
	suite.orders.On("RemoveBeerFromOrder", mock.Anything, uint(1), uint(2)).
		Return(fmt.Errorf("%w: beer 2 is not part of order 1", repository.ErrNotFound)).Once()

	recorder := suite.do(http.MethodDelete, "/orders/1/beers/2", "", true)
	body := suite.requireError(recorder, http.StatusNotFound, "not_found")
	suite.Contains(body["message"], "beer 2 is not part of order 1")
}

func (suite *ServerTestSuite) TestRemoveBeerFromOrder() {
	suite.orders.On("RemoveBeerFromOrder", mock.Anything, uint(1), uint(2)).Return(nil).Once()

	recorder := suite.do(http.MethodDelete, "/orders/1/beers/2", "", true)
	suite.Equal(http.StatusNoContent, recorder.Code)
}

func (suite *ServerTestSuite) TestListOrderBeers() {
	suite.orders.On("ListBeersForOrder", mock.Anything, uint(1)).
		Return([]*model.OrderedBeer{{Beer: model.Beer{ID: 1, Name: "IPA", Degree: 6, Price: 5, BarID: 1}, Quantity: 2}}, nil).Once()

	recorder := suite.do(http.MethodGet, "/orders/1/beers", "", false)
	suite.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var beers []server.OrderedBeer
	suite.decode(recorder, &beers)
	suite.Require().Len(beers, 1)
	suite.Equal(uint(1), beers[0].ID)
	suite.Equal("IPA", beers[0].Name)
	suite.Equal(2, beers[0].Quantity)
}
