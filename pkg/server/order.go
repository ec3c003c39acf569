package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"droscher.com/Taproom/pkg/model"
	"droscher.com/Taproom/pkg/query"
	"droscher.com/Taproom/pkg/repository"
)

type OrderServer struct {
	repository repository.OrderRepository
	logger     *zap.Logger
}

func NewOrderServer(repository repository.OrderRepository, logger *zap.Logger) *OrderServer {
	return &OrderServer{repository: repository, logger: logger}
}

type addOrderRequest struct {
	Name   string   `binding:"required"       json:"name"`
	Price  *float64 `binding:"required,gte=0" json:"price"`
	Date   string   `binding:"required"       json:"date"`
	Status string   `binding:"required"       json:"status"`
}

type updateOrderRequest struct {
	Name   *string  `binding:"omitempty,min=1" json:"name"`
	Price  *float64 `binding:"omitempty,gte=0" json:"price"`
	Date   *string  `json:"date"`
	Status *string  `json:"status"`
}

type addBeerToOrderRequest struct {
	Quantity *int `binding:"omitempty,gte=1" json:"quantity"`
}

func (r addOrderRequest) toModel(barID uint) (model.Order, error) {
	order := model.Order{Name: r.Name, Price: *r.Price, BarID: barID}

	date, err := query.ParseDate(r.Date)
	if err != nil {
		return order, invalidInput(err)
	}

	order.Date = date

	status, err := model.ParseOrderStatus(r.Status)
	if err != nil {
		return order, err
	}

	order.Status = status

	return order, nil
}

func (r updateOrderRequest) toPatch() (model.OrderPatch, error) {
	patch := model.OrderPatch{Name: r.Name, Price: r.Price}

	if r.Date != nil {
		date, err := query.ParseDate(*r.Date)
		if err != nil {
			return patch, invalidInput(err)
		}

		patch.Date = &date
	}

	if r.Status != nil {
		status, err := model.ParseOrderStatus(*r.Status)
		if err != nil {
			return patch, err
		}

		patch.Status = &status
	}

	return patch, nil
}

func (o *OrderServer) AddOrder(c *gin.Context) {
	barID, err := pathID(c, "bar_id")
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	var request addOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, o.logger, invalidInput(err))

		return
	}

	order, err := request.toModel(barID)
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	newOrder, err := o.repository.AddOrder(c.Request.Context(), order)
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	c.JSON(http.StatusCreated, OrderFromModel(newOrder))
}

func (o *OrderServer) GetOrder(c *gin.Context) {
	orderID, err := pathID(c, "order_id")
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	order, err := o.repository.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	c.JSON(http.StatusOK, OrderFromModel(order))
}

// ListOrders lists the orders of a bar, filtered by the date, status, name, price_min,
// price_max, sort, limit and offset query parameters.
func (o *OrderServer) ListOrders(c *gin.Context) {
	barID, err := pathID(c, "bar_id")
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	filter, err := query.ParseOrderFilter(c.Request.URL.Query())
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	filter.BarID = &barID

	orders, err := o.repository.ListOrders(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	c.JSON(http.StatusOK, OrdersFromModel(orders))
}

func (o *OrderServer) UpdateOrder(c *gin.Context) {
	orderID, err := pathID(c, "order_id")
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	var request updateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, o.logger, invalidInput(err))

		return
	}

	patch, err := request.toPatch()
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	order, err := o.repository.UpdateOrder(c.Request.Context(), orderID, patch)
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	c.JSON(http.StatusOK, OrderFromModel(order))
}

func (o *OrderServer) DeleteOrder(c *gin.Context) {
	orderID, err := pathID(c, "order_id")
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	if err := o.repository.DeleteOrder(c.Request.Context(), orderID); err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (o *OrderServer) ListOrderBeers(c *gin.Context) {
	orderID, err := pathID(c, "order_id")
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	beers, err := o.repository.ListBeersForOrder(c.Request.Context(), orderID)
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	c.JSON(http.StatusOK, OrderedBeersFromModel(beers))
}

// AddBeerToOrder links a beer to an order. The JSON body is optional; without a quantity the
// line holds a single unit.
func (o *OrderServer) AddBeerToOrder(c *gin.Context) {
	orderID, beerID, err := lineIDs(c)
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	var request addBeerToOrderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			abortWithError(c, o.logger, invalidInput(err))

			return
		}
	}

	quantity := 0
	if request.Quantity != nil {
		quantity = *request.Quantity
	}

	line, err := o.repository.AddBeerToOrder(c.Request.Context(), orderID, beerID, quantity)
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	c.JSON(http.StatusCreated, OrderLineFromModel(line))
}

func (o *OrderServer) RemoveBeerFromOrder(c *gin.Context) {
	orderID, beerID, err := lineIDs(c)
	if err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	if err := o.repository.RemoveBeerFromOrder(c.Request.Context(), orderID, beerID); err != nil {
		abortWithError(c, o.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func lineIDs(c *gin.Context) (uint, uint, error) {
	orderID, err := pathID(c, "order_id")
	if err != nil {
		return 0, 0, err
	}

	beerID, err := pathID(c, "beer_id")
	if err != nil {
		return 0, 0, err
	}

	return orderID, beerID, nil
}
