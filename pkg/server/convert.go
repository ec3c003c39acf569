package server

import (
	"time"

	"droscher.com/Taproom/pkg/model"
)

type Bar struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Phone       *string   `json:"phone,omitempty"`
	Email       string    `json:"email"`
	Description *string   `json:"description,omitempty"`
	UserID      *uint     `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Beer struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Degree      float64   `json:"degree"`
	Price       float64   `json:"price"`
	BarID       uint      `json:"bar_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BarDegree struct {
	BarID         uint     `json:"bar_id"`
	AverageDegree *float64 `json:"average_degree"`
}

type OrderedBeer struct {
	Beer
	Quantity int `json:"quantity"`
}

type Order struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	BarID     uint      `json:"bar_id"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderLine struct {
	OrderID  uint `json:"order_id"`
	BeerID   uint `json:"beer_id"`
	Quantity int  `json:"quantity"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type BeerSuggestion struct {
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Degree         *float64 `json:"degree,omitempty"`
	Style          string   `json:"style,omitempty"`
	Brewery        string   `json:"brewery,omitempty"`
	ExternalID     *uint64  `json:"external_id,omitempty"`
	ExternalSource string   `json:"external_source"`
	ExternalRating *float64 `json:"external_rating,omitempty"`
}

func BarFromModel(bar *model.Bar) Bar {
	return Bar{
		ID:          bar.ID,
		Name:        bar.Name,
		Address:     bar.Address,
		Phone:       bar.Phone,
		Email:       bar.Email,
		Description: bar.Description,
		UserID:      bar.UserID,
		CreatedAt:   bar.CreatedAt,
		UpdatedAt:   bar.UpdatedAt,
	}
}

func BarsFromModel(bars []*model.Bar) []Bar {
	result := make([]Bar, 0, len(bars))

	for _, bar := range bars {
		result = append(result, BarFromModel(bar))
	}

	return result
}

func BeerFromModel(beer *model.Beer) Beer {
	return Beer{
		ID:          beer.ID,
		Name:        beer.Name,
		Description: beer.Description,
		Degree:      beer.Degree,
		Price:       beer.Price,
		BarID:       beer.BarID,
		CreatedAt:   beer.CreatedAt,
		UpdatedAt:   beer.UpdatedAt,
	}
}

func BeersFromModel(beers []*model.Beer) []Beer {
	result := make([]Beer, 0, len(beers))

	for _, beer := range beers {
		result = append(result, BeerFromModel(beer))
	}

	return result
}

func OrderedBeersFromModel(beers []*model.OrderedBeer) []OrderedBeer {
	result := make([]OrderedBeer, 0, len(beers))

	for _, beer := range beers {
		result = append(result, OrderedBeer{Beer: BeerFromModel(&beer.Beer), Quantity: beer.Quantity})
	}

	return result
}

func OrderFromModel(order *model.Order) Order {
	return Order{
		ID:        order.ID,
		Name:      order.Name,
		Price:     order.Price,
		BarID:     order.BarID,
		Date:      order.Date.Format(time.DateOnly),
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func OrdersFromModel(orders []*model.Order) []Order {
	result := make([]Order, 0, len(orders))

	for _, order := range orders {
		result = append(result, OrderFromModel(order))
	}

	return result
}

func OrderLineFromModel(line *model.BeerOrderLine) OrderLine {
	return OrderLine{OrderID: line.OrderID, BeerID: line.BeerID, Quantity: line.Quantity}
}

func UserFromModel(user *model.User) User {
	return User{ID: user.UUID.String(), Name: user.Name, Email: user.Email}
}

func SuggestionsFromModel(suggestions []model.BeerSuggestion) []BeerSuggestion {
	result := make([]BeerSuggestion, 0, len(suggestions))

	for _, suggestion := range suggestions {
		result = append(result, BeerSuggestion(suggestion))
	}

	return result
}
