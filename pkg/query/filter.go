// Package query translates listing filters for bars, beers and orders into a backend-neutral
// descriptor of conditions, ordering and pagination that can be applied to a gorm query.
package query

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"droscher.com/Taproom/pkg/model"
)

type Sort string

const (
	SortAscending  Sort = "asc"
	SortDescending Sort = "desc"
)

// Direction is DESC for a descending sort and ASC for anything else.
func (s Sort) Direction() string {
	if strings.EqualFold(string(s), string(SortDescending)) {
		return "DESC"
	}

	return "ASC"
}

type Page struct {
	Limit  *int
	Offset *int
}

type BarFilter struct {
	Name *string
	Sort Sort
	Page
}

type BeerFilter struct {
	BarID     *uint
	Name      *string
	DegreeMin *float64
	DegreeMax *float64
	PriceMin  *float64
	PriceMax  *float64
	Sort      Sort
	Page
}

type OrderFilter struct {
	BarID    *uint
	Name     *string
	Date     *time.Time
	Status   *model.OrderStatus
	PriceMin *float64
	PriceMax *float64
	Sort     Sort
	Page
}

type Condition struct {
	Expression string
	Args       []any
}

// Descriptor is the outcome of building a filter: conjunctive conditions, a sort on name,
// and optional pagination.
type Descriptor struct {
	Conditions []Condition
	OrderBy    string
	Limit      *int
	Offset     *int
}

func (d Descriptor) Apply(db *gorm.DB) *gorm.DB {
	for _, condition := range d.Conditions {
		db = db.Where(condition.Expression, condition.Args...)
	}

	if d.OrderBy != "" {
		db = db.Order(d.OrderBy)
	}

	if d.Limit != nil {
		db = db.Limit(*d.Limit)
	}

	if d.Offset != nil {
		db = db.Offset(*d.Offset)
	}

	return db
}

func (d *Descriptor) where(expression string, args ...any) {
	d.Conditions = append(d.Conditions, Condition{Expression: expression, Args: args})
}

func (d *Descriptor) between(column string, lower *float64, upper *float64) {
	if lower != nil {
		d.where(column+" >= ?", *lower)
	}

	if upper != nil {
		d.where(column+" <= ?", *upper)
	}
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (d *Descriptor) nameContains(name *string) {
	if name != nil && *name != "" {
		d.where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(*name))+"%")
	}
}

func newDescriptor(sort Sort, page Page) Descriptor {
	return Descriptor{
		OrderBy: "name " + sort.Direction(),
		Limit:   page.Limit,
		Offset:  page.Offset,
	}
}

func Bars(filter BarFilter) Descriptor {
	descriptor := newDescriptor(filter.Sort, filter.Page)
	descriptor.nameContains(filter.Name)

	return descriptor
}

func Beers(filter BeerFilter) Descriptor {
	descriptor := newDescriptor(filter.Sort, filter.Page)

	if filter.BarID != nil {
		descriptor.where("bar_id = ?", *filter.BarID)
	}

	descriptor.nameContains(filter.Name)
	descriptor.between("degree", filter.DegreeMin, filter.DegreeMax)
	descriptor.between("price", filter.PriceMin, filter.PriceMax)

	return descriptor
}

func Orders(filter OrderFilter) Descriptor {
	descriptor := newDescriptor(filter.Sort, filter.Page)

	if filter.BarID != nil {
		descriptor.where("bar_id = ?", *filter.BarID)
	}

	descriptor.nameContains(filter.Name)

	if filter.Date != nil {
		descriptor.where("date = ?", model.CalendarDay(*filter.Date))
	}

	if filter.Status != nil {
		descriptor.where("status = ?", string(*filter.Status))
	}

	descriptor.between("price", filter.PriceMin, filter.PriceMax)

	return descriptor
}
