package query

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/multierr"

	"droscher.com/Taproom/pkg/model"
)

// ParseBarFilter reads name, sort, limit and offset from query parameters.
func ParseBarFilter(values url.Values) (BarFilter, error) {
	var (
		filter BarFilter
		errs   error
	)

	filter.Name = optionalString(values, "name")
	filter.Sort = Sort(values.Get("sort"))
	filter.Page, errs = parsePage(values)

	return filter, wrap(errs)
}

// ParseBeerFilter reads the beer listing parameters. Every malformed value is reported, not
// only the first.
func ParseBeerFilter(values url.Values) (BeerFilter, error) {
	var (
		filter BeerFilter
		errs   error
		err    error
	)

	filter.Name = optionalString(values, "name")
	filter.Sort = Sort(values.Get("sort"))

	filter.DegreeMin, err = nonNegativeFloat(values, "degree_min")
	errs = multierr.Append(errs, err)
	filter.DegreeMax, err = nonNegativeFloat(values, "degree_max")
	errs = multierr.Append(errs, err)
	filter.PriceMin, err = nonNegativeFloat(values, "price_min")
	errs = multierr.Append(errs, err)
	filter.PriceMax, err = nonNegativeFloat(values, "price_max")
	errs = multierr.Append(errs, err)

	filter.Page, err = parsePage(values)
	errs = multierr.Append(errs, err)

	return filter, wrap(errs)
}

func ParseOrderFilter(values url.Values) (OrderFilter, error) {
	var (
		filter OrderFilter
		errs   error
		err    error
	)

	filter.Name = optionalString(values, "name")
	filter.Sort = Sort(values.Get("sort"))

	filter.Date, err = parseDate(values, "date")
	errs = multierr.Append(errs, err)

	if value := values.Get("status"); value != "" {
		status := model.OrderStatus(value)
		if status.Valid() {
			filter.Status = &status
		} else {
			errs = multierr.Append(errs, fmt.Errorf("status: unknown order status %q", value))
		}
	}

	filter.PriceMin, err = nonNegativeFloat(values, "price_min")
	errs = multierr.Append(errs, err)
	filter.PriceMax, err = nonNegativeFloat(values, "price_max")
	errs = multierr.Append(errs, err)

	filter.Page, err = parsePage(values)
	errs = multierr.Append(errs, err)

	return filter, wrap(errs)
}

func parsePage(values url.Values) (Page, error) {
	var page Page

	limit, limitErr := boundedInt(values, "limit", 1)
	offset, offsetErr := boundedInt(values, "offset", 0)

	page.Limit = limit
	page.Offset = offset

	return page, multierr.Combine(limitErr, offsetErr)
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp and returns the
// calendar day it falls on.
func ParseDate(value string) (time.Time, error) {
	if date, err := time.Parse(time.DateOnly, value); err == nil {
		return date, nil
	}

	timestamp, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not an ISO 8601 date", value)
	}

	return model.CalendarDay(timestamp), nil
}

func parseDate(values url.Values, key string) (*time.Time, error) {
	value := values.Get(key)
	if value == "" {
		return nil, nil //nolint:nilnil // an absent parameter is not an error
	}

	date, err := ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	return &date, nil
}

func nonNegativeFloat(values url.Values, key string) (*float64, error) {
	value := values.Get(key)
	if value == "" {
		return nil, nil //nolint:nilnil // an absent parameter is not an error
	}

	number, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return nil, fmt.Errorf("%s: %q is not a number", key, value)
	}

	if number < 0 {
		return nil, fmt.Errorf("%s: must not be negative", key)
	}

	return &number, nil
}

func boundedInt(values url.Values, key string, minimum int) (*int, error) {
	value := values.Get(key)
	if value == "" {
		return nil, nil //nolint:nilnil // an absent parameter is not an error
	}

	number, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not an integer", key, value)
	}

	if number < minimum {
		return nil, fmt.Errorf("%s: must be at least %d", key, minimum)
	}

	return &number, nil
}

func optionalString(values url.Values, key string) *string {
	if !values.Has(key) {
		return nil
	}

	value := values.Get(key)

	return &value
}

func wrap(errs error) error {
	if errs == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", model.ErrValidation, errs)
}
