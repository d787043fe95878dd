package models

import (
	"net/url"
	"strconv"
)

// Order is the sort direction of a list request.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// DefaultOrder is sent when a list request leaves Order empty.
const DefaultOrder = Desc

// PaginationParams are the cursor parameters shared by all list endpoints.
type PaginationParams struct {
	Order  Order
	Before string
	After  string
	Limit  int
}

// Apply writes the pagination parameters into q. The order is always set.
func (p PaginationParams) Apply(q url.Values) {
	order := p.Order
	if order == "" {
		order = DefaultOrder
	}
	q.Set("order", string(order))

	if p.Before != "" {
		q.Set("before", p.Before)
	}
	if p.After != "" {
		q.Set("after", p.After)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
}

type ListMetadata struct {
	Before *string `json:"before"`
	After  *string `json:"after"`
}

// List is a page of results from a list endpoint.
type List[T any] struct {
	Data         []T          `json:"data"`
	ListMetadata ListMetadata `json:"list_metadata"`
}

// NextCursor returns the cursor for the following page, or "" on the last page.
func (l *List[T]) NextCursor() string {
	if l.ListMetadata.After == nil {
		return ""
	}
	return *l.ListMetadata.After
}
