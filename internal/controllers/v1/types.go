package v1

import (
	"github.com/cashlog/backend/internal/httputil"
	"github.com/cashlog/backend/internal/types"
	"github.com/google/uuid"
)

// ID is a resource ID that gin can bind from URIs and query strings.
type ID struct {
	uuid.UUID
}

// UnmarshalParam parses the ID. An empty string is the nil UUID.
func (id *ID) UnmarshalParam(param string) error {
	if param == "" {
		*id = ID{}
		return nil
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return httputil.ErrInvalidUUID
	}

	*id = ID{parsed}
	return nil
}

type URIID struct {
	ID ID `uri:"id" format:"UUID"` // ID of the resource
}

type URIMonth struct {
	Month types.Month `uri:"month" example:"2024-01"` // Year and month in YYYY-MM format
}

type URISessionKey struct {
	Key string `uri:"key" binding:"required" example:"3c2f7a8e"` // Key identifying the session
}

// QueryDateRange is an inclusive range of dates.
type QueryDateRange struct {
	FromDate  types.Date `form:"fromDate" example:"2024-01-01"`  // First day of the range
	UntilDate types.Date `form:"untilDate" example:"2024-01-31"` // Last day of the range
}

// complete reports whether both ends of the range are set.
func (q QueryDateRange) complete() bool {
	return !q.FromDate.IsZero() && !q.UntilDate.IsZero()
}

// Pagination contains information about the pagination for collection endpoint responses.
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
