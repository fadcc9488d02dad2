package v1

import (
	"time"

	st_uuid "github.com/michdebow/stash-tracker/internal/uuid"
)

type URIID struct {
	ID st_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIMonth struct {
	Month time.Time `uri:"month" time_format:"2006-01" time_utc:"1" example:"2024-03" binding:"required"` // Year and month in YYYY-MM format
}

// URITransaction identifies one transaction in the ledger of one stash.
type URITransaction struct {
	ID            st_uuid.UUID `uri:"id" binding:"required" format:"UUID"`            // ID of the stash
	TransactionID st_uuid.UUID `uri:"transactionId" binding:"required" format:"UUID"` // ID of the transaction
}

// Pagination contains information about the pagination for collection endpoint responses.
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset int   `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
