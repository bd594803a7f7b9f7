package types

// PageInfo describes a cursor-paginated result set.
//
// HasPreviousPage only reflects "a cursor was supplied"; it does not verify
// that a prior page actually exists.
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
	TotalCount      int64   `json:"totalCount"`
}

type MinistryEdge struct {
	Node   *Ministry `json:"node"`
	Cursor string    `json:"cursor"`
}

type MinistryConnection struct {
	Edges    []MinistryEdge `json:"edges"`
	PageInfo PageInfo       `json:"pageInfo"`
}
