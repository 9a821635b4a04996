package v1

type URIID struct {
	ID uint `uri:"id" binding:"required"` // The ID of the resource
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

type CountResponse struct {
	Data  *Count  `json:"data"`                                          // The count
	Error *string `json:"error" example:"the days parameter is invalid"` // The error, if any occurred
}

type Count struct {
	Count int64 `json:"count" example:"3"` // Number of resources affected
}
