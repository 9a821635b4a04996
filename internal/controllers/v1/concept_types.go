package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/models"
)

type ConceptEditable struct {
	Name     string             `json:"name" example:"Rent" default:""`           // Name of the concept, unique per kind
	Kind     models.ConceptKind `json:"kind" example:"expense" default:""`        // Either "income" or "expense"
	Archived bool               `json:"archived" example:"false" default:"false"` // Is the concept archived?
}

// model returns the database resource for the editable fields
func (editable ConceptEditable) model() models.Concept {
	return models.Concept{
		Name:     editable.Name,
		Kind:     editable.Kind,
		Archived: editable.Archived,
	}
}

type ConceptLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/concepts/3"`          // The concept itself
	Toggle string `json:"toggle" example:"https://example.com/api/v1/concepts/3/toggle"` // Archives or restores the concept
	Usage  string `json:"usage" example:"https://example.com/api/v1/expenses?concept=3"` // Incomes or expenses referencing the concept
}

// Concept is the API v1 representation of a Concept.
type Concept struct {
	models.DefaultModel
	ConceptEditable
	Links ConceptLinks `json:"links"`
}

func newConcept(c *gin.Context, model models.Concept) Concept {
	url := c.GetString(string(models.DBContextURL))

	usage := "expenses"
	if model.Kind == models.ConceptKindIncome {
		usage = "incomes"
	}

	return Concept{
		DefaultModel: model.DefaultModel,
		ConceptEditable: ConceptEditable{
			Name:     model.Name,
			Kind:     model.Kind,
			Archived: model.Archived,
		},
		Links: ConceptLinks{
			Self:   fmt.Sprintf("%s/v1/concepts/%d", url, model.ID),
			Toggle: fmt.Sprintf("%s/v1/concepts/%d/toggle", url, model.ID),
			Usage:  fmt.Sprintf("%s/v1/%s?concept=%d", url, usage, model.ID),
		},
	}
}

type ConceptListResponse struct {
	Data       []Concept   `json:"data"`                                                               // List of concepts
	Error      *string     `json:"error" example:"the concept kind must be \"income\" or \"expense\""` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                         // Pagination information
}

type ConceptCreateResponse struct {
	Error *string           `json:"error" example:"the concept name must be unique for its kind"` // The error, if any occurred
	Data  []ConceptResponse `json:"data"`                                                         // List of created concepts
}

func (r *ConceptCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ConceptResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ConceptResponse struct {
	Data  *Concept `json:"data"`                                                    // Data for the concept
	Error *string  `json:"error" example:"there is no concept matching your query"` // The error, if any occurred for this concept
}

type ConceptQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // Fuzzy filter for the name
	Kind     string `form:"kind"`                       // By kind
	Archived bool   `form:"archived"`                   // Is the concept archived?
	Search   string `form:"search" filterField:"false"` // By string in name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first concept returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of concepts to return. Defaults to 50.
}

func (f ConceptQueryFilter) model() models.Concept {
	return models.Concept{
		Kind:     models.ConceptKind(f.Kind),
		Archived: f.Archived,
	}
}
