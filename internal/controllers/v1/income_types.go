package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

type IncomeEditable struct {
	ConceptID uint            `json:"conceptId" example:"1"`                                                                     // ID of the income concept
	Amount    decimal.Decimal `json:"amount" example:"2500" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount received
	Date      time.Time       `json:"date" example:"2024-03-28T00:00:00Z"`                                                       // Date the income was received
	Note      string          `json:"note" example:"March salary" default:""`                                                    // A note for the income
}

// model returns the database resource for the editable fields
func (editable IncomeEditable) model() models.Income {
	return models.Income{
		ConceptID: editable.ConceptID,
		Amount:    editable.Amount,
		Date:      editable.Date.In(time.UTC),
		Note:      editable.Note,
	}
}

type IncomeLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/incomes/12"`    // The income itself
	Concept string `json:"concept" example:"https://example.com/api/v1/concepts/1"` // The concept of the income
}

// Income is the API v1 representation of an Income.
type Income struct {
	models.DefaultModel
	IncomeEditable
	Links IncomeLinks `json:"links"`
}

func newIncome(c *gin.Context, model models.Income) Income {
	url := c.GetString(string(models.DBContextURL))

	return Income{
		DefaultModel: model.DefaultModel,
		IncomeEditable: IncomeEditable{
			ConceptID: model.ConceptID,
			Amount:    model.Amount,
			Date:      model.Date.In(time.UTC),
			Note:      model.Note,
		},
		Links: IncomeLinks{
			Self:    fmt.Sprintf("%s/v1/incomes/%d", url, model.ID),
			Concept: fmt.Sprintf("%s/v1/concepts/%d", url, model.ConceptID),
		},
	}
}

type IncomeListResponse struct {
	Data       []Income    `json:"data"`                                                         // List of incomes
	Error      *string     `json:"error" example:"parsing time \"2024-13\": month out of range"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                   // Pagination information
}

type IncomeCreateResponse struct {
	Error *string          `json:"error" example:"the concept must be of kind income"` // The error, if any occurred
	Data  []IncomeResponse `json:"data"`                                               // List of created incomes
}

func (r *IncomeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, IncomeResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type IncomeResponse struct {
	Data  *Income `json:"data"`                                                   // Data for the income
	Error *string `json:"error" example:"there is no income matching your query"` // The error, if any occurred for this income
}

type IncomeQueryFilter struct {
	ConceptID uint        `form:"concept"`                    // By concept ID
	Month     types.Month `form:"month" filterField:"false"`  // By month of the date, YYYY-MM
	Note      string      `form:"note" filterField:"false"`   // Fuzzy filter for the note
	Search    string      `form:"search" filterField:"false"` // By string in note
	Offset    uint        `form:"offset" filterField:"false"` // The offset of the first income returned. Defaults to 0.
	Limit     int         `form:"limit" filterField:"false"`  // Maximum number of incomes to return. Defaults to 50.
}

func (f IncomeQueryFilter) model() models.Income {
	return models.Income{
		ConceptID: f.ConceptID,
	}
}
