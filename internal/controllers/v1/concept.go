package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
)

// RegisterConceptRoutes registers the routes for concepts with
// the RouterGroup that is passed.
func (co Controller) RegisterConceptRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsConceptList)
		r.GET("", co.GetConcepts)
		r.POST("", co.CreateConcepts)
	}

	// Concept with ID
	{
		r.OPTIONS("/:id", co.OptionsConceptDetail)
		r.GET("/:id", co.GetConcept)
		r.PATCH("/:id", co.UpdateConcept)
		r.DELETE("/:id", co.DeleteConcept)
		r.OPTIONS("/:id/toggle", co.OptionsConceptToggle)
		r.POST("/:id/toggle", co.ToggleConcept)
	}
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Concepts
//	@Success		204
//	@Router			/v1/concepts [options]
func (co Controller) OptionsConceptList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Concepts
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/concepts/{id} [options]
func (co Controller) OptionsConceptDetail(c *gin.Context) {
	if _, ok := getConcept(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Concepts
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/concepts/{id}/toggle [options]
func (co Controller) OptionsConceptToggle(c *gin.Context) {
	if _, ok := getConcept(c); !ok {
		return
	}

	httputil.OptionsPost(c)
}

// getConcept binds the URI and loads the concept. If that fails, the error
// response is written and ok is false.
func getConcept(c *gin.Context) (concept models.Concept, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.WithContext(c).First(&concept, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	return concept, true
}

//	@Summary		Create concepts
//	@Description	Creates new concepts
//	@Tags			Concepts
//	@Produce		json
//	@Success		201			{object}	ConceptCreateResponse
//	@Failure		400			{object}	ConceptCreateResponse
//	@Failure		500			{object}	ConceptCreateResponse
//	@Param			concepts	body		[]ConceptEditable	true	"Concepts"
//	@Router			/v1/concepts [post]
func (co Controller) CreateConcepts(c *gin.Context) {
	var editables []ConceptEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ConceptCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ConceptCreateResponse{}

	for _, editable := range editables {
		concept := editable.model()
		err = models.DB.WithContext(c).Create(&concept).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newConcept(c, concept)
		r.Data = append(r.Data, ConceptResponse{Data: &data})
	}

	c.JSON(status, r)
}

//	@Summary		List concepts
//	@Description	Returns a list of concepts
//	@Tags			Concepts
//	@Produce		json
//	@Success		200			{object}	ConceptListResponse
//	@Failure		400			{object}	ConceptListResponse
//	@Failure		500			{object}	ConceptListResponse
//	@Router			/v1/concepts [get]
//	@Param			name		query	string	false	"Filter by name"
//	@Param			kind		query	string	false	"Filter by kind, income or expense"
//	@Param			archived	query	bool	false	"Is the concept archived?"
//	@Param			search		query	string	false	"Search for this text in the name"
//	@Param			offset		query	uint	false	"The offset of the first concept returned. Defaults to 0."
//	@Param			limit		query	int		false	"Maximum number of concepts to return. Defaults to 50."
func (co Controller) GetConcepts(c *gin.Context) {
	var filter ConceptQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ConceptListResponse{
			Error: &s,
		})
		return
	}

	// Get the set parameters in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()
	q := models.DB.WithContext(c).
		Order("kind ASC, name ASC").
		Where(&model, queryFields...)

	q = textFilter(q, setFields, "Name", "name", filter.Name)
	q = searchFilter(models.DB, q, filter.Search, "name")

	concepts, pagination, err := find[models.Concept](q, setFields, filter.Offset, filter.Limit)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConceptListResponse{
			Error: &s,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	data := make([]Concept, 0, len(concepts))
	for _, concept := range concepts {
		data = append(data, newConcept(c, concept))
	}

	c.JSON(http.StatusOK, ConceptListResponse{
		Data:       data,
		Pagination: &pagination,
	})
}

//	@Summary		Get concept
//	@Description	Returns a specific concept
//	@Tags			Concepts
//	@Produce		json
//	@Success		200	{object}	ConceptResponse
//	@Failure		400	{object}	ConceptResponse
//	@Failure		404	{object}	ConceptResponse
//	@Failure		500	{object}	ConceptResponse
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/concepts/{id} [get]
func (co Controller) GetConcept(c *gin.Context) {
	concept, ok := getConcept(c)
	if !ok {
		return
	}

	data := newConcept(c, concept)
	c.JSON(http.StatusOK, ConceptResponse{Data: &data})
}

//	@Summary		Update concept
//	@Description	Updates a concept. Only values to be updated need to be specified. The kind can only be changed while nothing references the concept.
//	@Tags			Concepts
//	@Produce		json
//	@Success		200		{object}	ConceptResponse
//	@Failure		400		{object}	ConceptResponse
//	@Failure		404		{object}	ConceptResponse
//	@Failure		500		{object}	ConceptResponse
//	@Param			id		path		uint			true	"ID formatted as string"
//	@Param			concept	body		ConceptEditable	true	"Concept"
//	@Router			/v1/concepts/{id} [patch]
func (co Controller) UpdateConcept(c *gin.Context) {
	concept, ok := getConcept(c)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ConceptEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConceptResponse{
			Error: &s,
		})
		return
	}

	var data ConceptEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConceptResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.WithContext(c).Model(&concept).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConceptResponse{
			Error: &s,
		})
		return
	}

	apiResource := newConcept(c, concept)
	c.JSON(http.StatusOK, ConceptResponse{Data: &apiResource})
}

//	@Summary		Toggle concept
//	@Description	Archives an active concept or restores an archived one
//	@Tags			Concepts
//	@Produce		json
//	@Success		200	{object}	ConceptResponse
//	@Failure		400	{object}	ConceptResponse
//	@Failure		404	{object}	ConceptResponse
//	@Failure		500	{object}	ConceptResponse
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/concepts/{id}/toggle [post]
func (co Controller) ToggleConcept(c *gin.Context) {
	concept, ok := getConcept(c)
	if !ok {
		return
	}

	err := models.DB.WithContext(c).Model(&concept).Select("Archived").Updates(models.Concept{Archived: !concept.Archived}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConceptResponse{
			Error: &s,
		})
		return
	}

	data := newConcept(c, concept)
	c.JSON(http.StatusOK, ConceptResponse{Data: &data})
}

//	@Summary		Delete concept
//	@Description	Deletes a concept. Concepts still referenced by incomes or expenses cannot be deleted.
//	@Tags			Concepts
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		uint	true	"ID formatted as string"
//	@Router			/v1/concepts/{id} [delete]
func (co Controller) DeleteConcept(c *gin.Context) {
	concept, ok := getConcept(c)
	if !ok {
		return
	}

	err := models.DB.WithContext(c).Delete(&concept).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
