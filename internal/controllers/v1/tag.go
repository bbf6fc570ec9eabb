package v1

import (
	"net/http"

	"github.com/cashlog/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterTagRoutes registers the routes for tags with
// the RouterGroup that is passed.
func RegisterTagRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTagList)
		r.GET("", GetTags)
		r.POST("", CreateTags)
	}

	// Tag with ID
	{
		r.OPTIONS("/:id", OptionsTagDetail)
		r.GET("/:id", GetTag)
		r.PUT("/:id", UpdateTag)
		r.DELETE("/:id", DeleteTag)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tags
// @Success		204
// @Router			/v1/tags [options]
func OptionsTagList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tags
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tags/{id} [options]
func OptionsTagDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = services().Tags.Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPutDelete(c)
}

// @Summary		Create tags
// @Description	Creates new tags
// @Tags			Tags
// @Produce		json
// @Success		201			{object}	TagCreateResponse
// @Failure		400			{object}	TagCreateResponse
// @Failure		409			{object}	TagCreateResponse
// @Failure		500			{object}	TagCreateResponse
// @Param			tags	body		[]TagEditable	true	"Tags"
// @Router			/v1/tags [post]
func CreateTags(c *gin.Context) {
	var editables []TagEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TagCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TagCreateResponse{}
	tags := services().Tags

	for _, editable := range editables {
		tag, err := tags.Create(c.Request.Context(), editable.input())
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTag(c, tag)
		r.Data = append(r.Data, TagResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get tags
// @Description	Returns all tags ordered by name
// @Tags			Tags
// @Produce		json
// @Success		200	{object}	TagListResponse
// @Failure		500	{object}	TagListResponse
// @Router			/v1/tags [get]
func GetTags(c *gin.Context) {
	tags, err := services().Tags.List(c.Request.Context())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TagListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		data = append(data, newTag(c, tag))
	}

	c.JSON(http.StatusOK, TagListResponse{Data: data})
}

// @Summary		Get tag
// @Description	Returns a specific tag
// @Tags			Tags
// @Produce		json
// @Success		200	{object}	TagResponse
// @Failure		400	{object}	TagResponse
// @Failure		404	{object}	TagResponse
// @Failure		500	{object}	TagResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tags/{id} [get]
func GetTag(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TagResponse{
			Error: &s,
		})
		return
	}

	tag, err := services().Tags.Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TagResponse{
			Error: &s,
		})
		return
	}

	data := newTag(c, tag)
	c.JSON(http.StatusOK, TagResponse{Data: &data})
}

// @Summary		Update tag
// @Description	Replaces name and color of an existing tag
// @Tags			Tags
// @Accept			json
// @Produce		json
// @Success		200			{object}	TagResponse
// @Failure		400			{object}	TagResponse
// @Failure		404			{object}	TagResponse
// @Failure		409			{object}	TagResponse
// @Failure		500			{object}	TagResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			tag		body		TagEditable	true	"Tag"
// @Router			/v1/tags/{id} [put]
func UpdateTag(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TagResponse{
			Error: &s,
		})
		return
	}

	var editable TagEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TagResponse{
			Error: &s,
		})
		return
	}

	tag, err := services().Tags.Update(c.Request.Context(), uri.ID.UUID, editable.input())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TagResponse{
			Error: &s,
		})
		return
	}

	data := newTag(c, tag)
	c.JSON(http.StatusOK, TagResponse{Data: &data})
}

// @Summary		Delete tag
// @Description	Deletes a tag. Tags that are attached to transactions cannot be deleted.
// @Tags			Tags
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tags/{id} [delete]
func DeleteTag(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = services().Tags.Delete(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
