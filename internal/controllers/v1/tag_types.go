package v1

import (
	"fmt"

	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// TagEditable represents all user configurable parameters
type TagEditable struct {
	Name  string `json:"name" binding:"required" example:"vacation"` // Name of the tag, unique
	Color string `json:"color" binding:"rgbcolor" example:"#ff9800"` // Optional display color in #RRGGBB notation
}

func (editable TagEditable) input() service.TagInput {
	return service.TagInput{
		Name:  editable.Name,
		Color: editable.Color,
	}
}

type TagLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/tags/d2525c22-ac2d-4d0a-8bb3-1ba2e1a2e3d6"`                     // The tag itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?tag=d2525c22-ac2d-4d0a-8bb3-1ba2e1a2e3d6"` // Transactions with this tag
}

type Tag struct {
	models.DefaultModel
	TagEditable
	Links TagLinks `json:"links"`
}

func newTag(c *gin.Context, model models.Tag) Tag {
	url := c.GetString(string(models.DBContextURL))

	return Tag{
		DefaultModel: model.DefaultModel,
		TagEditable: TagEditable{
			Name:  model.Name,
			Color: model.Color,
		},
		Links: TagLinks{
			Self:         fmt.Sprintf("%s/v1/tags/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?tag=%s", url, model.ID),
		},
	}
}

type TagListResponse struct {
	Data  []Tag   `json:"data"`                                                          // List of Tags
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TagCreateResponse struct {
	Data  []TagResponse `json:"data"`                                                          // List of the created Tags or their respective error
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TagCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TagResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TagResponse struct {
	Data  *Tag    `json:"data"`                                                          // Data for the Tag
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
