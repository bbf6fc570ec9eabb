package v1

import (
	"fmt"
	"net/http"

	"github.com/cashlog/backend/internal/httputil"
	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/service"
	"github.com/cashlog/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// SessionEditable contains the preferences of a session. Fields that
// are omitted or null are not changed.
type SessionEditable struct {
	Theme           *types.Theme `json:"theme" example:"DARK" enums:"LIGHT,DARK"`                   // Display theme
	DefaultCurrency *string      `json:"defaultCurrency" binding:"omitempty,iso4217" example:"KRW"` // Currency preselected for new transactions
}

type SessionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/sessions/3c2f7a8e"` // The session preferences
}

type Session struct {
	models.DefaultModel
	Key             string       `json:"key" example:"3c2f7a8e"`                  // Key identifying the session
	Theme           types.Theme  `json:"theme" example:"DARK" enums:"LIGHT,DARK"` // Display theme
	DefaultCurrency string       `json:"defaultCurrency" example:"KRW"`           // Currency preselected for new transactions
	Links           SessionLinks `json:"links"`
}

func newSession(c *gin.Context, model models.SessionPreferences) Session {
	url := c.GetString(string(models.DBContextURL))

	return Session{
		DefaultModel:    model.DefaultModel,
		Key:             model.SessionKey,
		Theme:           model.Theme,
		DefaultCurrency: model.DefaultCurrency,
		Links: SessionLinks{
			Self: fmt.Sprintf("%s/v1/sessions/%s", url, model.SessionKey),
		},
	}
}

type SessionResponse struct {
	Data  *Session `json:"data"`                                                 // Data for the session
	Error *string  `json:"error" example:"the theme must be one of LIGHT, DARK"` // The error, if any occurred
}

func RegisterSessionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:key", OptionsSession)
	r.GET("/:key", GetSession)
	r.PUT("/:key", UpdateSession)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sessions
// @Success		204
// @Param			key	path	string	true	"Key identifying the session"
// @Router			/v1/sessions/{key} [options]
func OptionsSession(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Get session preferences
// @Description	Returns the preferences for a session. They are created with defaults if they do not exist yet.
// @Tags			Sessions
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Failure		400	{object}	SessionResponse
// @Failure		500	{object}	SessionResponse
// @Param			key	path		string	true	"Key identifying the session"
// @Router			/v1/sessions/{key} [get]
func GetSession(c *gin.Context) {
	var uri URISessionKey
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SessionResponse{
			Error: &s,
		})
		return
	}

	preferences, err := services().Sessions.GetOrCreate(c.Request.Context(), uri.Key)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &s,
		})
		return
	}

	data := newSession(c, preferences)
	c.JSON(http.StatusOK, SessionResponse{Data: &data})
}

// @Summary		Update session preferences
// @Description	Updates the preferences for a session. Omitted fields are not changed.
// @Tags			Sessions
// @Accept			json
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		500			{object}	SessionResponse
// @Param			key			path		string			true	"Key identifying the session"
// @Param			preferences	body		SessionEditable	true	"Preferences"
// @Router			/v1/sessions/{key} [put]
func UpdateSession(c *gin.Context) {
	var uri URISessionKey
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SessionResponse{
			Error: &s,
		})
		return
	}

	var editable SessionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &s,
		})
		return
	}

	preferences, err := services().Sessions.Update(c.Request.Context(), uri.Key, service.SessionInput{
		Theme:           editable.Theme,
		DefaultCurrency: editable.DefaultCurrency,
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &s,
		})
		return
	}

	data := newSession(c, preferences)
	c.JSON(http.StatusOK, SessionResponse{Data: &data})
}
