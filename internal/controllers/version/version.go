// Package version reports which build of cashlog is serving requests.
package version

import (
	"net/http"
	"runtime"

	"github.com/cashlog/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Data Build `json:"data"` // Build information of the running backend
}

type Build struct {
	Version   string `json:"version" example:"1.1.0"`      // Release of the cashlog backend, 0.0.0 for development builds
	GoVersion string `json:"goVersion" example:"go1.25.5"` // Go toolchain the backend was built with
}

// RegisterRoutes serves the build information for version.
func RegisterRoutes(r *gin.RouterGroup, version string) {
	r.OPTIONS("", Options)
	r.GET("", Get(Build{
		Version:   version,
		GoVersion: runtime.Version(),
	}))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns the handler for the version endpoint.
//
// @Summary		API version
// @Description	Returns the release and Go version of the running backend
// @Tags			General
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(build Build) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{Data: build})
	}
}
