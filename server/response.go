package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/voxrelay/errors"
	"github.com/kbukum/voxrelay/logger"
)

// RespondWithError writes err using the AppError status and body. Errors
// that are not AppErrors become a 500.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperrors.Wrap(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Global().WithContext(c.Request.Context()).Error("Request failed", logger.Fields(
			logger.FieldError, appErr.Error(),
			"code", string(appErr.Code),
			"path", c.FullPath(),
		))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 with body as-is.
func RespondOK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}
