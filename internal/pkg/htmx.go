package pkg

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/domain"
)

// Toast kinds understood by the layout's showToast listener.
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

// ShowToast sets the HX-Trigger header so the page shows a toast once htmx
// has processed the response.
func ShowToast(c *gin.Context, message, kind string) {
	trigger, _ := json.Marshal(map[string]any{
		"showToast": map[string]string{"message": message, "type": kind},
	})
	c.Header("HX-Trigger", string(trigger))
}

// Redirect asks htmx to perform a full client-side navigation to url.
func Redirect(c *gin.Context, url string) {
	c.Header("HX-Redirect", url)
}

// PageErrorMessage returns a message safe to show an end user. Messages of
// user-facing error kinds are passed through; anything else yields fallback
// so store details never reach the page.
func PageErrorMessage(err error, fallback string) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		switch appErr.Code {
		case domain.CodeNotFound, domain.CodeAlreadyExists, domain.CodeValidation, domain.CodeInUse:
			return appErr.Message
		}
	}
	return fallback
}
