package pkg

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/simp-lee/gohotel/internal/domain"
)

// Response is the JSON envelope of every API answer. Code repeats the HTTP
// status.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ValidationErrorResponse replaces Data with a field -> failed rule map.
type ValidationErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func respond(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, Response{Code: status, Message: msg, Data: data})
}

// Success answers 200 with data.
func Success(c *gin.Context, data any) {
	respond(c, http.StatusOK, "success", data)
}

// Created answers 201 with the new resource.
func Created(c *gin.Context, data any) {
	respond(c, http.StatusCreated, "success", data)
}

// Error answers with the status mapped from err's AppError code. Anything
// that is not an AppError becomes a bare 500 so store messages never leak.
func Error(c *gin.Context, err error) {
	msg := "internal error"
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	respond(c, domain.HTTPStatusCode(err), msg, nil)
}

// BindAndValidate binds the request into obj. On failure it writes a 400 and
// returns false, naming fields by their json tag:
//
//	if !pkg.BindAndValidate(c, &req) { return }
func BindAndValidate(c *gin.Context, obj any) bool {
	err := c.ShouldBind(obj)
	if err == nil {
		return true
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		respond(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return false
	}

	names := jsonFieldNames(obj)
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		name, ok := names[fe.StructField()]
		if !ok {
			name = strings.ToLower(fe.Field())
		}
		fields[name] = ruleOf(fe)
	}
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Code:    http.StatusBadRequest,
		Message: "validation error",
		Errors:  fields,
	})
	return false
}

// ruleOf renders a failed rule as "tag" or "tag=param", e.g. "max=100".
func ruleOf(fe validator.FieldError) string {
	if p := fe.Param(); p != "" {
		return fe.Tag() + "=" + p
	}
	return fe.Tag()
}

// ParseID reads the positive "id" path parameter.
func ParseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id: %s", raw)
	}
	return uint(id), nil
}

// jsonFieldNames maps struct field names of obj to their json tag names.
func jsonFieldNames(obj any) map[string]string {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	names := make(map[string]string, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
			names[f.Name] = name
		}
	}
	return names
}
