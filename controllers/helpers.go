package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

var (
	errEmptyBody    = errors.New("request body is empty")
	errTrailingData = errors.New("request body must contain a single JSON object")
)

// bindStrict decodes a JSON body rejecting unknown fields and type mismatches,
// then runs the binding tags.
func bindStrict(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return errEmptyBody
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return binding.Validator.ValidateStruct(dst)
}

func respondInvalidPayload(c *gin.Context, err error) {
	utils.JSONErrorDetails(c, http.StatusBadRequest, "error.invalidPayload", "invalid request payload", err.Error())
}

// pathID reads a UUID path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "invalid "+name+" format")
		return "", false
	}
	return raw, true
}

// respondServiceError maps a service error kind onto the HTTP status and the
// error envelope.
func respondServiceError(c *gin.Context, err error) {
	var se *services.ServiceError
	if !errors.As(err, &se) {
		log.Printf("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error")
		return
	}

	switch se.Kind {
	case services.KindNotFound:
		utils.JSONError(c, http.StatusNotFound, "error.notFound", se.Message)
	case services.KindConflict:
		utils.JSONError(c, http.StatusBadRequest, "error.conflict", se.Message)
	case services.KindInvalidInput:
		utils.JSONError(c, http.StatusBadRequest, "error.invalidInput", se.Message)
	case services.KindUnauthorized:
		utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", se.Message)
	default:
		log.Printf("store failure on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.JSONError(c, http.StatusInternalServerError, "error.storeFailure", se.Message)
	}
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := utils.ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
