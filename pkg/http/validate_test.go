package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type sampleForm struct {
	Name string `form:"name" json:"name" validate:"required"`
	Kind string `form:"kind" json:"kind" default:"plain" validate:"oneof=plain fancy"`
}

func newFormContext(values url.Values) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestReadAndValidateRequestAppliesDefaults(t *testing.T) {
	c := newFormContext(url.Values{"name": {"x"}})
	req := &sampleForm{}
	if err := ReadAndValidateRequest(c, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Name != "x" || req.Kind != "plain" {
		t.Fatalf("unexpected bind result %+v", req)
	}
}

func TestReadAndValidateRequestRequired(t *testing.T) {
	c := newFormContext(url.Values{})
	err := ReadAndValidateRequest(c, &sampleForm{})
	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %v", err)
	}
	if appErr.Status != http.StatusBadRequest || appErr.Code != "ERR_REQUIRED" || appErr.Field != "Name" {
		t.Fatalf("unexpected app error %+v", appErr)
	}
}

func TestReadAndValidateRequestOneOf(t *testing.T) {
	c := newFormContext(url.Values{"name": {"x"}, "kind": {"odd"}})
	err := ReadAndValidateRequest(c, &sampleForm{})
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code != "ERR_ONEOF" {
		t.Fatalf("expected ERR_ONEOF, got %v", err)
	}
	if appErr.Message != "Kind must be one of: plain, fancy" {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
}
