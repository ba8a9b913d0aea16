package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/connectin/connectin/internal/http/handlers"
)

type bindTarget struct {
	Email string `json:"email" binding:"required,email"`
	Limit int    `json:"limit" binding:"omitempty,min=1"`
}

func newBindRouter() *gin.Engine {
	router := gin.New()
	router.POST("/bind", func(c *gin.Context) {
		var in bindTarget

		if !handlers.BindJSON(c, &in) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func TestBindJSON_FieldErrorsUseJSONNames(t *testing.T) {
	router := newBindRouter()

	w := postJSON(t, router, "/bind", gin.H{"limit": 5}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	body := decodeBody(t, w)
	errObj, _ := body["error"].(map[string]any)
	details, _ := errObj["details"].(map[string]any)
	fields, _ := details["fields"].([]any)

	if len(fields) != 1 {
		t.Fatalf("expected one field error, got %v", details)
	}

	field, _ := fields[0].(map[string]any)

	if field["field"] != "email" {
		t.Fatalf("expected json tag name, got %v", field)
	}
	if field["rule"] != "required" || field["message"] != "is required" {
		t.Fatalf("unexpected field error: %v", field)
	}
}

func TestBindJSON_SyntaxError(t *testing.T) {
	router := newBindRouter()

	w := postRaw(t, router, "/bind", `{"email": oops}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestBindJSON_TypeError(t *testing.T) {
	router := newBindRouter()

	w := postRaw(t, router, "/bind", `{"email": "a@b.com", "limit": "ten"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	body := decodeBody(t, w)
	errObj, _ := body["error"].(map[string]any)
	details, _ := errObj["details"].(map[string]any)

	if details["json"] != "invalid_json_type" || details["field"] != "limit" {
		t.Fatalf("unexpected details: %v", details)
	}
}

func TestBindJSON_ValidPayload(t *testing.T) {
	router := newBindRouter()

	w := postJSON(t, router, "/bind", gin.H{"email": "a@b.com", "limit": 3}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}
