package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	appErrors "github.com/ivoicehq/ivoice-server/pkg/errors"
)

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Body {
	t.Helper()
	var body Body
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestMessageWritesFlatPayload(t *testing.T) {
	w := record(func(c *gin.Context) {
		Message(c, http.StatusCreated, "User registered. Please check your email for OTP.")
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if got := decode(t, w).Message; got != "User registered. Please check your email for OTP." {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestErrorUsesAppErrorStatus(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, appErrors.ErrUserNotFound)
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if got := decode(t, w).Message; got != "User not found" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestErrorHidesInternalDetails(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	body := decode(t, w)
	if body.Message != "Server Error" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestErrorNilDefaultsToServerError(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, nil)
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}
