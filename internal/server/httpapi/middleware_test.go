package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/avelov/shopapi/internal/common"
	"github.com/avelov/shopapi/internal/server/auth"
	"github.com/avelov/shopapi/internal/server/models"
)

func authHeader(token string) http.Header {
	h := http.Header{}
	h.Set(common.AuthTokenHeaderName, token)
	return h
}

func TestWithAuth_MissingToken(t *testing.T) {
	s, deps := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/addtocart", `{"itemId":5}`, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rec.Code)
	}
	var resp struct {
		Errors string `json:"errors"`
	}
	decodeBody(t, rec, &resp)
	if resp.Errors != "Please authenticate using valid login" {
		t.Fatalf("unexpected errors field: %q", resp.Errors)
	}
	if len(deps.cart.addCalls) != 0 {
		t.Fatalf("cart must not be touched when the token is missing")
	}
}

func TestWithAuth_TamperedToken(t *testing.T) {
	s, deps := newTestServer(t)

	token, err := auth.GenerateToken("u-1", []byte("some-other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	rec := doRequest(t, s, http.MethodPost, "/removefromcart", `{"itemId":5}`, authHeader(token))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rec.Code)
	}
	if len(deps.cart.removeCalls) != 0 {
		t.Fatalf("cart must not be touched with a bad signature")
	}
}

func TestWithAuth_ValidToken(t *testing.T) {
	s, deps := newTestServer(t)

	token, err := auth.GenerateToken("u-42", []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	rec := doRequest(t, s, http.MethodPost, "/addtocart", `{"itemId":7}`, authHeader(token))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body.String())
	}
	if len(deps.cart.addCalls) != 1 || deps.cart.addCalls[0] != (cartCall{"u-42", 7}) {
		t.Fatalf("unexpected cart calls: %+v", deps.cart.addCalls)
	}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeBody(t, rec, &resp)
	if !resp.Success || resp.Message != "Item added to cart" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleAddToCart_InvalidSlot(t *testing.T) {
	s, deps := newTestServer(t)
	deps.cart.addErr = common.ErrInvalidCartSlot

	token, err := auth.GenerateToken("u-1", []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	rec := doRequest(t, s, http.MethodPost, "/addtocart", `{"itemId":500}`, authHeader(token))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Errors  string `json:"errors"`
	}
	decodeBody(t, rec, &resp)
	if resp.Success || resp.Errors != "invalid item id" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleGetCart(t *testing.T) {
	s, deps := newTestServer(t)
	deps.cart.cart = models.CartData{"0": 0, "1": 2, "2": 0}

	token, err := auth.GenerateToken("u-9", []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	rec := doRequest(t, s, http.MethodPost, "/getcart", "", authHeader(token))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var resp struct {
		Success  bool             `json:"success"`
		CartData map[string]int64 `json:"cartData"`
	}
	decodeBody(t, rec, &resp)
	if !resp.Success || len(resp.CartData) != 3 || resp.CartData["1"] != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(deps.cart.getCalls) != 1 || deps.cart.getCalls[0] != "u-9" {
		t.Fatalf("unexpected get calls: %v", deps.cart.getCalls)
	}
}
