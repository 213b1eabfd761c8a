package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/avelov/shopapi/internal/common"
	"github.com/avelov/shopapi/internal/server/models"
)

// --- wire types ---

type authErrorResponse struct {
	Errors string `json:"errors"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Errors  string `json:"errors"`
}

type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// loginErrorResponse mirrors the historical login body, which uses a
// singular "error" field unlike every other failure response.
type loginErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type nameResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type cartResponse struct {
	Success  bool            `json:"success"`
	CartData models.CartData `json:"cartData"`
}

type uploadResponse struct {
	Success   bool   `json:"success"`
	ImageURL  string `json:"image_url"`
	UploadURL string `json:"upload_url"`
}

type productResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	NewPrice  float64   `json:"new_price"`
	OldPrice  float64   `json:"old_price"`
	Available bool      `json:"available"`
	Date      time.Time `json:"date"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Errors: "invalid request body"})
		return false
	}
	return true
}

// --- handlers ---

func (s *HTTPServer) handleWelcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Welcome to E-Commerce API"))
}

func (s *HTTPServer) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string  `json:"name"`
		Image    string  `json:"image"`
		Category string  `json:"category"`
		NewPrice float64 `json:"new_price"`
		OldPrice float64 `json:"old_price"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	product := &models.Product{
		Name:     req.Name,
		Image:    req.Image,
		Category: req.Category,
		NewPrice: req.NewPrice,
		OldPrice: req.OldPrice,
	}

	product, err := s.catalog.AddProduct(r.Context(), product)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: "internal error"})
		return
	}

	s.logger.Info(r.Context(), "Product added", "id", product.ID, "name", product.Name)
	writeJSON(w, http.StatusOK, nameResponse{Success: true, Name: product.Name})
}

func (s *HTTPServer) handleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.catalog.RemoveProduct(r.Context(), req.ID); err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: "internal error"})
		return
	}

	s.logger.Info(r.Context(), "Product removed", "id", req.ID)
	writeJSON(w, http.StatusOK, nameResponse{Success: true, Name: req.Name})
}

func (s *HTTPServer) handleAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.ListProducts(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: "internal error"})
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, productResponse{
			ID:        p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Category:  p.Category,
			NewPrice:  p.NewPrice,
			OldPrice:  p.OldPrice,
			Available: p.Available,
			Date:      p.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := s.users.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Errors: "User already exists"})
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: "internal error"})
		return
	}

	s.logger.Info(r.Context(), "User registered", "email", req.Email)
	writeJSON(w, http.StatusOK, tokenResponse{Success: true, Token: token})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			writeJSON(w, http.StatusOK, loginErrorResponse{Error: "Invalid Email address"})
		case errors.Is(err, common.ErrorUnauthorized):
			writeJSON(w, http.StatusOK, loginErrorResponse{Error: "Invalid Credentials"})
		default:
			s.logger.Error(r.Context(), err.Error())
			writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: "internal error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Success: true, Token: token})
}

func (s *HTTPServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	up, err := s.uploads.PresignImageUpload(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{Success: true, ImageURL: up.ImageURL, UploadURL: up.UploadURL})
}

func (s *HTTPServer) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusBadRequest, authErrorResponse{Errors: authErrorMessage})
		return
	}

	var req struct {
		ItemID int `json:"itemId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.cart.AddItem(r.Context(), userID, req.ItemID); err != nil {
		if errors.Is(err, common.ErrInvalidCartSlot) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Errors: "invalid item id"})
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: "internal error"})
		return
	}

	s.logger.Info(r.Context(), "Added to cart", "item", req.ItemID)
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Item added to cart"})
}

func (s *HTTPServer) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusBadRequest, authErrorResponse{Errors: authErrorMessage})
		return
	}

	var req struct {
		ItemID int `json:"itemId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.cart.RemoveItem(r.Context(), userID, req.ItemID); err != nil {
		if errors.Is(err, common.ErrInvalidCartSlot) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Errors: "invalid item id"})
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: "internal error"})
		return
	}

	s.logger.Info(r.Context(), "Removed from cart", "item", req.ItemID)
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Item removed from cart"})
}

func (s *HTTPServer) handleGetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusBadRequest, authErrorResponse{Errors: authErrorMessage})
		return
	}

	cart, err := s.cart.GetCart(r.Context(), userID)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{Success: true, CartData: cart})
}
