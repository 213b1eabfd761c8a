// Package httpapi exposes the shop over HTTP/JSON: catalog CRUD, signup and
// login, image uploads, and the token-gated cart endpoints.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/avelov/shopapi/internal/logging"
	"github.com/avelov/shopapi/internal/server/models"
	"github.com/avelov/shopapi/internal/server/services"
)

// The handler layer depends on narrow views of the services so tests can
// substitute fakes.
type userService interface {
	Signup(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type cartService interface {
	AddItem(ctx context.Context, userID string, slot int) error
	RemoveItem(ctx context.Context, userID string, slot int) error
	GetCart(ctx context.Context, userID string) (models.CartData, error)
}

type catalogService interface {
	AddProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	RemoveProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context) ([]*models.Product, error)
}

type uploadService interface {
	PresignImageUpload(ctx context.Context) (*services.ImageUpload, error)
}

type HTTPServer struct {
	address   string
	logger    logging.Logger
	users     userService
	cart      cartService
	catalog   catalogService
	uploads   uploadService
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, cs *services.CartService,
	cat *services.CatalogService, up *services.ImageUploadService, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		cart:      cs,
		catalog:   cat,
		uploads:   up,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *HTTPServer) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleWelcome)

	mux.HandleFunc("POST /addproduct", s.handleAddProduct)
	mux.HandleFunc("POST /removeproduct", s.handleRemoveProduct)
	mux.HandleFunc("GET /allproducts", s.handleAllProducts)

	mux.HandleFunc("POST /signup", s.handleSignup)
	mux.HandleFunc("POST /login", s.handleLogin)

	mux.HandleFunc("POST /upload", s.handleUpload)

	mux.HandleFunc("POST /addtocart", s.withAuth(s.handleAddToCart))
	mux.HandleFunc("POST /removefromcart", s.withAuth(s.handleRemoveFromCart))
	mux.HandleFunc("POST /getcart", s.withAuth(s.handleGetCart))

	return mux
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = srv.Shutdown(context.Background())
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
