package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/avelov/shopapi/internal/server/models"
)

func newCatalogService(rm *fakeRepoManager) *CatalogService {
	return NewCatalogService(nil, rm)
}

func TestAddProduct_AssignsIDs(t *testing.T) {
	rm := &fakeRepoManager{p: &fakeProductsRepo{}}
	s := newCatalogService(rm)

	p1, err := s.AddProduct(context.Background(), &models.Product{Name: "tee", Image: "i", Category: "men", NewPrice: 1, OldPrice: 2})
	if err != nil || p1.ID != 1 {
		t.Fatalf("first product: id=%d err=%v", p1.ID, err)
	}

	p2, err := s.AddProduct(context.Background(), &models.Product{Name: "hoodie", Image: "i", Category: "men", NewPrice: 3, OldPrice: 4})
	if err != nil || p2.ID != 2 {
		t.Fatalf("second product: id=%d err=%v", p2.ID, err)
	}
}

func TestAddProduct_Error(t *testing.T) {
	rm := &fakeRepoManager{p: &fakeProductsRepo{createErr: errBoom{}}}
	s := newCatalogService(rm)

	_, err := s.AddProduct(context.Background(), &models.Product{Name: "tee"})
	if err == nil || !regexp.MustCompile(`error creating product: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped create error, got %v", err)
	}
}

func TestRemoveProduct_PassesID(t *testing.T) {
	rm := &fakeRepoManager{p: &fakeProductsRepo{}}
	s := newCatalogService(rm)

	if err := s.RemoveProduct(context.Background(), 7); err != nil {
		t.Fatalf("RemoveProduct error: %v", err)
	}
	if len(rm.p.deleted) != 1 || rm.p.deleted[0] != 7 {
		t.Fatalf("expected delete of id 7, got %v", rm.p.deleted)
	}
}

func TestListProducts(t *testing.T) {
	rm := &fakeRepoManager{p: &fakeProductsRepo{
		listOut: []*models.Product{{ID: 1, Name: "tee"}, {ID: 2, Name: "hoodie"}},
	}}
	s := newCatalogService(rm)

	got, err := s.ListProducts(context.Background())
	if err != nil || len(got) != 2 || got[0].ID != 1 {
		t.Fatalf("ListProducts: got %+v err=%v", got, err)
	}
}

func TestListProducts_Error(t *testing.T) {
	rm := &fakeRepoManager{p: &fakeProductsRepo{listErr: errors.New("db err")}}
	s := newCatalogService(rm)

	if _, err := s.ListProducts(context.Background()); err == nil {
		t.Fatalf("expected error to propagate")
	}
}
