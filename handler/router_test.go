package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	adminpkg "github.com/mikios34/storefront-backend/admin"
	adminrepo "github.com/mikios34/storefront-backend/admin/repository"
	adminsvc "github.com/mikios34/storefront-backend/admin/service"
	authrepo "github.com/mikios34/storefront-backend/auth/repository"
	authsvc "github.com/mikios34/storefront-backend/auth/service"
	"github.com/mikios34/storefront-backend/cache"
	cartrepo "github.com/mikios34/storefront-backend/cart/repository"
	cartsvc "github.com/mikios34/storefront-backend/cart/service"
	catalogrepo "github.com/mikios34/storefront-backend/catalog/repository"
	catalogsvc "github.com/mikios34/storefront-backend/catalog/service"
	customerrepo "github.com/mikios34/storefront-backend/customer/repository"
	customersvc "github.com/mikios34/storefront-backend/customer/service"
	"github.com/mikios34/storefront-backend/mailer"
	"github.com/mikios34/storefront-backend/media"
	"github.com/mikios34/storefront-backend/messaging"
	orderrepo "github.com/mikios34/storefront-backend/order/repository"
	ordersvc "github.com/mikios34/storefront-backend/order/service"
	"github.com/mikios34/storefront-backend/realtime"
	reviewrepo "github.com/mikios34/storefront-backend/review/repository"
	reviewsvc "github.com/mikios34/storefront-backend/review/service"
	"github.com/mikios34/storefront-backend/testdb"
)

const testSecret = "handler-test-secret"

type server struct {
	t       *testing.T
	router  *gin.Engine
	admin   string
	uploads string
}

type principal struct {
	UserID     string `json:"user_id"`
	CustomerID string `json:"customer_id"`
	Token      string `json:"access"`
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testdb.New(t)
	files := media.LocalStore{Dir: t.TempDir()}
	hub := realtime.NewHub()

	authService := authsvc.NewAuthService(authrepo.NewGormAuthRepo(db), mailer.LogSender{}, authsvc.Options{
		Secret:           testSecret,
		AccessTTL:        15 * time.Minute,
		RefreshTTL:       24 * time.Hour,
		PasswordResetTTL: time.Hour,
		PasswordResetURL: "http://localhost/reset",
		BcryptCost:       bcrypt.MinCost,
	})
	orderService := ordersvc.NewOrderService(orderrepo.NewGormOrderRepo(db), messaging.Noop{}, hub, "orders")
	adminService := adminsvc.NewAdminService(adminrepo.NewGormAdminRepo(db), bcrypt.MinCost)

	r := gin.New()
	RegisterRoutes(r, Deps{
		JWTSecret: testSecret,
		Auth:      NewAuthHandler(authService),
		Catalog:   NewCatalogHandler(catalogsvc.NewCatalogService(catalogrepo.NewGormCatalogRepo(db), cache.Noop{}, 0, files), files),
		Reviews:   NewReviewHandler(reviewsvc.NewReviewService(reviewrepo.NewGormReviewRepo(db))),
		Carts:     NewCartHandler(cartsvc.NewCartService(cartrepo.NewGormCartRepo(db))),
		Orders:    NewOrderHandler(orderService),
		Customers: NewCustomerHandler(customersvc.NewCustomerService(customerrepo.NewGormCustomerRepo(db))),
		Admins:    NewAdminHandler(adminService),
		WS:        NewWSHandler(hub).WithOrders(orderService),
	})

	_, err := adminService.EnsureAdmin(context.Background(), adminpkg.RegisterAdminRequest{
		Username: "root", Email: "root@example.com", Password: "rootpassword",
	})
	require.NoError(t, err)

	s := &server{t: t, router: r, uploads: files.Dir}
	var out struct{ Principal principal }
	s.decode(s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "root", "password": "rootpassword"}), http.StatusOK, &out)
	s.admin = out.Principal.Token
	return s
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *server) decode(w *httptest.ResponseRecorder, status int, out any) {
	s.t.Helper()
	require.Equal(s.t, status, w.Code, w.Body.String())
	if out != nil {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), out))
	}
}

func (s *server) register(username string) principal {
	s.t.Helper()
	var out struct{ Principal principal }
	s.decode(s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}), http.StatusCreated, &out)
	return out.Principal
}

type idBody struct {
	ID string `json:"id"`
}

func (s *server) product(collectionID, slug string, price int) string {
	s.t.Helper()
	var p idBody
	s.decode(s.do(http.MethodPost, "/api/v1/store/products", s.admin, gin.H{
		"title": "Product " + slug, "slug": slug, "unit_price": price, "inventory": 5, "collection_id": collectionID,
	}), http.StatusCreated, &p)
	return p.ID
}

func (s *server) collection() string {
	s.t.Helper()
	var col idBody
	s.decode(s.do(http.MethodPost, "/api/v1/store/collections", s.admin, gin.H{"title": "Tools"}), http.StatusCreated, &col)
	return col.ID
}

func TestAuthAndRoles(t *testing.T) {
	s := newServer(t)
	alice := s.register("alice")

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/orders", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/orders", "garbage", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/v1/store/collections", alice.Token, gin.H{"title": "x"}).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/customers", alice.Token, nil).Code)

	w := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "alice", "email": "other@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPut, "/api/v1/account/profile", alice.Token, gin.H{"old_password": "password123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	s := newServer(t)
	colID := s.collection()
	s.product(colID, "hammer", 10)
	s.product(colID, "saw", 20)
	s.product(colID, "drill", 30)

	var got struct {
		UnitPrice    decimal.Decimal `json:"unit_price"`
		PriceWithTax decimal.Decimal `json:"price_with_tax"`
	}
	id := s.product(colID, "chisel", 5)
	s.decode(s.do(http.MethodGet, "/api/v1/store/products/"+id, "", nil), http.StatusOK, &got)
	assert.True(t, got.PriceWithTax.Equal(decimal.RequireFromString("5.5")), got.PriceWithTax.String())

	w := s.do(http.MethodPost, "/api/v1/store/products", s.admin, gin.H{
		"title": "dup", "slug": "hammer", "unit_price": 3, "collection_id": colID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/v1/store/products", s.admin, gin.H{
		"title": "free", "slug": "free", "unit_price": 0, "collection_id": colID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/store/products", s.admin, gin.H{
		"title": "gold", "slug": "gold", "unit_price": 123456.789, "collection_id": colID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var page struct {
		Count    int64             `json:"count"`
		Next     *string           `json:"next"`
		Previous *string           `json:"previous"`
		Results  []json.RawMessage `json:"results"`
	}
	s.decode(s.do(http.MethodGet, "/api/v1/store/products?page_size=2&ordering=-unit_price", "", nil), http.StatusOK, &page)
	assert.EqualValues(t, 4, page.Count)
	assert.Len(t, page.Results, 2)
	require.NotNil(t, page.Next)
	assert.Contains(t, *page.Next, "page=2")
	assert.Nil(t, page.Previous)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/store/products?ordering=title", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/store/products/not-a-uuid", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/store/products/"+uuid.NewString(), "", nil).Code)

	assert.Equal(t, http.StatusMethodNotAllowed, s.do(http.MethodDelete, "/api/v1/store/collections/"+colID, s.admin, nil).Code)

	w = s.do(http.MethodGet, "/api/v1/store/export/products", s.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "products.xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestReviewOwnership(t *testing.T) {
	s := newServer(t)
	productID := s.product(s.collection(), "lamp", 12)
	alice := s.register("alice")
	bob := s.register("bob")

	base := "/api/v1/store/products/" + productID + "/reviews"
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, base, "", gin.H{"name": "x", "rate": 5}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, base, alice.Token, gin.H{"name": "x", "rate": 9}).Code)

	var rv idBody
	s.decode(s.do(http.MethodPost, base, alice.Token, gin.H{"name": "Great", "rate": 5}), http.StatusCreated, &rv)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, base+"/"+rv.ID, bob.Token, nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, base+"/"+rv.ID, alice.Token, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/store/products/"+uuid.NewString()+"/reviews", "", nil).Code)
}

func TestCheckoutFlow(t *testing.T) {
	s := newServer(t)
	colID := s.collection()
	hammer := s.product(colID, "hammer", 10)
	alice := s.register("alice")
	bob := s.register("bob")

	var cart idBody
	s.decode(s.do(http.MethodPost, "/api/v1/store/carts", "", nil), http.StatusCreated, &cart)
	items := "/api/v1/store/carts/" + cart.ID + "/items"

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/orders", alice.Token, gin.H{"cart_id": cart.ID}).Code)

	s.decode(s.do(http.MethodPost, items, "", gin.H{"product_id": hammer, "quantity": 2}), http.StatusCreated, nil)
	s.decode(s.do(http.MethodPost, items, "", gin.H{"product_id": hammer, "quantity": 1}), http.StatusCreated, nil)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, items, "", gin.H{"product_id": uuid.NewString(), "quantity": 1}).Code)

	var withTotal struct {
		Items      []json.RawMessage `json:"items"`
		TotalPrice decimal.Decimal   `json:"total_price"`
	}
	s.decode(s.do(http.MethodGet, "/api/v1/store/carts/"+cart.ID, "", nil), http.StatusOK, &withTotal)
	assert.Len(t, withTotal.Items, 1)
	assert.True(t, withTotal.TotalPrice.Equal(decimal.NewFromInt(30)), withTotal.TotalPrice.String())

	var placed struct {
		ID            string `json:"id"`
		PaymentStatus string `json:"payment_status"`
		Items         []struct {
			Quantity  int             `json:"quantity"`
			UnitPrice decimal.Decimal `json:"unit_price"`
		} `json:"items"`
	}
	s.decode(s.do(http.MethodPost, "/api/v1/orders", alice.Token, gin.H{"cart_id": cart.ID}), http.StatusCreated, &placed)
	assert.Equal(t, "P", placed.PaymentStatus)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, 3, placed.Items[0].Quantity)
	assert.True(t, placed.Items[0].UnitPrice.Equal(decimal.NewFromInt(10)))

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/store/carts/"+cart.ID, "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/orders", alice.Token, gin.H{"cart_id": cart.ID}).Code)

	order := "/api/v1/orders/" + placed.ID
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, order, alice.Token, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, order, bob.Token, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, order, s.admin, nil).Code)

	var list struct {
		Count int64 `json:"count"`
	}
	s.decode(s.do(http.MethodGet, "/api/v1/orders", bob.Token, nil), http.StatusOK, &list)
	assert.Zero(t, list.Count)
	s.decode(s.do(http.MethodGet, "/api/v1/orders", s.admin, nil), http.StatusOK, &list)
	assert.EqualValues(t, 1, list.Count)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPatch, order, alice.Token, gin.H{"payment_status": "C"}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPatch, order, s.admin, gin.H{"payment_status": "X"}).Code)
	s.decode(s.do(http.MethodPatch, order, s.admin, gin.H{"payment_status": "C"}), http.StatusOK, &placed)
	assert.Equal(t, "C", placed.PaymentStatus)

	assert.Equal(t, http.StatusMethodNotAllowed, s.do(http.MethodDelete, "/api/v1/store/products/"+hammer, s.admin, nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, s.do(http.MethodDelete, "/api/v1/customers/"+alice.CustomerID, s.admin, nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/customers/"+bob.CustomerID, s.admin, nil).Code)
}

func TestCustomerProfile(t *testing.T) {
	s := newServer(t)
	alice := s.register("alice")

	var cust struct {
		Phone      string `json:"phone"`
		Membership string `json:"membership"`
	}
	s.decode(s.do(http.MethodPut, "/api/v1/account/customer", alice.Token, gin.H{
		"phone": "555-0100", "birth_date": "1990-04-01", "membership": "G",
	}), http.StatusOK, &cust)
	assert.Equal(t, "555-0100", cust.Phone)
	assert.Equal(t, "B", cust.Membership)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, "/api/v1/account/customer", alice.Token, gin.H{"birth_date": "01/04/1990"}).Code)

	s.decode(s.do(http.MethodPut, "/api/v1/customers/"+alice.CustomerID, s.admin, gin.H{"membership": "S"}), http.StatusOK, &cust)
	assert.Equal(t, "S", cust.Membership)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, "/api/v1/customers/"+alice.CustomerID, s.admin, gin.H{"membership": "Z"}).Code)
}

func (s *server) upload(path, filename string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(s.t, err)
	_, err = part.Write([]byte("\x89PNG fake image"))
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.admin)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestUploadImage(t *testing.T) {
	s := newServer(t)
	productID := s.product(s.collection(), "vase", 15)

	w := s.upload("/api/v1/store/products/"+uuid.NewString()+"/images", "missing.png")
	assert.Equal(t, http.StatusNotFound, w.Code)
	_, err := os.Stat(filepath.Join(s.uploads, "products"))
	assert.True(t, os.IsNotExist(err), "no upload folder for a missing product")

	var img struct {
		Image string `json:"image"`
	}
	s.decode(s.upload("/api/v1/store/products/"+productID+"/images", "vase.png"), http.StatusCreated, &img)
	assert.True(t, strings.HasPrefix(img.Image, media.PublicPrefix+"/products/"+productID+"/"), img.Image)
}
