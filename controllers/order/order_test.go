package orderControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/kiranthorat/FractalProjectEcommerce/middleware"
	"github.com/kiranthorat/FractalProjectEcommerce/models"
	"gorm.io/gorm"
)

const testToken = "z9y8x7w6v5"

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB, models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Session{}, &models.Order{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	user := models.User{Email: "u@example.com", Password: "x", IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	session := models.Session{Token: testToken, UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}

	r := gin.New()
	orderGroup := r.Group("/order")
	orderGroup.Use(middleware.ValidateSession(db))
	{
		orderGroup.POST("/add/:id/:token/", PlaceOrder(db))
		orderGroup.GET("/get/:id/:token/", GetUserOrders(db))
	}
	return r, db, user
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("POST %s: status %d", path, w.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestCountProducts(t *testing.T) {
	tests := []struct {
		products string
		want     int
	}{
		{"Shirt, , Shoes,", 2},
		{"", 0},
		{"   ", 0},
		{",,,", 0},
		{"Shirt", 1},
		{"Shirt,Shoes,Hat", 3},
		{" Shirt , Shoes ", 2},
	}
	for _, tt := range tests {
		if got := CountProducts(tt.products); got != tt.want {
			t.Errorf("CountProducts(%q) = %d, want %d", tt.products, got, tt.want)
		}
	}
}

func TestPlaceOrderSnapshot(t *testing.T) {
	r, db, user := setupServer(t)

	form := url.Values{
		"transaction_id":          {"TXN_1693000000_4242"},
		"amount":                  {"129.99"},
		"products":                {"Shirt, , Shoes,"},
		"delivery_name":           {"Kiran Thorat"},
		"delivery_phone":          {"+91 98765 43210"},
		"delivery_address_line_1": {"12 MG Road"},
		"delivery_city":           {"Bengaluru"},
		"delivery_state":          {"Karnataka"},
		"delivery_postal_code":    {"560001"},
		"delivery_country":        {"India"},
	}
	path := fmt.Sprintf("/order/add/%d/%s/", user.ID, testToken)
	resp := postForm(t, r, path, form)
	if resp["success"] != true || resp["msg"] != "Order placed Successfully" {
		t.Fatalf("place order: %v", resp)
	}

	var order models.Order
	if err := db.First(&order).Error; err != nil {
		t.Fatalf("fetch order: %v", err)
	}
	if order.TotalProducts != 2 {
		t.Fatalf("total_products = %d, want 2", order.TotalProducts)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("status = %s, want pending", order.Status)
	}
	if order.TransactionID != "TXN_1693000000_4242" {
		t.Fatalf("transaction_id = %s", order.TransactionID)
	}
	if order.TotalAmount != "129.99" {
		t.Fatalf("total_amount = %s", order.TotalAmount)
	}
	if order.DeliveryCity != "Bengaluru" {
		t.Fatalf("delivery_city = %s", order.DeliveryCity)
	}
	if got := order.DeliveryAddress(); !strings.Contains(got, "12 MG Road") {
		t.Fatalf("delivery_address = %q", got)
	}
}

func TestPlaceOrderEmptyProducts(t *testing.T) {
	r, db, user := setupServer(t)

	path := fmt.Sprintf("/order/add/%d/%s/", user.ID, testToken)
	resp := postForm(t, r, path, url.Values{"products": {"   "}})
	if resp["success"] != true {
		t.Fatalf("place order: %v", resp)
	}

	var order models.Order
	if err := db.First(&order).Error; err != nil {
		t.Fatalf("fetch order: %v", err)
	}
	if order.TotalProducts != 0 {
		t.Fatalf("total_products = %d, want 0", order.TotalProducts)
	}
	if order.TotalAmount != "0" {
		t.Fatalf("total_amount = %s, want 0", order.TotalAmount)
	}
}

func TestGetUserOrders(t *testing.T) {
	r, db, user := setupServer(t)

	other := models.User{Email: "other@example.com", Password: "x"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	orders := []models.Order{
		{UserID: user.ID, ProductNames: "Shirt", TotalProducts: 1, Status: models.OrderStatusPending, CreatedAt: time.Now().Add(-time.Hour)},
		{UserID: user.ID, ProductNames: "Shoes", TotalProducts: 1, Status: models.OrderStatusPending, CreatedAt: time.Now()},
		{UserID: other.ID, ProductNames: "Hat", TotalProducts: 1, Status: models.OrderStatusPending},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}

	path := fmt.Sprintf("/order/get/%d/%s/", user.ID, testToken)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := resp["orders"].([]any)
	if len(got) != 2 {
		t.Fatalf("orders = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].(map[string]any)["product_names"] != "Shoes" {
		t.Fatalf("first order = %v, want Shoes", got[0])
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Order{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	order := models.Order{UserID: 1, Status: models.OrderStatusPending}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}

	r := gin.New()
	r.PUT("/admin/orders/:order_id/status/", UpdateOrderStatus(db))

	do := func(id uint, status string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(gin.H{"status": status})
		req := httptest.NewRequest(http.MethodPut,
			fmt.Sprintf("/admin/orders/%d/status/", id), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := do(order.ID, "shipped"); w.Code != http.StatusOK {
		t.Fatalf("update status: %d %s", w.Code, w.Body.String())
	}
	var updated models.Order
	db.First(&updated, order.ID)
	if updated.Status != models.OrderStatusShipped {
		t.Fatalf("status = %s, want shipped", updated.Status)
	}

	if w := do(order.ID, "teleported"); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid status accepted: %d", w.Code)
	}
	if w := do(order.ID+50, "shipped"); w.Code != http.StatusNotFound {
		t.Fatalf("missing order: %d", w.Code)
	}
}
