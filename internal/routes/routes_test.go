package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/handlers"
	"marketplace/internal/models"
	"marketplace/internal/repositories/repotest"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// memoryBlacklist is an in-process stand-in for the redis blacklist.
type memoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (b *memoryBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (b *memoryBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.revoked[jti]
	return ok && time.Now().Before(exp), nil
}

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	db := repotest.NewDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			Issuer:     "marketplace-test",
			AccessTTL:  5 * time.Minute,
			RefreshTTL: time.Hour,
		},
		BcryptCost: bcrypt.MinCost,
	}

	app := fiber.New()
	SetupRoutes(app, Dependencies{
		DB:        db,
		Config:    cfg,
		Logger:    zap.NewNop(),
		Blacklist: &memoryBlacklist{revoked: map[string]time.Time{}},
		Health: map[string]handlers.Pinger{
			"database": func(ctx context.Context) error { return nil },
		},
	})
	return &testServer{app: app, db: db}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode(t *testing.T, data []byte, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, out), string(data))
}

func (s *testServer) registerMerchant(t *testing.T, username string, level uint) {
	status, body := s.do(t, "POST", "/register/merchant/", "", fiber.Map{
		"username": username, "password": "pw-123456", "password2": "pw-123456", "membership_level_id": level,
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
}

func (s *testServer) registerCustomer(t *testing.T, username string) {
	status, body := s.do(t, "POST", "/register/customer/", "", fiber.Map{
		"username": username, "password": "pw-123456", "password2": "pw-123456",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
}

func (s *testServer) login(t *testing.T, username string) (access, refresh string) {
	status, body := s.do(t, "POST", "/login/", "", fiber.Map{"username": username, "password": "pw-123456"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decode(t, body, &pair)
	return pair.Access, pair.Refresh
}

func TestRegisterCustomer_Response(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, "POST", "/register/customer/", "", fiber.Map{
		"username": "alice", "password": "pw-123456", "password2": "pw-123456", "email": "a@example.com",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var got map[string]interface{}
	decode(t, body, &got)
	assert.Equal(t, "alice", got["username"])
	assert.Equal(t, "a@example.com", got["email"])
	assert.Contains(t, got, "id")
	assert.Contains(t, got, "first_name")
	assert.Contains(t, got, "last_name")
	assert.NotContains(t, got, "password")
}

func TestRegister_Errors(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, "POST", "/register/customer/", "", fiber.Map{
		"username": "alice", "password": "pw-123456", "password2": "different",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"password":["Password fields didn't match."]}`, string(body))

	status, body = s.do(t, "POST", "/register/merchant/", "", fiber.Map{
		"username": "m9", "password": "pw-123456", "password2": "pw-123456", "membership_level_id": 42,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"membership_level_id":["Invalid pk \"42\" - object does not exist."]}`, string(body))

	var n int64
	require.NoError(t, s.db.Model(&models.Account{}).Count(&n).Error)
	assert.Zero(t, n)

	s.registerCustomer(t, "bob")
	status, body = s.do(t, "POST", "/register/customer/", "", fiber.Map{
		"username": "bob", "password": "pw-123456", "password2": "pw-123456",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"username":["A user with that username already exists."]}`, string(body))
}

func TestLoginRefreshLogout(t *testing.T) {
	s := newTestServer(t)
	s.registerCustomer(t, "alice")

	status, _ := s.do(t, "POST", "/login/", "", fiber.Map{"username": "alice", "password": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	access, refresh := s.login(t, "alice")

	status, body := s.do(t, "POST", "/refresh/", "", fiber.Map{"refresh": refresh})
	require.Equal(t, fiber.StatusOK, status, string(body))
	var refreshed map[string]string
	decode(t, body, &refreshed)
	assert.NotEmpty(t, refreshed["access"])

	// A refresh token is not accepted as a bearer credential.
	status, _ = s.do(t, "GET", "/user/", refresh, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = s.do(t, "POST", "/logout/", access, fiber.Map{"refresh": refresh})
	require.Equal(t, fiber.StatusNoContent, status)

	status, _ = s.do(t, "GET", "/user/", access, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	status, _ = s.do(t, "POST", "/refresh/", "", fiber.Map{"refresh": refresh})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// The access token minted by refresh was not presented at logout and stays valid.
	status, _ = s.do(t, "GET", "/user/", refreshed["access"], nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestIdentityEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.registerMerchant(t, "m1", models.LevelGold)
	s.registerCustomer(t, "c1")
	m1, _ := s.login(t, "m1")
	c1, _ := s.login(t, "c1")

	status, body := s.do(t, "GET", "/user/", m1, nil)
	require.Equal(t, fiber.StatusOK, status)
	var me map[string]interface{}
	decode(t, body, &me)
	assert.Equal(t, "m1", me["username"])
	assert.Equal(t, "merchant", me["role"])

	status, body = s.do(t, "GET", "/merchant/", m1, nil)
	require.Equal(t, fiber.StatusOK, status)
	var merchant struct {
		User            map[string]interface{} `json:"user"`
		MembershipLevel models.MembershipLevel `json:"membership_level"`
	}
	decode(t, body, &merchant)
	assert.Equal(t, "m1", merchant.User["username"])
	assert.Equal(t, "gold", merchant.MembershipLevel.Name)

	status, body = s.do(t, "GET", "/user/", c1, nil)
	require.Equal(t, fiber.StatusOK, status)
	decode(t, body, &me)
	assert.Equal(t, "customer", me["role"])

	status, _ = s.do(t, "GET", "/merchant/", c1, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	s.registerMerchant(t, "m2", models.LevelFree)
	m2, _ := s.login(t, "m2")
	status, body = s.do(t, "GET", "/merchant/", m2, nil)
	require.Equal(t, fiber.StatusOK, status)
	var free struct {
		MembershipLevel models.MembershipLevel `json:"membership_level"`
	}
	decode(t, body, &free)
	assert.Equal(t, models.LevelFree, free.MembershipLevel.ID)
	assert.Equal(t, "free", free.MembershipLevel.Name)

	status, body = s.do(t, "GET", "/user/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.JSONEq(t, `{"detail":"Authentication credentials were not provided."}`, string(body))
}

func TestRestaurantOwnershipScenario(t *testing.T) {
	s := newTestServer(t)
	s.registerMerchant(t, "m1", models.LevelFree)
	s.registerMerchant(t, "m2", models.LevelFree)
	s.registerCustomer(t, "c1")
	m1, _ := s.login(t, "m1")
	m2, _ := s.login(t, "m2")
	c1, _ := s.login(t, "c1")

	// A client-supplied merchant is ignored.
	status, body := s.do(t, "POST", "/restaurants/", m1, fiber.Map{"name": "Noodle", "introduction": "hot", "merchant": 999})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	var created models.Restaurant
	decode(t, body, &created)

	var account models.Account
	require.NoError(t, s.db.Where("username = ?", "m1").First(&account).Error)
	var profile models.MerchantProfile
	require.NoError(t, s.db.Where("account_id = ?", account.ID).First(&profile).Error)
	assert.Equal(t, profile.ID, created.MerchantID)

	item := fmt.Sprintf("/restaurants/%d/", created.ID)

	status, body = s.do(t, "GET", "/restaurants/", m1, nil)
	require.Equal(t, fiber.StatusOK, status)
	var list []models.Restaurant
	decode(t, body, &list)
	assert.Len(t, list, 1)

	for name, token := range map[string]string{"other merchant": m2, "customer": c1} {
		t.Run(name, func(t *testing.T) {
			status, body := s.do(t, "GET", "/restaurants/", token, nil)
			require.Equal(t, fiber.StatusOK, status)
			assert.JSONEq(t, `[]`, string(body))

			status, _ = s.do(t, "GET", item, token, nil)
			assert.Equal(t, fiber.StatusNotFound, status)
			status, _ = s.do(t, "PUT", item, token, fiber.Map{"name": "Stolen"})
			assert.Equal(t, fiber.StatusNotFound, status)
			status, _ = s.do(t, "PATCH", item, token, fiber.Map{"name": "Stolen"})
			assert.Equal(t, fiber.StatusNotFound, status)
			status, _ = s.do(t, "DELETE", item, token, nil)
			assert.Equal(t, fiber.StatusNotFound, status)
		})
	}

	status, body = s.do(t, "POST", "/restaurants/", c1, fiber.Map{"name": "Nope"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"merchant":["Only merchants can create restaurants."]}`, string(body))

	status, body = s.do(t, "PATCH", item, m1, fiber.Map{"introduction": "spicy"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	var patched models.Restaurant
	decode(t, body, &patched)
	assert.Equal(t, "Noodle", patched.Name)
	assert.Equal(t, "spicy", patched.Introduction)

	status, _ = s.do(t, "GET", "/restaurants/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = s.do(t, "DELETE", item, m1, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = s.do(t, "GET", item, m1, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestComments(t *testing.T) {
	s := newTestServer(t)
	s.registerMerchant(t, "m1", models.LevelFree)
	s.registerCustomer(t, "c1")
	m1, _ := s.login(t, "m1")
	c1, _ := s.login(t, "c1")

	status, body := s.do(t, "POST", "/restaurants/", m1, fiber.Map{"name": "Noodle"})
	require.Equal(t, fiber.StatusCreated, status)
	var r models.Restaurant
	decode(t, body, &r)
	path := fmt.Sprintf("/restaurants/%d/comments/", r.ID)

	for i := 0; i < 3; i++ {
		status, body = s.do(t, "POST", path, c1, fiber.Map{"comment": fmt.Sprintf("visit %d", i)})
		require.Equal(t, fiber.StatusCreated, status, string(body))
	}
	var created models.CommentResponse
	decode(t, body, &created)
	assert.Equal(t, "c1", created.User.Username)
	assert.Equal(t, r.ID, created.Restaurant)

	status, body = s.do(t, "GET", path+"?page=1&limit=2", m1, nil)
	require.Equal(t, fiber.StatusOK, status)
	var page struct {
		Data       []models.CommentResponse `json:"data"`
		Pagination struct {
			Total    int64 `json:"total"`
			LastPage int   `json:"last_page"`
		} `json:"pagination"`
	}
	decode(t, body, &page)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.LastPage)

	status, _ = s.do(t, "DELETE", fmt.Sprintf("/comments/%d/", created.ID), m1, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = s.do(t, "DELETE", fmt.Sprintf("/comments/%d/", created.ID), c1, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = s.do(t, "GET", "/restaurants/999/comments/", c1, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestOrdersAndServices(t *testing.T) {
	s := newTestServer(t)
	s.registerMerchant(t, "m1", models.LevelFree)
	s.registerMerchant(t, "m2", models.LevelFree)
	m1, _ := s.login(t, "m1")
	m2, _ := s.login(t, "m2")

	svc := models.Service{Description: "delivery"}
	require.NoError(t, s.db.Create(&svc).Error)

	status, body := s.do(t, "GET", "/services/", m1, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, fmt.Sprintf(`[{"id":%d,"description":"delivery"}]`, svc.ID), string(body))

	status, _ = s.do(t, "GET", "/services/999/", m1, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = s.do(t, "POST", "/orders/", m1, fiber.Map{
		"payment_method": "card", "amount": 12.5, "status": "new", "service": svc.ID,
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	var o models.Order
	decode(t, body, &o)
	require.NotNil(t, o.ServiceID)
	assert.Equal(t, svc.ID, *o.ServiceID)

	status, body = s.do(t, "POST", "/orders/", m1, fiber.Map{
		"payment_method": "card", "amount": 1.25, "status": "new",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"amount":["Ensure that there are no more than 1 decimal places."]}`, string(body))

	status, body = s.do(t, "GET", "/orders/", m2, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, _ = s.do(t, "GET", fmt.Sprintf("/orders/%d/", o.ID), m2, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = s.do(t, "PATCH", fmt.Sprintf("/orders/%d/", o.ID), m1, fiber.Map{"status": "paid"})
	assert.Equal(t, fiber.StatusOK, status)
}

func TestPublicCatalogAndHealth(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, "GET", "/membership-levels/", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	var levels []models.MembershipLevel
	decode(t, body, &levels)
	require.Len(t, levels, 4)
	assert.Equal(t, uint(0), levels[0].ID)

	status, body = s.do(t, "GET", "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","services":{"database":"connected"}}`, string(body))
}

func TestHealth_Degraded(t *testing.T) {
	app := fiber.New()
	h := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"redis": func(context.Context) error { return errors.New("down") },
	})
	app.Get("/health", h.Check)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest("POST", "/login/", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
