package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/ideavault/vault_go_server/internal/model"
	"github.com/ideavault/vault_go_server/internal/pkg/response"
	"github.com/ideavault/vault_go_server/internal/repository"
	"github.com/ideavault/vault_go_server/internal/service"
	"github.com/ideavault/vault_go_server/internal/testutil"
)

func setupEntitlementService(t *testing.T) (*service.EntitlementService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	subRepo := repository.NewSubscriptionRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	entitleSvc := service.NewEntitlementService(subRepo, usageRepo)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return entitleSvc, db, cleanup
}

func entitledRouter(entitleSvc *service.EntitlementService, userID int64, action service.Action) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(UserIDKey, userID)
		c.Next()
	})
	router.Use(Entitle(entitleSvc, action))
	router.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router
}

func TestEntitle_FreeUserUnderLimit(t *testing.T) {
	entitleSvc, db, cleanup := setupEntitlementService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestUsage(t, db, user.ID, testutil.WithIdeasCreated(2)) // free plan allows 3

	router := entitledRouter(entitleSvc, user.ID, service.ActionCreateIdea)

	req := httptest.NewRequest("POST", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestEntitle_FreeUserAtLimit(t *testing.T) {
	entitleSvc, db, cleanup := setupEntitlementService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestUsage(t, db, user.ID, testutil.WithIdeasCreated(3))

	router := entitledRouter(entitleSvc, user.ID, service.ActionCreateIdea)

	req := httptest.NewRequest("POST", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeUpgradeRequired, resp.Code)
	assert.Equal(t, "You've reached your limit of 3 ideas", resp.Message)

	data, ok := resp.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, false, data["allowed"])
	assert.Equal(t, true, data["upgrade_required"])
}

func TestEntitle_ProUserUnlimited(t *testing.T) {
	entitleSvc, db, cleanup := setupEntitlementService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestSubscription(t, db, user.ID)
	testutil.TestUsage(t, db, user.ID, testutil.WithIdeasCreated(5000))

	router := entitledRouter(entitleSvc, user.ID, service.ActionCreateIdea)

	req := httptest.NewRequest("POST", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestEntitle_ExpiredTrial(t *testing.T) {
	entitleSvc, db, cleanup := setupEntitlementService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestSubscription(t, db, user.ID, testutil.WithTrial(-time.Hour))

	router := entitledRouter(entitleSvc, user.ID, service.ActionCreateIdea)

	req := httptest.NewRequest("POST", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeUpgradeRequired, resp.Code)
	assert.Equal(t, "Trial has expired", resp.Message)
}

func TestEntitle_NoUserID(t *testing.T) {
	entitleSvc, _, cleanup := setupEntitlementService(t)
	defer cleanup()

	router := gin.New()
	// No user ID set
	router.Use(Entitle(entitleSvc, service.ActionCreateIdea))
	router.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	req := httptest.NewRequest("POST", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestEntitle_NoUsageRow(t *testing.T) {
	entitleSvc, db, cleanup := setupEntitlementService(t)
	defer cleanup()

	// No subscription, no usage row: first action is allowed
	user := testutil.TestUser(t, db)

	router := entitledRouter(entitleSvc, user.ID, service.ActionCreateIdea)

	req := httptest.NewRequest("POST", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestEntitle_CancelledSubscription(t *testing.T) {
	entitleSvc, db, cleanup := setupEntitlementService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestSubscription(t, db, user.ID, testutil.WithStatus(model.SubStatusCancelled))

	router := entitledRouter(entitleSvc, user.ID, service.ActionCreateIdea)

	req := httptest.NewRequest("POST", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeUpgradeRequired, resp.Code)
	assert.Equal(t, "Subscription is not active", resp.Message)
}
