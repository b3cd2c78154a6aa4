package handler

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/pkg/response"
	"github.com/ideavault/vault_go_server/internal/repository"
	"github.com/ideavault/vault_go_server/internal/service"
	"github.com/ideavault/vault_go_server/internal/testutil"
)

func setupTeamHandler(t *testing.T) (*TeamHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	teamRepo := repository.NewTeamRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	usageRepo := repository.NewUsageRepository(db)

	entitleSvc := service.NewEntitlementService(subRepo, usageRepo)
	teamService := service.NewTeamService(teamRepo, entitleSvc)
	handler := NewTeamHandler(teamService)

	ctx := &testContext{DB: db}
	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, ctx, cleanup
}

func TestTeamHandler_Invite_Success(t *testing.T) {
	handler, ctx, cleanup := setupTeamHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	testutil.TestSubscription(t, ctx.DB, user.ID, testutil.WithPlan("pro_monthly", "pro"))

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/team/members", handler.Invite)

	req := dto.InviteMemberRequest{
		Email: "teammate@example.com",
		Role:  "editor",
	}

	w := performRequest(router, "POST", "/team/members", req)
	resp := parseResponse(t, w)

	require.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "teammate@example.com", data["email"])
	assert.Equal(t, "editor", data["role"])
}

func TestTeamHandler_Invite_FreePlanLimit(t *testing.T) {
	handler, ctx, cleanup := setupTeamHandler(t)
	defer cleanup()

	// free 档只允许 1 个成员
	user := testutil.TestUser(t, ctx.DB)
	testutil.TestTeamMember(t, ctx.DB, user.ID, "first@example.com")

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/team/members", handler.Invite)

	req := dto.InviteMemberRequest{Email: "second@example.com"}
	w := performRequest(router, "POST", "/team/members", req)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeUpgradeRequired, resp.Code)
	assert.Equal(t, "You've reached your limit of 1 team members", resp.Message)
}

func TestTeamHandler_Invite_Duplicate(t *testing.T) {
	handler, ctx, cleanup := setupTeamHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	testutil.TestSubscription(t, ctx.DB, user.ID, testutil.WithPlan("pro_monthly", "pro"))
	testutil.TestTeamMember(t, ctx.DB, user.ID, "teammate@example.com")

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/team/members", handler.Invite)

	req := dto.InviteMemberRequest{Email: "teammate@example.com"}
	w := performRequest(router, "POST", "/team/members", req)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeDuplicateAction, resp.Code)
}

func TestTeamHandler_List(t *testing.T) {
	handler, ctx, cleanup := setupTeamHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	testutil.TestSubscription(t, ctx.DB, user.ID, testutil.WithPlan("pro_monthly", "pro"))
	testutil.TestTeamMember(t, ctx.DB, user.ID, "a@example.com")
	testutil.TestTeamMember(t, ctx.DB, user.ID, "b@example.com")

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.GET("/team/members", handler.List)

	w := performRequest(router, "GET", "/team/members", nil)
	resp := parseResponse(t, w)

	require.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	members, ok := data["members"].([]interface{})
	require.True(t, ok)
	assert.Len(t, members, 2)
}

func TestTeamHandler_Remove_NotFound(t *testing.T) {
	handler, ctx, cleanup := setupTeamHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.DELETE("/team/members/:id", handler.Remove)

	w := performRequest(router, "DELETE", "/team/members/9999", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestTeamHandler_Remove_Success(t *testing.T) {
	handler, ctx, cleanup := setupTeamHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	member := testutil.TestTeamMember(t, ctx.DB, user.ID, "teammate@example.com")

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.DELETE("/team/members/:id", handler.Remove)

	w := performRequest(router, "DELETE", fmt.Sprintf("/team/members/%d", member.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)
}
