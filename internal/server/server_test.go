package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	activitydomain "github.com/kapitulo/kapitulo/internal/activity/domain"
	activityrepository "github.com/kapitulo/kapitulo/internal/activity/repository"
	activityservice "github.com/kapitulo/kapitulo/internal/activity/service"
	authdomain "github.com/kapitulo/kapitulo/internal/auth/domain"
	"github.com/kapitulo/kapitulo/internal/auth/password"
	"github.com/kapitulo/kapitulo/internal/auth/token"
	authrepository "github.com/kapitulo/kapitulo/internal/auth/repository"
	authservice "github.com/kapitulo/kapitulo/internal/auth/service"
	chapterdomain "github.com/kapitulo/kapitulo/internal/chapter/domain"
	chapterrepository "github.com/kapitulo/kapitulo/internal/chapter/repository"
	chapterservice "github.com/kapitulo/kapitulo/internal/chapter/service"
	"github.com/kapitulo/kapitulo/internal/clock"
	"github.com/kapitulo/kapitulo/internal/config"
	contributiondomain "github.com/kapitulo/kapitulo/internal/contribution/domain"
	contributionrepository "github.com/kapitulo/kapitulo/internal/contribution/repository"
	contributionservice "github.com/kapitulo/kapitulo/internal/contribution/service"
	memberdomain "github.com/kapitulo/kapitulo/internal/member/domain"
	memberrepository "github.com/kapitulo/kapitulo/internal/member/repository"
	memberservice "github.com/kapitulo/kapitulo/internal/member/service"
	paymentdomain "github.com/kapitulo/kapitulo/internal/payment/domain"
	paymentrepository "github.com/kapitulo/kapitulo/internal/payment/repository"
	paymentservice "github.com/kapitulo/kapitulo/internal/payment/service"
	"github.com/kapitulo/kapitulo/internal/providers/pdf"
	reportservice "github.com/kapitulo/kapitulo/internal/report/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

var (
	testMetricsOnce sync.Once
	testMetrics     *HTTPMetrics
)

// sharedTestMetrics avoids double registration on the default Prometheus
// registry across tests in this package.
func sharedTestMetrics() *HTTPMetrics {
	testMetricsOnce.Do(func() {
		testMetrics = NewHTTPMetrics()
	})
	return testMetrics
}

func setupTestServer(t *testing.T) (*Server, *clock.FakeClock) {
	t.Helper()
	return setupTestServerWithConfig(t, config.Config{AppName: "kapitulo-test", Environment: "test"})
}

func setupTestServerWithConfig(t *testing.T, cfg config.Config) (*Server, *clock.FakeClock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&memberdomain.Member{},
		&paymentdomain.Payment{},
		&activitydomain.Activity{},
		&contributiondomain.Contribution{},
		&chapterdomain.ChapterInfo{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))

	dues, err := config.NewDuesPolicyHolder()
	require.NoError(t, err)

	hashed, err := password.Hash("s3cret")
	require.NoError(t, err)
	require.NoError(t, db.Create(&authdomain.User{
		ID:           node.Generate(),
		Username:     "admin",
		PasswordHash: hashed,
		Name:         "Chapter Admin",
		CreatedAt:    fake.Now(),
		UpdatedAt:    fake.Now(),
	}).Error)

	memberRepo := memberrepository.Provide()
	paymentRepo := paymentrepository.Provide()
	activityRepo := activityrepository.Provide()
	contributionRepo := contributionrepository.Provide()

	engine := NewEngine(logger, sharedTestMetrics())
	srv := NewServer(ServerParams{
		Gin:   engine,
		Cfg:   cfg,
		Log:   logger,
		Clock: fake,
		Dues:  dues,
		AuthSvc: authservice.New(authservice.Params{
			DB: db, Log: logger, Cfg: cfg, Clock: fake, Repo: authrepository.Provide(),
		}),
		MemberSvc: memberservice.New(memberservice.Params{
			DB: db, Log: logger, GenID: node, Clock: fake, Repo: memberRepo,
		}),
		PaymentSvc: paymentservice.New(paymentservice.Params{
			DB: db, Log: logger, GenID: node, Clock: fake, Repo: paymentRepo, MemberRepo: memberRepo,
		}),
		ChapterSvc: chapterservice.New(chapterservice.Params{
			DB: db, Log: logger, Clock: fake, Repo: chapterrepository.Provide(),
		}),
		ActivitySvc: activityservice.New(activityservice.Params{
			DB: db, Log: logger, GenID: node, Clock: fake, Repo: activityRepo,
		}),
		ContributionSvc: contributionservice.New(contributionservice.Params{
			DB: db, Log: logger, GenID: node, Clock: fake, Repo: contributionRepo, ActivityRepo: activityRepo, MemberRepo: memberRepo,
		}),
		ReportSvc: reportservice.New(reportservice.Params{
			DB: db, Log: logger, Clock: fake, Dues: dues,
			MemberRepo: memberRepo, PaymentRepo: paymentRepo, ContributionRepo: contributionRepo,
		}),
		PDFProvider: pdf.New(),
	})
	return srv, fake
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return doAuthJSON(t, srv, method, path, body, "")
}

func doAuthJSON(t *testing.T, srv *Server, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp := httptest.NewRecorder()
	srv.Engine().ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestLoginEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/login", gin.H{"username": "admin", "password": "s3cret"})
	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody(t, resp)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "admin", user["username"])
}

func TestLoginEndpointGenericFailure(t *testing.T) {
	srv, _ := setupTestServer(t)

	wrongPassword := doJSON(t, srv, http.MethodPost, "/login", gin.H{"username": "admin", "password": "wrong"})
	unknownUser := doJSON(t, srv, http.MethodPost, "/login", gin.H{"username": "ghost", "password": "s3cret"})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	require.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String(),
		"failure responses must not reveal which credential was wrong")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	const secret = "test-signing-secret"
	srv, _ := setupTestServerWithConfig(t, config.Config{
		AppName: "kapitulo-test", Environment: "test", AuthJWTSecret: secret,
	})

	missing := doJSON(t, srv, http.MethodGet, "/members", nil)
	require.Equal(t, http.StatusUnauthorized, missing.Code)

	garbage := doAuthJSON(t, srv, http.MethodGet, "/members", nil, "not-a-token")
	require.Equal(t, http.StatusUnauthorized, garbage.Code)

	memberToken, err := token.Issue(secret, "2", "juan", authdomain.RoleMember, token.DefaultTTL)
	require.NoError(t, err)
	forbidden := doAuthJSON(t, srv, http.MethodGet, "/members", nil, memberToken)
	require.Equal(t, http.StatusForbidden, forbidden.Code)

	adminToken, err := token.Issue(secret, "1", "admin", authdomain.RoleAdmin, token.DefaultTTL)
	require.NoError(t, err)
	ok := doAuthJSON(t, srv, http.MethodGet, "/members", nil, adminToken)
	require.Equal(t, http.StatusOK, ok.Code)

	// Public surfaces stay open regardless of the gate.
	portal := doJSON(t, srv, http.MethodGet, "/portal/9999-999", nil)
	require.Equal(t, http.StatusNotFound, portal.Code)
}

func TestCreateMemberEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/members", gin.H{
		"name":        "Juan Dela Cruz",
		"email":       "juan@example.com",
		"batchNumber": "2020-001",
		"memberType":  "pure_blooded",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	body := decodeBody(t, resp)
	require.Equal(t, "Juan Dela Cruz", body["name"])
	require.Equal(t, "active", body["status"])
}

func TestCreateMemberDuplicateBatchNumberEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	first := doJSON(t, srv, http.MethodPost, "/members", gin.H{
		"name":        "Juan Dela Cruz",
		"email":       "juan@example.com",
		"batchNumber": "2020-001",
		"memberType":  "pure_blooded",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	dup := doJSON(t, srv, http.MethodPost, "/members", gin.H{
		"name":        "Other Member",
		"email":       "other@example.com",
		"batchNumber": "2020-001",
		"memberType":  "pure_blooded",
	})
	require.Equal(t, http.StatusBadRequest, dup.Code)
	require.Contains(t, dup.Body.String(), "batch number")
}

func TestMemberNotFoundEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/members/123456789", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = doJSON(t, srv, http.MethodDelete, "/members/123456789", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestStatsEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	created := doJSON(t, srv, http.MethodPost, "/members", gin.H{
		"name":        "Juan Dela Cruz",
		"email":       "juan@example.com",
		"batchNumber": "2020-001",
		"memberType":  "pure_blooded",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	memberID := decodeBody(t, created)["id"]

	payment := doJSON(t, srv, http.MethodPost, "/payments", gin.H{
		"memberId":    memberID,
		"amount":      "500.00",
		"paymentDate": "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, payment.Code)

	resp := doJSON(t, srv, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody(t, resp)
	require.EqualValues(t, 1, body["totalMembers"])
	require.EqualValues(t, 1, body["paidMembers"])
	require.EqualValues(t, 0, body["overdueMembers"])
}

func TestPortalEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	created := doJSON(t, srv, http.MethodPost, "/members", gin.H{
		"name":        "Juan Dela Cruz",
		"email":       "juan@example.com",
		"batchNumber": "2020-001",
		"memberType":  "pure_blooded",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	memberID := decodeBody(t, created)["id"]

	// Default policy asks for 100.00 a month; pay 40 of it.
	payment := doJSON(t, srv, http.MethodPost, "/payments", gin.H{
		"memberId":    memberID,
		"amount":      "40.00",
		"paymentDate": "2024-03-10",
	})
	require.Equal(t, http.StatusCreated, payment.Code)

	resp := doJSON(t, srv, http.MethodGet, "/portal/2020-001", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody(t, resp)
	require.Equal(t, "partial", body["status"])
	require.Equal(t, "40.00", body["monthPaid"])

	missing := doJSON(t, srv, http.MethodGet, "/portal/9999-999", nil)
	require.Equal(t, http.StatusNotFound, missing.Code)
}

func TestRecentPaymentsEndpointInvalidLimit(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/recent-payments?limit=abc", nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestBackupExportEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	info := doJSON(t, srv, http.MethodPost, "/chapter-info", gin.H{"name": "Maharlika Chapter"})
	require.Equal(t, http.StatusOK, info.Code)

	resp := doJSON(t, srv, http.MethodGet, "/export/backup.json", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody(t, resp)
	require.Contains(t, body, "members")
	require.Contains(t, body, "payments")
	require.Contains(t, body, "settings")
	require.Equal(t, "2024-03-15T10:00:00Z", body["exportedAt"])
}

func TestContributionFlowEndpoints(t *testing.T) {
	srv, _ := setupTestServer(t)

	member := decodeBody(t, doJSON(t, srv, http.MethodPost, "/members", gin.H{
		"name":        "Juan Dela Cruz",
		"email":       "juan@example.com",
		"batchNumber": "2020-001",
		"memberType":  "pure_blooded",
	}))

	activityResp := doJSON(t, srv, http.MethodPost, "/activities", gin.H{
		"name":         "Scholarship Drive",
		"targetAmount": "1000.00",
		"startDate":    "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, activityResp.Code)
	activity := decodeBody(t, activityResp)

	contributionResp := doJSON(t, srv, http.MethodPost, "/contributions", gin.H{
		"activityId":       activity["id"],
		"memberId":         member["id"],
		"amount":           "250.00",
		"contributionDate": "2024-03-10",
	})
	require.Equal(t, http.StatusCreated, contributionResp.Code)

	got := decodeBody(t, doJSON(t, srv, http.MethodGet, fmt.Sprintf("/activities/%v", activity["id"]), nil))
	require.Equal(t, "250.00", got["currentAmount"])
	require.InDelta(t, 25, got["progress"], 0.0001)
}
