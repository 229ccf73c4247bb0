//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/aidflow/fundflow-backend/internal/adapter/chain/chaintest"
	"github.com/aidflow/fundflow-backend/internal/adapter/postgres"
	auditrepo "github.com/aidflow/fundflow-backend/internal/adapter/postgres/audit"
	campaignrepo "github.com/aidflow/fundflow-backend/internal/adapter/postgres/campaign"
	disbursementrepo "github.com/aidflow/fundflow-backend/internal/adapter/postgres/disbursement"
	donationrepo "github.com/aidflow/fundflow-backend/internal/adapter/postgres/donation"
	orgrepo "github.com/aidflow/fundflow-backend/internal/adapter/postgres/organization"
	"github.com/aidflow/fundflow-backend/internal/adapter/postgres/testhelper"
	"github.com/aidflow/fundflow-backend/internal/adapter/rabbitmq"
	authpkg "github.com/aidflow/fundflow-backend/internal/auth"
	"github.com/aidflow/fundflow-backend/internal/config"
	"github.com/aidflow/fundflow-backend/internal/service/audit"
	"github.com/aidflow/fundflow-backend/internal/service/campaign"
	"github.com/aidflow/fundflow-backend/internal/service/disbursement"
	"github.com/aidflow/fundflow-backend/internal/service/donation"
	"github.com/aidflow/fundflow-backend/internal/service/governance"
	"github.com/aidflow/fundflow-backend/internal/service/organization"
	"github.com/aidflow/fundflow-backend/internal/service/reconcile"
	"github.com/aidflow/fundflow-backend/internal/transport/middleware"
	"github.com/aidflow/fundflow-backend/internal/transport/rest"
)

const jwtSecret = "test-secret-at-least-32-chars-long!!"

// The ledger is shared like the database: contract ids are unique in the
// mirror, so every server must draw them from the same ledger.
var (
	ledgerOnce   sync.Once
	sharedLedger *chaintest.Ledger
)

func setupLedger(t *testing.T) *chaintest.Ledger {
	t.Helper()
	ledgerOnce.Do(func() {
		sharedLedger = chaintest.New(t, 1)
	})
	return sharedLedger
}

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL        string
	Client     *http.Client
	Pool       *pgxpool.Pool
	Ledger     *chaintest.Ledger
	Reconciler *reconcile.Service
	jwt        *authpkg.JWTManager
}

type serverOptions struct {
	auth bool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper) and an in-memory ledger.
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	// 1. Get pool from testcontainers-backed helper.
	pool := testhelper.SetupTestDB(t)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)
	led := setupLedger(t)
	events := rabbitmq.NewNoopPublisher(logger)

	// 3. Repositories.
	orgs := orgrepo.New(pool)
	campaigns := campaignrepo.New(pool)
	donations := donationrepo.New(pool)
	disbursements := disbursementrepo.New(pool)
	auditLog := auditrepo.New(pool)

	// 4. Services.
	auditService := audit.NewService(logger, auditLog, campaigns, donations, disbursements, txm)
	govService := governance.NewService(logger, led.Client, events)
	orgService := organization.NewService(logger, orgs, auditService, txm, events)
	campaignService := campaign.NewService(logger, campaigns, orgs, led.Client, auditService, txm, events)
	donationService := donation.NewService(logger, donations, campaigns, led.Client, auditService, txm, events)
	disbursementService := disbursement.NewService(logger, disbursements, campaigns, orgs, govService, led.Client, auditService, txm, events)
	reconciler := reconcile.NewService(logger,
		campaigns, donations, disbursements,
		reconcile.Writers{Campaigns: campaignService, Donations: donationService, Disbursements: disbursementService},
		led.Client, govService, auditService, txm, events,
		reconcile.Options{Batch: 50},
	)

	// 5. Middleware chain, same order as the server.
	jwtMgr := authpkg.NewJWTManager(jwtSecret, "test-issuer", 15*time.Minute)
	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,PATCH,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		}),
	}
	if opts.auth {
		mws = append(mws, middleware.Auth(jwtMgr))
	}
	mws = append(mws, middleware.Logger(logger))

	// 6. Router.
	router := rest.NewRouter(rest.Handlers{
		Health:        rest.NewHealthHandler(pool, "test-version", "testnet"),
		Organizations: rest.NewOrganizationHandler(orgService, logger),
		Campaigns:     rest.NewCampaignHandler(campaignService, logger),
		Donations:     rest.NewDonationHandler(donationService, logger),
		Disbursements: rest.NewDisbursementHandler(disbursementService, logger),
		Audit:         rest.NewAuditHandler(auditService, logger),
		Admin:         rest.NewAdminHandler(govService, logger),
	}, mws...)

	// 7. httptest server.
	srv := httptest.NewServer(router)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:        srv.URL,
		Client:     srv.Client(),
		Pool:       pool,
		Ledger:     led,
		Reconciler: reconciler,
		jwt:        jwtMgr,
	}
}

// ---------------------------------------------------------------------------
// HTTP helpers.
// ---------------------------------------------------------------------------

// do sends a JSON request and returns the status and the raw body.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// doJSON is do plus decoding of the body into a map.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	status, raw := ts.do(t, method, path, body, token)
	var result map[string]any
	require.NoError(t, json.Unmarshal(raw, &result), "body: %s", raw)
	return status, result
}

// mustStatus fails the test when the response status differs from want.
func mustStatus(t *testing.T, want, got int, body map[string]any) {
	t.Helper()
	require.Equal(t, want, got, "unexpected status, body: %v", body)
}

func (ts *testServer) token(t *testing.T, address, role string) string {
	t.Helper()
	tok, err := ts.jwt.GenerateAccessToken(authpkg.Principal{Address: address, Role: role})
	require.NoError(t, err)
	return tok
}

// ---------------------------------------------------------------------------
// Fixture helpers. Wallets are random so tests can share the database.
// ---------------------------------------------------------------------------

func wallet(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:16]
}

func (ts *testServer) createOrg(t *testing.T, wallet string) string {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/organizations", map[string]any{
		"name":           "Org " + wallet,
		"wallet_address": wallet,
	}, "")
	mustStatus(t, http.StatusCreated, status, body)
	return body["id"].(string)
}

// setQuorum changes the ledger quorum through the admin endpoint.
func (ts *testServer) setQuorum(t *testing.T, n int) {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPut, "/admin/quorum", map[string]any{
		"quorum": n,
		"caller": chaintest.Admin,
	}, "")
	mustStatus(t, http.StatusOK, status, body)
	require.Equal(t, n, int(num(t, body["quorum"])))
}

// ledgerTime returns the current test ledger time.
func (ts *testServer) ledgerTime() time.Time {
	return time.Unix(ts.Ledger.Clock.Now(), 0).UTC()
}

func (ts *testServer) createCampaign(t *testing.T, orgID string, goal int64, deadline time.Time) string {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/campaigns", map[string]any{
		"org_id":   orgID,
		"name":     "Campaign " + uuid.NewString()[:8],
		"goal":     goal,
		"deadline": deadline.Format(time.RFC3339),
	}, "")
	mustStatus(t, http.StatusCreated, status, body)
	require.Equal(t, "active", body["status"])
	return body["id"].(string)
}

func (ts *testServer) donate(t *testing.T, campaignID, donor string, amount int64, txHash string) map[string]any {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/donations", map[string]any{
		"campaign_id":   campaignID,
		"donor_address": donor,
		"amount":        amount,
		"tx_hash":       txHash,
	}, "")
	mustStatus(t, http.StatusCreated, status, body)
	return body
}

func (ts *testServer) getCampaign(t *testing.T, id string) map[string]any {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodGet, "/campaigns/"+id, nil, "")
	mustStatus(t, http.StatusOK, status, body)
	return body
}

// num reads a JSON number as int64.
func num(t *testing.T, v any) int64 {
	t.Helper()
	f, ok := v.(float64)
	require.True(t, ok, "expected number, got %T (%v)", v, v)
	return int64(f)
}

func txHash(label string) string {
	return fmt.Sprintf("%s-%s", label, uuid.NewString()[:8])
}
