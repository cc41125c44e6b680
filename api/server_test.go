package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/launchpad/runtime"
	"github.com/MixinNetwork/launchpad/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const owner = "2f8aa18a-3cb8-31d5-95bc-5a4f2e25dc2f"

func newTestServer(t *testing.T) (*gin.Engine, *runtime.Runtime) {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)
	bs, err := store.OpenMemory(log)
	require.NoError(t, err)
	t.Cleanup(func() { bs.Close() })

	reg := prometheus.NewRegistry()
	rt, err := runtime.New(bs, runtime.DefaultConfiguration(), reg, log)
	require.NoError(t, err)
	require.NoError(t, rt.Endow(context.Background(), owner, decimal.NewFromInt(100)))
	return New(rt, nil, reg, log), rt
}

func do(t *testing.T, g *gin.Engine, method, path string, body any) (int, map[string]any) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	var resp map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

func TestLaunchpadCollections(t *testing.T) {
	g, _ := newTestServer(t)

	code, resp := do(t, g, http.MethodGet, "/launchpad/collections", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), resp["data"].(map[string]any)["count"])

	code, _ = do(t, g, http.MethodPost, "/extrinsics/register_collection", map[string]any{
		"origin": owner, "name": "C1", "capacity": 2, "amount": "10",
	})
	require.Equal(t, http.StatusOK, code)

	_, resp = do(t, g, http.MethodGet, "/launchpad/collections", nil)
	assert.Equal(t, float64(1), resp["data"].(map[string]any)["count"])

	code, resp = do(t, g, http.MethodGet, "/collections/0", nil)
	require.Equal(t, http.StatusOK, code)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "draft", data["status"])
	assert.Equal(t, "10", data["mint_fee"])
}

func TestErrorStatus(t *testing.T) {
	g, _ := newTestServer(t)

	code, _ := do(t, g, http.MethodGet, "/collections/7", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, g, http.MethodGet, "/collections/x", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, g, http.MethodGet, "/accounts/alice/balance", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, g, http.MethodPost, "/extrinsics/teleport", map[string]any{"origin": owner})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, g, http.MethodPost, "/extrinsics/mint", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, g, http.MethodPost, "/extrinsics/register_collection", map[string]any{
		"origin": "c94ac88f-4671-3976-b60a-09064f1811e8", "name": "C1", "capacity": 1,
	})
	assert.Equal(t, http.StatusPaymentRequired, code)
}

func TestProposalEndpoint(t *testing.T) {
	require := require.New(t)
	g, rt := newTestServer(t)
	ctx := context.Background()

	id, err := rt.RegisterCollection(ctx, owner, "C1", "", 1, decimal.NewFromInt(10))
	require.NoError(err)
	_, err = rt.Mint(ctx, owner, id)
	require.NoError(err)

	proposal := "6b2a9a9e-7f4e-4a8e-9d3c-1f0c2b7a5e11"
	code, _ := do(t, g, http.MethodPost, "/extrinsics/create_proposal", map[string]any{
		"origin": owner, "proposal": proposal, "collection": id,
		"asset": "965e5c6e-434c-3fa9-b780-c50f43cd955c", "amount": "5",
		"wallet": owner, "title": "P1", "expired_at": 100,
	})
	require.Equal(http.StatusOK, code)
	code, _ = do(t, g, http.MethodPost, "/extrinsics/execute", map[string]any{"origin": owner, "proposal": proposal})
	require.Equal(http.StatusPreconditionFailed, code)
	code, _ = do(t, g, http.MethodPost, "/extrinsics/vote", map[string]any{
		"origin": owner, "proposal": proposal, "accepted": true, "class": id, "instance": 0,
	})
	require.Equal(http.StatusOK, code)

	code, resp := do(t, g, http.MethodGet, "/proposals/"+proposal, nil)
	require.Equal(http.StatusOK, code)
	tally := resp["data"].(map[string]any)["tally"].(map[string]any)
	require.Equal(float64(1), tally["Accepted"])
	require.Equal(true, tally["Passed"])

	code, _ = do(t, g, http.MethodPost, "/extrinsics/execute", map[string]any{"origin": owner, "proposal": proposal})
	require.Equal(http.StatusOK, code)
	code, resp = do(t, g, http.MethodGet, "/accounts/"+owner+"/balance", nil)
	require.Equal(http.StatusOK, code)
	require.Equal("100", resp["data"].(map[string]any)["balance"])

	code, resp = do(t, g, http.MethodGet, "/proposals", nil)
	require.Equal(http.StatusOK, code)
	require.Equal([]any{proposal}, resp["data"])
}

func TestMetricsEndpoint(t *testing.T) {
	g, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "launchpad_extrinsics_total")
}

type testArchive struct {
	events []*chain.Event
	query  []string
	limit  int
}

func (a *testArchive) ListEvents(ctx context.Context, module, name, account string, limit int) ([]*chain.Event, error) {
	a.query = []string{module, name, account}
	a.limit = limit
	var found []*chain.Event
	for i := len(a.events) - 1; i >= 0 && len(found) < limit; i-- {
		e := a.events[i]
		if (module == "" || e.Module == module) && (name == "" || e.Name == name) && (account == "" || e.Account == account) {
			found = append(found, e)
		}
	}
	return found, nil
}

func (a *testArchive) Record(ctx context.Context, events []*chain.Event) error {
	a.events = append(a.events, events...)
	return nil
}

func TestSearchEvents(t *testing.T) {
	require := require.New(t)
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)
	bs, err := store.OpenMemory(log)
	require.NoError(err)
	t.Cleanup(func() { bs.Close() })
	reg := prometheus.NewRegistry()
	rt, err := runtime.New(bs, runtime.DefaultConfiguration(), reg, log)
	require.NoError(err)

	code, _ := do(t, New(rt, nil, reg, log), http.MethodGet, "/events", nil)
	require.Equal(http.StatusNotFound, code)

	arc := &testArchive{}
	rt.AddSink(arc)
	g := New(rt, arc, reg, log)
	require.NoError(rt.Endow(context.Background(), owner, decimal.NewFromInt(100)))
	code, _ = do(t, g, http.MethodPost, "/extrinsics/register_collection", map[string]any{
		"origin": owner, "name": "C1", "capacity": 2, "amount": "10",
	})
	require.Equal(http.StatusOK, code)

	code, resp := do(t, g, http.MethodGet, "/events?module=collection&account="+owner, nil)
	require.Equal(http.StatusOK, code)
	require.Equal([]string{"collection", "", owner}, arc.query)
	require.Equal(100, arc.limit)
	events := resp["data"].([]any)
	require.Len(events, 1)
	require.Equal("CollectionRegistered", events[0].(map[string]any)["Name"])

	code, resp = do(t, g, http.MethodGet, "/events?limit=2", nil)
	require.Equal(http.StatusOK, code)
	require.Len(resp["data"].([]any), 2)

	code, _ = do(t, g, http.MethodGet, "/events?limit=0", nil)
	require.Equal(http.StatusBadRequest, code)
}
