package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/shoppinglist/internal/server/auth"
	"github.com/dmitrijs2005/shoppinglist/internal/server/metrics"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/memory"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shoppinglist/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmail    = "testor@example.com"
	testPassword = "secret1"
	futureDate   = "2099-12-31"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router *gin.Engine
	codec  *auth.Codec
	users  *services.UserService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	repos := repomanager.NewInMemoryRepositoryManager(store)
	codec := auth.NewCodec([]byte("test-secret"), time.Hour)

	users := services.NewUserService(memory.Conn{}, store, repos, auth.NewBcryptHasher(bcrypt.MinCost), codec)
	api := NewAPI(Deps{
		Users:   users,
		Lists:   services.NewShoppingListService(memory.Conn{}, store, repos),
		Items:   services.NewItemService(memory.Conn{}, store, repos),
		Gate:    auth.NewGate(users, codec),
		Metrics: metrics.NewMetrics(),
	})
	return &testAPI{router: api.Router(), codec: codec, users: users}
}

type response struct {
	code   int
	header http.Header
	body   map[string]any
}

func (r response) message() string {
	s, _ := r.body["message"].(string)
	return s
}

func (a *testAPI) serve(t *testing.T, req *http.Request) response {
	t.Helper()
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	raw, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := response{code: rec.Code, header: rec.Header()}
	require.NoError(t, json.Unmarshal(raw, &out.body), "body: %s", raw)
	return out
}

// form sends fields urlencoded, the way the API's original clients do.
func (a *testAPI) form(t *testing.T, method, path, token string, fields url.Values) response {
	t.Helper()
	var body io.Reader
	if fields != nil {
		body = strings.NewReader(fields.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if fields != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.serve(t, req)
}

func (a *testAPI) json(t *testing.T, method, path, token string, payload any) response {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.serve(t, req)
}

// signIn registers email and returns a fresh token for it.
func (a *testAPI) signIn(t *testing.T, email string) string {
	t.Helper()
	creds := url.Values{"email": {email}, "password": {testPassword}}
	res := a.form(t, http.MethodPost, "/api/v1/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, res.code, res.body)
	res = a.form(t, http.MethodPost, "/api/v1/auth/login", "", creds)
	require.Equal(t, http.StatusOK, res.code, res.body)
	token, _ := res.body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (a *testAPI) createList(t *testing.T, token, name string) {
	t.Helper()
	res := a.form(t, http.MethodPost, "/api/v1/shoppinglists", token, url.Values{"name": {name}, "notify date": {futureDate}})
	require.Equal(t, http.StatusCreated, res.code, res.body)
}

// listID returns the id of the only list matching name.
func (a *testAPI) listID(t *testing.T, token, name string) string {
	t.Helper()
	res := a.form(t, http.MethodGet, "/api/v1/shoppinglists?q="+url.QueryEscape(name), token, nil)
	require.Equal(t, http.StatusOK, res.code, res.body)
	rows, _ := res.body["matched lists"].([]any)
	require.Len(t, rows, 1)
	id, _ := rows[0].(map[string]any)["id"].(float64)
	return jsonID(id)
}

func jsonID(id float64) string {
	return strconv.FormatInt(int64(id), 10)
}
