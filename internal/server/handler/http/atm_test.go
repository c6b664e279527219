package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atmlab/teller/internal/bank"
	"github.com/atmlab/teller/internal/session"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	b := bank.New(10, zap.NewNop())
	require.NoError(t, b.Add(bank.NewAccount("00001", "00001", bank.Student, 100)))
	atm := session.New(b, zap.NewNop())
	return NewRouter(&ATMHandler{Session: atm}, zap.NewNop())
}

func postKey(t *testing.T, router http.Handler, key string) (*httptest.ResponseRecorder, DisplayResponse) {
	t.Helper()
	body, err := json.Marshal(KeyRequest{Key: key})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/key", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp DisplayResponse
	if rr.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	}
	return rr, resp
}

func TestPress_EchoesDigits(t *testing.T) {
	router := newTestRouter(t)

	rr, resp := postKey(t, router, "4")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "4", resp.Display1)
	assert.Equal(t, "account_number", resp.State)

	rr, resp = postKey(t, router, "2")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "42", resp.Display1)
}

func TestPress_DrivesLogin(t *testing.T) {
	router := newTestRouter(t)

	for _, key := range []string{"0", "0", "0", "0", "1", "Ent", "0", "0", "0", "0", "1"} {
		rr, _ := postKey(t, router, key)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	_, resp := postKey(t, router, "Ent")
	assert.Equal(t, "logged_in", resp.State)
	assert.Contains(t, resp.Display2, "Accepted")
}

func TestPress_InvalidBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/key", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPress_EmptyKey(t *testing.T) {
	router := newTestRouter(t)
	rr, _ := postKey(t, router, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPress_RejectsNonJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/key", strings.NewReader("key=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

func TestDisplay(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/display", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp DisplayResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Welcome to the ATM", resp.Display1)
	assert.Contains(t, resp.Display2, "Enter your account number")
	assert.Equal(t, "account_number", resp.State)
}
