package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meur/pinboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rr := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestHealth_StoreClosed(t *testing.T) {
	s, store := newTestServer(t)
	require.NoError(t, store.Close())

	rr := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestGetPins_EmptyIsArray(t *testing.T) {
	s, _ := newTestServer(t)

	rr := do(t, s, http.MethodGet, "/api/pins", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestCreatePin(t *testing.T) {
	s, _ := newTestServer(t)

	pin := createPin(t, s, "u1", "lake")
	assert.Equal(t, "u1", pin.UserID)
	assert.NotEmpty(t, pin.ID)

	rr := do(t, s, http.MethodGet, "/api/pins/"+pin.ID, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "lake", decode[models.Pin](t, rr).Title)
}

func TestCreatePin_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	rr := do(t, s, http.MethodPost, "/api/pins", "", models.PinCreate{Title: "t", ImageURL: "u"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Unauthorized", errorMessage(t, rr))

	rr = do(t, s, http.MethodPost, "/api/pins", "u1", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid request body", errorMessage(t, rr))

	rr = do(t, s, http.MethodPost, "/api/pins", "u1", models.PinCreate{Title: "only title"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Title and image URL are required", errorMessage(t, rr))
}

func TestGetPin_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rr := do(t, s, http.MethodGet, "/api/pins/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Pin not found", errorMessage(t, rr))
}

func TestCreateMockPins(t *testing.T) {
	s, _ := newTestServer(t)

	rr := do(t, s, http.MethodPost, "/api/pins/create-mock", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, s, http.MethodPost, "/api/pins/create-mock", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	res := decode[models.MockPinsResult](t, rr)
	assert.Equal(t, 15, res.Count)
	assert.Len(t, res.CreatedPins, 15)
	assert.Equal(t, "Mock pins created successfully", res.Message)

	rr = do(t, s, http.MethodGet, "/api/pins", "", nil)
	assert.Len(t, decode[[]models.Pin](t, rr), 15)
}

func TestGetMyPins(t *testing.T) {
	s, _ := newTestServer(t)
	createPin(t, s, "u1", "mine")
	createPin(t, s, "u2", "theirs")

	rr := do(t, s, http.MethodGet, "/api/me/pins", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, s, http.MethodGet, "/api/me/pins", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	pins := decode[[]models.Pin](t, rr)
	require.Len(t, pins, 1)
	assert.Equal(t, "mine", pins[0].Title)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/pins", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", UserIDHeader)

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}
