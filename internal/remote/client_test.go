// internal/remote/client_test.go
package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullsound/fullsound/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, time.Second, func() string { return token })
}

func TestListBeatsEncodesFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/beats", r.URL.Path)
		assert.Equal(t, "Rock", r.URL.Query().Get("genero"))
		json.NewEncoder(w).Encode([]models.Beat{{ID: 1, Title: "Remoto"}})
	}, "")

	beats, err := client.ListBeats(context.Background(), models.BeatFilter{Genre: "Rock"})
	require.NoError(t, err)
	require.Len(t, beats, 1)
	assert.Equal(t, "Remoto", beats[0].Title)
}

func TestBearerTokenHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.Beat{})
	}, "tok123")

	_, err := client.ListBeats(context.Background(), models.BeatFilter{})
	require.NoError(t, err)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.Beat{})
	}, "")

	_, err := client.ListBeats(context.Background(), models.BeatFilter{})
	require.NoError(t, err)
}

func TestNon2xxIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}, "")

	_, err := client.ListBeats(context.Background(), models.BeatFilter{})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "maria@gmail.com", body["correo"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"user":  models.User{ID: 1, Email: "maria@gmail.com", Role: models.RoleUser},
			"token": "remoto-token",
		})
	}, "")

	res, err := client.Login(context.Background(), "maria@gmail.com", "1234")
	require.NoError(t, err)
	assert.Equal(t, "remoto-token", res.Token)
	assert.Equal(t, "maria@gmail.com", res.User.Email)
}

func TestAddCartItem(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/carrito/items", r.URL.Path)
		json.NewEncoder(w).Encode(Cart{
			Items: []models.CartItem{{ID: 1, Quantity: 1, Price: 100}},
			Total: 100,
		})
	}, "")

	cart, err := client.AddCartItem(context.Background(), models.CartItem{ID: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, float64(100), cart.Total)
}

func TestUnreachableServer(t *testing.T) {
	client := New("http://127.0.0.1:1", 200*time.Millisecond, func() string { return "" })

	_, err := client.ListBeats(context.Background(), models.BeatFilter{})
	assert.Error(t, err)
}

func TestEmptyBaseURL(t *testing.T) {
	client := New("", time.Second, func() string { return "" })

	err := client.Logout(context.Background())
	assert.Error(t, err)
}
