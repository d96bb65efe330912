// internal/remote/client.go
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fullsound/fullsound/internal/models"
)

// Client talks to the optional Fullsound API. Every call is a single
// attempt with a bounded timeout; callers treat any error as "remote is
// unavailable" and fall back to the local tier, so errors here are never
// retried and never surfaced to end users.
type Client struct {
	baseURL string
	http    *http.Client
	token   func() string
}

// New builds a client for baseURL. token supplies the current bearer token
// and may return "" when no session exists.
func New(baseURL string, timeout time.Duration, token func() string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		token:   token,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.baseURL == "" {
		return fmt.Errorf("no API base URL configured")
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s %s", resp.StatusCode, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Auth

type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type credentials struct {
	Email    string `json:"correo"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/login", credentials{Email: email, Password: password}, &res)
	return res, err
}

func (c *Client) Register(ctx context.Context, name, email, password string) (models.User, error) {
	var res struct {
		User models.User `json:"user"`
	}
	body := map[string]string{"nombre": name, "correo": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/auth/register", body, &res)
	return res.User, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) Verify(ctx context.Context) (models.User, error) {
	var res struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/auth/verify", nil, &res)
	return res.User, err
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"correo": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", body, nil)
}

// Beats

func (c *Client) ListBeats(ctx context.Context, filter models.BeatFilter) ([]models.Beat, error) {
	params := url.Values{}
	if filter.Genre != "" {
		params.Set("genero", filter.Genre)
	}
	if filter.Artist != "" {
		params.Set("artista", filter.Artist)
	}
	path := "/beats"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var beats []models.Beat
	err := c.do(ctx, http.MethodGet, path, nil, &beats)
	return beats, err
}

func (c *Client) GetBeat(ctx context.Context, id int) (models.Beat, error) {
	var beat models.Beat
	err := c.do(ctx, http.MethodGet, "/beats/"+strconv.Itoa(id), nil, &beat)
	return beat, err
}

func (c *Client) CreateBeat(ctx context.Context, beat models.Beat) (models.Beat, error) {
	var created models.Beat
	err := c.do(ctx, http.MethodPost, "/beats", beat, &created)
	return created, err
}

func (c *Client) UpdateBeat(ctx context.Context, id int, beat models.Beat) (models.Beat, error) {
	var updated models.Beat
	err := c.do(ctx, http.MethodPut, "/beats/"+strconv.Itoa(id), beat, &updated)
	return updated, err
}

func (c *Client) DeleteBeat(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/beats/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) Genres(ctx context.Context) ([]string, error) {
	var genres []string
	err := c.do(ctx, http.MethodGet, "/generos", nil, &genres)
	return genres, err
}

// Cart

type Cart struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
}

func (c *Client) GetCart(ctx context.Context) (Cart, error) {
	var cart Cart
	err := c.do(ctx, http.MethodGet, "/carrito", nil, &cart)
	return cart, err
}

func (c *Client) AddCartItem(ctx context.Context, item models.CartItem) (Cart, error) {
	var cart Cart
	err := c.do(ctx, http.MethodPost, "/carrito/items", item, &cart)
	return cart, err
}

func (c *Client) UpdateCartItem(ctx context.Context, id, quantity int) (Cart, error) {
	var cart Cart
	body := map[string]int{"cantidad": quantity}
	err := c.do(ctx, http.MethodPut, "/carrito/items/"+strconv.Itoa(id), body, &cart)
	return cart, err
}

func (c *Client) RemoveCartItem(ctx context.Context, id int) (Cart, error) {
	var cart Cart
	err := c.do(ctx, http.MethodDelete, "/carrito/items/"+strconv.Itoa(id), nil, &cart)
	return cart, err
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/carrito", nil, nil)
}

func (c *Client) Checkout(ctx context.Context, details models.JSONB) (models.Order, error) {
	var order models.Order
	err := c.do(ctx, http.MethodPost, "/carrito/checkout", details, &order)
	return order, err
}

// Users

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/usuarios/perfil", nil, &user)
	return user, err
}

func (c *Client) UpdateProfile(ctx context.Context, patch map[string]interface{}) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPut, "/usuarios/perfil", patch, &user)
	return user, err
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"passwordActual": current, "passwordNueva": next}
	return c.do(ctx, http.MethodPut, "/usuarios/cambiar-password", body, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/usuarios", nil, &users)
	return users, err
}

func (c *Client) GetUser(ctx context.Context, id int) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/usuarios/"+strconv.Itoa(id), nil, &user)
	return user, err
}

func (c *Client) UpdateUser(ctx context.Context, id int, patch map[string]interface{}) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPut, "/usuarios/"+strconv.Itoa(id), patch, &user)
	return user, err
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/usuarios/"+strconv.Itoa(id), nil, nil)
}
