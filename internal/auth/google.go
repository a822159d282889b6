package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Formula-SAE/signupspark/internal/store"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

var ErrIdentityProvider = errors.New("identity provider request failed")

// GoogleProvider turns Google OAuth credentials into organizer profiles.
type GoogleProvider struct {
	config      *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: GoogleUserInfoURL,
		httpClient:  http.DefaultClient,
	}
}

func NewState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ExchangeCode completes the redirect flow.
func (g *GoogleProvider) ExchangeCode(ctx context.Context, code string) (store.UserProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)

	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return store.UserProfile{}, fmt.Errorf("%w: exchange code: %v", ErrIdentityProvider, err)
	}
	return g.fetchProfile(ctx, g.config.TokenSource(ctx, token))
}

// ProfileFromAccessToken resolves an access token obtained by a browser
// sign-in.
func (g *GoogleProvider) ProfileFromAccessToken(ctx context.Context, accessToken string) (store.UserProfile, error) {
	if accessToken == "" {
		return store.UserProfile{}, fmt.Errorf("%w: empty access token", ErrIdentityProvider)
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	return g.fetchProfile(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}))
}

type userInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (g *GoogleProvider) fetchProfile(ctx context.Context, source oauth2.TokenSource) (store.UserProfile, error) {
	client := oauth2.NewClient(ctx, source)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return store.UserProfile{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return store.UserProfile{}, fmt.Errorf("%w: userinfo: %v", ErrIdentityProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return store.UserProfile{}, fmt.Errorf("%w: userinfo status %d: %s", ErrIdentityProvider, resp.StatusCode, body)
	}

	info := userInfo{}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return store.UserProfile{}, fmt.Errorf("%w: decode userinfo: %v", ErrIdentityProvider, err)
	}
	if info.Sub == "" {
		return store.UserProfile{}, fmt.Errorf("%w: userinfo without sub", ErrIdentityProvider)
	}

	return store.UserProfile{
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
		Sub:     info.Sub,
	}, nil
}
