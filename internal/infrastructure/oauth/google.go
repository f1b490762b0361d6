package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"jobboard/internal/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

var ErrMissingCode = errors.New("missing authorization code")

// Profile is the federated identity handed to the auth usecase.
type Profile struct {
	ID          string
	DisplayName string
	Emails      []string
	Photos      []string
}

type Google struct {
	cfg         *oauth2.Config
	userInfoURL string
}

func NewGoogle(cfg config.GoogleOAuthConfig) *Google {
	return &Google{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (g *Google) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Picture       string `json:"picture"`
}

// Exchange trades the callback code for a token and fetches the user's
// profile with it.
func (g *Google) Exchange(ctx context.Context, code string) (Profile, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Profile{}, ErrMissingCode
	}

	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return Profile{}, err
	}
	resp, err := g.cfg.Client(ctx, tok).Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Profile{}, fmt.Errorf("fetch userinfo: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Profile{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if info.Sub == "" {
		return Profile{}, errors.New("userinfo without subject")
	}

	p := Profile{ID: info.Sub, DisplayName: info.Name}
	if info.Email != "" && info.EmailVerified {
		p.Emails = []string{info.Email}
	}
	if info.Picture != "" {
		p.Photos = []string{info.Picture}
	}
	return p, nil
}
