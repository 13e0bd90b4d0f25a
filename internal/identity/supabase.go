package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go"
	gotruetypes "github.com/supabase-community/gotrue-go/types"

	"github.com/venturely/venturely/internal/auth"
	"github.com/venturely/venturely/internal/types"
)

// SupabaseProvider talks to Supabase Auth (GoTrue) with the project's service
// role key.
type SupabaseProvider struct {
	client gotrue.Client
}

func NewSupabaseProvider(baseURL, serviceKey string, client *http.Client) *SupabaseProvider {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	gc := gotrue.New("", serviceKey).
		WithCustomGoTrueURL(strings.TrimRight(baseURL, "/") + "/auth/v1").
		WithToken(serviceKey).
		WithClient(*client)

	return &SupabaseProvider{client: gc}
}

func (p *SupabaseProvider) CreateAccount(ctx context.Context, email, password string, meta Metadata) (auth.Identity, error) {
	if err := validateSignup(email, password, meta); err != nil {
		return auth.Identity{}, err
	}

	if err := ctx.Err(); err != nil {
		return auth.Identity{}, err
	}

	resp, err := p.client.AdminCreateUser(gotruetypes.AdminCreateUserRequest{
		Email:        normalizeEmail(email),
		Password:     &password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{
			"role": string(meta.Role),
			"name": meta.Name,
		},
	})

	if err != nil {
		if status, message, ok := parseStatusError(err); ok {
			if message == "" {
				message = fmt.Sprintf("identity provider returned status %d", status)
			}
			return auth.Identity{}, &RejectedError{Message: message}
		}
		return auth.Identity{}, fmt.Errorf("identity provider request failed: %w", err)
	}

	if resp.ID == uuid.Nil {
		return auth.Identity{}, &RejectedError{Message: "identity provider returned no user"}
	}

	return auth.Identity{
		ID:    resp.ID.String(),
		Email: normalizeEmail(email),
		Role:  meta.Role,
		Name:  meta.Name,
	}, nil
}

func (p *SupabaseProvider) VerifyCredentials(ctx context.Context, email, password string) (auth.Identity, error) {
	if email == "" || password == "" {
		return auth.Identity{}, ErrInvalidInput
	}

	if err := ctx.Err(); err != nil {
		return auth.Identity{}, err
	}

	session, err := p.client.SignInWithEmailPassword(normalizeEmail(email), password)

	if err != nil {
		if _, _, ok := parseStatusError(err); ok {
			return auth.Identity{}, ErrInvalidCredentials
		}
		return auth.Identity{}, fmt.Errorf("identity provider request failed: %w", err)
	}

	user := session.User

	if user.ID == uuid.Nil {
		return auth.Identity{}, ErrInvalidCredentials
	}

	roleValue, _ := user.UserMetadata["role"].(string)
	name, _ := user.UserMetadata["name"].(string)

	role, err := types.ParseRole(roleValue)

	if err != nil {
		// an account without a usable role cannot be issued a session
		return auth.Identity{}, ErrInvalidCredentials
	}

	identityEmail := user.Email
	if identityEmail == "" {
		identityEmail = normalizeEmail(email)
	}

	return auth.Identity{
		ID:    user.ID.String(),
		Email: identityEmail,
		Role:  role,
		Name:  name,
	}, nil
}

var statusErrorPattern = regexp.MustCompile(`^response status code (\d+)(?:: ([\s\S]*))?$`)

// parseStatusError recovers the HTTP status and provider message from the
// errors gotrue-go returns for non-2xx responses.
func parseStatusError(err error) (int, string, bool) {
	m := statusErrorPattern.FindStringSubmatch(err.Error())

	if m == nil {
		return 0, "", false
	}

	status, _ := strconv.Atoi(m[1])

	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}

	if json.Unmarshal([]byte(m[2]), &body) != nil {
		return status, strings.TrimSpace(m[2]), true
	}

	for _, s := range []string{body.Msg, body.Message, body.ErrorDescription, body.Error} {
		if s != "" {
			return status, s, true
		}
	}

	return status, "", true
}
