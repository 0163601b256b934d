package handler_test

import (
	"net/http"
	"testing"
)

func TestSignupFlow(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"id":       "newbie",
		"name":     "New Person",
		"password": "hunter2",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		User map[string]any `json:"user"`
	}
	app.decode(resp, &body)

	if body.User["id"] != "newbie" {
		t.Fatalf("expected the new user back, got %v", body.User)
	}
	if _, leaked := body.User["password"]; leaked {
		t.Fatal("password must never appear in a response")
	}

	// Signup logs the account in; the session cookie works immediately.
	me := app.do(http.MethodGet, "/api/auth/me", nil)
	if me.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /me after signup, got %d", me.StatusCode)
	}
}

func TestSignup_DuplicateID(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"id":       "sarahedo",
		"name":     "Imposter",
		"password": "pw",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(http.MethodPost, "/api/auth/login", map[string]string{
		"id":       "sarahedo",
		"password": "password123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		User struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			AvatarURL string `json:"avatarURL"`
		} `json:"user"`
	}
	app.decode(resp, &body)
	if body.User.ID != "sarahedo" || body.User.Name != "Sarah Edo" {
		t.Fatalf("unexpected user payload: %+v", body.User)
	}
	if body.User.AvatarURL == "" {
		t.Fatal("expected an avatar url")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{"wrong password", map[string]string{"id": "sarahedo", "password": "nope"}, http.StatusUnauthorized},
		{"unknown user", map[string]string{"id": "ghost", "password": "password123"}, http.StatusUnauthorized},
		{"missing fields", map[string]string{"id": "sarahedo"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := app.do(http.MethodPost, "/api/auth/login", tt.body)
			if resp.StatusCode != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestLogin_RateLimited(t *testing.T) {
	app := newTestApp(t)

	var last int
	for i := 0; i < 6; i++ {
		resp := app.do(http.MethodPost, "/api/auth/login", map[string]string{
			"id":       "sarahedo",
			"password": "nope",
		})
		last = resp.StatusCode
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst exhaustion, got %d", last)
	}
}

func TestLogoutFlow(t *testing.T) {
	app := newTestApp(t)
	app.login("sarahedo", "password123")

	if resp := app.do(http.MethodGet, "/api/auth/me", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /me while logged in, got %d", resp.StatusCode)
	}

	resp := app.do(http.MethodPost, "/api/auth/logout", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 from logout, got %d", resp.StatusCode)
	}

	if resp := app.do(http.MethodGet, "/api/auth/me", nil); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 from /me after logout, got %d", resp.StatusCode)
	}
}

func TestMe_Unauthenticated(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(http.MethodGet, "/api/auth/me", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
