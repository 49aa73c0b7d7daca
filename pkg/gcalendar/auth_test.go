package gcalendar_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"task-planner/pkg/gcalendar"
)

const installedCreds = `{
	"installed": {
		"client_id": "test-client-id.apps.googleusercontent.com",
		"client_secret": "test-secret",
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "%s",
		"redirect_uris": ["urn:ietf:wg:oauth:2.0:oob"]
	}
}`

func TestOAuthConfigFromJSON(t *testing.T) {
	cfg, err := gcalendar.OAuthConfigFromJSON([]byte(fmt.Sprintf(installedCreds, "https://oauth2.googleapis.com/token")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	url := gcalendar.AuthURL(cfg)
	if !strings.Contains(url, "client_id=test-client-id") || !strings.Contains(url, "access_type=offline") {
		t.Errorf("unexpected auth url: %s", url)
	}

	if _, err := gcalendar.OAuthConfigFromJSON([]byte(`{}`)); err == nil {
		t.Error("expected error for empty credentials")
	}
}

func TestExchangeAndSave(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "abc" {
			http.Error(w, "bad code", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	cfg, err := gcalendar.OAuthConfigFromJSON([]byte(fmt.Sprintf(installedCreds, srv.URL)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), gcalendar.TokenFile)
	if err := gcalendar.ExchangeAndSave(context.Background(), cfg, "abc", path); err != nil {
		t.Fatalf("ExchangeAndSave: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read token: %v", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	if tok.AccessToken != "at" || tok.RefreshToken != "rt" {
		t.Errorf("unexpected token: %+v", tok)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("token file mode = %v, want 0600", info.Mode().Perm())
	}

	if err := gcalendar.ExchangeAndSave(context.Background(), cfg, "wrong", path); err == nil {
		t.Error("expected error for rejected code")
	}
}
