package auth_test

import (
	"testing"
	"time"

	"github.com/admin-console-api/internal/auth"
	"github.com/admin-console-api/internal/config"
	"github.com/admin-console-api/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager(&config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour})

	token, err := tm.Issue("u-1", "t-1", models.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.UserID != "u-1" || claims.TenantID != "t-1" {
		t.Errorf("claims = %s/%s, want u-1/t-1", claims.UserID, claims.TenantID)
	}
	if claims.SystemRole != models.RoleSuperAdmin {
		t.Errorf("role = %q, want %q", claims.SystemRole, models.RoleSuperAdmin)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager(&config.AuthConfig{JWTSecret: "secret-a", TokenTTL: time.Hour})
	verifier := auth.NewTokenManager(&config.AuthConfig{JWTSecret: "secret-b", TokenTTL: time.Hour})

	token, err := issuer.Issue("u-1", "t-1", models.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.Parse(token); err == nil {
		t.Error("Parse() accepted a token signed with a different secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tm := auth.NewTokenManager(&config.AuthConfig{JWTSecret: "test-secret", TokenTTL: -time.Minute})

	token, err := tm.Issue("u-1", "t-1", models.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tm.Parse(token); err == nil {
		t.Error("Parse() accepted an expired token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("hunter2-extra")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "hunter2-extra" {
		t.Fatal("password stored in clear")
	}
	if !auth.CheckPassword(hash, "hunter2-extra") {
		t.Error("CheckPassword rejected the correct password")
	}
	if auth.CheckPassword(hash, "hunter3-extra") {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestSessionStore(t *testing.T) {
	store := auth.NewMemorySessionStore()

	session := models.Session{
		Token: "tok-1",
		User: models.User{
			ID:    "u-1",
			Roles: []models.Role{{ID: "r-1", SystemRole: models.RoleAdmin, UIAccess: models.PortalAdmin}},
		},
		CreatedAt: time.Now(),
	}
	store.Put(session)

	got, ok := store.Get("tok-1")
	if !ok {
		t.Fatal("Get() missed a stored session")
	}
	if got.User.ID != "u-1" {
		t.Errorf("user = %s, want u-1", got.User.ID)
	}

	store.Delete("tok-1")
	if _, ok := store.Get("tok-1"); ok {
		t.Error("session survived Delete")
	}
}

func TestSessionStoreDropsEmptyToken(t *testing.T) {
	store := auth.NewMemorySessionStore()
	store.Put(models.Session{Token: ""})

	if _, ok := store.Get(""); ok {
		t.Error("empty-token session was stored")
	}
}

func TestSessionValidity(t *testing.T) {
	valid := models.Session{
		Token: "tok",
		User:  models.User{Roles: []models.Role{{ID: "r-1"}}},
	}
	if !valid.Valid() {
		t.Error("session with token and roles reported invalid")
	}

	noRoles := models.Session{Token: "tok"}
	if noRoles.Valid() {
		t.Error("session without roles reported valid")
	}

	noToken := models.Session{User: models.User{Roles: []models.Role{{ID: "r-1"}}}}
	if noToken.Valid() {
		t.Error("session without token reported valid")
	}
}
