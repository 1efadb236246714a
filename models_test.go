package accounts

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	u := &User{
		ID:           1,
		Username:     "johndoe",
		Email:        "john@example.com",
		PasswordHash: "$2a$10$supersecrethash",
	}

	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}

	if strings.Contains(string(raw), "supersecrethash") {
		t.Fatalf("serialized user leaked the password hash: %s", raw)
	}

	public, err := json.Marshal(u.Public())
	if err != nil {
		t.Fatalf("marshal public view: %v", err)
	}

	if strings.Contains(string(public), "supersecrethash") {
		t.Fatalf("public view leaked the password hash: %s", public)
	}
}

func TestUserUpdateIsZero(t *testing.T) {
	if !(UserUpdate{}).IsZero() {
		t.Fatal("empty update should be zero")
	}

	email := "john@example.com"
	if (UserUpdate{Email: &email}).IsZero() {
		t.Fatal("update with a field set should not be zero")
	}
}
