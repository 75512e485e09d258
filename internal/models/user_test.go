package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestBeforeCreateGeneratesID(t *testing.T) {
	var user User
	if err := user.BeforeCreate(nil); err != nil {
		t.Fatalf("before create: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected user ID to be generated")
	}
}

func TestBeforeCreateKeepsExistingID(t *testing.T) {
	user := User{ID: "fixed-id"}
	if err := user.BeforeCreate(nil); err != nil {
		t.Fatalf("before create: %v", err)
	}
	if user.ID != "fixed-id" {
		t.Fatalf("expected ID to be preserved, got %s", user.ID)
	}
}

func TestUserJSONHidesCredentials(t *testing.T) {
	otp := "123456"
	expires := time.Now().Add(10 * time.Minute)
	user := User{
		Username:     "alice",
		Email:        "a@x.com",
		Password:     "$2a$10$hash",
		OTP:          &otp,
		OTPExpiresAt: &expires,
	}

	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	payload := string(raw)
	if strings.Contains(payload, "hash") {
		t.Fatal("expected password hash to be omitted from JSON")
	}
	if strings.Contains(payload, "123456") {
		t.Fatal("expected OTP to be omitted from JSON")
	}
}

func TestProfileProjection(t *testing.T) {
	user := User{
		ID:       "u-1",
		Username: "alice",
		Email:    "a@x.com",
		Password: "hash",
		Avatar:   "data:image/png;base64,AAAA",
	}

	profile := user.Profile()
	if profile.ID != "u-1" || profile.Username != "alice" || profile.Email != "a@x.com" {
		t.Fatalf("unexpected projection: %+v", profile)
	}
	if profile.Avatar != user.Avatar {
		t.Fatal("expected avatar to be carried over")
	}
}
