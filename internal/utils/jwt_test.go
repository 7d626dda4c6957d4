package utils

import (
    "testing"
    "time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
    access, err := NewAccessToken("test-secret", 42, "admin@example.com", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    if access.Token == "" {
        t.Fatal("empty token string")
    }
    if remaining := time.Until(access.Exp); remaining < 14*time.Minute || remaining > 16*time.Minute {
        t.Errorf("expiry %v away, want about 15 minutes", remaining)
    }

    id, email, err := ParseAdminToken("test-secret", access.Token)
    if err != nil {
        t.Fatalf("ParseAdminToken: %v", err)
    }
    if id != 42 {
        t.Errorf("id = %d, want 42", id)
    }
    if email != "admin@example.com" {
        t.Errorf("email = %q, want admin@example.com", email)
    }
}

func TestParseAdminTokenRejects(t *testing.T) {
    access, err := NewAccessToken("right-secret", 7, "a@b.com", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }

    cases := []struct {
        name   string
        secret string
        raw    string
    }{
        {name: "wrong secret", secret: "wrong-secret", raw: access.Token},
        {name: "garbage", secret: "right-secret", raw: "not.a.jwt"},
        {name: "empty", secret: "right-secret", raw: ""},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if _, _, err := ParseAdminToken(tc.secret, tc.raw); err == nil {
                t.Error("token accepted, want error")
            }
        })
    }
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
    access, err := NewAccessToken("s", 7, "a@b.com", -1)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    if _, _, err := ParseAdminToken("s", access.Token); err == nil {
        t.Error("expired token accepted")
    }
}

func TestPasswordHashing(t *testing.T) {
    hash, err := HashPassword("s3cret!", 4)
    if err != nil {
        t.Fatalf("HashPassword: %v", err)
    }
    if !VerifyPassword(hash, "s3cret!") {
        t.Error("correct password rejected")
    }
    if VerifyPassword(hash, "wrong") {
        t.Error("wrong password accepted")
    }
}
