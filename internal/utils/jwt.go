package utils // package utils provides helpers for token creation and hashing

import (
    "errors"
    "fmt"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are short-lived and sent in the Authorization header when
// calling admin endpoints.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken is returned when a token fails parsing, signature
// verification or claim extraction.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for an admin.  The claims are
// subject (sub, the admin id), email, expiration (exp) and issued at (iat).
func NewAccessToken(secret string, adminID uint64, email string, ttlMin int) (AccessToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":   fmt.Sprintf("%d", adminID),
        "email": email,
        "exp":   exp.Unix(),
        "iat":   time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAdminToken validates an access token and returns the admin id and
// email it was issued for.  Only HMAC-signed tokens are accepted.
func ParseAdminToken(secret, raw string) (uint64, string, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return 0, "", ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return 0, "", ErrInvalidToken
    }
    sub, err := claims.GetSubject()
    if err != nil || sub == "" {
        return 0, "", ErrInvalidToken
    }
    var id uint64
    if _, err := fmt.Sscanf(sub, "%d", &id); err != nil || id == 0 {
        return 0, "", ErrInvalidToken
    }
    email, _ := claims["email"].(string)
    return id, email, nil
}
