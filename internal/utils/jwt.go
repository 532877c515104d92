package utils // package utils provides helper functions for token signing and password hashing

import (
    "errors"  // sentinel error definitions and matching
    "strconv" // subject claim is carried as a decimal string
    "time"    // expiry and issued-at handling

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens

    "github.com/iliyamo/user-auth-service/internal/model" // token type enum
)

// Decode failure modes.  The service layer collapses these into its own
// generic error, but tests and callers that need to distinguish them can
// match with errors.Is.
var (
    // ErrTokenExpired means the signature checked out but the exp claim
    // is in the past.
    ErrTokenExpired = errors.New("token expired")
    // ErrInvalidSignature means the token was not signed with the given
    // secret (or uses a different algorithm).
    ErrInvalidSignature = errors.New("invalid token signature")
    // ErrTokenMalformed means the string could not be parsed as a JWT at
    // all, or its claims are not in the expected shape.
    ErrTokenMalformed = errors.New("malformed token")
)

// TokenPayload is the decoded content of a signed token.  It mirrors the
// claims written by IssueToken: subject (user ID), issued-at, expiry and
// the token type.
type TokenPayload struct {
    UserID   uint64          // sub claim
    IssuedAt time.Time       // iat claim
    Expires  time.Time       // exp claim
    Type     model.TokenType // type claim
}

// tokenClaims is the on-wire claim set.  The type claim rides alongside
// the registered claims so a refresh token can never be replayed as an
// access token and vice versa.
type tokenClaims struct {
    Type string `json:"type"`
    jwt.RegisteredClaims
}

// IssueToken builds and signs an HS256 JWT for a user.  The payload
// carries the subject (user ID), issued-at, the supplied expiry and the
// token type.  The same function serves all four token types; only
// non-access tokens are additionally persisted by the token service.
func IssueToken(secret string, userID uint64, expires time.Time, tokenType model.TokenType) (string, error) {
    now := time.Now().UTC()
    claims := tokenClaims{
        Type: string(tokenType),
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   strconv.FormatUint(userID, 10),
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(expires),
        },
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString([]byte(secret))
}

// DecodeToken parses and verifies a signed token.  It fails with
// ErrInvalidSignature when the signature does not match the secret,
// ErrTokenExpired when the exp claim has passed, and ErrTokenMalformed
// when the string cannot be parsed or the claims are not usable.  Expiry
// is enforced here, from the signed claim, and nowhere else: persisted
// token rows are looked up without an expiry filter.
func DecodeToken(secret, raw string) (TokenPayload, error) {
    var claims tokenClaims
    tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
        // Reject any signing method other than HMAC before touching the
        // signature.  Without this check a crafted "alg":"none" token
        // could slip through.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidSignature
        }
        return []byte(secret), nil
    })
    if err != nil {
        switch {
        case errors.Is(err, jwt.ErrTokenExpired):
            return TokenPayload{}, ErrTokenExpired
        case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrInvalidSignature):
            return TokenPayload{}, ErrInvalidSignature
        default:
            return TokenPayload{}, ErrTokenMalformed
        }
    }
    if !tok.Valid {
        return TokenPayload{}, ErrInvalidSignature
    }

    userID, err := strconv.ParseUint(claims.Subject, 10, 64)
    if err != nil {
        return TokenPayload{}, ErrTokenMalformed
    }
    if claims.ExpiresAt == nil || claims.IssuedAt == nil || claims.Type == "" {
        return TokenPayload{}, ErrTokenMalformed
    }

    return TokenPayload{
        UserID:   userID,
        IssuedAt: claims.IssuedAt.Time,
        Expires:  claims.ExpiresAt.Time,
        Type:     model.TokenType(claims.Type),
    }, nil
}
