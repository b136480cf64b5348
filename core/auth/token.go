package auth

import (
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/fullstack-education/academico/core"
)

const (
	// ScopeClaim carries the caller's role; every manager derives its
	// authorization decision from it.
	ScopeClaim = "scope"
	// SubjectClaim carries the caller's account id.
	SubjectClaim = "sub"
)

var NowFunc = time.Now // mockable

// ClaimReader decodes an already-issued bearer token and extracts a named claim.
type ClaimReader interface {
	ReadClaim(token, claim string) (string, error)
}

type TokenService struct {
	appName         string
	secretKey       []byte
	expirationDelta time.Duration
}

var _ ClaimReader = (*TokenService)(nil)

func NewTokenService(conf *core.Config) *TokenService {
	return &TokenService{
		appName:         conf.AppName,
		secretKey:       conf.SecretKey,
		expirationDelta: conf.JWTExpirationDelta,
	}
}

// GenerateToken issues a signed HS256 token whose scope claim is the account's role
// and whose subject is the account id.
func (svc *TokenService) GenerateToken(accountID int, role string) (string, error) {
	now := NowFunc()
	claims := jwt.MapClaims{
		"iss":        svc.appName,
		SubjectClaim: strconv.Itoa(accountID),
		"iat":        now.Unix(),
		"exp":        now.Add(svc.expirationDelta).Unix(),
		ScopeClaim:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(svc.secretKey)
}

// ReadClaim parses and verifies a bearer token and returns the named claim's
// string value. Any parse, signature or expiry failure is an AuthenticationError.
func (svc *TokenService) ReadClaim(tokenStr, claim string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, core.NewAuthenticationError("unexpected token signing method")
		}
		return svc.secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", core.NewAuthenticationError("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", core.NewAuthenticationError("invalid token claims")
	}
	val, ok := claims[claim].(string)
	if !ok {
		return "", core.NewAuthenticationError("token claim not found: " + claim)
	}
	return val, nil
}
