package jwt

import (
	"Recipe-Website/domain"
	"Recipe-Website/internal/utils"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// NameIdentifierClaim carries the user id for clients that read the
// XML-SOAP identity claim instead of sub.
const NameIdentifierClaim = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"

const tokenLifetime = time.Minute * 120

var ErrEmptySecret = errors.New("JWT_SECRET must not be empty")

type (
	JWTService interface {
		GenerateTokenUser(userID uuid.UUID, role string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetIdentityByToken(token string) (domain.Identity, error)
	}

	jwtService struct {
		secretKey string
		issuer    string
		now       func() time.Time
	}
)

func NewJWTService() (JWTService, error) {
	return NewJWTServiceWithSecret(utils.GetConfig("JWT_SECRET"), utils.GetConfig("JWT_ISSUER"))
}

// NewJWTServiceWithSecret refuses an empty or blank key, anyone could sign
// tokens with it.
func NewJWTServiceWithSecret(secretKey, issuer string) (JWTService, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, ErrEmptySecret
	}
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
		now:       time.Now,
	}, nil
}

func (j *jwtService) GenerateTokenUser(userID uuid.UUID, role string) (string, error) {
	now := j.now()
	claims := jwt.MapClaims{
		"sub":               userID.String(),
		NameIdentifierClaim: userID.String(),
		"role":              role,
		"iss":               j.issuer,
		"iat":               now.Unix(),
		"exp":               now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Errorf("failed to sign token: %v", err)
		return "", err
	}
	return signed, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, jwt.MapClaims{}, j.parseToken)
}

func (j *jwtService) GetIdentityByToken(token string) (domain.Identity, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	if j.issuer != "" && !claims.VerifyIssuer(j.issuer, true) {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		sub, _ = claims[NameIdentifierClaim].(string)
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = domain.RoleUser
	}
	return domain.Identity{UserID: id, Role: role}, nil
}
