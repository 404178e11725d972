// Package auth 签发与校验 HS256 访问令牌，并维护注销表
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// 允许的时钟偏差
const leeway = time.Minute

// Claims jti 即 RegisteredClaims.ID，注销按它记录
type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.UID, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("uid claim %q: %w", c.UID, ErrInvalidToken)
	}
	return id, nil
}

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (j *JWTer) Issue(uid int64) (string, error) {
	now := time.Now()
	c := Claims{UID: strconv.FormatInt(uid, 10)}
	c.ID = uuid.NewString()
	c.Issuer = j.Issuer
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(j.TTL))
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.Secret)
}

func (j *JWTer) Parse(raw string) (*Claims, error) {
	p := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	)
	var c Claims
	t, err := p.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) { return j.Secret, nil })
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !t.Valid {
		return nil, ErrInvalidToken
	}
	return &c, nil
}
