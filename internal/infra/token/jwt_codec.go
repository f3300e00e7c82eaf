package token

import (
	"errors"
	"time"

	"corner/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// セッションの有効期限（7日）
const DefaultTTL = 7 * 24 * time.Hour

// 現在の時間
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// 署名されるJSON。claimsはフラットに並ぶ
type jwtClaims struct {
	model.SessionClaims
	jwt.RegisteredClaims
}

// HS256でセッショントークンを発行・検証する
type Codec struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
}

// DI（clockがnilなら実時間）
func NewCodec(secret string, ttl time.Duration, clock Clock) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: empty secret")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = systemClock{}
	}
	return &Codec{secret: []byte(secret), ttl: ttl, clock: clock}, nil
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issueはclaimsに署名して、jti/iat/expを付ける
func (c *Codec) Issue(claims model.SessionClaims) (string, model.Session, error) {
	// NumericDateは秒単位なので先にそろえる
	now := c.clock.Now().Truncate(time.Second)
	exp := now.Add(c.ttl)
	jti := uuid.NewString()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		SessionClaims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", model.Session{}, err
	}

	return signed, model.Session{
		Claims:    claims,
		TokenID:   jti,
		IssuedAt:  now,
		ExpiresAt: exp,
	}, nil
}

// Verifyは署名と期限を確認する。
// 壊れている/期限切れ/署名違い/アルゴリズム違いはすべて (nil, false)。
func (c *Codec) Verify(raw string) (*model.Session, bool) {
	if raw == "" {
		return nil, false
	}

	var claims jwtClaims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || parsed == nil || !parsed.Valid {
		return nil, false
	}

	//中身が足りないトークンも無効
	if claims.ID == "" || claims.UserID == "" || !claims.Role.Valid() || claims.IssuedAt == nil {
		return nil, false
	}

	return &model.Session{
		Claims:    claims.SessionClaims,
		TokenID:   claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, true
}
