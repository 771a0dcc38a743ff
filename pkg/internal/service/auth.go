package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yeisme/artvault/pkg/configs"
	ctxPkg "github.com/yeisme/artvault/pkg/context"
	"github.com/yeisme/artvault/pkg/internal/storage/kv"
	nlog "github.com/yeisme/artvault/pkg/log"
)

const tokenKeyPrefix = "admin:token:"

// ErrUnauthorized 管理员凭证缺失或无效.
var ErrUnauthorized = errors.New("unauthorized")

// AuthService 管理员认证.登录签发不透明 token，存入 KV 并带 TTL，
// 校验即查询 KV，token 过期后自然失效.
type AuthService struct {
	kvc      *kv.Client
	password string
	ttl      time.Duration
}

// NewAuthService 创建并返回一个新的 AuthService 实例.
func NewAuthService(c context.Context) *AuthService {
	svc := &AuthService{
		kvc:      ctxPkg.GetKVClient(c),
		password: configs.GetConfig().Auth.AdminPassword,
		ttl:      time.Duration(configs.GetConfig().Auth.TokenTTLSeconds) * time.Second,
	}

	if svc.kvc == nil {
		nlog.Logger().Warn().Msg("KV client not initialized, admin login unavailable")
	}

	return svc
}

// newAuthServiceWith 测试用构造.
func newAuthServiceWith(store kv.KVStore, password string, ttl time.Duration) *AuthService {
	return &AuthService{kvc: &kv.Client{KVStore: store}, password: password, ttl: ttl}
}

// Login 校验口令并签发 token.口令错误返回 ErrUnauthorized.
func (a *AuthService) Login(ctx context.Context, password string) (string, int, error) {
	if a.kvc == nil {
		return "", 0, ErrUnauthorized
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) != 1 {
		return "", 0, ErrUnauthorized
	}

	token := uuid.NewString()
	if err := a.kvc.Set(ctx, tokenKeyPrefix+token, []byte("1"), a.ttl); err != nil {
		return "", 0, err
	}

	return token, int(a.ttl / time.Second), nil
}

// Verify 校验 bearer token 是否有效.
func (a *AuthService) Verify(ctx context.Context, token string) error {
	if a.kvc == nil || strings.TrimSpace(token) == "" {
		return ErrUnauthorized
	}

	ok, err := a.kvc.Exists(ctx, tokenKeyPrefix+token)
	if err != nil {
		return err
	}

	if !ok {
		return ErrUnauthorized
	}

	return nil
}

// Logout 撤销 token，幂等.
func (a *AuthService) Logout(ctx context.Context, token string) error {
	if a.kvc == nil || token == "" {
		return nil
	}

	return a.kvc.Delete(ctx, tokenKeyPrefix+token)
}
