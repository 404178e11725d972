package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"skillswap/internal/core/auth"
	"skillswap/internal/domain"
	"skillswap/pkg/utils"
)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Location string `json:"location"`
}

// ProfileInput nil 字段保持原值
type ProfileInput struct {
	FullName     *string `json:"full_name"`
	Bio          *string `json:"bio"`
	Location     *string `json:"location"`
	ProfileImage *string `json:"profile_image"`
}

type AuthResult struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

// Identity 用户目录：注册、登录、令牌校验与资料维护
type Identity struct {
	users   domain.UserRepository
	jwt     *auth.JWTer
	revoker auth.Revoker
	opt     Options
}

func NewIdentity(users domain.UserRepository, jwt *auth.JWTer, revoker auth.Revoker, opt Options) *Identity {
	if revoker == nil {
		revoker = auth.NewMemoryRevoker()
	}
	return &Identity{users: users, jwt: jwt, revoker: revoker, opt: opt.normalize()}
}

func (s *Identity) Register(ctx context.Context, in RegisterInput) (_ AuthResult, err error) {
	ctx, span := startSpan(ctx, "identity.Register")
	defer func() { endSpan(span, err) }()

	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return AuthResult{}, fmt.Errorf("email and password are required: %w", domain.ErrInvalidInput)
	}
	// 先查一次给出友好错误；并发下由存储层唯一约束兜底
	if u, err := s.users.FindByEmail(ctx, email); err != nil {
		return AuthResult{}, err
	} else if u != nil {
		return AuthResult{}, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return AuthResult{}, err
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     s.opt.Text.Text(in.FullName),
		Location:     s.opt.Text.Text(in.Location),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return AuthResult{}, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		return AuthResult{}, err
	}
	usersRegistered.Inc()
	s.opt.Log.Info("user registered", zap.Int64("user_id", u.ID))
	tok, err := s.jwt.Issue(u.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{UserID: u.ID, Token: tok}, nil
}

func (s *Identity) Login(ctx context.Context, email, password string) (_ AuthResult, err error) {
	ctx, span := startSpan(ctx, "identity.Login")
	defer func() { endSpan(span, err) }()

	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return AuthResult{}, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return AuthResult{}, fmt.Errorf("invalid email or password: %w", domain.ErrNotAuthenticated)
	}
	tok, err := s.jwt.Issue(u.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{UserID: u.ID, Token: tok}, nil
}

// Authenticate 校验 token 并返回当前用户；注销查询失败按错误上抛
func (s *Identity) Authenticate(ctx context.Context, token string) (*domain.Actor, *auth.Claims, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, nil, fmt.Errorf("%v: %w", err, domain.ErrNotAuthenticated)
	}
	uid, err := claims.UserID()
	if err != nil {
		return nil, nil, fmt.Errorf("%v: %w", err, domain.ErrNotAuthenticated)
	}
	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, nil, fmt.Errorf("token revoked: %w", domain.ErrNotAuthenticated)
	}
	return &domain.Actor{ID: uid}, claims, nil
}

func (s *Identity) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return domain.ErrNotAuthenticated
	}
	until := time.Now().Add(s.jwt.TTL)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	return s.revoker.Revoke(ctx, claims.ID, until)
}

func (s *Identity) Profile(ctx context.Context, actor *domain.Actor) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrNotAuthenticated
	}
	u, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %d: %w", actor.ID, domain.ErrNotFound)
	}
	return u, nil
}

func (s *Identity) UpdateProfile(ctx context.Context, actor *domain.Actor, in ProfileInput) (err error) {
	ctx, span := startSpan(ctx, "identity.UpdateProfile")
	defer func() { endSpan(span, err) }()

	u, err := s.Profile(ctx, actor)
	if err != nil {
		return err
	}
	if in.FullName != nil {
		u.FullName = s.opt.Text.Text(*in.FullName)
	}
	if in.Bio != nil {
		u.Bio = s.opt.Text.Text(*in.Bio)
	}
	if in.Location != nil {
		u.Location = s.opt.Text.Text(*in.Location)
	}
	if in.ProfileImage != nil {
		u.ProfileImage = *in.ProfileImage
	}
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}
	// 技能列表里嵌有老师姓名/所在地
	s.opt.invalidate(ctx, keySkillList)
	s.opt.Log.Info("profile updated", zap.Int64("user_id", u.ID))
	return nil
}

// 存储层按字节比较 email，大小写在这里统一
func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
