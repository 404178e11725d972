package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap/internal/core/auth"
	"skillswap/internal/core/database"
	"skillswap/internal/core/sanitize"
	"skillswap/internal/domain"
	"skillswap/internal/repo"
)

type failingRevoker struct{ err error }

func (r failingRevoker) Revoke(context.Context, string, time.Time) error { return r.err }
func (r failingRevoker) IsRevoked(context.Context, string) (bool, error) { return false, r.err }

func newIdentity(t *testing.T, revoker auth.Revoker) (*Identity, *repo.MemStore) {
	t.Helper()
	store := repo.NewMemStore()
	jwt := &auth.JWTer{Secret: []byte("k"), Issuer: "test", TTL: time.Hour}
	return NewIdentity(store.Users(), jwt, revoker, Options{Text: sanitize.NewStripHTML()}), store
}

func TestIdentity_RegisterLoginAuthenticate(t *testing.T) {
	id, _ := newIdentity(t, nil)
	ctx := context.Background()

	reg, err := id.Register(ctx, RegisterInput{Email: "ann@example.com", Password: "pw", FullName: "Ann"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.UserID != 1 || reg.Token == "" {
		t.Fatalf("register = %+v", reg)
	}
	a, _, err := id.Authenticate(ctx, reg.Token)
	if err != nil || a.ID != reg.UserID {
		t.Fatalf("authenticate = %+v, %v", a, err)
	}

	login, err := id.Login(ctx, "ann@example.com", "pw")
	if err != nil || login.UserID != reg.UserID {
		t.Fatalf("login = %+v, %v", login, err)
	}
	if _, err := id.Login(ctx, "ann@example.com", "wrong"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("bad password: %v", err)
	}
	if _, err := id.Login(ctx, "nobody@example.com", "pw"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("unknown email: %v", err)
	}
}

func TestIdentity_RegisterConflictAndValidation(t *testing.T) {
	id, _ := newIdentity(t, nil)
	ctx := context.Background()
	if _, err := id.Register(ctx, RegisterInput{Email: "a@example.com", Password: "x"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := id.Register(ctx, RegisterInput{Email: "a@example.com", Password: "y"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate: %v", err)
	}
	if _, err := id.Register(ctx, RegisterInput{Email: "", Password: "y"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing email: %v", err)
	}
}

func TestIdentity_EmailIgnoresCase(t *testing.T) {
	stores := map[string]func(t *testing.T) domain.UserRepository{
		"memory": func(*testing.T) domain.UserRepository { return repo.NewMemStore().Users() },
		"sqlite": func(t *testing.T) domain.UserRepository {
			db, err := database.NewGorm(database.Opts{Driver: "sqlite", LogLevel: "silent"})
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			s := repo.NewGormStore(db)
			if err := s.Migrate(); err != nil {
				t.Fatalf("migrate: %v", err)
			}
			return s.Users()
		},
	}
	for name, mk := range stores {
		t.Run(name, func(t *testing.T) {
			jwt := &auth.JWTer{Secret: []byte("k"), Issuer: "test", TTL: time.Hour}
			id := NewIdentity(mk(t), jwt, nil, Options{})
			ctx := context.Background()

			reg, err := id.Register(ctx, RegisterInput{Email: " Ann@Example.com ", Password: "pw"})
			if err != nil {
				t.Fatalf("register: %v", err)
			}
			if _, err := id.Register(ctx, RegisterInput{Email: "ann@example.com", Password: "pw"}); !errors.Is(err, domain.ErrConflict) {
				t.Fatalf("second register: %v", err)
			}
			got, err := id.Login(ctx, "ANN@example.COM", "pw")
			if err != nil || got.UserID != reg.UserID {
				t.Fatalf("login = %+v, %v", got, err)
			}
		})
	}
}

func TestIdentity_Logout(t *testing.T) {
	id, _ := newIdentity(t, nil)
	ctx := context.Background()
	reg, _ := id.Register(ctx, RegisterInput{Email: "a@example.com", Password: "x"})
	_, claims, err := id.Authenticate(ctx, reg.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if err := id.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, _, err := id.Authenticate(ctx, reg.Token); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("revoked token accepted: %v", err)
	}
}

func TestIdentity_AuthenticateSurfacesRevokerFailure(t *testing.T) {
	boom := errors.New("redis unavailable")
	id, _ := newIdentity(t, failingRevoker{err: boom})
	reg, err := id.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "x"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err = id.Authenticate(context.Background(), reg.Token)
	if !errors.Is(err, boom) || errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("err = %v, want wrapped infrastructure error", err)
	}
}

func TestIdentity_AuthenticateGarbage(t *testing.T) {
	id, _ := newIdentity(t, nil)
	if _, _, err := id.Authenticate(context.Background(), "not.a.jwt"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("err = %v", err)
	}
}

func TestIdentity_UpdateProfile(t *testing.T) {
	id, store := newIdentity(t, nil)
	ctx := context.Background()
	reg, _ := id.Register(ctx, RegisterInput{Email: "a@example.com", Password: "x", FullName: "Ann", Location: "Porto"})
	me := &domain.Actor{ID: reg.UserID}

	bio := "<b>surfer</b>"
	if err := id.UpdateProfile(ctx, me, ProfileInput{Bio: &bio}); err != nil {
		t.Fatalf("update: %v", err)
	}
	u, _ := store.Users().FindByID(ctx, reg.UserID)
	if u.Bio != "surfer" {
		t.Errorf("bio = %q, want sanitized", u.Bio)
	}
	if u.FullName != "Ann" || u.Location != "Porto" {
		t.Errorf("absent fields changed: %+v", u)
	}

	if err := id.UpdateProfile(ctx, nil, ProfileInput{}); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("nil actor: %v", err)
	}
	if _, err := id.Profile(ctx, &domain.Actor{ID: 99}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing user: %v", err)
	}
}
