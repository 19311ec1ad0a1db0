package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/lubricentro-api/internal/application/auth"
	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/infrastructure/memory"
	"github.com/jhoicas/lubricentro-api/pkg/jwt"
)

const secret = "secreto-de-pruebas-suficientemente-largo"

type fixture struct {
	uc     *auth.AuthUseCase
	store  *memory.Store
	userID int64
}

func newFixture(t *testing.T, ttl time.Duration) fixture {
	t.Helper()
	store := memory.NewStore()
	hasher := auth.NewHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("clave-vieja")
	require.NoError(t, err)
	u := &entity.User{Name: "Ana Torres", Email: "ana@lubricentro.com", PasswordHash: hash, Role: entity.RoleEmployee, Active: true, CreatedAt: time.Now()}
	require.NoError(t, store.Users().Create(context.Background(), u))

	uc, err := auth.NewAuthUseCase(store.Users(), store.Sessions(), hasher, auth.Config{Secret: secret, Issuer: "test", TTL: ttl})
	require.NoError(t, err)
	return fixture{uc: uc, store: store, userID: u.ID}
}

func (f fixture) login(t *testing.T) string {
	t.Helper()
	out, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ANA@lubricentro.com", Password: "clave-vieja"}, auth.RequestMeta{IP: "10.0.0.1", UserAgent: "go-test"})
	require.NoError(t, err)
	return out.Token
}

func TestLogin_PersisteSesionYActualizaUltimoLogin(t *testing.T) {
	f := newFixture(t, time.Hour)
	token := f.login(t)

	id, err := f.uc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, f.userID, id.UserID)
	assert.Equal(t, entity.RoleEmployee, id.Role)
	assert.Equal(t, jwt.Fingerprint(token), id.TokenHash)

	me, err := f.uc.Me(context.Background(), f.userID)
	require.NoError(t, err)
	assert.NotNil(t, me.LastLogin)
}

func TestLogin_FalloAlGuardarSesion(t *testing.T) {
	f := newFixture(t, time.Hour)
	f.store.FailOn("sessions.Create", errors.New("disco lleno"))

	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@lubricentro.com", Password: "clave-vieja"}, auth.RequestMeta{})
	require.Error(t, err)
	assert.Zero(t, f.store.Sessions().Count())
}

func TestVerify_Errores(t *testing.T) {
	f := newFixture(t, time.Hour)

	foreign, _, err := jwt.Generate("otro-secreto-totalmente-distinto", "test", f.userID, "ana@lubricentro.com", "EMPLEADO", time.Hour)
	require.NoError(t, err)
	unknownRole, _, err := jwt.Generate(secret, "test", f.userID, "ana@lubricentro.com", "SUPERVISOR", time.Hour)
	require.NoError(t, err)
	noSession, _, err := jwt.Generate(secret, "test", f.userID, "ana@lubricentro.com", "EMPLEADO", time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"vacío", "", domain.ErrUnauthorized},
		{"basura", "no.es.jwt", domain.ErrInvalidToken},
		{"firma ajena", foreign, domain.ErrInvalidToken},
		{"rol desconocido", unknownRole, domain.ErrInvalidToken},
		{"sin sesión", noSession, domain.ErrSessionRevoked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Verify(context.Background(), tc.token)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestVerify_TokenVencido(t *testing.T) {
	f := newFixture(t, -time.Minute)
	token := f.login(t)

	_, err := f.uc.Verify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestLogout_EsIdempotente(t *testing.T) {
	f := newFixture(t, time.Hour)
	token := f.login(t)

	require.NoError(t, f.uc.Logout(context.Background(), token))
	require.NoError(t, f.uc.Logout(context.Background(), token))
	require.NoError(t, f.uc.Logout(context.Background(), ""))

	_, err := f.uc.Verify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
}

func TestChangePassword_ConservaSoloLaSesionActual(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	current := f.login(t)
	f.login(t)
	f.login(t)
	require.Equal(t, 3, f.store.Sessions().Count())

	id, err := f.uc.Verify(ctx, current)
	require.NoError(t, err)

	err = f.uc.ChangePassword(ctx, *id, dto.ChangePasswordRequest{CurrentPassword: "clave-vieja", NewPassword: "123"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	require.NoError(t, f.uc.ChangePassword(ctx, *id, dto.ChangePasswordRequest{CurrentPassword: "clave-vieja", NewPassword: "clave-nueva"}))
	assert.Equal(t, 1, f.store.Sessions().Count())

	_, err = f.uc.Login(ctx, dto.LoginRequest{Email: "ana@lubricentro.com", Password: "clave-vieja"}, auth.RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegister_EmailNormalizadoYDuplicado(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()

	out, err := f.uc.Register(ctx, dto.RegisterRequest{Name: "Luis Pardo", Email: " Luis@Lubricentro.com", Password: "secreto1", Role: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, "luis@lubricentro.com", out.Email)
	assert.Equal(t, "ADMIN", out.Role)

	_, err = f.uc.Register(ctx, dto.RegisterRequest{Name: "Otra Persona", Email: "ANA@lubricentro.com", Password: "secreto1", Role: "EMPLEADO"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
