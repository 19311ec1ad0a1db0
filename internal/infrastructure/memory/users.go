package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.SessionRepository = (*SessionRepo)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	if err := r.s.lock("users.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, 0) {
		return domain.Conflict("El email ya está registrado")
	}
	u.ID = r.s.st.nextID("usuarios")
	u.Active = true
	r.s.st.users[u.ID] = *u
	return nil
}

func (r *UserRepo) FindActiveByID(_ context.Context, id int64) (*entity.User, error) {
	if err := r.s.lock("users.FindActiveByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok || !u.Active {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) FindActiveByEmail(_ context.Context, email string) (*entity.User, error) {
	if err := r.s.lock("users.FindActiveByEmail"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if u.Active && strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) ExistsActiveEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	if err := r.s.lock("users.ExistsActiveEmail"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	return r.emailTaken(email, excludeID), nil
}

func (r *UserRepo) emailTaken(email string, excludeID int64) bool {
	for _, u := range r.s.st.users {
		if u.Active && u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	if err := r.s.lock("users.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.users[u.ID]
	if !ok || !cur.Active {
		return nil
	}
	if r.emailTaken(u.Email, u.ID) {
		return domain.Conflict("El email ya está registrado")
	}
	cur.Name, cur.Email, cur.Role = u.Name, u.Email, u.Role
	r.s.st.users[u.ID] = cur
	return nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	if err := r.s.lock("users.UpdatePassword"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if u, ok := r.s.st.users[id]; ok {
		u.PasswordHash = passwordHash
		r.s.st.users[id] = u
	}
	return nil
}

func (r *UserRepo) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	if err := r.s.lock("users.TouchLastLogin"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if u, ok := r.s.st.users[id]; ok {
		u.LastLogin = &at
		r.s.st.users[id] = u
	}
	return nil
}

func (r *UserRepo) List(_ context.Context, p repository.ListParams) ([]*entity.User, int, error) {
	if err := r.s.lock("users.List"); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()
	var list []*entity.User
	for _, u := range r.s.st.users {
		if u.Active && matches(p.Search, u.Name, u.Email) {
			u := u
			list = append(list, &u)
		}
	}
	slices.SortFunc(list, func(a, b *entity.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return page(list, p), len(list), nil
}

func (r *UserRepo) SoftDelete(_ context.Context, id int64) error {
	if err := r.s.lock("users.SoftDelete"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if u, ok := r.s.st.users[id]; ok {
		u.Active = false
		r.s.st.users[id] = u
	}
	return nil
}

// SessionRepo sesiones en memoria.
type SessionRepo struct{ s *Store }

func (r *SessionRepo) Create(_ context.Context, sess *entity.Session) error {
	if err := r.s.lock("sessions.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	r.s.st.sessions[sess.ID] = *sess
	return nil
}

func (r *SessionRepo) FindValidByHash(_ context.Context, tokenHash string, now time.Time) (*entity.Session, error) {
	if err := r.s.lock("sessions.FindValidByHash"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, sess := range r.s.st.sessions {
		if sess.TokenHash == tokenHash && sess.Valid(now) {
			return &sess, nil
		}
	}
	return nil, nil
}

func (r *SessionRepo) DeleteByHash(_ context.Context, tokenHash string) error {
	if err := r.s.lock("sessions.DeleteByHash"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for id, sess := range r.s.st.sessions {
		if sess.TokenHash == tokenHash {
			delete(r.s.st.sessions, id)
		}
	}
	return nil
}

func (r *SessionRepo) DeleteByUser(_ context.Context, userID int64, keepHash string) (int64, error) {
	if err := r.s.lock("sessions.DeleteByUser"); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	var n int64
	for id, sess := range r.s.st.sessions {
		if sess.UserID == userID && sess.TokenHash != keepHash {
			delete(r.s.st.sessions, id)
			n++
		}
	}
	return n, nil
}

// Count cantidad de sesiones guardadas (vigentes o no).
func (r *SessionRepo) Count() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.st.sessions)
}
