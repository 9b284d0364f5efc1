// Package repotest provides an in-memory implementation of the repository
// interfaces for tests that exercise services and HTTP routes without Postgres.
package repotest

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"quickstart-api/internal/data/entity"
	"quickstart-api/internal/data/repository"

	"github.com/google/uuid"
)

// Store holds every table. All repositories built from one Store share it, so
// deleting a group is visible in user memberships like the real cascade.
type Store struct {
	mu sync.Mutex

	nextID   map[string]int64
	movies   map[int64]entity.Movie
	groups   map[int64]entity.Group
	users    map[int64]entity.User
	sessions map[uuid.UUID]entity.Session

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		nextID:   make(map[string]int64),
		movies:   make(map[int64]entity.Movie),
		groups:   make(map[int64]entity.Group),
		users:    make(map[int64]entity.User),
		sessions: make(map[uuid.UUID]entity.Session),
		now:      time.Now,
	}
}

// NewRepository returns a repository set backed by a fresh Store.
func NewRepository() (*repository.Repository, *Store) {
	s := NewStore()
	return s.Repository(), s
}

func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:    &userRepo{s},
		Group:   &groupRepo{s},
		Movie:   &movieRepo{s},
		Session: &sessionRepo{s},
	}
}

// SetClock overrides the time source used for session expiry.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) id(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

// ==================== MOVIES ====================

type movieRepo struct{ s *Store }

func (r *movieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	movie.ID = r.s.id("movies")
	r.s.movies[movie.ID] = *movie
	return nil
}

func (r *movieRepo) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	movie, ok := r.s.movies[id]
	if !ok {
		return nil, nil
	}
	return &movie, nil
}

func (r *movieRepo) FindAll(_ context.Context, offset, limit int) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := make([]*entity.Movie, 0, len(r.s.movies))
	for _, movie := range r.s.movies {
		all = append(all, &movie)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, offset, limit), nil
}

func (r *movieRepo) CountAll(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.movies)), nil
}

func (r *movieRepo) Update(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[movie.ID]; !ok {
		return fmt.Errorf("update movie %d: %w", movie.ID, repository.ErrNotFound)
	}
	r.s.movies[movie.ID] = *movie
	return nil
}

func (r *movieRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[id]; !ok {
		return fmt.Errorf("delete movie %d: %w", id, repository.ErrNotFound)
	}
	delete(r.s.movies, id)
	return nil
}

// ==================== GROUPS ====================

type groupRepo struct{ s *Store }

func (r *groupRepo) nameTaken(name string, exceptID int64) bool {
	for id, g := range r.s.groups {
		if g.Name == name && id != exceptID {
			return true
		}
	}
	return false
}

func (r *groupRepo) Create(_ context.Context, group *entity.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(group.Name, 0) {
		return fmt.Errorf("create group %q: %w", group.Name, repository.ErrDuplicate)
	}
	group.ID = r.s.id("groups")
	r.s.groups[group.ID] = *group
	return nil
}

func (r *groupRepo) FindByID(_ context.Context, id int64) (*entity.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	group, ok := r.s.groups[id]
	if !ok {
		return nil, nil
	}
	return &group, nil
}

func (r *groupRepo) FindAll(_ context.Context, offset, limit int) ([]*entity.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := make([]*entity.Group, 0, len(r.s.groups))
	for _, group := range r.s.groups {
		all = append(all, &group)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, offset, limit), nil
}

func (r *groupRepo) CountAll(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.groups)), nil
}

func (r *groupRepo) Update(_ context.Context, group *entity.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.groups[group.ID]; !ok {
		return fmt.Errorf("update group %d: %w", group.ID, repository.ErrNotFound)
	}
	if r.nameTaken(group.Name, group.ID) {
		return fmt.Errorf("update group %d: %w", group.ID, repository.ErrDuplicate)
	}
	r.s.groups[group.ID] = *group
	return nil
}

func (r *groupRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.groups[id]; !ok {
		return fmt.Errorf("delete group %d: %w", id, repository.ErrNotFound)
	}
	delete(r.s.groups, id)

	for uid, u := range r.s.users {
		u.GroupIDs = slices.DeleteFunc(slices.Clone(u.GroupIDs), func(g int64) bool { return g == id })
		r.s.users[uid] = u
	}
	return nil
}

// ==================== USERS ====================

type userRepo struct{ s *Store }

func (r *userRepo) check(user *entity.User) error {
	for id, u := range r.s.users {
		if u.Username == user.Username && id != user.ID {
			return repository.ErrDuplicate
		}
	}
	for _, gid := range user.GroupIDs {
		if _, ok := r.s.groups[gid]; !ok {
			return repository.ErrInvalidReference
		}
	}
	return nil
}

func normalizeGroups(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.check(user); err != nil {
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}
	user.ID = r.s.id("users")
	stored := *user
	stored.GroupIDs = normalizeGroups(user.GroupIDs)
	r.s.users[user.ID] = stored
	return nil
}

func (r *userRepo) get(id int64) *entity.User {
	u, ok := r.s.users[id]
	if !ok {
		return nil
	}
	u.GroupIDs = slices.Clone(u.GroupIDs)
	return &u
}

func (r *userRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.get(id), nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, u := range r.s.users {
		if u.Username == username {
			return r.get(id), nil
		}
	}
	return nil, nil
}

func (r *userRepo) FindAll(_ context.Context, offset, limit int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := make([]*entity.User, 0, len(r.s.users))
	for id := range r.s.users {
		all = append(all, r.get(id))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].DateJoined.Equal(all[j].DateJoined) {
			return all[i].DateJoined.After(all[j].DateJoined)
		}
		return all[i].ID > all[j].ID
	})
	return page(all, offset, limit), nil
}

func (r *userRepo) CountAll(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), nil
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users[user.ID]
	if !ok {
		return fmt.Errorf("update user %d: %w", user.ID, repository.ErrNotFound)
	}
	if err := r.check(user); err != nil {
		return fmt.Errorf("update user %s: %w", user.Username, err)
	}

	stored := *user
	stored.DateJoined = existing.DateJoined
	stored.LastLogin = existing.LastLogin
	stored.GroupIDs = normalizeGroups(user.GroupIDs)
	r.s.users[user.ID] = stored
	return nil
}

func (r *userRepo) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if u, ok := r.s.users[id]; ok {
		u.LastLogin = &at
		r.s.users[id] = u
	}
	return nil
}

func (r *userRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return fmt.Errorf("delete user %d: %w", id, repository.ErrNotFound)
	}
	delete(r.s.users, id)

	for token, sess := range r.s.sessions {
		if sess.UserID == id {
			delete(r.s.sessions, token)
		}
	}
	return nil
}

// ==================== SESSIONS ====================

type sessionRepo struct{ s *Store }

func (r *sessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[session.UserID]; !ok {
		return fmt.Errorf("create session: %w", repository.ErrInvalidReference)
	}
	r.s.sessions[session.Token] = *session
	return nil
}

func (r *sessionRepo) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sess, ok := r.s.sessions[token]
	if !ok || !sess.Valid(r.s.now()) {
		return nil, nil
	}
	return &sess, nil
}

func (r *sessionRepo) Revoke(_ context.Context, token uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sess, ok := r.s.sessions[token]
	if !ok || sess.RevokedAt != nil {
		return fmt.Errorf("revoke session: %w", repository.ErrNotFound)
	}
	now := r.s.now()
	sess.RevokedAt = &now
	r.s.sessions[token] = sess
	return nil
}

func (r *sessionRepo) RevokeAllUserSessions(_ context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	for token, sess := range r.s.sessions {
		if sess.UserID == userID && sess.RevokedAt == nil {
			sess.RevokedAt = &now
			r.s.sessions[token] = sess
		}
	}
	return nil
}

func (r *sessionRepo) CleanExpiredSessions(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cutoff := r.s.now().Add(-7 * 24 * time.Hour)
	var removed int64
	for token, sess := range r.s.sessions {
		if sess.ExpiresAt.Before(cutoff) {
			delete(r.s.sessions, token)
			removed++
		}
	}
	return removed, nil
}
