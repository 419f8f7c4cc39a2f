package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"compuscan/internal/entities"
	"compuscan/pkg/contextkeys"
	apperrors "compuscan/pkg/errors"
	"compuscan/pkg/types"
)

// In-memory doubles for the repository interfaces. They emulate the store
// contracts the services rely on, including ErrNotFound semantics and
// store-assigned event timestamps.

func ctxAs(userID string, isAdmin bool) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.IsAdminKey, isAdmin)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entities.Usuario
}

func newFakeUserRepo(users ...*entities.Usuario) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entities.Usuario)}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entities.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindUserByID(_ context.Context, id string) (*entities.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*entities.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindUserByRfid(_ context.Context, carnetRfid string) (*entities.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.CarnetRfid.Valid && u.CarnetRfid.String == carnetRfid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) GetUsers(_ context.Context, _ types.Filter) ([]entities.Usuario, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Usuario
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *entities.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeAttendanceRepo struct {
	mu     sync.Mutex
	events []entities.Asistencia
	clock  time.Time
}

func newFakeAttendanceRepo(events ...entities.Asistencia) *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		events: append([]entities.Asistencia(nil), events...),
		clock:  time.Now().Add(-time.Hour),
	}
}

// Append assigns monotonically increasing timestamps, mirroring the
// server-side default on the fecha column.
func (r *fakeAttendanceRepo) Append(_ context.Context, asistencia *entities.Asistencia) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Second)
	asistencia.Fecha = r.clock
	r.events = append(r.events, *asistencia)
	return nil
}

func (r *fakeAttendanceRepo) ListByUser(_ context.Context, usuarioID string) ([]entities.Asistencia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Asistencia
	for _, e := range r.events {
		if e.UsuarioID == usuarioID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) LastByUser(_ context.Context, usuarioID string) (*entities.Asistencia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var last *entities.Asistencia
	for i := range r.events {
		e := r.events[i]
		if e.UsuarioID != usuarioID {
			continue
		}
		if last == nil || e.Fecha.After(last.Fecha) {
			cp := e
			last = &cp
		}
	}
	if last == nil {
		return nil, apperrors.ErrNotFound
	}
	return last, nil
}

func (r *fakeAttendanceRepo) ListInRange(_ context.Context, desde, hasta time.Time) ([]entities.Asistencia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Asistencia
	for _, e := range r.events {
		if !e.Fecha.Before(desde) && !e.Fecha.After(hasta) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListLatest(_ context.Context, limit uint64) ([]entities.Asistencia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]entities.Asistencia(nil), r.events...)
	SortEventsDesc(out)
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListAll(_ context.Context) ([]entities.Asistencia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.Asistencia(nil), r.events...), nil
}

func (r *fakeAttendanceRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type fakeEquipmentRepo struct {
	mu      sync.Mutex
	equipos map[string]*entities.Equipo
}

func newFakeEquipmentRepo(equipos ...*entities.Equipo) *fakeEquipmentRepo {
	r := &fakeEquipmentRepo{equipos: make(map[string]*entities.Equipo)}
	for _, e := range equipos {
		cp := *e
		r.equipos[e.ID] = &cp
	}
	return r
}

func (r *fakeEquipmentRepo) CreateEquipo(_ context.Context, equipo *entities.Equipo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	equipo.CreatedAt, equipo.UpdatedAt = now, now
	cp := *equipo
	r.equipos[equipo.ID] = &cp
	return nil
}

func (r *fakeEquipmentRepo) FindEquipo(_ context.Context, id string) (*entities.Equipo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.equipos[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentRepo) GetEquipos(_ context.Context, _ types.Filter) ([]entities.Equipo, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Equipo
	for _, e := range r.equipos {
		out = append(out, *e)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeEquipmentRepo) GetEquiposByUsuario(_ context.Context, usuarioID string) ([]entities.Equipo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Equipo
	for _, e := range r.equipos {
		if e.UsuarioID == usuarioID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEquipmentRepo) ListAll(_ context.Context) ([]entities.Equipo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Equipo
	for _, e := range r.equipos {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEquipmentRepo) UpdateEquipo(_ context.Context, equipo *entities.Equipo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.equipos[equipo.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *equipo
	r.equipos[equipo.ID] = &cp
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipo(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.equipos[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.equipos, id)
	return nil
}

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[string]bool
}

func newFakeAdminRepo(uids ...string) *fakeAdminRepo {
	r := &fakeAdminRepo{admins: make(map[string]bool)}
	for _, uid := range uids {
		r.admins[uid] = true
	}
	return r
}

func (r *fakeAdminRepo) IsAdmin(_ context.Context, uid string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.admins[uid], nil
}

func (r *fakeAdminRepo) CreateAdmin(_ context.Context, admin *entities.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[admin.UID] = true
	return nil
}

type fakeCacheRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (r *fakeCacheRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (r *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = fmt.Sprint(value)
	return nil
}

func (r *fakeCacheRepo) Del(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}

func (r *fakeCacheRepo) Incr(_ context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, _ := strconv.ParseInt(r.values[key], 10, 64)
	n++
	r.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (r *fakeCacheRepo) Expire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return true, nil
}
