package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("store down")

// --- users ---

type memUsers struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]domain.User{}}
}

func (m *memUsers) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	m.users[user.Email] = *user
	return user.ID, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// --- weights ---

type memWeights struct {
	mu      sync.Mutex
	entries []domain.WeightEntry
	failing bool
	// called before each upsert, outside the lock
	onUpsert func(weightKg float64)
}

func (m *memWeights) UpsertForDay(_ context.Context, entry *domain.WeightEntry) (*domain.WeightEntry, error) {
	if m.onUpsert != nil {
		m.onUpsert(entry.Weight)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return nil, errStoreDown
	}
	for i, e := range m.entries {
		if e.UserID == entry.UserID && e.Date == entry.Date {
			m.entries[i].Weight = entry.Weight
			stored := m.entries[i]
			return &stored, nil
		}
	}
	stored := *entry
	stored.ID = primitive.NewObjectID()
	m.entries = append(m.entries, stored)
	return &stored, nil
}

func (m *memWeights) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.WeightEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return nil, errStoreDown
	}
	out := []domain.WeightEntry{}
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// --- profiles ---

type memProfiles struct {
	mu       sync.Mutex
	profiles map[primitive.ObjectID]domain.Profile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{profiles: map[primitive.ObjectID]domain.Profile{}}
}

func (m *memProfiles) Get(_ context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memProfiles) Upsert(_ context.Context, profile *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.UserID] = *profile
	return nil
}

func (m *memProfiles) SetCurrentWeight(_ context.Context, userID primitive.ObjectID, weightKg float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profiles[userID]
	p.UserID = userID
	p.CurrentWeightKg = weightKg
	m.profiles[userID] = p
	return nil
}

func (m *memProfiles) SetAvatarKey(_ context.Context, userID primitive.ObjectID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profiles[userID]
	p.UserID = userID
	p.AvatarKey = key
	m.profiles[userID] = p
	return nil
}

// --- workouts ---

type memWorkouts struct {
	mu   sync.Mutex
	logs []domain.WorkoutLog
}

func (m *memWorkouts) Create(_ context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	log.ID = primitive.NewObjectID()
	m.logs = append(m.logs, *log)
	return log.ID, nil
}

func (m *memWorkouts) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.WorkoutLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.logs {
		if l.ID == id && l.UserID == userID {
			return &l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memWorkouts) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.WorkoutLog{}
	for _, l := range m.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// --- routines ---

type memRoutines struct {
	mu       sync.Mutex
	routines []domain.Routine
	failing  bool
}

func (m *memRoutines) Create(_ context.Context, r *domain.Routine) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = primitive.NewObjectID()
	m.routines = append(m.routines, *r)
	return r.ID, nil
}

func (m *memRoutines) CreateMany(_ context.Context, routines []domain.Routine) ([]primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return nil, errStoreDown
	}
	ids := make([]primitive.ObjectID, 0, len(routines))
	for i := range routines {
		routines[i].ID = primitive.NewObjectID()
		m.routines = append(m.routines, routines[i])
		ids = append(ids, routines[i].ID)
	}
	return ids, nil
}

func (m *memRoutines) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.Routine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.routines {
		if r.ID == id && r.UserID == userID {
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memRoutines) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Routine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Routine{}
	for _, r := range m.routines {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRoutines) Update(_ context.Context, r *domain.Routine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.routines {
		if m.routines[i].ID == r.ID && m.routines[i].UserID == r.UserID {
			m.routines[i] = *r
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- reports ---

type memReports struct {
	mu      sync.Mutex
	reports []domain.Report
}

func (m *memReports) Create(_ context.Context, report *domain.Report) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	report.ID = primitive.NewObjectID()
	m.reports = append(m.reports, *report)
	return report.ID, nil
}

func (m *memReports) ListByUser(_ context.Context, userID primitive.ObjectID, reportType domain.ReportType, limit int64) ([]domain.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Report{}
	for i := len(m.reports) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		r := m.reports[i]
		if r.UserID == userID && (reportType == "" || r.ReportType == reportType) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReports) Latest(ctx context.Context, userID primitive.ObjectID, reportType domain.ReportType) (*domain.Report, error) {
	reports, _ := m.ListByUser(ctx, userID, reportType, 1)
	if len(reports) == 0 {
		return nil, repository.ErrNotFound
	}
	return &reports[0], nil
}

// --- exercises ---

type memExercises struct {
	mu        sync.Mutex
	exercises []domain.Exercise
	listCalls int
}

func (m *memExercises) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.exercises)), nil
}

func (m *memExercises) InsertMany(_ context.Context, exercises []domain.Exercise) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exercises = append(m.exercises, exercises...)
	return nil
}

func (m *memExercises) List(_ context.Context, category string) ([]domain.Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	out := []domain.Exercise{}
	for _, e := range m.exercises {
		if category == "" || e.Category == category {
			out = append(out, e)
		}
	}
	return out, nil
}
