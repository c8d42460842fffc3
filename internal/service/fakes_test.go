package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/identity"
)

type fakeGateway struct {
	accounts   map[string]*identity.Account // keyed by uid
	passwords  map[string]string            // keyed by email
	nextUID    int
	failCreate error
	failDelete error
	deleted    []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		accounts:  make(map[string]*identity.Account),
		passwords: make(map[string]string),
	}
}

func (g *fakeGateway) CreateAccount(_ context.Context, email, password string) (*identity.Account, error) {
	if g.failCreate != nil {
		return nil, g.failCreate
	}
	for _, acc := range g.accounts {
		if acc.Email == email {
			return nil, identity.ErrEmailTaken
		}
	}
	g.nextUID++
	account := &identity.Account{
		UID:       fmt.Sprintf("uid-%d", g.nextUID),
		Email:     email,
		CreatedAt: time.Now(),
	}
	g.accounts[account.UID] = account
	g.passwords[email] = password
	return account, nil
}

func (g *fakeGateway) DeleteAccount(_ context.Context, uid string) error {
	if g.failDelete != nil {
		return g.failDelete
	}
	if acc, ok := g.accounts[uid]; ok {
		delete(g.passwords, acc.Email)
		delete(g.accounts, uid)
	}
	g.deleted = append(g.deleted, uid)
	return nil
}

func (g *fakeGateway) VerifyCredentials(_ context.Context, email, password string) (*identity.Account, error) {
	stored, ok := g.passwords[email]
	if !ok || stored != password {
		return nil, identity.ErrInvalidCredentials
	}
	for _, acc := range g.accounts {
		if acc.Email == email {
			return acc, nil
		}
	}
	return nil, identity.ErrInvalidCredentials
}

func (g *fakeGateway) GetByEmail(_ context.Context, email string) (*identity.Account, error) {
	for _, acc := range g.accounts {
		if acc.Email == email {
			return acc, nil
		}
	}
	return nil, identity.ErrAccountNotFound
}

type fakeStaffRepo struct {
	records    map[string]domain.StaffMember
	failCreate error
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{records: make(map[string]domain.StaffMember)}
}

func (r *fakeStaffRepo) Create(_ context.Context, staff *domain.StaffMember) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = staff.CreatedAt
	r.records[staff.ID] = *staff
	return nil
}

func (r *fakeStaffRepo) Update(_ context.Context, staff *domain.StaffMember) error {
	if _, ok := r.records[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	staff.UpdatedAt = time.Now()
	r.records[staff.ID] = *staff
	return nil
}

func (r *fakeStaffRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.records, id)
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	staff, ok := r.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &staff, nil
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	for _, staff := range r.records {
		if staff.Email == email {
			return &staff, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeStaffRepo) List(_ context.Context) ([]domain.StaffMember, error) {
	var result []domain.StaffMember
	for _, staff := range r.records {
		result = append(result, staff)
	}
	return result, nil
}

type fakeTaskRepo struct {
	records map[string]domain.Task
	nextID  int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{records: make(map[string]domain.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	r.nextID++
	task.ID = fmt.Sprintf("task-%d", r.nextID)
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	r.records[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.records[task.ID]; !ok {
		return pgx.ErrNoRows
	}
	task.UpdatedAt = time.Now()
	r.records[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.records, id)
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := r.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &task, nil
}

func (r *fakeTaskRepo) ListByAssignee(_ context.Context, uid string) ([]domain.Task, error) {
	var result []domain.Task
	for _, task := range r.records {
		if task.AssignedTo == uid {
			result = append(result, task)
		}
	}
	return result, nil
}

type fakeSiteRepo struct {
	records map[string]domain.Site
	nextID  int
}

func newFakeSiteRepo() *fakeSiteRepo {
	return &fakeSiteRepo{records: make(map[string]domain.Site)}
}

func (r *fakeSiteRepo) Create(_ context.Context, site *domain.Site) error {
	r.nextID++
	site.ID = fmt.Sprintf("site-%d", r.nextID)
	site.CreatedAt = time.Now()
	site.UpdatedAt = site.CreatedAt
	r.records[site.ID] = *site
	return nil
}

func (r *fakeSiteRepo) Update(_ context.Context, site *domain.Site) error {
	if _, ok := r.records[site.ID]; !ok {
		return pgx.ErrNoRows
	}
	site.UpdatedAt = time.Now()
	r.records[site.ID] = *site
	return nil
}

func (r *fakeSiteRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.records, id)
	return nil
}

func (r *fakeSiteRepo) GetByID(_ context.Context, id string) (*domain.Site, error) {
	site, ok := r.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &site, nil
}

func (r *fakeSiteRepo) List(_ context.Context) ([]domain.Site, error) {
	var result []domain.Site
	for _, site := range r.records {
		result = append(result, site)
	}
	return result, nil
}

type fakeReportRepo struct {
	records map[string]domain.TaskStatusReport // keyed by user id
	nextID  int
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{records: make(map[string]domain.TaskStatusReport)}
}

func (r *fakeReportRepo) UpsertForUser(_ context.Context, report *domain.TaskStatusReport) error {
	if existing, ok := r.records[report.UserID]; ok {
		report.ID = existing.ID
	} else {
		r.nextID++
		report.ID = fmt.Sprintf("report-%d", r.nextID)
	}
	r.records[report.UserID] = *report
	return nil
}

func (r *fakeReportRepo) List(_ context.Context) ([]domain.TaskStatusReport, error) {
	var result []domain.TaskStatusReport
	for _, report := range r.records {
		result = append(result, report)
	}
	return result, nil
}

var errStoreDown = errors.New("store unavailable")
