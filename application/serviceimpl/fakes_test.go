package serviceimpl_test

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard-api/domain/models"
	"taskboard-api/domain/ports"
	"taskboard-api/domain/repositories"
	"taskboard-api/pkg/apperror"
)

// In-memory fakes backing the service tests. They honor the same error
// contracts as the GORM implementations: lookups miss with a NotFound kind,
// writes assign ids.

type fakeTaskRepo struct {
	mu     sync.Mutex
	tasks  map[uint]*models.Task
	events []*models.HistoryEvent
	nextID uint
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[uint]*models.Task{}, nextID: 1}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *models.Task, event *models.HistoryEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = r.nextID
	r.nextID++
	r.tasks[task.ID] = task
	event.TaskID = task.ID
	r.events = append(r.events, event)
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id uint) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, apperror.NotFound("task not found")
	}
	return task, nil
}

func (r *fakeTaskRepo) ListBoard(_ context.Context, teamID uint) ([]*models.Task, error) {
	return r.filter(func(t *models.Task) bool { return t.TeamID == teamID && !t.IsArchived }), nil
}

func (r *fakeTaskRepo) ListArchived(_ context.Context, teamID uint) ([]*models.Task, error) {
	return r.filter(func(t *models.Task) bool { return t.TeamID == teamID && t.IsArchived }), nil
}

func (r *fakeTaskRepo) ListEligibleForArchive(_ context.Context, teamID uint) ([]*models.Task, error) {
	return r.filter(func(t *models.Task) bool { return t.TeamID == teamID && t.ArchiveEligible() }), nil
}

func (r *fakeTaskRepo) filter(keep func(*models.Task) bool) []*models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Task
	for _, t := range r.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeTaskRepo) Save(_ context.Context, task *models.Task, events ...*models.HistoryEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = task
	r.events = append(r.events, events...)
	return nil
}

func (r *fakeTaskRepo) ArchiveBatch(_ context.Context, tasks []*models.Task, events []*models.HistoryEvent) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tasks {
		r.tasks[t.ID] = t
	}
	r.events = append(r.events, events...)
	return int64(len(tasks)), nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return apperror.NotFound("task not found")
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) StageCounts(_ context.Context, teamID uint) (*repositories.StageCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := &repositories.StageCounts{}
	now := time.Now().UTC()
	for _, t := range r.tasks {
		if t.TeamID != teamID {
			continue
		}
		if t.IsArchived {
			counts.Archived++
			continue
		}
		switch t.Status {
		case models.StageTodo:
			counts.Todo++
		case models.StageDoing:
			counts.Doing++
		case models.StageReview:
			counts.Review++
		case models.StageComplete:
			counts.Complete++
		}
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != models.StageComplete {
			counts.Overdue++
		}
	}
	return counts, nil
}

// eventsOfType returns recorded history events matching the change type
func (r *fakeTaskRepo) eventsOfType(changeType models.ChangeType) []*models.HistoryEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.HistoryEvent
	for _, e := range r.events {
		if e.ChangeType == changeType {
			out = append(out, e)
		}
	}
	return out
}

type fakeColumnRepo struct {
	mu      sync.Mutex
	columns map[uint]*models.BoardColumn
	nextID  uint
	tasks   *fakeTaskRepo
}

func newFakeColumnRepo(tasks *fakeTaskRepo) *fakeColumnRepo {
	return &fakeColumnRepo{columns: map[uint]*models.BoardColumn{}, nextID: 1, tasks: tasks}
}

func (r *fakeColumnRepo) Create(_ context.Context, column *models.BoardColumn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	column.ID = r.nextID
	r.nextID++
	r.columns[column.ID] = column
	return nil
}

func (r *fakeColumnRepo) GetByID(_ context.Context, id uint) (*models.BoardColumn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	column, ok := r.columns[id]
	if !ok {
		return nil, apperror.NotFound("column not found")
	}
	return column, nil
}

func (r *fakeColumnRepo) ListByTeam(_ context.Context, teamID uint) ([]*models.BoardColumn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.BoardColumn
	for _, c := range r.columns {
		if c.TeamID == teamID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeColumnRepo) GetCompleteColumn(ctx context.Context, teamID uint) (*models.BoardColumn, error) {
	columns, _ := r.ListByTeam(ctx, teamID)
	for _, c := range columns {
		if c.Stage == models.StageComplete {
			return c, nil
		}
	}
	return nil, apperror.NotFound("board has no complete column")
}

func (r *fakeColumnRepo) Update(_ context.Context, column *models.BoardColumn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.columns[column.ID] = column
	return nil
}

func (r *fakeColumnRepo) Reorder(_ context.Context, _ uint, orderedIDs []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for pos, id := range orderedIDs {
		if c, ok := r.columns[id]; ok {
			c.Position = pos
		}
	}
	return nil
}

func (r *fakeColumnRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.columns, id)
	return nil
}

func (r *fakeColumnRepo) CountTasks(_ context.Context, columnID uint) (int64, error) {
	matching := r.tasks.filter(func(t *models.Task) bool { return t.ColumnID == columnID && !t.IsArchived })
	return int64(len(matching)), nil
}

type fakeTeamRepo struct {
	mu     sync.Mutex
	teams  map[uint]*models.Team
	nextID uint
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[uint]*models.Team{}, nextID: 1}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	team.ID = r.nextID
	r.nextID++
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id uint) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[id]
	if !ok {
		return nil, apperror.NotFound("team not found")
	}
	return team, nil
}

func (r *fakeTeamRepo) GetBySlug(_ context.Context, slug string) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, apperror.NotFound("team not found")
}

func (r *fakeTeamRepo) List(_ context.Context) ([]*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Team
	for _, t := range r.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.teams, id)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.NotFound("user not found")
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperror.NotFound("user not found")
}

func (r *fakeUserRepo) ListByTeam(_ context.Context, teamID uint) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Purge(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type boardPermKey struct {
	userID uuid.UUID
	teamID uint
}

type columnPermKey struct {
	userID   uuid.UUID
	columnID uint
}

type fakePermRepo struct {
	mu          sync.Mutex
	boardPerms  map[boardPermKey]*models.BoardPermission
	columnPerms map[columnPermKey]*models.ColumnPermission
	rules       []*models.TransitionRule
}

func newFakePermRepo() *fakePermRepo {
	return &fakePermRepo{
		boardPerms:  map[boardPermKey]*models.BoardPermission{},
		columnPerms: map[columnPermKey]*models.ColumnPermission{},
	}
}

func (r *fakePermRepo) GetBoardPermission(_ context.Context, userID uuid.UUID, teamID uint) (*models.BoardPermission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	perm, ok := r.boardPerms[boardPermKey{userID, teamID}]
	if !ok {
		return nil, apperror.NotFound("board permission not found")
	}
	return perm, nil
}

func (r *fakePermRepo) GetColumnPermission(_ context.Context, userID uuid.UUID, columnID uint) (*models.ColumnPermission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	perm, ok := r.columnPerms[columnPermKey{userID, columnID}]
	if !ok {
		return nil, apperror.NotFound("column permission not found")
	}
	return perm, nil
}

func (r *fakePermRepo) GetTransitionRule(_ context.Context, userID uuid.UUID, sourceColumnID, destColumnID uint) (*models.TransitionRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range r.rules {
		if rule.UserID == userID && rule.SourceColumn == sourceColumnID && rule.DestColumn == destColumnID {
			return rule, nil
		}
	}
	return nil, apperror.NotFound("transition rule not found")
}

func (r *fakePermRepo) ListBoardPermissions(_ context.Context, teamID uint) ([]*models.BoardPermission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.BoardPermission
	for _, p := range r.boardPerms {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePermRepo) ListColumnPermissions(_ context.Context, _ uint) ([]*models.ColumnPermission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ColumnPermission
	for _, p := range r.columnPerms {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePermRepo) ListTransitionRules(_ context.Context, teamID uint) ([]*models.TransitionRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.TransitionRule
	for _, rule := range r.rules {
		if rule.TeamID == teamID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakePermRepo) UpsertBoardPermission(_ context.Context, perm *models.BoardPermission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boardPerms[boardPermKey{perm.UserID, perm.TeamID}] = perm
	return nil
}

func (r *fakePermRepo) UpsertColumnPermission(_ context.Context, perm *models.ColumnPermission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.columnPerms[columnPermKey{perm.UserID, perm.ColumnID}] = perm
	return nil
}

func (r *fakePermRepo) ReplaceTransitionRules(_ context.Context, userID uuid.UUID, teamID uint, rules []*models.TransitionRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rules[:0]
	for _, rule := range r.rules {
		if rule.UserID != userID || rule.TeamID != teamID {
			kept = append(kept, rule)
		}
	}
	r.rules = append(kept, rules...)
	return nil
}

type fakeMoveRepo struct {
	mu       sync.Mutex
	requests map[uint]*models.MoveRequest
	nextID   uint
}

func newFakeMoveRepo() *fakeMoveRepo {
	return &fakeMoveRepo{requests: map[uint]*models.MoveRequest{}, nextID: 1}
}

func (r *fakeMoveRepo) Create(_ context.Context, request *models.MoveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.ID = r.nextID
	r.nextID++
	r.requests[request.ID] = request
	return nil
}

func (r *fakeMoveRepo) GetByID(_ context.Context, id uint) (*models.MoveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, apperror.NotFound("move request not found")
	}
	return request, nil
}

func (r *fakeMoveRepo) ListByTeam(_ context.Context, teamID uint, status models.MoveRequestStatus) ([]*models.MoveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.MoveRequest
	for _, req := range r.requests {
		if req.TeamID == teamID && req.Status == status {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMoveRepo) Update(_ context.Context, request *models.MoveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[request.ID] = request
	return nil
}

type fakeHistoryRepo struct {
	tasks *fakeTaskRepo
}

func (r *fakeHistoryRepo) Append(_ context.Context, event *models.HistoryEvent) error {
	r.tasks.mu.Lock()
	defer r.tasks.mu.Unlock()
	r.tasks.events = append(r.tasks.events, event)
	return nil
}

func (r *fakeHistoryRepo) ListByTask(_ context.Context, taskID uint) ([]*models.HistoryEvent, error) {
	r.tasks.mu.Lock()
	defer r.tasks.mu.Unlock()
	var out []*models.HistoryEvent
	for i := len(r.tasks.events) - 1; i >= 0; i-- {
		if r.tasks.events[i].TaskID == taskID {
			out = append(out, r.tasks.events[i])
		}
	}
	return out, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*ports.BoardEvent
}

func (p *fakePublisher) Publish(_ context.Context, event *ports.BoardEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) ofType(eventType string) []*ports.BoardEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*ports.BoardEvent
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fakeCache struct {
	mu       sync.Mutex
	counters map[string]int64
	values   map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{counters: map[string]int64{}, values: map[string]string{}}
}

func (c *fakeCache) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
	return c.counters[key], nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counters, key)
	delete(c.values, key)
	return nil
}

type fieldValueKey struct {
	taskID  uint
	fieldID uint
}

type fakeFieldRepo struct {
	mu     sync.Mutex
	fields map[uint]*models.CustomField
	values map[fieldValueKey]*models.CustomFieldValue
	nextID uint
}

func newFakeFieldRepo() *fakeFieldRepo {
	return &fakeFieldRepo{
		fields: map[uint]*models.CustomField{},
		values: map[fieldValueKey]*models.CustomFieldValue{},
		nextID: 1,
	}
}

func (r *fakeFieldRepo) Create(_ context.Context, field *models.CustomField) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	field.ID = r.nextID
	r.nextID++
	r.fields[field.ID] = field
	return nil
}

func (r *fakeFieldRepo) GetByID(_ context.Context, id uint) (*models.CustomField, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	field, ok := r.fields[id]
	if !ok {
		return nil, apperror.NotFound("custom field not found")
	}
	return field, nil
}

func (r *fakeFieldRepo) ListForTeam(_ context.Context, teamID uint) ([]*models.CustomField, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.CustomField
	for _, f := range r.fields {
		if !f.IsActive {
			continue
		}
		if f.TeamID == nil || *f.TeamID == teamID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFieldRepo) Update(_ context.Context, field *models.CustomField) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[field.ID] = field
	return nil
}

func (r *fakeFieldRepo) Deactivate(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	field, ok := r.fields[id]
	if !ok {
		return apperror.NotFound("custom field not found")
	}
	field.IsActive = false
	return nil
}

func (r *fakeFieldRepo) ReplaceOptions(_ context.Context, fieldID uint, options []*models.CustomFieldOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	field, ok := r.fields[fieldID]
	if !ok {
		return apperror.NotFound("custom field not found")
	}
	field.Options = nil
	for _, o := range options {
		field.Options = append(field.Options, *o)
	}
	return nil
}

func (r *fakeFieldRepo) SetValue(_ context.Context, value *models.CustomFieldValue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[fieldValueKey{value.TaskID, value.FieldID}] = value
	return nil
}

func (r *fakeFieldRepo) GetValue(_ context.Context, taskID, fieldID uint) (*models.CustomFieldValue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.values[fieldValueKey{taskID, fieldID}]
	if !ok {
		return nil, apperror.NotFound("field value not found")
	}
	return value, nil
}

func (r *fakeFieldRepo) ListValues(_ context.Context, taskID uint) ([]*models.CustomFieldValue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.CustomFieldValue
	for _, v := range r.values {
		if v.TaskID == taskID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FieldID < out[j].FieldID })
	return out, nil
}

type reportKey struct {
	teamID uint
	date   time.Time
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[reportKey]*models.DailyReport
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[reportKey]*models.DailyReport{}}
}

func (r *fakeReportRepo) Upsert(_ context.Context, report *models.DailyReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[reportKey{report.TeamID, report.ReportDate}] = report
	return nil
}

func (r *fakeReportRepo) ListByTeam(_ context.Context, teamID uint, from, to time.Time) ([]*models.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.DailyReport
	for _, rep := range r.reports {
		if rep.TeamID == teamID && !rep.ReportDate.Before(from) && !rep.ReportDate.After(to) {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportDate.After(out[j].ReportDate) })
	return out, nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStorage) UploadFile(file io.Reader, key string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	s.types[key] = contentType
	return s.GetFileURL(key), nil
}

func (s *fakeStorage) GetFileContent(key string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, "", apperror.NotFound("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), s.types[key], nil
}

func (s *fakeStorage) DeleteFile(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	delete(s.types, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) GetFileURL(key string) string {
	return "https://storage.test/" + key
}

func (s *fakeStorage) GetProviderName() string {
	return "fake"
}
