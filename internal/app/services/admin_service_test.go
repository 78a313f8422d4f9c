package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

type fakeReportStore struct {
	reports map[int64]*models.Report
	nextID  int64
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: map[int64]*models.Report{}, nextID: 1}
}

func (f *fakeReportStore) Create(ctx context.Context, rep *models.Report) (int64, error) {
	stored := *rep
	stored.ID = f.nextID
	f.nextID++
	stored.CreatedAt = time.Now()
	f.reports[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeReportStore) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	rep, ok := f.reports[id]
	if !ok {
		return nil, apperrors.ErrReportNotFound
	}
	return rep, nil
}

func (f *fakeReportStore) List(ctx context.Context, status *models.ReportStatus) ([]*models.Report, error) {
	var out []*models.Report
	for _, rep := range f.reports {
		if status == nil || rep.Status == *status {
			out = append(out, rep)
		}
	}
	return out, nil
}

func (f *fakeReportStore) Resolve(ctx context.Context, id int64, status models.ReportStatus, resolvedBy int64) error {
	rep, ok := f.reports[id]
	if !ok {
		return apperrors.ErrReportNotFound
	}
	now := time.Now()
	rep.Status = status
	rep.ResolvedAt = &now
	rep.ResolvedBy = &resolvedBy
	return nil
}

type fakeStatsStore struct {
	stats models.AdminStats
}

func (f *fakeStatsStore) Collect(ctx context.Context) (*models.AdminStats, error) {
	s := f.stats
	return &s, nil
}

type adminFixture struct {
	service       *AdminService
	users         *fakeUserStore
	tokens        *fakeTokenStore
	reports       *fakeReportStore
	stats         *fakeStatsStore
	notifications *fakeNotificationStore

	admin   *models.User
	pending *models.User
}

func newAdminFixture() *adminFixture {
	fx := &adminFixture{
		users:         newFakeUserStore(),
		tokens:        newFakeTokenStore(),
		reports:       newFakeReportStore(),
		stats:         &fakeStatsStore{},
		notifications: newFakeNotificationStore(),
	}
	fx.service = NewAdminService(fx.users, fx.tokens, fx.reports, fx.stats, fx.notifications, zerolog.Nop())
	fx.admin = fx.users.add(&models.User{Name: "Admin", Email: "admin@university.edu", Role: models.RoleAdmin, IsActive: true})
	fx.pending = fx.users.add(&models.User{Name: "Pending", Email: "pending@university.edu", Role: models.RoleStudent})
	return fx
}

func TestApproveUserActivatesAndNotifies(t *testing.T) {
	fx := newAdminFixture()
	ctx := context.Background()

	user, err := fx.service.ApproveUser(ctx, fx.pending.ID)
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.True(t, user.IsVerified)

	notes, err := fx.notifications.ListForUser(ctx, fx.pending.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	_, err = fx.service.ApproveUser(ctx, fx.pending.ID)
	require.NoError(t, err, "approving an active account is a no-op")
	notes, _ = fx.notifications.ListForUser(ctx, fx.pending.ID)
	assert.Len(t, notes, 1)
}

func TestSuspendUserRevokesSessions(t *testing.T) {
	fx := newAdminFixture()
	ctx := context.Background()
	target := fx.users.add(&models.User{Name: "T", Email: "t@university.edu", Role: models.RoleStudent, IsActive: true})
	require.NoError(t, fx.tokens.Create(ctx, "session", target.ID, time.Now().Add(time.Hour), false))

	user, err := fx.service.SuspendUser(ctx, fx.admin.ID, target.ID, &dto.SuspendUserRequest{Reason: "spam listings"})
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	require.NotNil(t, user.SuspensionReason)
	assert.Equal(t, "spam listings", *user.SuspensionReason)

	_, _, revoked, _, err := fx.tokens.Get(ctx, "session")
	require.NoError(t, err)
	assert.True(t, revoked, "suspension kills existing refresh tokens")
}

func TestSuspendUserGuards(t *testing.T) {
	fx := newAdminFixture()
	ctx := context.Background()
	req := &dto.SuspendUserRequest{Reason: "because"}

	_, err := fx.service.SuspendUser(ctx, fx.admin.ID, fx.admin.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "self-suspension is rejected")

	otherAdmin := fx.users.add(&models.User{Name: "A2", Email: "a2@university.edu", Role: models.RoleAdmin, IsActive: true})
	_, err = fx.service.SuspendUser(ctx, fx.admin.ID, otherAdmin.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "admins cannot suspend admins")
}

func TestPendingUsersExcludesSuspended(t *testing.T) {
	fx := newAdminFixture()
	ctx := context.Background()
	reason := "fraud"
	suspended := fx.users.add(&models.User{Name: "S", Email: "s@university.edu", SuspensionReason: &reason})

	pending, err := fx.service.PendingUsers(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, fx.pending.ID, pending[0].ID)
	assert.NotEqual(t, suspended.ID, pending[0].ID)
}

func TestCreateReportRequiresExactlyOneTarget(t *testing.T) {
	fx := newAdminFixture()
	ctx := context.Background()
	one := int64(1)
	base := dto.CreateReportRequest{Reason: "spam", Description: "repeated spam listings"}

	none := base
	_, err := fx.service.CreateReport(ctx, fx.pending.ID, &none)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	two := base
	two.ReportedUserID = &one
	two.ReportedBookID = &one
	_, err = fx.service.CreateReport(ctx, fx.pending.ID, &two)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	valid := base
	valid.ReportedBookID = &one
	report, err := fx.service.CreateReport(ctx, fx.pending.ID, &valid)
	require.NoError(t, err)
	assert.Equal(t, models.ReportPending, report.Status)
	assert.Equal(t, fx.pending.ID, report.ReporterID)
}

func TestResolveReport(t *testing.T) {
	fx := newAdminFixture()
	ctx := context.Background()
	one := int64(1)
	report, err := fx.service.CreateReport(ctx, fx.pending.ID, &dto.CreateReportRequest{
		ReportedUserID: &one, Reason: "abuse", Description: "abusive messages",
	})
	require.NoError(t, err)

	resolved, err := fx.service.ResolveReport(ctx, fx.admin.ID, report.ID, &dto.ResolveReportRequest{Status: "resolved"})
	require.NoError(t, err)
	assert.Equal(t, models.ReportResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, fx.admin.ID, *resolved.ResolvedBy)

	pendingStatus := models.ReportPending
	open, err := fx.service.ListReports(ctx, &pendingStatus)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestStatsPassthrough(t *testing.T) {
	fx := newAdminFixture()
	fx.stats.stats = models.AdminStats{TotalUsers: 7, PendingApprovals: 2}

	stats, err := fx.service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.PendingApprovals)
}
