package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

func newSiteServiceUnderTest(repo *fakeSiteRepo) *SiteService {
	// nil cache exercises the degraded path: every read goes to the store.
	return NewSiteService(repo, nil, time.Minute, nil, zap.NewNop())
}

func sampleSite(name string) *domain.Site {
	return &domain.Site{
		SiteID:   "GT-0042",
		SiteName: name,
		Location: domain.SiteLocation{LocalArea: "hillcrest", District: "north"},
		PowerSystem: domain.PowerSystem{
			Phase: "three", MeterReading: "18233",
		},
		Services: []string{"2G", "4G"},
	}
}

func TestSiteCreateAndGetRoundTrip(t *testing.T) {
	repo := newFakeSiteRepo()
	svc := newSiteServiceUnderTest(repo)

	created, err := svc.Create(context.Background(), adminPrincipal(), sampleSite("Hillcrest North"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(context.Background(), userPrincipal("uid-3"), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hillcrest North", got.SiteName)
	assert.Equal(t, "hillcrest", got.Location.LocalArea)
	assert.Equal(t, []string{"2G", "4G"}, got.Services)
}

func TestSiteCreateRejectsNonAdmin(t *testing.T) {
	repo := newFakeSiteRepo()
	svc := newSiteServiceUnderTest(repo)

	_, err := svc.Create(context.Background(), userPrincipal("uid-3"), sampleSite("X"))
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))
	assert.Empty(t, repo.records)
}

func TestSiteUpdateReplacesRecordKeepingID(t *testing.T) {
	repo := newFakeSiteRepo()
	svc := newSiteServiceUnderTest(repo)

	created, err := svc.Create(context.Background(), adminPrincipal(), sampleSite("Old Name"))
	require.NoError(t, err)

	replacement := sampleSite("New Name")
	replacement.ID = "attacker-chosen-id"
	updated, err := svc.Update(context.Background(), adminPrincipal(), created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := svc.Get(context.Background(), adminPrincipal(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.SiteName)
}

func TestSiteUpdateUnknownIDNotFound(t *testing.T) {
	svc := newSiteServiceUnderTest(newFakeSiteRepo())

	_, err := svc.Update(context.Background(), adminPrincipal(), "missing", sampleSite("X"))
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestSiteDeleteRejectsNonAdminLeavingRecord(t *testing.T) {
	repo := newFakeSiteRepo()
	svc := newSiteServiceUnderTest(repo)

	created, err := svc.Create(context.Background(), adminPrincipal(), sampleSite("Keep Me"))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), userPrincipal("uid-3"), created.ID)
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))
	assert.Len(t, repo.records, 1)
}

func TestSiteDeleteByAdmin(t *testing.T) {
	repo := newFakeSiteRepo()
	svc := newSiteServiceUnderTest(repo)

	created, err := svc.Create(context.Background(), adminPrincipal(), sampleSite("Gone Soon"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), adminPrincipal(), created.ID))
	assert.Empty(t, repo.records)

	_, err = svc.Get(context.Background(), adminPrincipal(), created.ID)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestSiteListVisibleToAnyAuthenticatedCaller(t *testing.T) {
	repo := newFakeSiteRepo()
	svc := newSiteServiceUnderTest(repo)

	_, err := svc.Create(context.Background(), adminPrincipal(), sampleSite("A"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), adminPrincipal(), sampleSite("B"))
	require.NoError(t, err)

	list, err := svc.List(context.Background(), userPrincipal("uid-3"))
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSiteListEmptyRegistryYieldsEmptySlice(t *testing.T) {
	svc := newSiteServiceUnderTest(newFakeSiteRepo())

	list, err := svc.List(context.Background(), userPrincipal("uid-3"))
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSiteListRequiresAuthentication(t *testing.T) {
	svc := newSiteServiceUnderTest(newFakeSiteRepo())

	_, err := svc.List(context.Background(), nil)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, err))
}
