package resolving

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

type stubLister struct {
	platform domain.Platform
	accounts []domain.PlatformAccount
	err      error
}

func (s stubLister) Platform() domain.Platform { return s.platform }

func (s stubLister) ListAccounts(context.Context) ([]domain.PlatformAccount, error) {
	return s.accounts, s.err
}

func TestResolver_BuildMapping_MergesAcrossPlatforms(t *testing.T) {
	resolver := NewResolver(
		stubLister{platform: domain.PlatformTikTok, accounts: []domain.PlatformAccount{{ID: "tt-1", Name: "ACME"}}},
		stubLister{platform: domain.PlatformFacebook, accounts: []domain.PlatformAccount{
			{ID: "fb-2", Name: "Other Brand"},
			{ID: "fb-1", Name: "Acme – Praytell"},
		}},
	)

	mapping, err := resolver.BuildMapping(context.Background())
	require.NoError(t, err)
	require.Len(t, mapping, 2)

	acme := mapping["acme"]
	require.NotNil(t, acme)
	assert.Equal(t, "Acme – Praytell", acme.DisplayName, "facebook is listed first, so its name wins")
	assert.Equal(t, []domain.PlatformAccount{{ID: "fb-1", Name: "Acme – Praytell"}}, acme.AccountsFor(domain.PlatformFacebook))
	assert.Equal(t, []domain.PlatformAccount{{ID: "tt-1", Name: "ACME"}}, acme.AccountsFor(domain.PlatformTikTok))

	sorted := mapping.Sorted()
	assert.Equal(t, "acme", sorted[0].Key)
	assert.Equal(t, "other brand", sorted[1].Key)
}

func TestResolver_BuildMapping_SkipsEmptyNames(t *testing.T) {
	resolver := NewResolver(stubLister{
		platform: domain.PlatformLinkedIn,
		accounts: []domain.PlatformAccount{{ID: "1", Name: ""}, {ID: "2", Name: "(test)"}, {ID: "3", Name: "Real"}},
	})

	mapping, err := resolver.BuildMapping(context.Background())
	require.NoError(t, err)
	assert.Len(t, mapping, 1)
	assert.NotContains(t, mapping, "")
}

func TestResolver_BuildMapping_PartialFailure(t *testing.T) {
	resolver := NewResolver(
		stubLister{platform: domain.PlatformFacebook, err: errors.New("boom")},
		stubLister{platform: domain.PlatformYouTube, accounts: []domain.PlatformAccount{{ID: "y", Name: "Acme"}}},
	)

	mapping, err := resolver.BuildMapping(context.Background())
	require.NoError(t, err)
	assert.Len(t, mapping, 1)
}

func TestResolver_BuildMapping_AllFail(t *testing.T) {
	resolver := NewResolver(
		stubLister{platform: domain.PlatformFacebook, err: errors.New("boom")},
		stubLister{platform: domain.PlatformTikTok, err: errors.New("boom")},
	)

	_, err := resolver.BuildMapping(context.Background())
	assert.ErrorIs(t, err, domain.ErrMappingResolution)
}
