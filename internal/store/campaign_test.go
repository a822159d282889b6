package store

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{4}-[A-Z0-9]{4}$`)

func newCampaignStore(t *testing.T) *CampaignStore {
	t.Helper()
	s, err := NewCampaignStore(nil)
	require.NoError(t, err)
	return s
}

func TestGenerateCampaignCode(t *testing.T) {
	for range 200 {
		code := GenerateCampaignCode()
		assert.Regexp(t, codePattern, code)
	}
}

func TestAddCampaign(t *testing.T) {
	t.Run("assigns a code and becomes current", func(t *testing.T) {
		s := newCampaignStore(t)

		added, err := s.AddCampaign(Campaign{ID: "c1", Name: "Bake Sale", Code: "ignored"})
		require.NoError(t, err)
		assert.Regexp(t, codePattern, added.Code)

		current, ok := s.CurrentCampaign()
		assert.True(t, ok)
		assert.Equal(t, added, current)
		assert.Equal(t, []Campaign{added}, s.Campaigns())
	})

	t.Run("duplicate names are allowed", func(t *testing.T) {
		s := newCampaignStore(t)

		_, err := s.AddCampaign(Campaign{ID: "c1", Name: "Potluck"})
		require.NoError(t, err)
		_, err = s.AddCampaign(Campaign{ID: "c2", Name: "Potluck"})
		require.NoError(t, err)

		assert.Len(t, s.Campaigns(), 2)
		current, _ := s.CurrentCampaign()
		assert.Equal(t, "c2", current.ID)
	})
}

func TestSetCurrentCampaign(t *testing.T) {
	s := newCampaignStore(t)
	_, err := s.AddCampaign(Campaign{ID: "c1", Name: "One"})
	require.NoError(t, err)

	// Any campaign value is accepted, even one the store does not hold.
	require.NoError(t, s.SetCurrentCampaign(Campaign{ID: "other", Name: "Other"}))
	current, ok := s.CurrentCampaign()
	assert.True(t, ok)
	assert.Equal(t, "other", current.ID)
}

func TestUpdateCampaign(t *testing.T) {
	t.Run("merges only the given fields", func(t *testing.T) {
		s := newCampaignStore(t)
		added, err := s.AddCampaign(Campaign{ID: "c1", Name: "Old", Description: "keep"})
		require.NoError(t, err)

		name := "New"
		require.NoError(t, s.UpdateCampaign("c1", CampaignUpdate{Name: &name}))

		got, ok := s.GetCampaign("c1")
		require.True(t, ok)
		assert.Equal(t, "New", got.Name)
		assert.Equal(t, "keep", got.Description)
		assert.Equal(t, added.Code, got.Code)
	})

	t.Run("current campaign follows the edit", func(t *testing.T) {
		s := newCampaignStore(t)
		_, err := s.AddCampaign(Campaign{ID: "c1", Name: "Old"})
		require.NoError(t, err)

		description := "Updated"
		require.NoError(t, s.UpdateCampaign("c1", CampaignUpdate{Description: &description}))

		current, _ := s.CurrentCampaign()
		assert.Equal(t, "Updated", current.Description)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s := newCampaignStore(t)
		name := "x"
		assert.NoError(t, s.UpdateCampaign("missing", CampaignUpdate{Name: &name}))
		assert.Empty(t, s.Campaigns())
	})
}

func TestRemoveCampaign(t *testing.T) {
	t.Run("clears current and code lookup", func(t *testing.T) {
		s := newCampaignStore(t)
		added, err := s.AddCampaign(Campaign{ID: "c1", Name: "Gone"})
		require.NoError(t, err)

		require.NoError(t, s.RemoveCampaign("c1"))

		_, ok := s.GetCampaignByCode(added.Code)
		assert.False(t, ok)
		_, ok = s.CurrentCampaign()
		assert.False(t, ok)
	})

	t.Run("keeps current when another campaign is removed", func(t *testing.T) {
		s := newCampaignStore(t)
		_, err := s.AddCampaign(Campaign{ID: "c1", Name: "One"})
		require.NoError(t, err)
		_, err = s.AddCampaign(Campaign{ID: "c2", Name: "Two"})
		require.NoError(t, err)

		require.NoError(t, s.RemoveCampaign("c1"))

		current, ok := s.CurrentCampaign()
		assert.True(t, ok)
		assert.Equal(t, "c2", current.ID)
		assert.Len(t, s.Campaigns(), 1)
	})
}

func TestGetCampaignByCode(t *testing.T) {
	s := newCampaignStore(t)
	s.newCode = func() string { return "ABCD-1234" }
	_, err := s.AddCampaign(Campaign{ID: "c1", Name: "Lookup"})
	require.NoError(t, err)

	got, ok := s.GetCampaignByCode("ABCD-1234")
	assert.True(t, ok)
	assert.Equal(t, "c1", got.ID)

	_, ok = s.GetCampaignByCode("abcd-1234")
	assert.False(t, ok, "lookup is case-sensitive")
}

func TestClearCampaigns(t *testing.T) {
	s := newCampaignStore(t)
	_, err := s.AddCampaign(Campaign{ID: "c1", Name: "One"})
	require.NoError(t, err)

	require.NoError(t, s.ClearCampaigns())

	assert.Empty(t, s.Campaigns())
	_, ok := s.CurrentCampaign()
	assert.False(t, ok)
}
