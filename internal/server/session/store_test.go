package session

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndDo(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create()
	assert.Equal(t, PageSignup, s.Page)
	assert.Equal(t, s.CreatedAt.Add(time.Hour), s.ExpiresAt)

	got, err := st.Do(s.ID, func(s *Session) error {
		s.Page = PageLogin
		s.Errors = []string{"x"}
		return errors.New("kept")
	})
	assert.EqualError(t, err, "kept")
	assert.Equal(t, PageLogin, got.Page)

	// snapshots do not alias the stored session
	got.Errors[0] = "changed"
	again, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, again.Errors)
}

func TestStore_Expiry(t *testing.T) {
	st := NewStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	s := st.Create()
	now = now.Add(2 * time.Minute)

	_, err := st.Get(s.ID)
	assert.ErrorIs(t, err, common.ErrSessionNotFound)
	assert.Zero(t, st.Len())
}

func TestStore_PurgesExpiredOnCreate(t *testing.T) {
	st := NewStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	st.Create()
	st.Create()
	now = now.Add(time.Hour)
	fresh := st.Create()

	assert.Equal(t, 1, st.Len())
	_, err := st.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestStore_Delete(t *testing.T) {
	st := NewStore(time.Hour)
	s := st.Create()
	st.Delete(s.ID)
	_, err := st.Get(s.ID)
	assert.ErrorIs(t, err, common.ErrSessionNotFound)
}

func TestPage_Text(t *testing.T) {
	for _, p := range []Page{PageSignup, PageLogin, PageHome} {
		b, err := json.Marshal(p)
		require.NoError(t, err)

		var back Page
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, p, back)
	}

	b, _ := json.Marshal(PageHome)
	assert.JSONEq(t, `"home"`, string(b))

	_, err := ParsePage("admin")
	assert.Error(t, err)
	assert.Equal(t, "Page(7)", Page(7).String())
	_, err = Page(7).MarshalText()
	assert.Error(t, err)
}

func TestMessages(t *testing.T) {
	assert.Nil(t, Messages(nil))
	assert.Equal(t, []string{"Something went wrong. Please try again."}, Messages(errors.New("boom")))
	assert.Equal(t, []string{"Audio is not available for the selected target language."}, Messages(common.ErrUnsupportedLanguage))
}
