package hadithlist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/hadith-bot/internal/domain/entities"
)

type fakeAPI struct {
	calls   int
	hadiths []entities.Hadith
	err     error
	hook    func(call int)
}

func (f *fakeAPI) ListHadiths(context.Context) ([]entities.Hadith, error) {
	f.calls++
	if f.hook != nil {
		f.hook(f.calls)
	}
	return f.hadiths, f.err
}

func TestNewStartsLoading(t *testing.T) {
	v := New(&fakeAPI{}, zap.NewNop())
	assert.Equal(t, StatusLoading, v.State().Status)
}

func TestLoadPopulated(t *testing.T) {
	api := &fakeAPI{hadiths: []entities.Hadith{{ID: 1, Text: "نص"}}}
	v := New(api, zap.NewNop())

	require.True(t, v.Load(context.Background()))

	s := v.State()
	assert.Equal(t, StatusReady, s.Status)
	assert.Len(t, s.Hadiths, 1)
	assert.False(t, s.Empty())
	assert.Equal(t, 1, api.calls)
}

func TestLoadEmpty(t *testing.T) {
	v := New(&fakeAPI{}, zap.NewNop())
	v.Load(context.Background())

	assert.True(t, v.State().Empty())
}

func TestLoadError(t *testing.T) {
	v := New(&fakeAPI{err: errors.New("boom")}, zap.NewNop())
	v.Load(context.Background())

	s := v.State()
	assert.Equal(t, StatusError, s.Status)
	assert.Equal(t, MsgLoadFailed, s.Error)
	assert.False(t, s.Empty())
}

func TestStaleLoadIsDropped(t *testing.T) {
	api := &fakeAPI{hadiths: []entities.Hadith{{ID: 1}}}
	v := New(api, zap.NewNop())

	// The first request is overtaken by a second one issued while it is in flight.
	api.hook = func(call int) {
		if call == 1 {
			api.hook = nil
			api.hadiths = []entities.Hadith{{ID: 2}}
			require.True(t, v.Load(context.Background()))
			api.hadiths = []entities.Hadith{{ID: 1}}
		}
	}

	assert.False(t, v.Load(context.Background()))

	s := v.State()
	require.Len(t, s.Hadiths, 1)
	assert.Equal(t, int64(2), s.Hadiths[0].ID)
}
