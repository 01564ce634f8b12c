package catalog

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/dex/internal/config"
	"github.com/Veraticus/dex/internal/model"
	"github.com/Veraticus/dex/internal/pokeapi"
	"github.com/Veraticus/dex/internal/pokeapi/pokeapitest"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var errFetch = errors.New("fetch failed")

// fakeFetcher serves records from memory and records request concurrency.
type fakeFetcher struct {
	delays   map[string]time.Duration
	fail     map[string]error
	listErr  error
	typesErr error
	pokemon  []model.Pokemon
	types    []string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	completed   atomic.Int32
	canceled    atomic.Int32
}

func (f *fakeFetcher) ListPokemon(_ context.Context, limit int) ([]model.Summary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	n := min(limit, len(f.pokemon))
	out := make([]model.Summary, n)
	for i, p := range f.pokemon[:n] {
		out[i] = model.Summary{Name: p.Name, URL: p.Name}
	}
	return out, nil
}

func (f *fakeFetcher) GetPokemon(ctx context.Context, url string) (model.Pokemon, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		prev := f.maxInFlight.Load()
		if cur <= prev || f.maxInFlight.CompareAndSwap(prev, cur) {
			break
		}
	}

	if d := f.delays[url]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			f.canceled.Add(1)
			return model.Pokemon{}, ctx.Err()
		}
	}
	if err := f.fail[url]; err != nil {
		return model.Pokemon{}, err
	}

	for _, p := range f.pokemon {
		if p.Name == url {
			f.completed.Add(1)
			return p, nil
		}
	}
	return model.Pokemon{}, errFetch
}

func (f *fakeFetcher) ListTypes(context.Context) ([]string, error) {
	return f.types, f.typesErr
}

func newHTTPLoader(t *testing.T, srv *pokeapitest.Server, opts ...LoaderOption) *Loader {
	t.Helper()
	client, err := pokeapi.NewClient(config.ClientConfig{
		BaseURL: srv.BaseURL(),
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return NewLoader(client, opts...)
}

func TestLoader_LoadWorkingSet(t *testing.T) {
	srv := pokeapitest.NewServer(t, pokeapitest.Generate(150), pokeapitest.Types)
	loader := newHTTPLoader(t, srv)

	working, err := loader.LoadWorkingSet(context.Background())
	require.NoError(t, err)
	require.Len(t, working, 150)

	assert.Equal(t, int32(1), srv.ListRequests.Load())
	assert.Equal(t, int32(150), srv.DetailRequests.Load())
	assert.Equal(t, "mon-001", working[0].Name)
	assert.Equal(t, "pikachu", working[24].Name)
	assert.Equal(t, []string{"electric"}, working[24].Types)
	assert.Equal(t, 60, working[24].Weight)
}

func TestLoader_PreservesSummaryOrder(t *testing.T) {
	starters := pokeapitest.Starters
	srv := pokeapitest.NewServer(t, starters, nil)

	// Earlier entries answer last.
	for i, p := range starters {
		srv.DelayDetail(p.Name, time.Duration(len(starters)-i)*10*time.Millisecond)
	}

	working, err := newHTTPLoader(t, srv).LoadWorkingSet(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(names(starters), names(working)); diff != "" {
		t.Errorf("working set order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(starters, working); diff != "" {
		t.Errorf("working set records mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_HonoursLimit(t *testing.T) {
	srv := pokeapitest.NewServer(t, pokeapitest.Generate(40), nil)

	working, err := newHTTPLoader(t, srv, WithLimit(10)).LoadWorkingSet(context.Background())
	require.NoError(t, err)
	assert.Len(t, working, 10)
	assert.Equal(t, int32(10), srv.DetailRequests.Load())
}

func TestLoader_SummaryFailure(t *testing.T) {
	srv := pokeapitest.NewServer(t, pokeapitest.Starters, nil)
	srv.FailList(http.StatusInternalServerError)

	working, err := newHTTPLoader(t, srv).LoadWorkingSet(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, pokeapi.ErrUnexpectedStatus)
	assert.Empty(t, working)
	assert.Zero(t, srv.DetailRequests.Load(), "no detail requests after a failed summary fetch")
}

func TestLoader_DetailFailureFailsWholeLoad(t *testing.T) {
	srv := pokeapitest.NewServer(t, pokeapitest.Starters, nil)
	srv.FailDetail("squirtle", http.StatusNotFound)

	working, err := newHTTPLoader(t, srv).LoadWorkingSet(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, pokeapi.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), `"squirtle"`)
	assert.Nil(t, working, "no partial working set")
}

func TestLoader_FailFastCancelsOutstanding(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	pokemon := pokeapitest.Generate(20)
	f := &fakeFetcher{
		pokemon: pokemon,
		delays:  make(map[string]time.Duration),
		fail:    map[string]error{pokemon[0].Name: errFetch},
	}
	for _, p := range pokemon[1:] {
		f.delays[p.Name] = 5 * time.Second
	}

	start := time.Now()
	working, err := NewLoader(f).LoadWorkingSet(context.Background())

	require.ErrorIs(t, err, errFetch)
	assert.Nil(t, working)
	assert.Less(t, time.Since(start), 2*time.Second, "outstanding fetches were not canceled")
	assert.Equal(t, int32(19), f.canceled.Load())
}

func TestLoader_ContextCanceled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	pokemon := pokeapitest.Generate(5)
	f := &fakeFetcher{pokemon: pokemon, delays: make(map[string]time.Duration)}
	for _, p := range pokemon {
		f.delays[p.Name] = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	working, err := NewLoader(f).LoadWorkingSet(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, working)
}

func TestLoader_Concurrency(t *testing.T) {
	pokemon := pokeapitest.Generate(30)

	tests := []struct {
		name        string
		concurrency int
		wantMax     func(t *testing.T, got int32)
	}{
		{
			name:        "bounded",
			concurrency: 3,
			wantMax: func(t *testing.T, got int32) {
				assert.LessOrEqual(t, got, int32(3))
			},
		},
		{
			name:        "unbounded issues requests without waiting",
			concurrency: 0,
			wantMax: func(t *testing.T, got int32) {
				assert.Greater(t, got, int32(3))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

			f := &fakeFetcher{pokemon: pokemon, delays: make(map[string]time.Duration)}
			for _, p := range pokemon {
				f.delays[p.Name] = 20 * time.Millisecond
			}

			working, err := NewLoader(f, WithConcurrency(tt.concurrency)).LoadWorkingSet(context.Background())
			require.NoError(t, err)
			assert.Len(t, working, 30)
			tt.wantMax(t, f.maxInFlight.Load())
		})
	}
}

func TestLoader_Progress(t *testing.T) {
	pokemon := pokeapitest.Generate(12)
	f := &fakeFetcher{pokemon: pokemon}

	var (
		mu    sync.Mutex
		calls []int
		total int
	)
	progress := func(done, n int) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, done)
		total = n
	}

	_, err := NewLoader(f, WithProgress(progress)).LoadWorkingSet(context.Background())
	require.NoError(t, err)

	assert.Len(t, calls, 12)
	assert.Equal(t, 12, total)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, calls)
}

func TestLoader_EmptyCollection(t *testing.T) {
	working, err := NewLoader(&fakeFetcher{}).LoadWorkingSet(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, working)
	assert.Empty(t, working)
}

func TestLoader_LoadTypes(t *testing.T) {
	srv := pokeapitest.NewServer(t, nil, pokeapitest.Types)

	types, err := newHTTPLoader(t, srv).LoadTypes(context.Background())
	require.NoError(t, err)

	assert.Len(t, types, 18)
	assert.Equal(t, "normal", types[0])
	assert.Equal(t, "fairy", types[len(types)-1])
	assert.NotContains(t, types, "stellar")
	assert.NotContains(t, types, "unknown")
}

func TestLoader_LoadTypesFailure(t *testing.T) {
	srv := pokeapitest.NewServer(t, nil, pokeapitest.Types)
	srv.FailTypes(http.StatusServiceUnavailable)

	types, err := newHTTPLoader(t, srv).LoadTypes(context.Background())
	require.Error(t, err)
	assert.Empty(t, types)
	assert.Equal(t, int32(1), srv.TypeRequests.Load(), "no retry by default")
}

func TestValidTypes(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   []string
	}{
		{name: "drops sentinels", labels: []string{"fire", "stellar", "water", "unknown"}, want: []string{"fire", "water"}},
		{name: "only sentinels", labels: []string{"unknown", "stellar"}, want: []string{}},
		{name: "exact match only", labels: []string{"Unknown", "stellar-ish"}, want: []string{"Unknown", "stellar-ish"}},
		{name: "empty", labels: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidTypes(tt.labels))
		})
	}
}
