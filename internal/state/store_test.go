package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/today-forecast/internal/weather"
)

func TestLocationStoreUpdate(t *testing.T) {
	s := NewLocationStore(weather.Location{})
	loc := weather.Location{Name: "NYC", Lat: 40.7, Long: -74, WOEID: 123}

	require.NoError(t, s.Dispatch(Action{Type: ActionUpdate, Payload: loc}))
	assert.Equal(t, loc, s.State())
}

func TestDispatchErrorsLeaveStateUntouched(t *testing.T) {
	loc := weather.Location{Name: "Lisbon"}
	s := NewLocationStore(loc)

	err := s.Dispatch(Action{Type: ActionUpdate, Payload: "Porto"})
	assert.ErrorIs(t, err, ErrInvalidPayload)
	err = s.Dispatch(Action{Type: ActionDisableOnboarding})
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.ErrorContains(t, err, "location store")

	assert.Equal(t, loc, s.State())
}

func TestWeatherStoreReplacesWholesale(t *testing.T) {
	s := NewWeatherStore(weather.Forecast{{Weather: weather.ConditionSnow}, {Weather: weather.ConditionSnow}})

	next := weather.Forecast{{Weather: weather.ConditionClear, Temp: weather.Temp{Avg: 20}}}
	require.NoError(t, s.Dispatch(Action{Type: ActionUpdate, Payload: next}))

	got := s.State()
	require.Len(t, got, 1)
	assert.Equal(t, weather.ConditionClear, got[0].Weather)

	// The store keeps its own copy.
	next[0].Weather = weather.ConditionHail
	assert.Equal(t, weather.ConditionClear, s.State()[0].Weather)
}

func TestUiReducer(t *testing.T) {
	s := NewUiStore(InitialUi)
	assert.True(t, s.State().Onboarding)
	assert.True(t, s.State().IsCelsius)

	require.NoError(t, s.Dispatch(Action{Type: ActionDisableOnboarding}))
	require.NoError(t, s.Dispatch(Action{Type: ActionDisableOnboarding}))
	assert.False(t, s.State().Onboarding)

	require.NoError(t, s.Dispatch(Action{Type: ActionSetUnits, Payload: false}))
	assert.Equal(t, UiState{Onboarding: false, IsCelsius: false}, s.State())

	assert.ErrorIs(t, s.Dispatch(Action{Type: ActionSetUnits, Payload: "F"}), ErrInvalidPayload)
	assert.ErrorIs(t, s.Dispatch(Action{Type: ActionUpdate}), ErrUnknownAction)
}

func TestSubscribeReceivesStatesInOrder(t *testing.T) {
	s := NewUiStore(InitialUi)

	var got []UiState
	unsubscribe := s.Subscribe(func(u UiState) { got = append(got, u) })

	require.NoError(t, s.Dispatch(Action{Type: ActionSetUnits, Payload: false}))
	require.NoError(t, s.Dispatch(Action{Type: ActionDisableOnboarding}))
	_ = s.Dispatch(Action{Type: "bogus"})

	unsubscribe()
	unsubscribe()
	require.NoError(t, s.Dispatch(Action{Type: ActionSetUnits, Payload: true}))

	assert.Equal(t, []UiState{
		{Onboarding: true, IsCelsius: false},
		{Onboarding: false, IsCelsius: false},
	}, got)
}

func TestSubscriberMayReadStore(t *testing.T) {
	s := NewUiStore(InitialUi)
	var seen UiState
	s.Subscribe(func(UiState) { seen = s.State() })

	require.NoError(t, s.Dispatch(Action{Type: ActionDisableOnboarding}))
	assert.False(t, seen.Onboarding)
}

func TestConcurrentDispatch(t *testing.T) {
	s := NewUiStore(InitialUi)
	var mu sync.Mutex
	count := 0
	s.Subscribe(func(UiState) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Dispatch(Action{Type: ActionSetUnits, Payload: i%2 == 0})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, count)
}

func TestGroupReadersSeeWholeCommits(t *testing.T) {
	var g Group
	loc := NewLocationStore(weather.Location{})
	wx := NewWeatherStore(weather.Forecast{{}})

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for i := 1; i <= 200; i++ {
			err := g.Update(func() error {
				if err := loc.Dispatch(Action{Type: ActionUpdate, Payload: weather.Location{WOEID: int64(i)}}); err != nil {
					return err
				}
				return wx.Dispatch(Action{Type: ActionUpdate, Payload: weather.Forecast{{Temp: weather.Temp{Avg: float64(i)}}}})
			})
			assert.NoError(t, err)
		}
	}()

	for {
		select {
		case <-done:
			wg.Wait()
			return
		default:
		}
		g.View(func() {
			l, f := loc.State(), wx.State()
			assert.Equal(t, float64(l.WOEID), f[0].Temp.Avg)
		})
	}
}

func TestNilGroupRunsInline(t *testing.T) {
	var g *Group
	ran := false
	require.NoError(t, g.Update(func() error { ran = true; return nil }))
	assert.True(t, ran)
	g.View(func() { ran = false })
	assert.False(t, ran)
}
