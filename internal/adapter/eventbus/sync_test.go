package eventbus

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/logger"
)

func TestNewSyncEventBus(t *testing.T) {
	bus := NewSyncEventBus()

	require.NotNil(t, bus)
	assert.Equal(t, 0, bus.SubscriberCount())
	assert.False(t, bus.closed)
}

func TestPublishSubscribe(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var received domain.Event
	var calls int

	subID := bus.Subscribe(domain.EventCaptureStarted, func(event domain.Event) {
		received = event
		calls++
	})
	require.NotEmpty(t, subID)

	bus.Publish(domain.NewCaptureStartedEvent(1024))

	assert.Equal(t, 1, calls)
	require.NotNil(t, received)
	assert.Equal(t, domain.EventCaptureStarted, received.Type())
	assert.Equal(t, 1024, received.(domain.CaptureStartedEvent).FrameSize)
	assert.WithinDuration(t, time.Now(), received.Timestamp(), time.Second)
}

func TestSubscribersRunInOrder(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var order []int
	for i := range 3 {
		bus.Subscribe(domain.EventCaptureStopped, func(domain.Event) {
			order = append(order, i)
		})
	}
	bus.SubscribeAll(func(domain.Event) {
		order = append(order, 99)
	})

	bus.Publish(domain.NewCaptureStoppedEvent(time.Second))

	assert.Equal(t, []int{0, 1, 2, 99}, order)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var order []string
	first := bus.Subscribe(domain.EventCapturePaused, func(domain.Event) { order = append(order, "a") })
	bus.Subscribe(domain.EventCapturePaused, func(domain.Event) { order = append(order, "b") })
	bus.Subscribe(domain.EventCapturePaused, func(domain.Event) { order = append(order, "c") })

	bus.Unsubscribe(first)
	bus.Publish(domain.NewCapturePausedEvent(0))

	assert.Equal(t, []string{"b", "c"}, order, "remaining handlers keep their order")

	assert.NotPanics(t, func() { bus.Unsubscribe("missing") })
}

func TestUnsubscribeWildcard(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var calls int
	id := bus.SubscribeAll(func(domain.Event) { calls++ })
	bus.Unsubscribe(id)

	bus.Publish(domain.NewRecordingClearedEvent())

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, bus.SubscriberCount())
}

func TestSubscribeFiltered(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var preloaded int
	bus.SubscribeFiltered(domain.EventRecordingLoaded, func(e domain.Event) bool {
		return e.(domain.RecordingLoadedEvent).Preloaded
	}, func(domain.Event) {
		preloaded++
	})

	bus.Publish(domain.NewRecordingLoadedEvent(&domain.DecodedAudio{}, false))
	bus.Publish(domain.NewRecordingLoadedEvent(&domain.DecodedAudio{}, true))

	assert.Equal(t, 1, preloaded)
}

func TestHasSubscribers(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	assert.False(t, bus.HasSubscribers(domain.EventWaveformRedraw))

	bus.Subscribe(domain.EventWaveformRedraw, func(domain.Event) {})
	assert.True(t, bus.HasSubscribers(domain.EventWaveformRedraw))
	assert.False(t, bus.HasSubscribers(domain.EventBarsReduced))

	bus.SubscribeAll(func(domain.Event) {})
	assert.True(t, bus.HasSubscribers(domain.EventBarsReduced), "wildcard counts for every type")
}

func TestHandlerPanic(t *testing.T) {
	bus := NewSyncEventBus()
	bus.SetLogger(logger.NewTestLogger())
	defer bus.Close()

	var calls atomic.Int32
	bus.Subscribe(domain.EventSeekRequested, func(domain.Event) { panic("boom") })
	bus.Subscribe(domain.EventSeekRequested, func(domain.Event) { calls.Add(1) })

	assert.NotPanics(t, func() {
		bus.Publish(domain.NewSeekRequestedEvent(time.Second))
	})
	assert.Equal(t, int32(1), calls.Load())
}

func TestClose(t *testing.T) {
	bus := NewSyncEventBus()

	handler := func(domain.Event) { t.Error("handler called after close") }
	bus.Subscribe(domain.EventStyleChanged, handler)
	bus.SubscribeAll(handler)
	require.Equal(t, 2, bus.SubscriberCount())

	require.NoError(t, bus.Close())
	assert.Equal(t, 0, bus.SubscriberCount())

	bus.Publish(domain.NewStyleChangedEvent(domain.DefaultStyle()))

	err := bus.Close()
	assert.True(t, errors.Is(err, domain.ErrClosed))

	assert.Panics(t, func() { bus.Subscribe(domain.EventStyleChanged, func(domain.Event) {}) })
}

func TestNilEventAndHandler(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	assert.NotPanics(t, func() { bus.Publish(nil) })
	assert.Panics(t, func() { bus.Subscribe(domain.EventBarsReduced, nil) })
	assert.Panics(t, func() { bus.SubscribeAll(nil) })
}

func TestSubscribeFromHandler(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var late int
	bus.Subscribe(domain.EventCaptureStarted, func(domain.Event) {
		bus.Subscribe(domain.EventCaptureStopped, func(domain.Event) { late++ })
	})

	bus.Publish(domain.NewCaptureStartedEvent(8))
	bus.Publish(domain.NewCaptureStoppedEvent(0))

	assert.Equal(t, 1, late)
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	bus := NewSyncEventBus()
	defer bus.Close()

	var delivered atomic.Int64
	bus.Subscribe(domain.EventPlaybackProgress, func(domain.Event) { delivered.Add(1) })

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 100 {
				bus.Publish(domain.NewPlaybackProgressEvent(time.Second, 10*time.Second, true))
			}
		}()
		go func() {
			defer wg.Done()
			for range 20 {
				id := bus.Subscribe(domain.EventPlaybackProgress, func(domain.Event) {})
				bus.Unsubscribe(id)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), delivered.Load())
	assert.Equal(t, 1, bus.SubscriberCount())
}
