package service

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/gowave/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/logger"
	"github.com/tejashwikalptaru/gowave/internal/testutil"
)

type fakeSource struct {
	mu    sync.Mutex
	frame []byte
}

func (f *fakeSource) FrameSize() int { return 64 }

func (f *fakeSource) ReadFrame(dst []byte) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copy(dst, f.frame)
}

func (f *fakeSource) set(level byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frame = bytes.Repeat([]byte{level}, 64)
}

func (f *fakeSource) silence() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frame = nil
}

type fakeDecoder struct {
	audio *domain.DecodedAudio
	err   error
}

func (d *fakeDecoder) Decode(ctx context.Context, _ io.ReadSeeker) (*domain.DecodedAudio, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.audio, ctx.Err()
}

type eventLog struct {
	mu     sync.Mutex
	events []domain.Event
}

func (l *eventLog) handle(e domain.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) of(eventType domain.EventType) []domain.Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []domain.Event
	for _, e := range l.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

type waveformFixture struct {
	svc    *WaveformService
	bus    *eventbus.SyncEventBus
	source *fakeSource
	events *eventLog
}

// Helper to create a service whose frame loop is driven by hand
func newWaveformFixture(t *testing.T, style domain.Style, decoder *fakeDecoder) *waveformFixture {
	t.Helper()

	bus := eventbus.NewSyncEventBus()
	events := &eventLog{}
	bus.SubscribeAll(events.handle)

	source := &fakeSource{}
	if decoder == nil {
		decoder = &fakeDecoder{}
	}
	svc := NewWaveformService(logger.NewTestLogger(), bus, source, decoder, style, WaveformConfig{
		Width:         100,
		Height:        40,
		FrameInterval: time.Hour,
		Debounce:      10 * time.Millisecond,
	})

	return &waveformFixture{svc: svc, bus: bus, source: source, events: events}
}

func testStyle() domain.Style {
	style := domain.DefaultStyle()
	style.Speed = 1
	return style
}

func flat(n int, v float32) *domain.DecodedAudio {
	return &domain.DecodedAudio{Samples: testutil.Constant(n, v), SampleRate: 1000, Duration: time.Duration(n) * time.Millisecond}
}

func (f *waveformFixture) loadStatic(t *testing.T, audio *domain.DecodedAudio) {
	t.Helper()

	f.bus.Publish(domain.NewRecordingLoadedEvent(audio, false))
	require.Eventually(t, func() bool {
		return f.svc.Mode() == domain.ModeStatic
	}, time.Second, 5*time.Millisecond)
}

func TestWaveformService_IdleDrawsNothing(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := newWaveformFixture(t, testStyle(), nil)
	defer f.svc.Shutdown()

	f.source.set(250)
	f.svc.drawFrame()

	assert.Empty(t, f.events.of(domain.EventWaveformRedraw))
	assert.Equal(t, domain.ModeIdle, f.svc.Mode())
}

func TestWaveformService_LiveFrames(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := newWaveformFixture(t, testStyle(), nil)
	defer f.svc.Shutdown()

	f.bus.Publish(domain.NewCaptureStartedEvent(64))
	f.source.set(250)
	for range 10 {
		f.svc.drawFrame()
	}

	redraws := f.events.of(domain.EventWaveformRedraw)
	require.Len(t, redraws, 10)
	last := redraws[9].(domain.WaveformRedrawEvent)
	assert.Equal(t, domain.ModeLive, last.Mode)
	assert.Equal(t, 100, last.Image.Bounds().Dx())
	assert.NotEmpty(t, f.svc.live.Picks)
}

func TestWaveformService_SpeedThrottle(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	style := testStyle()
	style.Speed = 3
	f := newWaveformFixture(t, style, nil)
	defer f.svc.Shutdown()

	f.bus.Publish(domain.NewCaptureStartedEvent(64))
	f.source.set(200)
	f.svc.drawFrame()
	assert.Len(t, f.events.of(domain.EventWaveformRedraw), 1, "the first tick paints")

	for range 5 {
		f.svc.drawFrame()
	}
	assert.Len(t, f.events.of(domain.EventWaveformRedraw), 2)

	f.source.silence()
	f.svc.drawFrame()
	assert.Len(t, f.events.of(domain.EventWaveformRedraw), 3, "an empty frame is drawn at once")
}

func TestWaveformService_StopResetsLiveState(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := newWaveformFixture(t, testStyle(), nil)
	defer f.svc.Shutdown()

	f.bus.Publish(domain.NewCaptureStartedEvent(64))
	f.source.set(250)
	for range 20 {
		f.svc.drawFrame()
	}
	require.NotEmpty(t, f.svc.live.Picks)

	f.bus.Publish(domain.NewCaptureStoppedEvent(time.Second))

	assert.Empty(t, f.svc.live.Picks)
	assert.Equal(t, domain.ModeIdle, f.svc.Mode())
	for _, v := range f.svc.Snapshot().Pix {
		require.Equal(t, uint8(0), v, "canvas is cleared")
	}

	f.svc.drawFrame()
	redraws := f.events.of(domain.EventWaveformRedraw)
	assert.Equal(t, domain.ModeIdle, redraws[len(redraws)-1].(domain.WaveformRedrawEvent).Mode, "frame loop idles after stop")
}

func TestWaveformService_RecordingBecomesStatic(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := newWaveformFixture(t, testStyle(), nil)
	defer f.svc.Shutdown()

	f.loadStatic(t, flat(3000, 0.5))

	assert.Len(t, f.svc.Bars(), 25)
	require.Eventually(t, func() bool {
		return len(f.events.of(domain.EventBarsReduced)) == 1
	}, time.Second, 5*time.Millisecond)
	reduced := f.events.of(domain.EventBarsReduced)
	assert.Equal(t, 25, reduced[0].(domain.BarsReducedEvent).Count)
}

func TestWaveformService_OnlyRecordingSkipsStatic(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	style := testStyle()
	style.OnlyRecording = true
	f := newWaveformFixture(t, style, nil)
	defer f.svc.Shutdown()

	f.bus.Publish(domain.NewRecordingLoadedEvent(flat(3000, 0.5), false))
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, domain.ModeIdle, f.svc.Mode())
	assert.Empty(t, f.svc.Bars())
	assert.Empty(t, f.events.of(domain.EventBarsReduced))
}

func TestWaveformService_EmptyRecordingSkipsReduction(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := newWaveformFixture(t, testStyle(), nil)
	defer f.svc.Shutdown()

	f.bus.Publish(domain.NewRecordingLoadedEvent(&domain.DecodedAudio{SampleRate: 1000}, false))
	f.svc.Resize(200, 60)
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, domain.ModeIdle, f.svc.Mode())
	assert.Empty(t, f.svc.Bars())
	assert.Empty(t, f.events.of(domain.EventBarsReduced))
	for _, v := range f.svc.Snapshot().Pix {
		require.Equal(t, uint8(0), v, "canvas stays clear")
	}

	_, ok := f.svc.Seek(50)
	assert.False(t, ok)
}

func TestWaveformService_ProgressSplitsColours(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	style := testStyle()
	f := newWaveformFixture(t, style, nil)
	defer f.svc.Shutdown()

	f.loadStatic(t, flat(3000, 0.5))
	f.bus.Publish(domain.NewPlaybackProgressEvent(1500*time.Millisecond, 3*time.Second, true))

	img := f.svc.Snapshot()
	assert.Equal(t, color.RGBAModel.Convert(style.SecondaryBarColor), img.At(1, 20), "first bar is played")
	assert.Equal(t, color.RGBAModel.Convert(style.MainBarColor), img.At(97, 20), "last bar is not played")
}

func TestWaveformService_Seek(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := newWaveformFixture(t, testStyle(), nil)
	defer f.svc.Shutdown()

	_, ok := f.svc.Seek(10)
	assert.False(t, ok, "no static waveform yet")

	f.loadStatic(t, flat(2000, 0.5))

	position, ok := f.svc.Seek(50)
	require.True(t, ok)
	assert.Equal(t, time.Second, position)

	seeks := f.events.of(domain.EventSeekRequested)
	require.Len(t, seeks, 1)
	assert.Equal(t, time.Second, seeks[0].(domain.SeekRequestedEvent).Position)
}

func TestWaveformService_LoadRecording(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	decoder := &fakeDecoder{audio: flat(3000, 0.25)}
	f := newWaveformFixture(t, testStyle(), decoder)
	defer f.svc.Shutdown()

	require.NoError(t, f.svc.LoadRecording(context.Background(), bytes.NewReader(nil)))

	loaded := f.events.of(domain.EventRecordingLoaded)
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].(domain.RecordingLoadedEvent).Preloaded)
	require.Eventually(t, func() bool { return f.svc.Mode() == domain.ModeStatic }, time.Second, 5*time.Millisecond)
}

func TestWaveformService_LoadRecording_DecodeError(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	decodeErr := domain.NewDecodeError("identify", "", "unknown container", domain.ErrUnsupportedFormat)
	f := newWaveformFixture(t, testStyle(), &fakeDecoder{err: decodeErr})
	defer f.svc.Shutdown()

	err := f.svc.LoadRecording(context.Background(), bytes.NewReader(nil))
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))

	failures := f.events.of(domain.EventRecordingError)
	require.Len(t, failures, 1)
	assert.Equal(t, decodeErr, failures[0].(domain.RecordingErrorEvent).Error)
}

func TestWaveformService_ResizeReducesAgain(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := newWaveformFixture(t, testStyle(), nil)
	defer f.svc.Shutdown()

	f.loadStatic(t, flat(3000, 0.5))

	f.svc.Resize(121, 40)
	f.svc.Resize(151, 40)

	require.Eventually(t, func() bool { return len(f.svc.Bars()) == 37 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 150, f.svc.Snapshot().Bounds().Dx(), "width rounded down to even")
}

func TestWaveformService_StyleChangeReducesAgain(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := newWaveformFixture(t, testStyle(), nil)
	defer f.svc.Shutdown()

	f.loadStatic(t, flat(3000, 0.5))

	style := testStyle()
	style.BarWidth = 4
	f.bus.Publish(domain.NewStyleChangedEvent(style))

	require.Eventually(t, func() bool { return len(f.svc.Bars()) == 12 }, time.Second, 5*time.Millisecond)
}

func TestWaveformService_Clear(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := newWaveformFixture(t, testStyle(), nil)
	defer f.svc.Shutdown()

	f.loadStatic(t, flat(3000, 0.5))
	f.svc.Clear()

	assert.Equal(t, domain.ModeIdle, f.svc.Mode())
	assert.Empty(t, f.svc.Bars())
	assert.Len(t, f.events.of(domain.EventRecordingCleared), 1)
}

func TestWaveformService_Shutdown(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := newWaveformFixture(t, testStyle(), nil)

	require.NoError(t, f.svc.Shutdown())
	require.NoError(t, f.svc.Shutdown())

	assert.Equal(t, 1, f.bus.SubscriberCount(), "only the test's wildcard subscriber remains")
}
