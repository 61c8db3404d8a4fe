package fyne

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/gowave/internal/adapter/capture"
	"github.com/tejashwikalptaru/gowave/internal/adapter/decoder"
	"github.com/tejashwikalptaru/gowave/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/gowave/internal/adapter/playback/clock"
	"github.com/tejashwikalptaru/gowave/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/logger"
	"github.com/tejashwikalptaru/gowave/internal/service"
	"github.com/tejashwikalptaru/gowave/internal/testutil"
)

// fakeView records what the presenter asked it to show.
type fakeView struct {
	mu            sync.Mutex
	states        []domain.CaptureStatus
	elapsed       []time.Duration
	playing       bool
	duration      time.Duration
	titles        []string
	style         domain.Style
	waveforms     int
	notifications []string
	errors        []error
}

func (v *fakeView) SetWaveform(*image.RGBA) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.waveforms++
}

func (v *fakeView) SetCaptureState(status domain.CaptureStatus) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states = append(v.states, status)
}

func (v *fakeView) SetElapsed(elapsed time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.elapsed = append(v.elapsed, elapsed)
}

func (v *fakeView) SetPlayback(_, duration time.Duration, playing bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.duration = duration
	v.playing = playing
}

func (v *fakeView) SetTitle(title string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.titles = append(v.titles, title)
}

func (v *fakeView) SetStyle(style domain.Style) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.style = style
}

func (v *fakeView) ShowNotification(title, _ string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notifications = append(v.notifications, title)
}

func (v *fakeView) ShowError(_ string, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errors = append(v.errors, err)
}

func (v *fakeView) lastState() domain.CaptureStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.states[len(v.states)-1]
}

func (v *fakeView) lastTitle() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.titles) == 0 {
		return ""
	}
	return v.titles[len(v.titles)-1]
}

func (v *fakeView) elapsedUpdates() []time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]time.Duration(nil), v.elapsed...)
}

func (v *fakeView) playbackDuration() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.duration
}

func (v *fakeView) isPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playing
}

func (v *fakeView) currentStyle() domain.Style {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.style
}

func (v *fakeView) shownErrors() []error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]error(nil), v.errors...)
}

func (v *fakeView) shownNotifications() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.notifications...)
}

func (v *fakeView) waveformCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.waveforms
}

type presenterFixture struct {
	presenter *Presenter
	view      *fakeView
	session   *capture.Session
	player    *clock.Player
	waveform  *service.WaveformService
	bus       *eventbus.SyncEventBus
	close     func()
}

// Helper to wire a presenter against real services and a fake view
func newPresenterFixture(t *testing.T) *presenterFixture {
	t.Helper()

	log := logger.NewTestLogger()
	bus := eventbus.NewSyncEventBus()
	session := capture.NewSession(bus, log, 64, 1000)
	player := clock.New(bus, log, clock.Options{Interval: time.Hour})

	app := test.NewApp()
	styles := service.NewStyleService(log, memory.NewPreferencesRepository(app.Preferences()), bus)
	waveform := service.NewWaveformService(log, bus, session, decoder.New(log), styles.Style(), service.WaveformConfig{
		Width:         100,
		Height:        40,
		FrameInterval: time.Hour,
		Debounce:      10 * time.Millisecond,
	})

	view := &fakeView{}
	presenter := NewPresenter(log, session, player, waveform, styles, bus, view)

	var once sync.Once
	closeAll := func() {
		once.Do(func() {
			presenter.Shutdown()
			_ = waveform.Shutdown()
			_ = player.Close()
			_ = bus.Close()
			app.Quit()
		})
	}
	t.Cleanup(closeAll)

	return &presenterFixture{
		presenter: presenter,
		view:      view,
		session:   session,
		player:    player,
		waveform:  waveform,
		bus:       bus,
		close:     closeAll,
	}
}

func tone(n int) []float32 {
	return testutil.Constant(n, 0.5)
}

func TestPresenter_SyncsInitialState(t *testing.T) {
	f := newPresenterFixture(t)

	assert.Equal(t, domain.CaptureIdle, f.view.lastState())
	assert.Equal(t, domain.DefaultStyle(), f.view.currentStyle())
	assert.False(t, f.view.isPlaying())
}

func TestPresenter_RecordToggle(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.OnRecordClicked()
	assert.Equal(t, domain.CaptureRecording, f.view.lastState())

	f.presenter.OnRecordClicked()
	assert.Equal(t, domain.CapturePaused, f.view.lastState())

	f.presenter.OnRecordClicked()
	assert.Equal(t, domain.CaptureRecording, f.view.lastState())

	f.presenter.OnStopClicked()
	assert.Equal(t, domain.CaptureIdle, f.view.lastState())
	assert.NotEmpty(t, f.view.elapsedUpdates(), "stop reports the final elapsed time")

	// Nothing captured means nothing to title
	assert.Empty(t, f.view.lastTitle())
}

func TestPresenter_StopWhenIdleIsIgnored(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.OnStopClicked()

	assert.Empty(t, f.view.shownNotifications())
}

func TestPresenter_FinishedRecordingPlays(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.OnRecordClicked()
	f.session.Push(tone(2000))
	f.presenter.OnStopClicked()

	assert.Equal(t, "New recording", f.view.lastTitle())
	assert.Equal(t, 2*time.Second, f.view.playbackDuration())

	f.presenter.OnPlayClicked()
	assert.True(t, f.view.isPlaying())
	assert.True(t, f.player.Playing())

	f.presenter.OnPlayClicked()
	assert.False(t, f.view.isPlaying())
}

func TestPresenter_PlayWithoutRecording(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.OnPlayClicked()

	assert.False(t, f.player.Playing())
	assert.Empty(t, f.view.shownNotifications())
}

func TestPresenter_RecordPausesPlayback(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.OnRecordClicked()
	f.session.Push(tone(1000))
	f.presenter.OnStopClicked()
	f.presenter.OnPlayClicked()
	require.True(t, f.player.Playing())

	f.presenter.OnRecordClicked()

	assert.False(t, f.player.Playing())
	assert.Equal(t, domain.CaptureRecording, f.view.lastState())

	f.presenter.OnStopClicked()
}

func TestPresenter_OpenAndExport(t *testing.T) {
	f := newPresenterFixture(t)
	dir := t.TempDir()

	source := filepath.Join(dir, "take.wav")
	out, err := os.Create(source)
	require.NoError(t, err)
	require.NoError(t, decoder.EncodeWAV(out, &domain.DecodedAudio{Samples: tone(500), SampleRate: 1000}))
	require.NoError(t, out.Close())

	require.NoError(t, f.presenter.OnFileOpened(source))
	assert.Equal(t, "take.wav", f.view.lastTitle())
	assert.Equal(t, 500*time.Millisecond, f.view.playbackDuration())

	exported := filepath.Join(dir, "export.wav")
	require.NoError(t, f.presenter.OnExportRequested(exported))

	info, err := os.Stat(exported)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(44))
	assert.Contains(t, f.view.shownNotifications(), "Export Complete")
}

func TestPresenter_OpenMissingFile(t *testing.T) {
	f := newPresenterFixture(t)

	err := f.presenter.OnFileOpened(filepath.Join(t.TempDir(), "missing.wav"))

	assert.Error(t, err)
}

func TestPresenter_OpenUnsupportedFileShowsError(t *testing.T) {
	f := newPresenterFixture(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not audio at all"), 0o600))

	err := f.presenter.OnFileOpened(path)

	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
	assert.Len(t, f.view.shownErrors(), 1, "recording.error reaches the view")
}

func TestPresenter_OpenWhileRecording(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.OnRecordClicked()
	defer f.presenter.OnStopClicked()

	err := f.presenter.OnFileOpened("anything.wav")

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestPresenter_ExportWithoutRecording(t *testing.T) {
	f := newPresenterFixture(t)

	err := f.presenter.OnExportRequested(filepath.Join(t.TempDir(), "out.wav"))

	assert.True(t, errors.Is(err, domain.ErrEmptyInput))
}

func TestPresenter_Clear(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.OnRecordClicked()
	f.session.Push(tone(1000))
	f.presenter.OnStopClicked()

	f.presenter.OnClearClicked()

	assert.Empty(t, f.view.lastTitle())
	assert.Zero(t, f.view.playbackDuration())
	assert.Equal(t, domain.ModeIdle, f.waveform.Mode())
}

func TestPresenter_StyleChanges(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.OnStyleChanged(func(s *domain.Style) { s.Fullscreen = true })
	assert.True(t, f.view.currentStyle().Fullscreen)

	f.presenter.OnStyleChanged(func(s *domain.Style) { s.BarWidth = 0 })
	assert.Len(t, f.view.shownErrors(), 1)
	assert.True(t, f.view.currentStyle().Fullscreen, "rejected edits leave the style alone")

	f.presenter.OnResetStyle()
	assert.Equal(t, domain.DefaultStyle(), f.view.currentStyle())
}

func TestPresenter_ForwardsRedraws(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.OnWaveformResized(200, 60)

	assert.Equal(t, 1, f.view.waveformCount())
}

func TestPresenter_Shutdown(t *testing.T) {
	defer testutil.VerifyNoLeaksWithFyne(t)

	f := newPresenterFixture(t)
	before := f.bus.SubscriberCount()

	f.presenter.Shutdown()
	assert.Less(t, f.bus.SubscriberCount(), before)

	assert.NotPanics(t, func() { f.presenter.Shutdown() })

	f.close()
}
