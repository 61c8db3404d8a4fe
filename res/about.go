package res

// AboutContent contains the Markdown content for the About dialog.
// This is maintained separately for easy updates.
const AboutContent = `A voice recorder that draws what it hears, built with Go and Fyne.

**Features:**
- Live scrolling waveform while recording
- Static waveform with playback progress once a take is finished
- Click the waveform to seek
- Open WAV, MP3, Ogg Vorbis and FLAC files, export takes as WAV
- Right-click the waveform for style options
`
