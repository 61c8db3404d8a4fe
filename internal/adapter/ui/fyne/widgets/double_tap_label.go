package widgets

import (
	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// Ensure DoubleTapLabel implements DoubleTappable interface
var _ fyneapp.DoubleTappable = (*DoubleTapLabel)(nil)

// DoubleTapLabel is a label that responds to double-tap gestures.
// The main window uses it to switch the recording clock between its short
// and its precise format.
type DoubleTapLabel struct {
	widget.Label
	doubleTapped func()
}

// NewDoubleTapLabel creates a new DoubleTapLabel with the given callback function.
func NewDoubleTapLabel(text string, doubleTapped func()) *DoubleTapLabel {
	label := &DoubleTapLabel{
		doubleTapped: doubleTapped,
	}
	label.Text = text
	label.ExtendBaseWidget(label)
	return label
}

// DoubleTapped implements the fyne.DoubleTappable interface.
func (l *DoubleTapLabel) DoubleTapped(_ *fyneapp.PointEvent) {
	if l.doubleTapped != nil {
		l.doubleTapped()
	}
}
