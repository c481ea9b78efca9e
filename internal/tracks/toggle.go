package tracks

// toggle flips between playing and paused, reloading a finished sound first
func (t *Track) toggle() {
	if t.sink.IsEmpty() {
		t.reload()
		if t.loadFailed {
			return
		}
	}
	if t.sink.IsPaused() {
		t.sink.Play()
	} else {
		t.sink.Pause()
	}
}

// rewind goes back to the start and applies the long press policy
func (t *Track) rewind() {
	t.reload()
	if t.longPressPolicy == LongPressPlay && !t.loadFailed {
		t.sink.Play()
	}
}

// restart handles the end of the sound: rewind, and keep going when looping
func (t *Track) restart() {
	t.reload()
	if t.loop && !t.loadFailed {
		t.sink.Play()
	}
}
