package tracks

// fire plays the sound from the beginning, cutting off what was playing
func (t *Track) fire() {
	t.reload()
	if !t.loadFailed {
		t.sink.Play()
	}
}
