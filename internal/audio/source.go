package audio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// resampleQuality is beep's recommended default
const resampleQuality = 4

// Source produces a fresh stream of the same sound from its beginning
type Source interface {
	Open() (beep.Streamer, error)
	Path() string
}

// FileSource decodes the file again on every Open
type FileSource struct {
	path string
	rate beep.SampleRate
}

// NewFileSource checks that the file can be decoded and returns a source
// resampled to rate
func NewFileSource(path string, rate beep.SampleRate) (*FileSource, error) {
	s, _, err := decodeAudio(path)
	if err != nil {
		return nil, err
	}
	_ = s.Close()
	return &FileSource{path: path, rate: rate}, nil
}

func (f *FileSource) Path() string {
	return f.path
}

func (f *FileSource) Open() (beep.Streamer, error) {
	s, format, err := decodeAudio(f.path)
	if err != nil {
		return nil, err
	}
	if format.SampleRate == f.rate {
		return s, nil
	}
	return &resampled{Resampler: beep.Resample(resampleQuality, format.SampleRate, f.rate, s), closer: s}, nil
}

// resampled keeps the decoder closable after resampling
type resampled struct {
	*beep.Resampler
	closer beep.StreamSeekCloser
}

func (r *resampled) Close() error {
	return r.closer.Close()
}

// BufferedSource decodes the file once and plays it from memory
type BufferedSource struct {
	path   string
	buffer *beep.Buffer
}

// NewBufferedSource decodes the whole file into memory, resampled to rate
func NewBufferedSource(path string, rate beep.SampleRate) (*BufferedSource, error) {
	s, format, err := decodeAudio(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	var stream beep.Streamer = s
	if format.SampleRate != rate {
		stream = beep.Resample(resampleQuality, format.SampleRate, rate, s)
		format.SampleRate = rate
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(stream)
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return &BufferedSource{path: path, buffer: buffer}, nil
}

func (b *BufferedSource) Path() string {
	return b.path
}

func (b *BufferedSource) Open() (beep.Streamer, error) {
	return b.buffer.Streamer(0, b.buffer.Len()), nil
}

// Len is the buffered length in samples
func (b *BufferedSource) Len() int {
	return b.buffer.Len()
}

// NewSource returns a buffered or file-backed source for path
func NewSource(path string, buffered bool, rate beep.SampleRate) (Source, error) {
	if buffered {
		b, err := NewBufferedSource(path, rate)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	f, err := NewFileSource(path, rate)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// decodeAudio opens and decodes an mp3 or wav file
func decodeAudio(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".mp3" && ext != ".wav" {
		return nil, beep.Format{}, errors.Errorf("unsupported audio format %q", ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "open audio")
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext {
	case ".mp3":
		stream, format, err = mp3.Decode(file)
	case ".wav":
		stream, format, err = wav.Decode(file)
	}
	if err != nil {
		file.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "decode %s", path)
	}
	return stream, format, nil
}
