package services

import (
	"errors"
	"sync"
	"time"
)

// ErrSpeechUnavailable means no recognizer is wired into this terminal.
// Voice features are disabled; everything else keeps working.
var ErrSpeechUnavailable = errors.New("speech unavailable")

// ErrRecognitionBusy rejects a second Start while one listen is in
// flight. Only one result is ever consumed at a time.
var ErrRecognitionBusy = errors.New("recognition already in progress")

type SpeechErrorKind string

const (
	SpeechErrNoSpeech     SpeechErrorKind = "no-speech"
	SpeechErrAudioCapture SpeechErrorKind = "audio-capture"
	SpeechErrNotAllowed   SpeechErrorKind = "not-allowed"
	SpeechErrOther        SpeechErrorKind = "other"
)

func speechErrorMessage(kind SpeechErrorKind) string {
	switch kind {
	case SpeechErrNoSpeech:
		return "음성이 감지되지 않았습니다. 다시 시도해주세요."
	case SpeechErrAudioCapture:
		return "마이크에 접근할 수 없습니다."
	case SpeechErrNotAllowed:
		return "마이크 권한이 거부되었습니다."
	default:
		return "음성 인식 오류: " + string(kind)
	}
}

// SpeechHandler receives the outcome of one listen: exactly one of
// OnResult or OnError, then OnEnd in every case.
type SpeechHandler struct {
	OnResult func(transcript string)
	OnError  func(kind SpeechErrorKind)
	OnEnd    func()
}

// Recognizer is the speech capability the session consumes. A real
// speech-to-text backend would sit behind this interface.
type Recognizer interface {
	Start(h SpeechHandler) error
	Stop()
}

// SimulatedRecognizer stands in for a speech backend: it delivers a
// scripted transcript (or error) after a short listen window. Stopping
// before the window elapses cancels delivery but still fires OnEnd,
// mirroring how browser speech recognition behaves.
type SimulatedRecognizer struct {
	mu      sync.Mutex
	sched   Scheduler
	window  time.Duration
	script  string
	errKind SpeechErrorKind
	hasErr  bool

	listening bool
	cancel    CancelFunc
	handler   SpeechHandler
}

func NewSimulatedRecognizer(sched Scheduler, window time.Duration) *SimulatedRecognizer {
	return &SimulatedRecognizer{sched: sched, window: window}
}

// Script sets the transcript the next listen will "hear".
func (r *SimulatedRecognizer) Script(transcript string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.script = transcript
	r.hasErr = false
}

// ScriptError makes the next listen fail with the given kind.
func (r *SimulatedRecognizer) ScriptError(kind SpeechErrorKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errKind = kind
	r.hasErr = true
}

func (r *SimulatedRecognizer) Start(h SpeechHandler) error {
	r.mu.Lock()
	if r.listening {
		r.mu.Unlock()
		return ErrRecognitionBusy
	}
	r.listening = true
	r.handler = h
	r.cancel = r.sched.Schedule(r.window, r.deliver)
	r.mu.Unlock()
	return nil
}

func (r *SimulatedRecognizer) deliver() {
	r.mu.Lock()
	if !r.listening {
		r.mu.Unlock()
		return
	}
	h := r.handler
	script, hasErr, errKind := r.script, r.hasErr, r.errKind
	r.listening = false
	r.cancel = nil
	r.mu.Unlock()

	if hasErr {
		if h.OnError != nil {
			h.OnError(errKind)
		}
	} else if h.OnResult != nil {
		h.OnResult(script)
	}
	if h.OnEnd != nil {
		h.OnEnd()
	}
}

// Stop cancels an in-flight listen. No result or error is delivered,
// but OnEnd still fires so the caller can release its listening state.
func (r *SimulatedRecognizer) Stop() {
	r.mu.Lock()
	if !r.listening {
		r.mu.Unlock()
		return
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	h := r.handler
	r.listening = false
	r.mu.Unlock()

	if h.OnEnd != nil {
		h.OnEnd()
	}
}
