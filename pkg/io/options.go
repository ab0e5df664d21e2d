package io

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphclip/pkg/buildinfo"
)

type settings struct {
	producer string
	now      func() time.Time
	logger   *log.Logger
}

func newSettings(opts []Option) settings {
	s := settings{
		producer: buildinfo.Producer(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Option configures an [Encoder] or a [Decoder].
type Option func(*settings)

// WithProducer sets the producerVersion written into document metadata.
func WithProducer(producer string) Option {
	return func(s *settings) { s.producer = producer }
}

// WithClock sets the time source used for the exportDate field.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger. Without it nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) { s.logger = l }
}
