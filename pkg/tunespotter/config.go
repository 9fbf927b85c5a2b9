package tunespotter

import "time"

type Config struct {
	WindowLengthSec  int
	MaxWorkers       int
	RecognizeTimeout time.Duration
	Logger           Logger
	Fetcher          MediaFetcher
	Recognizer       Recognizer
}

type Option func(*Config)

func WithWindowLength(seconds int) Option {
	return func(c *Config) {
		c.WindowLengthSec = seconds
	}
}

func WithMaxWorkers(n int) Option {
	return func(c *Config) {
		c.MaxWorkers = n
	}
}

func WithRecognizeTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.RecognizeTimeout = d
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithFetcher(fetcher MediaFetcher) Option {
	return func(c *Config) {
		c.Fetcher = fetcher
	}
}

func WithRecognizer(recognizer Recognizer) Option {
	return func(c *Config) {
		c.Recognizer = recognizer
	}
}

func defaultConfig() *Config {
	return &Config{
		WindowLengthSec:  DefaultWindowLengthSec,
		MaxWorkers:       4,
		RecognizeTimeout: 30 * time.Second,
	}
}
