package chatroom

import (
	"log/slog"
	"time"

	"chatvault/internal/crypto"
)

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the structured logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithScryptParams sets the scrypt cost used by EncryptPassword. Existing
// ciphertexts keep decrypting with the cost they were sealed with.
func WithScryptParams(n, r, p int) Option {
	return func(s *Service) {
		s.kdf = crypto.KDFParams{N: n, R: r, P: p}
	}
}
