package privacyhttp

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	core "github.com/JNZader/portfolio-2025-sub001/core"
	memorylimiter "github.com/JNZader/portfolio-2025-sub001/ratelimit/memory"
	redislimiter "github.com/JNZader/portfolio-2025-sub001/ratelimit/redis"
	memorystore "github.com/JNZader/portfolio-2025-sub001/storage/memory"
	pgstore "github.com/JNZader/portfolio-2025-sub001/storage/postgres"
	redisstore "github.com/JNZader/portfolio-2025-sub001/storage/redis"
)

// Service wraps core.Service with net/http mounting helpers.
type Service struct {
	svc         *core.Service
	rd          *redis.Client
	rl          RateLimiter
	clientIP    ClientIPFunc
	adminSecret []byte
}

// NewService constructs a core.Service and wraps it for net/http mounting.
// Defaults are in-memory (ephemeral store, subscriber store, limiter, event
// log) for dev/single-instance use; attach Redis/Postgres for production.
func NewService(cfg core.Config) *Service {
	coreSvc := core.NewService(cfg).
		WithEphemeralStore(memorystore.NewKV(), core.EphemeralMemory).
		WithSubscriberStore(core.NewMemorySubscriberStore()).
		WithEventLog(core.NewMemoryEventLog(0))
	return &Service{
		svc:      coreSvc,
		rl:       memorylimiter.New(DefaultRateLimits()),
		clientIP: DefaultClientIP(),
	}
}

// ip resolves the rate-limit client identifier for the request.
func (s *Service) ip(r *http.Request) string {
	fn := s.clientIP
	if fn == nil {
		fn = DefaultClientIP()
	}
	return fn(r)
}

func (s *Service) recordEvent(r *http.Request, kind core.PrivacyEventKind, email, note string) {
	s.svc.RecordEvent(r.Context(), kind, email, s.ip(r), note)
}

func (s *Service) WithPostgres(pg *pgxpool.Pool) *Service {
	if pg != nil {
		s.svc = s.svc.WithSubscriberStore(pgstore.NewSubscribers(pg))
	}
	return s
}

// WithRedis swaps both the ephemeral store and the rate limiter onto Redis
// so that token single-use and quotas hold across processes.
func (s *Service) WithRedis(rd *redis.Client) *Service {
	s.rd = rd
	if rd != nil {
		s.svc = s.svc.WithEphemeralStore(redisstore.NewKV(rd), core.EphemeralRedis)
		s.rl = redislimiter.New(rd, DefaultRateLimits())
	}
	return s
}

func (s *Service) WithSubscriberStore(store core.SubscriberStore) *Service {
	s.svc = s.svc.WithSubscriberStore(store)
	return s
}

func (s *Service) WithRateLimiter(rl RateLimiter) *Service { s.rl = rl; return s }
func (s *Service) DisableRateLimiter() *Service            { s.rl = nil; return s }

func (s *Service) WithClientIPFunc(fn ClientIPFunc) *Service {
	if fn == nil {
		s.clientIP = DefaultClientIP()
		return s
	}
	s.clientIP = fn
	return s
}

func (s *Service) WithEmailSender(sender core.EmailSender) *Service {
	s.svc = s.svc.WithEmailSender(sender)
	return s
}

func (s *Service) WithEventLog(log core.EventLog) *Service {
	s.svc = s.svc.WithEventLog(log)
	return s
}

// WithAdminSecret enables the admin endpoints, gated by HS256 bearer tokens
// signed with this secret.
func (s *Service) WithAdminSecret(secret []byte) *Service {
	s.adminSecret = secret
	return s
}

func (s *Service) Core() *core.Service { return s.svc }
