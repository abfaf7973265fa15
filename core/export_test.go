package core

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	memorystore "github.com/JNZader/portfolio-2025-sub001/storage/memory"
)

type sentMail struct {
	To      string
	Subject string
	HTML    string
}

type fakeSender struct {
	mu       sync.Mutex
	sent     []sentMail
	failNext bool
}

func (f *fakeSender) Send(ctx context.Context, to, subject, html string) error {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, HTML: html})
	if f.failNext {
		f.failNext = false
		return errors.New("smtp unavailable")
	}
	return nil
}

func (f *fakeSender) last(t *testing.T) sentMail {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

var reTokenParam = regexp.MustCompile(`token=([A-Za-z0-9]+)`)

func tokenFromMail(t *testing.T, m sentMail) string {
	t.Helper()
	match := reTokenParam.FindStringSubmatch(m.HTML)
	require.Len(t, match, 2, "confirmation mail must carry a token link")
	return match[1]
}

// recordingStore wraps an EphemeralStore and remembers the last SetNX call.
type recordingStore struct {
	EphemeralStore
	lastKey string
	lastTTL time.Duration
}

func (r *recordingStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	r.lastKey = key
	r.lastTTL = ttl
	return r.EphemeralStore.SetNX(ctx, key, value, ttl)
}

func newTestService(t *testing.T) (*Service, *fakeSender, *MemorySubscriberStore) {
	t.Helper()
	sender := &fakeSender{}
	subs := NewMemorySubscriberStore()
	svc := NewService(Config{BaseURL: "https://example.com", SiteName: "example"}).
		WithEphemeralStore(memorystore.NewKV(), EphemeralMemory).
		WithSubscriberStore(subs).
		WithEmailSender(sender)
	return svc, sender, subs
}

func TestRequestDataExportStoresSingleToken(t *testing.T) {
	svc, sender, _ := newTestService(t)
	rec := &recordingStore{EphemeralStore: svc.ephemeralStore}
	svc.WithEphemeralStore(rec, EphemeralMemory)

	require.NoError(t, svc.RequestDataExport(context.Background(), "User@Example.com"))

	require.Len(t, sender.sent, 1)
	require.Equal(t, "user@example.com", sender.sent[0].To)
	require.Equal(t, ConfirmTokenTTL, rec.lastTTL)

	token := tokenFromMail(t, sender.last(t))
	require.Equal(t, keyExportToken+sha256Hex(token), rec.lastKey)

	var data exportRequestData
	ok, err := svc.ephemGetJSON(context.Background(), keyExportToken+sha256Hex(token), &data)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "user@example.com", data.Email)
}

func TestConfirmDataExportRoundTrip(t *testing.T) {
	svc, sender, subs := newTestService(t)
	_, err := subs.UpsertPending(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.NoError(t, subs.ConfirmSubscription(context.Background(), "user@example.com"))

	require.NoError(t, svc.RequestDataExport(context.Background(), "user@example.com"))
	token := tokenFromMail(t, sender.last(t))

	doc, err := svc.ConfirmDataExport(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", doc.Email)
	require.NotNil(t, doc.Subscriber)
	require.True(t, doc.Subscriber.Confirmed)
	require.Equal(t, 1, doc.Version)

	// Single use: the same link must not work twice.
	_, err = svc.ConfirmDataExport(context.Background(), token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestConfirmDataExportConcurrentSingleWinner(t *testing.T) {
	svc, sender, subs := newTestService(t)
	_, err := subs.UpsertPending(context.Background(), "user@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.RequestDataExport(context.Background(), "user@example.com"))
	token := tokenFromMail(t, sender.last(t))

	const callers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ConfirmDataExport(context.Background(), token); err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, winners)
}

func TestConfirmDataExportUnknownToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.ConfirmDataExport(context.Background(), "never-issued")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredTokenIndistinguishableFromMissing(t *testing.T) {
	svc, _, _ := newTestService(t)

	hash := sha256Hex("some-token")
	err := svc.storeExportRequest(context.Background(), hash, exportRequestData{Email: "user@example.com"}, time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	_, err = svc.ConfirmDataExport(context.Background(), "some-token")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestConfirmDataExportNoSubscriberRecord(t *testing.T) {
	svc, sender, _ := newTestService(t)

	require.NoError(t, svc.RequestDataExport(context.Background(), "ghost@example.com"))
	token := tokenFromMail(t, sender.last(t))

	_, err := svc.ConfirmDataExport(context.Background(), token)
	require.ErrorIs(t, err, ErrNotFound)

	// The token is consumed even though no record existed.
	_, err = svc.ConfirmDataExport(context.Background(), token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRequestDataExportEmailFailureKeepsToken(t *testing.T) {
	svc, sender, _ := newTestService(t)
	sender.failNext = true

	err := svc.RequestDataExport(context.Background(), "user@example.com")
	require.ErrorIs(t, err, ErrEmailSend)

	// The token was written before the send and stays valid.
	token := tokenFromMail(t, sender.last(t))
	var data exportRequestData
	ok, err := svc.ephemGetJSON(context.Background(), keyExportToken+sha256Hex(token), &data)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestTokensAreOpaqueAndHighEntropy(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		tok, err := newOpaqueToken()
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(tok), 30)
		require.False(t, seen[tok], "tokens must not repeat")
		seen[tok] = true
	}
}
