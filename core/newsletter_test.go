package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewsletterDoubleOptIn(t *testing.T) {
	svc, sender, subs := newTestService(t)

	require.NoError(t, svc.SubscribeNewsletter(context.Background(), "Reader@Example.com"))

	// Pending until confirmed.
	sub, err := subs.GetByEmail(context.Background(), "reader@example.com")
	require.NoError(t, err)
	require.False(t, sub.Confirmed)

	token := tokenFromMail(t, sender.last(t))
	email, err := svc.ConfirmNewsletterSubscription(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "reader@example.com", email)

	sub, err = subs.GetByEmail(context.Background(), "reader@example.com")
	require.NoError(t, err)
	require.True(t, sub.Confirmed)
	require.NotNil(t, sub.ConfirmedAt)

	// Confirmation link is single use.
	_, err = svc.ConfirmNewsletterSubscription(context.Background(), token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNewsletterResubscribeReissuesLink(t *testing.T) {
	svc, sender, _ := newTestService(t)

	require.NoError(t, svc.SubscribeNewsletter(context.Background(), "reader@example.com"))
	first := tokenFromMail(t, sender.last(t))
	require.NoError(t, svc.SubscribeNewsletter(context.Background(), "reader@example.com"))
	second := tokenFromMail(t, sender.last(t))

	require.NotEqual(t, first, second)
	// Both links resolve while unexpired; the flow tolerates re-requests.
	_, err := svc.ConfirmNewsletterSubscription(context.Background(), second)
	require.NoError(t, err)
}

func TestUnsubscribeUnknownAddressIsSilent(t *testing.T) {
	svc, _, _ := newTestService(t)
	require.NoError(t, svc.UnsubscribeNewsletter(context.Background(), "nobody@example.com"))
}

func TestMemoryEventLogBounded(t *testing.T) {
	log := NewMemoryEventLog(3)
	for i := 0; i < 5; i++ {
		require.NoError(t, log.Record(context.Background(), PrivacyEvent{Note: string(rune('a' + i))}))
	}
	events, err := log.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 3)
	// Newest first, oldest dropped.
	require.Equal(t, "e", events[0].Note)
	require.Equal(t, "c", events[2].Note)
}
