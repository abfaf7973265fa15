package core

import (
	"context"
	"strings"
	"time"
)

const (
	keyExportToken     = "privacy:data_export:token:"
	keyDeletionToken   = "privacy:data_deletion:token:"
	keyNewsletterToken = "newsletter:confirm:token:"
)

type exportRequestData struct {
	Email string `json:"email"`
}

type deletionRequestData struct {
	Email  string `json:"email"`
	Reason string `json:"reason,omitempty"`
}

type newsletterConfirmData struct {
	Email string `json:"email"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) storeExportRequest(ctx context.Context, tokenHash string, data exportRequestData, ttl time.Duration) error {
	return s.ephemPutJSON(ctx, keyExportToken+tokenHash, data, ttl)
}

func (s *Service) consumeExportRequest(ctx context.Context, tokenHash string) (exportRequestData, bool, error) {
	var data exportRequestData
	ok, err := s.ephemConsumeJSON(ctx, keyExportToken+tokenHash, &data)
	return data, ok, err
}

func (s *Service) storeDeletionRequest(ctx context.Context, tokenHash string, data deletionRequestData, ttl time.Duration) error {
	return s.ephemPutJSON(ctx, keyDeletionToken+tokenHash, data, ttl)
}

func (s *Service) consumeDeletionRequest(ctx context.Context, tokenHash string) (deletionRequestData, bool, error) {
	var data deletionRequestData
	ok, err := s.ephemConsumeJSON(ctx, keyDeletionToken+tokenHash, &data)
	return data, ok, err
}

func (s *Service) storeNewsletterConfirm(ctx context.Context, tokenHash string, data newsletterConfirmData, ttl time.Duration) error {
	return s.ephemPutJSON(ctx, keyNewsletterToken+tokenHash, data, ttl)
}

func (s *Service) consumeNewsletterConfirm(ctx context.Context, tokenHash string) (newsletterConfirmData, bool, error) {
	var data newsletterConfirmData
	ok, err := s.ephemConsumeJSON(ctx, keyNewsletterToken+tokenHash, &data)
	return data, ok, err
}
