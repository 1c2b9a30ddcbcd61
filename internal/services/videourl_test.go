package services

import (
	"context"
	"testing"

	"github.com/openmuse/openmuse-backend/internal/logger"
)

func newTestVideoURLService(t *testing.T, bucket BucketService) VideoURLService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	t.Setenv("REDIS_ADDR", "")
	return NewVideoURLService(log, bucket)
}

func TestVideoURLResolve_AbsoluteURLPassesThrough(t *testing.T) {
	svc := newTestVideoURLService(t, nil)

	for _, raw := range []string{
		"https://cdn.example.com/videos/a.mp4",
		"http://example.com/b.mp4",
	} {
		got, err := svc.Resolve(context.Background(), raw)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", raw, err)
		}
		if got != raw {
			t.Fatalf("Resolve(%q) = %q, want passthrough", raw, got)
		}
	}
}

func TestVideoURLResolve_EmptyKeyFails(t *testing.T) {
	svc := newTestVideoURLService(t, nil)

	if _, err := svc.Resolve(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for empty storage key")
	}
}

func TestVideoURLResolve_StorageKeyWithoutBucketFails(t *testing.T) {
	svc := newTestVideoURLService(t, nil)

	if _, err := svc.Resolve(context.Background(), "videos/a.mp4"); err == nil {
		t.Fatalf("expected error when no bucket service is configured")
	}
}
