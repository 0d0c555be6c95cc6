package util

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword("s3cret", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("7", "a@x.com", "client", "test-secret")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	userID, email, role, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT failed: %v", err)
	}
	if userID != "7" || email != "a@x.com" || role != "client" {
		t.Errorf("claims: got %s/%s/%s", userID, email, role)
	}

	if _, _, _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Error("token accepted with wrong secret")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
		errType   string
	}{
		{name: "nil", err: nil, retryable: false, errType: ""},
		{name: "no rows is empty result", err: pgx.ErrNoRows, retryable: false, errType: "not_found"},
		{name: "connection failure", err: errors.New("connection refused"), retryable: true, errType: "db_connection_error"},
		{name: "deadline", err: context.DeadlineExceeded, retryable: true, errType: "timeout"},
		{name: "cancellation", err: context.Canceled, retryable: false, errType: "context_canceled"},
		{name: "unknown", err: errors.New("something odd"), retryable: false, errType: "unknown_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retryable, errType := IsRetryableError(tt.err)
			if retryable != tt.retryable || errType != tt.errType {
				t.Errorf("got (%v, %q), want (%v, %q)", retryable, errType, tt.retryable, tt.errType)
			}
		})
	}
}
