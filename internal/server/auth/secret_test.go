package auth

import (
	"encoding/hex"
	"testing"
	"time"
)

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := hex.DecodeString(a)
	if err != nil {
		t.Fatalf("secret is not valid hex: %v", err)
	}
	if len(raw) != SecretSize {
		t.Fatalf("expected %d bytes, got %d", SecretSize, len(raw))
	}

	b, err := GenerateSecret()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("two generated secrets are identical")
	}
}

func TestGenerateSecret_KeysDoNotCrossVerify(t *testing.T) {
	a, _ := GenerateSecret()
	b, _ := GenerateSecret()

	token, err := NewCodec([]byte(a), time.Hour).IssueNow(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewCodec([]byte(b), time.Hour).Decode(token); err == nil {
		t.Fatalf("a token signed with one generated secret must not verify with another")
	}
}
