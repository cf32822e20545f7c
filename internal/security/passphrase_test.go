package security

import "testing"

func TestPassphraseCheckerPlain(t *testing.T) {
	checker := NewPassphraseChecker("open sesame", "")

	if !checker.Enabled() {
		t.Error("Expected checker with plain passphrase to be enabled")
	}
	if !checker.Check("open sesame") {
		t.Error("Expected correct passphrase to pass")
	}
	if checker.Check("wrong") {
		t.Error("Expected wrong passphrase to fail")
	}
	if checker.Check("") {
		t.Error("Expected empty input to fail")
	}
}

func TestPassphraseCheckerHash(t *testing.T) {
	hash, err := HashPassphrase("open sesame")
	if err != nil {
		t.Fatalf("HashPassphrase() failed: %v", err)
	}

	checker := NewPassphraseChecker("", hash)
	if !checker.Enabled() {
		t.Error("Expected checker with hash to be enabled")
	}
	if !checker.Check("open sesame") {
		t.Error("Expected correct passphrase to pass against hash")
	}
	if checker.Check("wrong") {
		t.Error("Expected wrong passphrase to fail against hash")
	}
}

func TestPassphraseHashWinsOverPlain(t *testing.T) {
	hash, err := HashPassphrase("hashed-phrase")
	if err != nil {
		t.Fatalf("HashPassphrase() failed: %v", err)
	}

	checker := NewPassphraseChecker("plain-phrase", hash)
	if !checker.Check("hashed-phrase") {
		t.Error("Expected hash to take precedence")
	}
	if checker.Check("plain-phrase") {
		t.Error("Expected plain passphrase to be ignored when hash is set")
	}
}

func TestPassphraseCheckerDisabled(t *testing.T) {
	checker := NewPassphraseChecker("", "")

	if checker.Enabled() {
		t.Error("Expected checker without configuration to be disabled")
	}
	if checker.Check("") {
		t.Error("Expected check to fail even with empty input")
	}
}
