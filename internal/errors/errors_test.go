package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindValidation, "invalid input"},
		{KindForbidden, "forbidden"},
		{KindIO, "I/O error"},
		{KindNetwork, "network error"},
		{KindRemote, "server error"},
		{KindConfig, "configuration error"},
		{KindTimeout, "timeout"},
		{Kind(999), "unknown error"}, // Unknown kind
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestE(t *testing.T) {
	underlying := errors.New("boom")
	err := E(Op("api.CreateClip"), KindForbidden, 403, "premium required", underlying)

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("E() should return *Error")
	}
	if e.Op != "api.CreateClip" {
		t.Errorf("Op = %q, want api.CreateClip", e.Op)
	}
	if e.Kind != KindForbidden {
		t.Errorf("Kind = %v, want KindForbidden", e.Kind)
	}
	if e.Status != 403 {
		t.Errorf("Status = %d, want 403", e.Status)
	}
	if !errors.Is(err, underlying) {
		t.Error("E() should wrap the underlying error")
	}
}

func TestE_ContextOnly(t *testing.T) {
	err := E(Op("workflow.Submit"), KindValidation, "meme text cannot be empty")
	if err.Error() != "workflow.Submit: meme text cannot be empty" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := E(Op("api.Search"), KindNetwork, errors.New("dial tcp: refused"))

	if !Is(err, KindNetwork) {
		t.Error("Is() should match KindNetwork")
	}
	if Is(err, KindRemote) {
		t.Error("Is() should not match KindRemote")
	}
	if Is(errors.New("plain"), KindNetwork) {
		t.Error("Is() should be false for plain errors")
	}
}

func TestIs_Wrapped(t *testing.T) {
	inner := E(Op("api.do"), KindForbidden, 403, errors.New("forbidden"))
	outer := fmt.Errorf("create clip: %w", inner)

	if !Is(outer, KindForbidden) {
		t.Error("Is() should see through fmt.Errorf wrapping")
	}
	if GetStatus(outer) != 403 {
		t.Errorf("GetStatus() = %d, want 403", GetStatus(outer))
	}
}

func TestGetKind(t *testing.T) {
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Error("plain error should be KindUnknown")
	}
	if GetKind(E(KindValidation, "bad")) != KindValidation {
		t.Error("expected KindValidation")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation surfaces context",
			err:  E(Op("workflow.Submit"), KindValidation, "start frame must not be after end frame"),
			want: "start frame must not be after end frame",
		},
		{
			name: "forbidden prompts for upgrade",
			err:  E(Op("api.CreateClip"), KindForbidden, 403, errors.New("forbidden")),
			want: "This action requires a premium API key. Add one in Settings.",
		},
		{
			name: "network suggests retry",
			err:  E(Op("api.Search"), KindNetwork, errors.New("dial tcp: refused")),
			want: "Could not reach the server. Check your connection and try again.",
		},
		{
			name: "remote includes status",
			err:  E(Op("api.Search"), KindRemote, 500, errors.New("internal server error")),
			want: "Server error (500): internal server error",
		},
		{
			name: "plain error passes through",
			err:  errors.New("plain"),
			want: "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
