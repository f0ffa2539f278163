package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			err:      New(CodeAllocation, "chunk allocation failed"),
			expected: "[ALLOCATION_ERROR] chunk allocation failed",
		},
		{
			name:     "with underlying error",
			err:      Wrap(CodeIO, "checkpoint write failed", errors.New("disk full")),
			expected: "[IO_ERROR] checkpoint write failed: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := Wrap(CodeDeserialization, "decode failed", underlying)

	assert.Equal(t, underlying, err.Unwrap())
}

func TestAppError_Is(t *testing.T) {
	err1 := New(CodeAllocation, "error 1")
	err2 := New(CodeAllocation, "error 2")
	err3 := New(CodeIO, "error 3")

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestIsAllocationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "allocation error", err: ErrAllocation, expected: true},
		{name: "wrapped allocation error", err: Wrap(CodeAllocation, "oom", errors.New("mmap failed")), expected: true},
		{name: "other error", err: ErrIO, expected: false},
		{name: "nil error", err: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAllocationError(tt.err))
		})
	}
}

func TestIsUserStop(t *testing.T) {
	assert.True(t, IsUserStop(ErrUserStop))
	assert.False(t, IsUserStop(ErrAllocation))
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "app error", err: New(CodeAllocation, "oom"), expected: CodeAllocation},
		{name: "wrapped app error", err: Wrap(CodeIO, "io", errors.New("inner")), expected: CodeIO},
		{name: "standard error", err: errors.New("standard error"), expected: CodeUnknown},
		{name: "nil error", err: nil, expected: CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCode(tt.err))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "app error", err: New(CodeAllocation, "chunk allocation failed"), expected: "chunk allocation failed"},
		{name: "standard error", err: errors.New("standard error"), expected: "standard error"},
		{name: "nil error", err: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorMessage(tt.err))
		})
	}
}
