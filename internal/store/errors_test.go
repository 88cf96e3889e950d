package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "generic_not_found", err: ErrNotFound, want: true},
		{name: "task_not_found", err: ErrTaskNotFound, want: true},
		{
			name: "wrapped_task_not_found",
			err:  fmt.Errorf("loading dashboard: %w", ErrTaskNotFound),
			want: true,
		},
		{
			name: "store_error_wrapping_not_found",
			err:  NewStoreError("task", "get_by_id", "query failed", ErrNotFound),
			want: true,
		},
		{name: "invalid_entity", err: ErrInvalidEntity, want: false},
		{name: "unrelated", err: errors.New("disk full"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFoundError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("duplicate key")
	err := NewStoreError("task", "create", "insert failed", cause)

	assert.Equal(t, "create operation on task failed: insert failed: duplicate key", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("task", "delete", "no connection", nil)
	assert.Equal(t, "delete operation on task failed: no connection", bare.Error())
}
