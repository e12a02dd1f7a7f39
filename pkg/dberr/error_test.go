package dberr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew_SetsCodeCategoryMessage(t *testing.T) {
	err := New(ErrCategoryUser, CodeNotFound, "table not found")

	if err.Code != CodeNotFound {
		t.Errorf("Expected code %s, got %s", CodeNotFound, err.Code)
	}
	if err.Category != ErrCategoryUser {
		t.Errorf("Expected user category, got %d", err.Category)
	}
	if err.Message != "table not found" {
		t.Errorf("Unexpected message: %s", err.Message)
	}
	if len(err.Stack) == 0 {
		t.Error("Expected captured stack")
	}
}

func TestError_FormatIncludesDetailAndOperation(t *testing.T) {
	err := New(ErrCategoryUser, CodeColumnNotFound, "column not found")
	err.Detail = `column "salary" does not exist in table "emp"`
	err.Operation = "Project"
	err.Component = "Pipeline"

	msg := err.Error()
	for _, want := range []string{"[COLUMN_NOT_FOUND]", "salary", "operation: Project", "component: Pipeline"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestWrap_PlainError(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, "WRITE_FAILED", "Rewrite", "TableFile")

	if err.Cause != cause {
		t.Error("Expected cause to be preserved")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to reach the cause")
	}
	if err.Category != ErrCategorySystem {
		t.Errorf("Expected system category, got %d", err.Category)
	}
}

func TestWrap_ExistingDBErrorKeepsContext(t *testing.T) {
	inner := NewNotFound("emp")
	inner.Operation = "Scan"

	wrapped := Wrap(inner, "IGNORED", "Filter", "Pipeline")

	if wrapped != inner {
		t.Error("Expected the same DBError back")
	}
	if wrapped.Operation != "Scan" {
		t.Errorf("Expected operation Scan to survive, got %s", wrapped.Operation)
	}
	if wrapped.Component != "Pipeline" {
		t.Errorf("Expected empty component to be filled, got %s", wrapped.Component)
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	if Wrap(nil, "X", "Y", "Z") != nil {
		t.Error("Expected nil for nil input")
	}
}

func TestTaxonomyConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *DBError
		code     string
		category ErrorCategory
		detail   string
	}{
		{"not found", NewNotFound("emp"), CodeNotFound, ErrCategoryUser, "emp"},
		{"corrupt row", NewCorruptRow("emp", 7, 2, 3), CodeCorruptRow, ErrCategoryData, "row 7"},
		{"type mismatch", NewTypeMismatch("salary", "abc", "Aggregate"), CodeTypeMismatch, ErrCategoryUser, "abc"},
		{"duplicate key", NewDuplicateKey("emp", "id", "1"), CodeDuplicateKey, ErrCategoryUser, "id"},
		{"column not found", NewColumnNotFound("emp", "age"), CodeColumnNotFound, ErrCategoryUser, "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.Category != tt.category {
				t.Errorf("Expected category %d, got %d", tt.category, tt.err.Category)
			}
			if !strings.Contains(tt.err.Detail, tt.detail) {
				t.Errorf("Detail %q missing %q", tt.err.Detail, tt.detail)
			}
			if !HasCode(tt.err, tt.code) {
				t.Errorf("HasCode(%s) = false", tt.code)
			}
		})
	}
}

func TestHasCode_NonDBError(t *testing.T) {
	if HasCode(fmt.Errorf("plain"), CodeNotFound) {
		t.Error("Expected false for plain error")
	}
	if HasCode(nil, CodeNotFound) {
		t.Error("Expected false for nil")
	}
}
