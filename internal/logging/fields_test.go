package logging

import (
	"log/slog"
	"testing"
)

func TestWithCommon(t *testing.T) {
	existing := slog.String(FieldWeek, "2024-W10")
	cases := []struct {
		name     string
		service  string
		version  string
		wantKeys []string
	}{
		{"both", "dread-tracker", "dev", []string{FieldWeek, FieldService, FieldVersion}},
		{"service only", "dread-tracker", "", []string{FieldWeek, FieldService}},
		{"neither", "", "", []string{FieldWeek}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attrs := WithCommon([]slog.Attr{existing}, tc.service, tc.version)
			if len(attrs) != len(tc.wantKeys) {
				t.Fatalf("expected %d attrs, got %+v", len(tc.wantKeys), attrs)
			}
			for i, key := range tc.wantKeys {
				if attrs[i].Key != key {
					t.Fatalf("attr %d: expected key %q, got %q", i, key, attrs[i].Key)
				}
			}
		})
	}
}

func TestFieldKeysAreDistinct(t *testing.T) {
	keys := []string{
		FieldService, FieldVersion, FieldBackend, FieldRequestID, FieldPath,
		FieldMethod, FieldStatusCode, FieldWeek, FieldPlayer, FieldField,
		FieldTarget, FieldCount, FieldOperation, FieldDurationMS,
	}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			t.Fatalf("duplicate log field key %q", k)
		}
		seen[k] = true
	}
}
