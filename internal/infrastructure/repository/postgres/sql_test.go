package postgres

import (
	"database/sql"
	"testing"
)

func TestNullHelpers(t *testing.T) {
	t.Run("empty string becomes null", func(t *testing.T) {
		if got := nullString(""); got.Valid {
			t.Fatalf("expected invalid NullString, got %+v", got)
		}
		if got := nullString("2-1"); !got.Valid || got.String != "2-1" {
			t.Fatalf("unexpected NullString: %+v", got)
		}
	})

	t.Run("nil pointer becomes null float", func(t *testing.T) {
		if got := nullFloat(nil); got.Valid {
			t.Fatalf("expected invalid NullFloat64, got %+v", got)
		}
		v := 1.5
		if got := nullFloat(&v); !got.Valid || got.Float64 != 1.5 {
			t.Fatalf("unexpected NullFloat64: %+v", got)
		}
	})

	t.Run("round trips null int", func(t *testing.T) {
		if got := nullableInt(sql.NullInt64{}); got != nil {
			t.Fatalf("expected nil pointer, got %v", *got)
		}
		got := nullableInt(sql.NullInt64{Int64: 40000, Valid: true})
		if got == nil || *got != 40000 {
			t.Fatalf("unexpected pointer: %v", got)
		}
	})

	t.Run("round trips null float", func(t *testing.T) {
		if got := nullableFloat(sql.NullFloat64{}); got != nil {
			t.Fatalf("expected nil pointer, got %v", *got)
		}
		got := nullableFloat(sql.NullFloat64{Float64: 0.7, Valid: true})
		if got == nil || *got != 0.7 {
			t.Fatalf("unexpected pointer: %v", got)
		}
	})
}
