package repo

import (
	"context"
	"testing"
	"time"

	"github.com/chrimage/atlas-firebird-intake-speed/internal/domain"
)

func TestStats_EmptyTable(t *testing.T) {
	db := newTestDB(t, true)
	st, err := Stats(context.Background(), db)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Total != 0 || len(st.ByStatus) != 0 || st.LastUpdatedAt != nil {
		t.Fatalf("unexpected stats for empty table: %+v", st)
	}
}

func TestStats_CountsByStatus(t *testing.T) {
	db := newTestDB(t, true)
	now := time.Now().UTC()
	seed := []struct {
		id, status string
	}{
		{"a", "new"}, {"b", "new"}, {"c", "resolved"},
	}
	for i, s := range seed {
		row := domain.Submission{
			ID: s.id, Name: "n", ServiceType: "x", Message: "m", Status: s.status,
			CreatedAt: now, UpdatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	st, err := Stats(context.Background(), db)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Total != 3 {
		t.Fatalf("Total = %d, want 3", st.Total)
	}
	if st.ByStatus["new"] != 2 || st.ByStatus["resolved"] != 1 {
		t.Fatalf("ByStatus = %v", st.ByStatus)
	}
	if st.LastUpdatedAt == nil || st.LastUpdatedAt.Unix() != now.Add(2*time.Second).Unix() {
		t.Fatalf("LastUpdatedAt = %v", st.LastUpdatedAt)
	}
}

func TestStats_Error_NoTable(t *testing.T) {
	db := newTestDB(t, false)
	if _, err := Stats(context.Background(), db); err == nil {
		t.Fatalf("expected error when submissions table is missing")
	}
}
