package items

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"bakery-platform/internal/audit"
	"bakery-platform/internal/status"
)

func newTestService() (*Service, *MemoryRepo, *audit.MemoryRepo) {
	audits := audit.NewMemoryRepo()
	repo := NewMemoryRepo(audits)
	svc := NewService(repo, audit.NewRecorder(), audit.NewService(audits))
	return svc, repo, audits
}

func createItem(t *testing.T, svc *Service) Item {
	t.Helper()
	it, err := svc.Create(context.Background(), CreateRequest{
		Name:        "Chocolate Cake",
		Category:    "Cakes",
		Description: "1kg round",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return it
}

func TestCreateEmitsCreateAudit(t *testing.T) {
	svc, _, audits := newTestService()
	it := createItem(t, svc)

	recs := audits.Records()
	if len(recs) != 1 {
		t.Fatalf("want 1 audit record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.Action != audit.ActionCreate || rec.Table != Table || rec.RecordID != it.ID {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Description != "New record created in items" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
}

func TestCreateRequiresNameAndCategory(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Create(context.Background(), CreateRequest{Category: "Cakes"}); err != ErrInvalidArgument {
		t.Fatalf("missing name: want ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateRequest{Name: "Brownie"}); err != ErrInvalidArgument {
		t.Fatalf("missing category: want ErrInvalidArgument, got %v", err)
	}
}

func TestUpdateRecordsDirtyFieldsInOrder(t *testing.T) {
	svc, _, audits := newTestService()
	it := createItem(t, svc)

	name := "Dark Chocolate Cake"
	desc := "1.5kg round"
	if _, err := svc.Update(context.Background(), it.ID, UpdateRequest{Name: &name, Description: &desc}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	recs := audits.Records()
	if len(recs) != 2 {
		t.Fatalf("want 2 audit records, got %d", len(recs))
	}
	rec := recs[1]
	if rec.Action != audit.ActionUpdate {
		t.Fatalf("want update action, got %q", rec.Action)
	}
	if rec.Description != "Record updated in items: name, description" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
}

func TestUpdateWithoutChangesWritesNoAudit(t *testing.T) {
	svc, _, audits := newTestService()
	it := createItem(t, svc)

	same := it.Name
	if _, err := svc.Update(context.Background(), it.ID, UpdateRequest{Name: &same}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := len(audits.Records()); got != 1 {
		t.Fatalf("want only the create record, got %d", got)
	}
}

func TestStatusTransitionsMapToActions(t *testing.T) {
	cases := []struct {
		name   string
		to     status.Status
		action audit.Action
		desc   string
	}{
		{"disable", status.Inactive, audit.ActionDisable, "Record disabled from items"},
		{"delete", status.Deleted, audit.ActionDelete, "Record deleted from items"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, audits := newTestService()
			it := createItem(t, svc)

			got, err := svc.UpdateStatus(context.Background(), it.ID, tc.to)
			if err != nil {
				t.Fatalf("update status failed: %v", err)
			}
			if got.Status != tc.to {
				t.Fatalf("want status %d, got %d", tc.to, got.Status)
			}
			recs := audits.Records()
			rec := recs[len(recs)-1]
			if rec.Action != tc.action {
				t.Fatalf("want action %q, got %q", tc.action, rec.Action)
			}
			if rec.Description != tc.desc {
				t.Fatalf("unexpected description: %q", rec.Description)
			}
		})
	}
}

func TestEnableAfterDisable(t *testing.T) {
	svc, _, audits := newTestService()
	it := createItem(t, svc)

	if _, err := svc.UpdateStatus(context.Background(), it.ID, status.Inactive); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), it.ID, status.Active); err != nil {
		t.Fatalf("enable failed: %v", err)
	}

	recs := audits.Records()
	rec := recs[len(recs)-1]
	if rec.Action != audit.ActionEnable {
		t.Fatalf("want enable action, got %q", rec.Action)
	}
	if rec.Description != "Record enabled from items" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
}

func TestStatusNoopWritesNoAudit(t *testing.T) {
	svc, _, audits := newTestService()
	it := createItem(t, svc)

	if _, err := svc.UpdateStatus(context.Background(), it.ID, status.Active); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if got := len(audits.Records()); got != 1 {
		t.Fatalf("want only the create record, got %d", got)
	}
}

func TestImportWritesSingleSummaryRecord(t *testing.T) {
	svc, _, audits := newTestService()

	rows := [][]string{
		{"name", "category", "description"},
		{"Croissant", "Pastries", "butter"},
		{"", "Pastries", ""},
		{"Baguette", "Breads", ""},
		{"Macaron", "", ""},
	}
	res, err := svc.Import(context.Background(), "items.xlsx", rows)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if res.Imported != 2 {
		t.Fatalf("want 2 imported, got %d", res.Imported)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("want 1 row error, got %d", len(res.Errors))
	}
	if res.Errors[0].Row != 5 {
		t.Fatalf("want error on row 5, got %d", res.Errors[0].Row)
	}

	recs := audits.Records()
	if len(recs) != 1 {
		t.Fatalf("want exactly one import summary record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.Action != audit.ActionImport {
		t.Fatalf("want import action, got %q", rec.Action)
	}
	if rec.RecordID != res.ImportedIDs[0] {
		t.Fatalf("want record_id %q, got %q", res.ImportedIDs[0], rec.RecordID)
	}
	if rec.Description != fmt.Sprintf("Imported %d items from file: items.xlsx", res.Imported) {
		t.Fatalf("unexpected description: %q", rec.Description)
	}

	var summary audit.ImportSummary
	if err := json.Unmarshal([]byte(rec.Comments), &summary); err != nil {
		t.Fatalf("comments not valid json: %v", err)
	}
	if summary.TotalImported != 2 || len(summary.ImportedIDs) != 2 || len(summary.Errors) != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestImportWithNoValidRowsWritesNoRecord(t *testing.T) {
	svc, _, audits := newTestService()

	rows := [][]string{
		{"name", "category", "description"},
		{"", "Cakes", ""},
	}
	res, err := svc.Import(context.Background(), "empty.xlsx", rows)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if res.Imported != 0 {
		t.Fatalf("want 0 imported, got %d", res.Imported)
	}
	if got := len(audits.Records()); got != 0 {
		t.Fatalf("want no audit records, got %d", got)
	}
}

func TestListFiltersByStatusAndSearch(t *testing.T) {
	svc, _, _ := newTestService()
	it := createItem(t, svc)
	if _, err := svc.Create(context.Background(), CreateRequest{Name: "Brownie", Category: "Cakes"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), it.ID, status.Inactive); err != nil {
		t.Fatalf("disable failed: %v", err)
	}

	active := status.Active
	got, total, err := svc.List(context.Background(), ListFilter{Status: &active})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(got) != 1 || got[0].Name != "Brownie" {
		t.Fatalf("unexpected list: total=%d items=%+v", total, got)
	}

	got, total, err = svc.List(context.Background(), ListFilter{Search: "chocolate"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || got[0].Name != "Chocolate Cake" {
		t.Fatalf("unexpected search result: total=%d items=%+v", total, got)
	}
}
