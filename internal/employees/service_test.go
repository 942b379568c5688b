package employees

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"bakery-platform/internal/audit"
	"bakery-platform/internal/status"
)

type stubDesignations map[string]string // name -> id

func (s stubDesignations) IDByName(ctx context.Context, name string) (string, bool, error) {
	id, ok := s[name]
	return id, ok, nil
}

type stubBranches map[string]string // code -> id

func (s stubBranches) IDByCode(ctx context.Context, code string) (string, bool, error) {
	id, ok := s[code]
	return id, ok, nil
}

func newTestService() (*Service, *MemoryRepo, *audit.MemoryRepo) {
	audits := audit.NewMemoryRepo()
	repo := NewMemoryRepo(audits)
	svc := NewService(
		repo,
		audit.NewRecorder(),
		audit.NewService(audits),
		stubDesignations{"Baker": "des-1", "Salesman": "des-2"},
		stubBranches{"BR001": "br-1", "BR002": "br-2"},
	)
	return svc, repo, audits
}

func createEmployee(t *testing.T, svc *Service) Employee {
	t.Helper()
	e, err := svc.Create(context.Background(), CreateRequest{
		EmployeeCode:  "EMP001",
		Name:          "Asha",
		Mobile:        "9876543210",
		DesignationID: "des-1",
		BranchID:      "br-1",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return e
}

func TestCreateEmitsCreateAudit(t *testing.T) {
	svc, _, audits := newTestService()
	e := createEmployee(t, svc)

	recs := audits.Records()
	if len(recs) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(recs))
	}
	if recs[0].Action != audit.ActionCreate || recs[0].Table != Table || recs[0].RecordID != e.ID {
		t.Fatalf("unexpected record: %+v", recs[0])
	}
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	svc, _, _ := newTestService()
	createEmployee(t, svc)

	_, err := svc.Create(context.Background(), CreateRequest{
		EmployeeCode:  "EMP001",
		Name:          "Binu",
		Mobile:        "9876543211",
		DesignationID: "des-1",
		BranchID:      "br-1",
	})
	if err != ErrDuplicateCode {
		t.Fatalf("expected duplicate code error, got %v", err)
	}
}

func TestSoftDeleteAuditsAsDelete(t *testing.T) {
	svc, _, audits := newTestService()
	e := createEmployee(t, svc)

	if _, err := svc.UpdateStatus(context.Background(), e.ID, status.Deleted); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	recs := audits.Records()
	last := recs[len(recs)-1]
	if last.Action != audit.ActionDelete {
		t.Fatalf("expected delete action on soft delete, got %s", last.Action)
	}
}

func TestDisableThenEnableAuditActions(t *testing.T) {
	svc, _, audits := newTestService()
	e := createEmployee(t, svc)
	ctx := context.Background()

	if _, err := svc.UpdateStatus(ctx, e.ID, status.Inactive); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, e.ID, status.Active); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	recs := audits.Records()
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[1].Action != audit.ActionDisable {
		t.Fatalf("expected disable, got %s", recs[1].Action)
	}
	if recs[2].Action != audit.ActionEnable {
		t.Fatalf("expected enable, got %s", recs[2].Action)
	}
}

func TestUpdateAuditsDirtyFieldsInOrder(t *testing.T) {
	svc, _, audits := newTestService()
	e := createEmployee(t, svc)

	name := "Asha N"
	mobile := "9876500000"
	if _, err := svc.Update(context.Background(), e.ID, UpdateRequest{Name: &name, Mobile: &mobile}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	recs := audits.Records()
	last := recs[len(recs)-1]
	if last.Action != audit.ActionUpdate {
		t.Fatalf("expected update, got %s", last.Action)
	}
	want := "Record updated in employees: name, mobile"
	if last.Description != want {
		t.Fatalf("got %q, want %q", last.Description, want)
	}
}

func TestUpdateWithNoChangesEmitsNothing(t *testing.T) {
	svc, _, audits := newTestService()
	e := createEmployee(t, svc)

	same := e.Name
	if _, err := svc.Update(context.Background(), e.ID, UpdateRequest{Name: &same}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(audits.Records()) != 1 { // just the create
		t.Fatalf("expected no update record, got %d total", len(audits.Records()))
	}
}

func importRows(valid, invalid int) [][]string {
	rows := [][]string{{"employee_code", "name", "mobile", "designation", "branch_code"}}
	for i := 0; i < valid; i++ {
		rows = append(rows, []string{
			fmt.Sprintf("IMP%03d", i), fmt.Sprintf("Employee %d", i), "9876543210", "Baker", "BR001",
		})
	}
	for i := 0; i < invalid; i++ {
		// missing mobile
		rows = append(rows, []string{fmt.Sprintf("BAD%03d", i), "No Mobile", "", "Baker", "BR001"})
	}
	return rows
}

func TestImportSuppressesPerRowAuditsAndWritesOneSummary(t *testing.T) {
	svc, _, audits := newTestService()

	res, err := svc.Import(context.Background(), "staff.xlsx", importRows(8, 2))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Imported != 8 {
		t.Fatalf("expected 8 imported, got %d", res.Imported)
	}
	if len(res.Errors) != 2 {
		t.Fatalf("expected 2 row errors, got %d", len(res.Errors))
	}

	recs := audits.Records()
	if len(recs) != 1 {
		t.Fatalf("expected exactly one audit record for the import, got %d", len(recs))
	}
	rec := recs[0]
	if rec.Action != audit.ActionImport {
		t.Fatalf("expected import action, got %s", rec.Action)
	}
	if rec.RecordID != res.ImportedIDs[0] {
		t.Fatalf("expected record_id to be the first imported id")
	}

	var summary audit.ImportSummary
	if err := json.Unmarshal([]byte(rec.Comments), &summary); err != nil {
		t.Fatalf("comments not valid JSON: %v", err)
	}
	if summary.TotalImported != 8 || len(summary.ImportedIDs) != 8 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.FileName != "staff.xlsx" || len(summary.Errors) != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestImportWithAllRowsInvalidWritesNoRecord(t *testing.T) {
	svc, _, audits := newTestService()

	res, err := svc.Import(context.Background(), "staff.xlsx", importRows(0, 3))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Imported != 0 || len(res.Errors) != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(audits.Records()) != 0 {
		t.Fatalf("expected no audit record for empty import")
	}
}

func TestImportRejectsUnknownDesignationAndBranch(t *testing.T) {
	svc, _, _ := newTestService()

	rows := [][]string{
		{"header"},
		{"X001", "Chris", "9876543210", "Pilot", "BR999"},
	}
	res, err := svc.Import(context.Background(), "staff.xlsx", rows)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Imported != 0 || len(res.Errors) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	errs := res.Errors[0].Errors
	if _, ok := errs["designation_id"]; !ok {
		t.Fatalf("expected designation error, got %v", errs)
	}
	if _, ok := errs["branch_id"]; !ok {
		t.Fatalf("expected branch error, got %v", errs)
	}
}
