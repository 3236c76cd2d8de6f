package contracts

import (
	"errors"
	"testing"
	"time"

	"backoffice-backend/apperrors"
	"backoffice-backend/models"
)

func draftContract() *models.Contract {
	return &models.Contract{
		Id:         "c-1",
		BusinessID: "biz-1",
		EmployeeID: "emp-1",
		Title:      "Full-time stylist",
		Status:     models.ContractDraft,
	}
}

func TestSigningOrderIndependence(t *testing.T) {
	now := time.Now()

	employeeFirst := draftContract()
	if err := SignAsEmployee(employeeFirst, "sig-employee", now); err != nil {
		t.Fatal(err)
	}
	if employeeFirst.Status != models.ContractPending {
		t.Fatalf("one signature should be pending, got %s", employeeFirst.Status)
	}
	if err := SignAsEmployer(employeeFirst, "sig-employer", "Jo Owner", now); err != nil {
		t.Fatal(err)
	}
	if employeeFirst.Status != models.ContractSigned {
		t.Fatalf("both signatures should be signed, got %s", employeeFirst.Status)
	}

	employerFirst := draftContract()
	if err := SignAsEmployer(employerFirst, "sig-employer", "Jo Owner", now); err != nil {
		t.Fatal(err)
	}
	if employerFirst.Status != models.ContractPending {
		t.Fatalf("one signature should be pending, got %s", employerFirst.Status)
	}
	if err := SignAsEmployee(employerFirst, "sig-employee", now); err != nil {
		t.Fatal(err)
	}
	if employerFirst.Status != models.ContractSigned {
		t.Fatalf("both signatures should be signed, got %s", employerFirst.Status)
	}
}

func TestDoubleSignRejected(t *testing.T) {
	now := time.Now()
	c := draftContract()
	if err := SignAsEmployee(c, "first", now); err != nil {
		t.Fatal(err)
	}
	err := SignAsEmployee(c, "second", now.Add(time.Hour))
	var ce *apperrors.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConflictError on re-sign, got %v", err)
	}
	if *c.EmployeeSignature != "first" {
		t.Fatal("rejected re-sign must not overwrite the signature")
	}

	if err := SignAsEmployer(c, "emp-first", "Jo", now); err != nil {
		t.Fatal(err)
	}
	if err := SignAsEmployer(c, "emp-second", "Jo", now); !errors.As(err, &ce) {
		t.Fatalf("want ConflictError on employer re-sign, got %v", err)
	}
}

func TestSignTerminalRejectedNoMutation(t *testing.T) {
	now := time.Now()
	for _, status := range []string{models.ContractTerminated, models.ContractExpired} {
		c := draftContract()
		c.Status = status

		var ce *apperrors.ConflictError
		if err := SignAsEmployee(c, "sig", now); !errors.As(err, &ce) {
			t.Fatalf("%s: want ConflictError, got %v", status, err)
		}
		if err := SignAsEmployer(c, "sig", "Jo", now); !errors.As(err, &ce) {
			t.Fatalf("%s: want ConflictError, got %v", status, err)
		}
		if c.EmployeeSignature != nil || c.EmployerSignature != nil || c.Status != status {
			t.Fatalf("%s: contract mutated on rejection: %+v", status, c)
		}
	}
}

func TestSignEmptySignatureRejected(t *testing.T) {
	c := draftContract()
	var ve *apperrors.ValidationError
	if err := SignAsEmployee(c, "  ", time.Now()); !errors.As(err, &ve) {
		t.Fatalf("want ValidationError for blank signature, got %v", err)
	}
	if c.EmployeeSignedAt != nil || c.Status != models.ContractDraft {
		t.Fatal("contract mutated on rejected blank signature")
	}
}

func TestTerminate(t *testing.T) {
	now := time.Now()
	for _, status := range []string{models.ContractDraft, models.ContractPending, models.ContractSigned} {
		c := draftContract()
		c.Status = status
		if err := Terminate(c, "misconduct", true, now); err != nil {
			t.Fatalf("terminate from %s: %v", status, err)
		}
		if c.Status != models.ContractTerminated || c.TerminationReason == nil || c.TerminatedAt == nil {
			t.Fatalf("terminate from %s left %+v", status, c)
		}
	}
}

func TestTerminateRejections(t *testing.T) {
	now := time.Now()

	c := draftContract()
	var ae *apperrors.AuthorizationError
	if err := Terminate(c, "reason", false, now); !errors.As(err, &ae) {
		t.Fatalf("want AuthorizationError without owner flag, got %v", err)
	}

	var ve *apperrors.ValidationError
	if err := Terminate(c, "   ", true, now); !errors.As(err, &ve) {
		t.Fatalf("want ValidationError for empty reason, got %v", err)
	}
	if c.Status != models.ContractDraft || c.TerminationReason != nil {
		t.Fatal("contract mutated on rejected termination")
	}

	c.Status = models.ContractTerminated
	var ce *apperrors.ConflictError
	if err := Terminate(c, "again", true, now); !errors.As(err, &ce) {
		t.Fatalf("want ConflictError terminating a terminated contract, got %v", err)
	}
}

func TestExpireIfDue(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	c := draftContract()
	c.EndDate = &past
	if !ExpireIfDue(c, now) || c.Status != models.ContractExpired {
		t.Fatalf("past end date should expire, got %s", c.Status)
	}

	open := draftContract()
	open.EndDate = &future
	if ExpireIfDue(open, now) {
		t.Fatal("future end date must not expire")
	}

	terminated := draftContract()
	terminated.Status = models.ContractTerminated
	terminated.EndDate = &past
	if ExpireIfDue(terminated, now) {
		t.Fatal("terminated contracts stay terminated")
	}

	noEnd := draftContract()
	if ExpireIfDue(noEnd, now) {
		t.Fatal("contracts without an end date never expire")
	}
}
