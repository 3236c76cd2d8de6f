// Package contracts holds the contract status state machine:
// draft -> pending -> signed, with expired and terminated terminal.
// Transitions are pure; a rejected transition leaves the contract untouched.
package contracts

import (
	"strings"
	"time"

	"backoffice-backend/apperrors"
	"backoffice-backend/models"
)

// resolveStatus derives the status from the signatures present. Signed is
// reached only once both parties have signed, regardless of order.
func resolveStatus(c *models.Contract) string {
	if c.EmployeeSignedAt != nil && c.EmployerSignedAt != nil {
		return models.ContractSigned
	}
	return models.ContractPending
}

// SignAsEmployee records the employee's signature. Legal only while the
// contract is non-terminal and the employee has not signed yet.
func SignAsEmployee(c *models.Contract, signature string, now time.Time) error {
	if strings.TrimSpace(signature) == "" {
		return apperrors.Validation("signature is required")
	}
	if c.IsTerminal() {
		return apperrors.Conflict("contract is %s and can no longer be signed", c.Status)
	}
	if c.EmployeeSignedAt != nil {
		return apperrors.Conflict("employee has already signed this contract")
	}
	c.EmployeeSignature = &signature
	c.EmployeeSignedAt = &now
	c.Status = resolveStatus(c)
	return nil
}

// SignAsEmployer records the employer's signature and name. Symmetric to
// SignAsEmployee; signing order is unconstrained.
func SignAsEmployer(c *models.Contract, signature, employerName string, now time.Time) error {
	if strings.TrimSpace(signature) == "" {
		return apperrors.Validation("signature is required")
	}
	if c.IsTerminal() {
		return apperrors.Conflict("contract is %s and can no longer be signed", c.Status)
	}
	if c.EmployerSignedAt != nil {
		return apperrors.Conflict("employer has already signed this contract")
	}
	c.EmployerSignature = &signature
	c.EmployerSignedAt = &now
	c.EmployerName = &employerName
	c.Status = resolveStatus(c)
	return nil
}

// Terminate moves the contract into the terminated terminal state.
// Authorization (business owner/admin) is the caller's precondition; pass the
// authorized flag from the authenticated identity, never derive it here.
func Terminate(c *models.Contract, reason string, authorized bool, now time.Time) error {
	if !authorized {
		return apperrors.Authorization("only the business owner can terminate a contract")
	}
	if strings.TrimSpace(reason) == "" {
		return apperrors.Validation("termination reason is required")
	}
	if c.IsTerminal() {
		return apperrors.Conflict("contract is already %s", c.Status)
	}
	c.Status = models.ContractTerminated
	c.TerminationReason = &reason
	c.TerminatedAt = &now
	return nil
}

// ExpireIfDue marks a contract expired once its end date has passed.
// Terminated contracts stay terminated. Returns true if the status changed.
func ExpireIfDue(c *models.Contract, now time.Time) bool {
	if c.IsTerminal() || c.EndDate == nil {
		return false
	}
	if now.Before(*c.EndDate) {
		return false
	}
	c.Status = models.ContractExpired
	return true
}
