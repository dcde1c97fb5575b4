// Package models defines the roles, request payloads and pass-through record
// shapes for the tender gateway. Tender and audit records are owned by the
// chaincode; this layer documents their shape but never validates or mutates
// ledger-returned data.
package models

import (
	"encoding/json"
	"errors"
	"strings"
)

// Role selects which organization identity a request runs under.
type Role string

const (
	RoleAuthority Role = "authority"
	RoleAuditor   Role = "auditor"
)

// ParseRole normalizes a caller-supplied mode value. Only "auditor" (case
// insensitive) selects the auditor role; anything else, including the empty
// string, resolves to the procuring authority.
func ParseRole(mode string) Role {
	if strings.EqualFold(mode, string(RoleAuditor)) {
		return RoleAuditor
	}
	return RoleAuthority
}

// Tender statuses as assigned by the chaincode.
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusAwarded   = "AWARDED"
	StatusCancelled = "CANCELLED"
)

// Tender mirrors the chaincode's tender record for clients of this gateway.
type Tender struct {
	TenderID       string  `json:"tenderId"`
	Title          string  `json:"title"`
	Department     string  `json:"department"`
	EstimatedValue float64 `json:"estimatedValue"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
	CreatedByOrg   string  `json:"createdByOrg"`
	UpdatedAt      string  `json:"updatedAt"`
	AwardedToOrg   string  `json:"awardedToOrg,omitempty"`
	Remarks        string  `json:"remarks,omitempty"`
	CancelReason   string  `json:"cancelReason,omitempty"`
}

// AuditActor identifies who performed an audited action.
type AuditActor struct {
	MSPID    string `json:"mspId"`
	ClientID string `json:"clientId"`
}

// AuditEntry mirrors one entry of the chaincode's audit trail.
type AuditEntry struct {
	Action    string         `json:"action"`
	Timestamp string         `json:"timestamp"`
	TxID      string         `json:"txId"`
	Actor     AuditActor     `json:"actor"`
	Details   map[string]any `json:"details,omitempty"`
}

// CreateTenderRequest is the body of POST /api/tenders. EstimatedValue is a
// json.Number so the original literal survives the string coercion into the
// chaincode argument list.
type CreateTenderRequest struct {
	TenderID       string       `json:"tenderId"`
	Title          string       `json:"title"`
	Department     string       `json:"department"`
	EstimatedValue *json.Number `json:"estimatedValue"`
}

func (r CreateTenderRequest) Validate() error {
	if r.TenderID == "" || r.Title == "" || r.Department == "" || r.EstimatedValue == nil {
		return errors.New("missing fields: tenderId, title, department, estimatedValue")
	}
	return nil
}

// Args returns the request fields as chaincode arguments. The transaction
// layer accepts only strings.
func (r CreateTenderRequest) Args() []string {
	return []string{r.TenderID, r.Title, r.Department, r.EstimatedValue.String()}
}

// AwardTenderRequest is the body of POST /api/tenders/{id}/award.
type AwardTenderRequest struct {
	AwardedToOrg string `json:"awardedToOrg"`
	Remarks      string `json:"remarks"`
}

func (r AwardTenderRequest) Validate() error {
	if r.AwardedToOrg == "" {
		return errors.New("awardedToOrg is required")
	}
	return nil
}

// CancelTenderRequest is the body of POST /api/tenders/{id}/cancel.
type CancelTenderRequest struct {
	Reason string `json:"reason"`
}

func (r CancelTenderRequest) Validate() error {
	if r.Reason == "" {
		return errors.New("reason is required")
	}
	return nil
}
