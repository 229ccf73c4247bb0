package domain

// CampaignStatus is the lifecycle state of a campaign.
// Active, Completed and Closed mirror the ledger; PendingChain and Failed
// are mirror-only bookkeeping for the write protocol.
type CampaignStatus string

const (
	CampaignStatusPendingChain CampaignStatus = "pending_chain"
	CampaignStatusActive       CampaignStatus = "active"
	CampaignStatusCompleted    CampaignStatus = "completed"
	CampaignStatusClosed       CampaignStatus = "closed"
	CampaignStatusFailed       CampaignStatus = "failed"
)

func (s CampaignStatus) String() string { return string(s) }

func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusPendingChain, CampaignStatusActive, CampaignStatusCompleted,
		CampaignStatusClosed, CampaignStatusFailed:
		return true
	}
	return false
}

// AcceptsDonations reports whether donations may be recorded in this state.
func (s CampaignStatus) AcceptsDonations() bool { return s == CampaignStatusActive }

// AcceptsProposals reports whether disbursements may be proposed in this state.
func (s CampaignStatus) AcceptsProposals() bool {
	return s == CampaignStatusActive || s == CampaignStatusCompleted
}

// ledgerRank orders the ledger lifecycle. Mirror-only states rank lowest.
func (s CampaignStatus) ledgerRank() int {
	switch s {
	case CampaignStatusActive:
		return 1
	case CampaignStatusCompleted:
		return 2
	case CampaignStatusClosed:
		return 3
	}
	return 0
}

// DonationStatus is the mirror state of a donation row.
type DonationStatus string

const (
	DonationStatusPendingChain DonationStatus = "pending_chain"
	DonationStatusConfirmed    DonationStatus = "confirmed"
	DonationStatusFailed       DonationStatus = "failed"
)

func (s DonationStatus) String() string { return string(s) }

func (s DonationStatus) IsValid() bool {
	switch s {
	case DonationStatusPendingChain, DonationStatusConfirmed, DonationStatusFailed:
		return true
	}
	return false
}

// DisbursementStatus is the mirror state of a disbursement.
// Approved is derived: pending with at least quorum distinct approvers.
type DisbursementStatus string

const (
	DisbursementStatusPendingChain DisbursementStatus = "pending_chain"
	DisbursementStatusPending      DisbursementStatus = "pending"
	DisbursementStatusApproved     DisbursementStatus = "approved"
	DisbursementStatusExecuted     DisbursementStatus = "executed"
	DisbursementStatusRejected     DisbursementStatus = "rejected"
	DisbursementStatusFailed       DisbursementStatus = "failed"
)

func (s DisbursementStatus) String() string { return string(s) }

func (s DisbursementStatus) IsValid() bool {
	switch s {
	case DisbursementStatusPendingChain, DisbursementStatusPending, DisbursementStatusApproved,
		DisbursementStatusExecuted, DisbursementStatusRejected, DisbursementStatusFailed:
		return true
	}
	return false
}

// IsOpen reports whether the disbursement is still pending on the ledger.
func (s DisbursementStatus) IsOpen() bool {
	return s == DisbursementStatusPending || s == DisbursementStatusApproved
}

// DeriveDisbursementStatus returns approved when an open disbursement has
// reached quorum, pending otherwise. Terminal states pass through.
func DeriveDisbursementStatus(current DisbursementStatus, approvers, quorum int) DisbursementStatus {
	if !current.IsOpen() {
		return current
	}
	if quorum < 1 {
		quorum = 1
	}
	if approvers >= quorum {
		return DisbursementStatusApproved
	}
	return DisbursementStatusPending
}

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeOrganization EntityType = "organization"
	EntityTypeCampaign     EntityType = "campaign"
	EntityTypeDonation     EntityType = "donation"
	EntityTypeDisbursement EntityType = "disbursement"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeOrganization, EntityTypeCampaign, EntityTypeDonation, EntityTypeDisbursement:
		return true
	}
	return false
}

// AuditAction is the verb recorded in the audit log.
type AuditAction string

const (
	AuditActionCreated    AuditAction = "created"
	AuditActionUpdated    AuditAction = "updated"
	AuditActionApproved   AuditAction = "approved"
	AuditActionExecuted   AuditAction = "executed"
	AuditActionRejected   AuditAction = "rejected"
	AuditActionClosed     AuditAction = "closed"
	AuditActionFailed     AuditAction = "failed"
	AuditActionReconciled AuditAction = "reconciled"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreated, AuditActionUpdated, AuditActionApproved, AuditActionExecuted,
		AuditActionRejected, AuditActionClosed, AuditActionFailed, AuditActionReconciled:
		return true
	}
	return false
}

// SystemActor is the actor principal used for entries written by background jobs.
const SystemActor = "system:reconciler"
