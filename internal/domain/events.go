package domain

// Routing keys of the lifecycle events published after a mutation commits.
const (
	EventOrganizationCreated  = "organization.created"
	EventCampaignCreated      = "campaign.created"
	EventCampaignUpdated      = "campaign.updated"
	EventCampaignClosed       = "campaign.closed"
	EventDonationConfirmed    = "donation.confirmed"
	EventDisbursementProposed = "disbursement.proposed"
	EventDisbursementApproved = "disbursement.approved"
	EventDisbursementExecuted = "disbursement.executed"
	EventDisbursementRejected = "disbursement.rejected"
	EventQuorumChanged        = "governance.quorum_changed"
	EventMirrorReconciled     = "mirror.reconciled"
)
