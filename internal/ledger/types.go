package ledger

import "encoding/json"

// CampaignStatus is the on-ledger campaign state.
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignClosed    CampaignStatus = "closed"
)

// DisbursementStatus is the on-ledger disbursement state.
type DisbursementStatus string

const (
	DisbursementPending  DisbursementStatus = "pending"
	DisbursementExecuted DisbursementStatus = "executed"
	DisbursementRejected DisbursementStatus = "rejected"
)

// CampaignRecord is the authoritative campaign state.
// Raised is the net balance; Donated and Disbursed are running totals.
type CampaignRecord struct {
	ID            uint64         `json:"id"`
	Owner         string         `json:"owner"`
	Name          string         `json:"name"`
	Goal          int64          `json:"goal"`
	Raised        int64          `json:"raised"`
	Donated       int64          `json:"donated"`
	Disbursed     int64          `json:"disbursed"`
	Deadline      int64          `json:"deadline"`
	Status        CampaignStatus `json:"status"`
	DonationCount uint64         `json:"donation_count"`
	CreatedAt     int64          `json:"created_at"`
}

// Version grows with every donation and executed disbursement, so a larger
// version is a later snapshot of the campaign.
func (c CampaignRecord) Version() int64 { return c.Donated + c.Disbursed }

// DonationRecord is one entry of a campaign's donation sequence.
type DonationRecord struct {
	CampaignID uint64 `json:"campaign_id"`
	Seq        uint64 `json:"seq"`
	Donor      string `json:"donor"`
	Amount     int64  `json:"amount"`
	Timestamp  int64  `json:"timestamp"`
	TxHash     string `json:"tx_hash"`
}

// DisbursementRecord is the authoritative disbursement state.
type DisbursementRecord struct {
	ID         uint64             `json:"id"`
	CampaignID uint64             `json:"campaign_id"`
	Recipient  string             `json:"recipient"`
	Amount     int64              `json:"amount"`
	Proposer   string             `json:"proposer"`
	Approvers  []string           `json:"approvers"`
	Status     DisbursementStatus `json:"status"`
	CreatedAt  int64              `json:"created_at"`
	ExecutedAt int64              `json:"executed_at,omitempty"`
	ExecTxHash string             `json:"exec_tx_hash,omitempty"`
}

func (d *DisbursementRecord) hasApprover(p string) bool {
	for _, a := range d.Approvers {
		if a == p {
			return true
		}
	}
	return false
}

// DonateResult carries the donation and the campaign post-condition.
type DonateResult struct {
	Donation DonationRecord `json:"donation"`
	Campaign CampaignRecord `json:"campaign"`
}

// ApproveResult reports whether the approver was newly added.
type ApproveResult struct {
	Added        bool               `json:"added"`
	Disbursement DisbursementRecord `json:"disbursement"`
}

// ExecuteResult carries the executed disbursement and the campaign post-condition.
type ExecuteResult struct {
	Disbursement DisbursementRecord `json:"disbursement"`
	Campaign     CampaignRecord     `json:"campaign"`
}

// QuorumResult is returned by initialize and set_quorum.
type QuorumResult struct {
	Admin  string `json:"admin"`
	Quorum uint32 `json:"quorum"`
}

// Op names recorded in receipts.
const (
	OpInitialize          = "initialize"
	OpSetQuorum           = "set_quorum"
	OpCreateCampaign      = "create_campaign"
	OpDonate              = "donate"
	OpProposeDisbursement = "propose_disbursement"
	OpApproveDisbursement = "approve_disbursement"
	OpExecuteDisbursement = "execute_disbursement"
	OpRejectDisbursement  = "reject_disbursement"
	OpCloseCampaign       = "close_campaign"
)

// Receipt is stored for every successful invocation under its tx hash.
type Receipt struct {
	TxHash     string          `json:"tx_hash"`
	Op         string          `json:"op"`
	Signers    []string        `json:"signers"`
	LedgerTime int64           `json:"ledger_time"`
	Events     []string        `json:"events"`
	Result     json.RawMessage `json:"result,omitempty"`
}

// DecodeResult unmarshals the invocation result into v.
func (r *Receipt) DecodeResult(v any) error {
	return json.Unmarshal(r.Result, v)
}
