package chain

import (
	"context"
	"time"

	"github.com/aidflow/fundflow-backend/internal/ledger"
)

// Tx identifies a submission: the signing principals and the hash to submit under.
type Tx struct {
	Signers []string
	Hash    string
}

func (t Tx) invocation() ledger.Invocation {
	return ledger.Invocation{Signers: t.Signers, TxHash: t.Hash}
}

func (c *Client) Initialize(ctx context.Context, tx Tx, admin string) (ledger.QuorumResult, *ledger.Receipt, error) {
	return call(ctx, c, ledger.OpInitialize, func(ctx context.Context) (ledger.QuorumResult, *ledger.Receipt, error) {
		return c.contract.Initialize(ctx, tx.invocation(), admin)
	})
}

func (c *Client) SetQuorum(ctx context.Context, tx Tx, caller string, n uint32) (ledger.QuorumResult, *ledger.Receipt, error) {
	return call(ctx, c, ledger.OpSetQuorum, func(ctx context.Context) (ledger.QuorumResult, *ledger.Receipt, error) {
		return c.contract.SetQuorum(ctx, tx.invocation(), caller, n)
	})
}

func (c *Client) CreateCampaign(ctx context.Context, tx Tx, org, name string, goal int64, deadline time.Time) (ledger.CampaignRecord, *ledger.Receipt, error) {
	return call(ctx, c, ledger.OpCreateCampaign, func(ctx context.Context) (ledger.CampaignRecord, *ledger.Receipt, error) {
		return c.contract.CreateCampaign(ctx, tx.invocation(), org, name, goal, deadline.Unix())
	})
}

func (c *Client) Donate(ctx context.Context, tx Tx, campaignID uint64, donor string, amount int64) (ledger.DonateResult, *ledger.Receipt, error) {
	return call(ctx, c, ledger.OpDonate, func(ctx context.Context) (ledger.DonateResult, *ledger.Receipt, error) {
		return c.contract.Donate(ctx, tx.invocation(), campaignID, donor, amount)
	})
}

func (c *Client) ProposeDisbursement(ctx context.Context, tx Tx, campaignID uint64, recipient string, amount int64, proposer string) (ledger.DisbursementRecord, *ledger.Receipt, error) {
	return call(ctx, c, ledger.OpProposeDisbursement, func(ctx context.Context) (ledger.DisbursementRecord, *ledger.Receipt, error) {
		return c.contract.ProposeDisbursement(ctx, tx.invocation(), campaignID, recipient, amount, proposer)
	})
}

func (c *Client) ApproveDisbursement(ctx context.Context, tx Tx, disbursementID uint64, approver string) (ledger.ApproveResult, *ledger.Receipt, error) {
	return call(ctx, c, ledger.OpApproveDisbursement, func(ctx context.Context) (ledger.ApproveResult, *ledger.Receipt, error) {
		return c.contract.ApproveDisbursement(ctx, tx.invocation(), disbursementID, approver)
	})
}

func (c *Client) ExecuteDisbursement(ctx context.Context, tx Tx, disbursementID uint64) (ledger.ExecuteResult, *ledger.Receipt, error) {
	return call(ctx, c, ledger.OpExecuteDisbursement, func(ctx context.Context) (ledger.ExecuteResult, *ledger.Receipt, error) {
		return c.contract.ExecuteDisbursement(ctx, tx.invocation(), disbursementID)
	})
}

func (c *Client) RejectDisbursement(ctx context.Context, tx Tx, disbursementID uint64, caller string) (ledger.DisbursementRecord, *ledger.Receipt, error) {
	return call(ctx, c, ledger.OpRejectDisbursement, func(ctx context.Context) (ledger.DisbursementRecord, *ledger.Receipt, error) {
		return c.contract.RejectDisbursement(ctx, tx.invocation(), disbursementID, caller)
	})
}

func (c *Client) CloseCampaign(ctx context.Context, tx Tx, campaignID uint64) (ledger.CampaignRecord, *ledger.Receipt, error) {
	return call(ctx, c, ledger.OpCloseCampaign, func(ctx context.Context) (ledger.CampaignRecord, *ledger.Receipt, error) {
		return c.contract.CloseCampaign(ctx, tx.invocation(), campaignID)
	})
}

// LookupTx returns the receipt of a submitted transaction, if it landed.
func (c *Client) LookupTx(ctx context.Context, txHash string) (*ledger.Receipt, bool, error) {
	type found struct {
		rcpt *ledger.Receipt
		ok   bool
	}
	res, err := read(ctx, c, "lookup_tx", func(ctx context.Context) (found, error) {
		rcpt, ok, err := c.contract.Runtime().Receipt(ctx, txHash)
		return found{rcpt: rcpt, ok: ok}, err
	})
	if err != nil {
		return nil, false, err
	}
	return res.rcpt, res.ok, nil
}

func (c *Client) GetCampaign(ctx context.Context, id uint64) (ledger.CampaignRecord, error) {
	return read(ctx, c, "get_campaign", func(ctx context.Context) (ledger.CampaignRecord, error) {
		return c.contract.GetCampaign(ctx, id)
	})
}

func (c *Client) GetDonations(ctx context.Context, campaignID uint64) ([]ledger.DonationRecord, error) {
	return read(ctx, c, "get_donations", func(ctx context.Context) ([]ledger.DonationRecord, error) {
		return c.contract.GetDonations(ctx, campaignID)
	})
}

func (c *Client) GetDisbursement(ctx context.Context, id uint64) (ledger.DisbursementRecord, error) {
	return read(ctx, c, "get_disbursement", func(ctx context.Context) (ledger.DisbursementRecord, error) {
		return c.contract.GetDisbursement(ctx, id)
	})
}

func (c *Client) GetDisbursements(ctx context.Context, campaignID uint64) ([]ledger.DisbursementRecord, error) {
	return read(ctx, c, "get_disbursements", func(ctx context.Context) ([]ledger.DisbursementRecord, error) {
		return c.contract.GetDisbursements(ctx, campaignID)
	})
}

func (c *Client) GetQuorum(ctx context.Context) (uint32, error) {
	return read(ctx, c, "get_quorum", c.contract.GetQuorum)
}

func (c *Client) GetAdmin(ctx context.Context) (string, error) {
	return read(ctx, c, "get_admin", c.contract.GetAdmin)
}

func (c *Client) GetRemainingAmount(ctx context.Context, campaignID uint64) (int64, error) {
	return read(ctx, c, "get_remaining_amount", func(ctx context.Context) (int64, error) {
		return c.contract.GetRemainingAmount(ctx, campaignID)
	})
}
