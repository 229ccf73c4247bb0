package ledger

import (
	"context"
	"strings"
)

// ProposeDisbursement opens a pending disbursement with an empty approver set.
func (c *Contract) ProposeDisbursement(ctx context.Context, inv Invocation, campaignID uint64, recipient string, amount int64, proposer string) (DisbursementRecord, *Receipt, error) {
	return invoke(ctx, c.rt, OpProposeDisbursement, inv, func(e *Env) (DisbursementRecord, error) {
		if err := e.requireAuth(proposer); err != nil {
			return DisbursementRecord{}, err
		}
		camp, err := e.loadCampaign(campaignID)
		if err != nil {
			return DisbursementRecord{}, err
		}
		if proposer != camp.Owner {
			return DisbursementRecord{}, reject(CodeUnauthorized, "only the campaign owner may propose disbursements")
		}
		if camp.Status == CampaignClosed {
			return DisbursementRecord{}, reject(CodeCampaignClosed, "campaign %d is closed", campaignID)
		}
		if amount <= 0 {
			return DisbursementRecord{}, reject(CodeNonPositiveAmount, "amount must be positive")
		}
		if strings.TrimSpace(recipient) == "" {
			return DisbursementRecord{}, reject(CodeInvalidArgument, "recipient is required")
		}
		if amount > camp.Raised {
			return DisbursementRecord{}, reject(CodeInsufficientAvailable,
				"amount %d exceeds available %d", amount, camp.Raised)
		}

		id, err := e.nextID(instanceKey(kDisbursementCount))
		if err != nil {
			return DisbursementRecord{}, err
		}
		rec := DisbursementRecord{
			ID:         id,
			CampaignID: campaignID,
			Recipient:  recipient,
			Amount:     amount,
			Proposer:   proposer,
			Approvers:  []string{},
			Status:     DisbursementPending,
			CreatedAt:  e.Now(),
		}
		if err := e.storeObject(disbursementKey(id), rec); err != nil {
			return DisbursementRecord{}, err
		}

		var ids []uint64
		if _, err := e.loadObject(campaignDisbursementsKey(campaignID), &ids); err != nil {
			return DisbursementRecord{}, err
		}
		if err := e.storeObject(campaignDisbursementsKey(campaignID), append(ids, id)); err != nil {
			return DisbursementRecord{}, err
		}

		e.emit("pd|id:%d|c:%d|to:%s|amt:%d", id, campaignID, recipient, amount)
		return rec, nil
	})
}

// ApproveDisbursement adds approver to the set. A repeated approval succeeds
// with Added=false and changes nothing.
func (c *Contract) ApproveDisbursement(ctx context.Context, inv Invocation, disbursementID uint64, approver string) (ApproveResult, *Receipt, error) {
	return invoke(ctx, c.rt, OpApproveDisbursement, inv, func(e *Env) (ApproveResult, error) {
		if err := e.requireAuth(approver); err != nil {
			return ApproveResult{}, err
		}
		d, err := e.loadDisbursement(disbursementID)
		if err != nil {
			return ApproveResult{}, err
		}
		if d.Status != DisbursementPending {
			return ApproveResult{}, reject(CodeNotPending, "disbursement %d is %s", disbursementID, d.Status)
		}
		if d.hasApprover(approver) {
			return ApproveResult{Added: false, Disbursement: *d}, nil
		}
		d.Approvers = append(d.Approvers, approver)
		if err := e.storeObject(disbursementKey(disbursementID), d); err != nil {
			return ApproveResult{}, err
		}
		e.emit("ap|id:%d|by:%s|n:%d", disbursementID, approver, len(d.Approvers))
		return ApproveResult{Added: true, Disbursement: *d}, nil
	})
}

// ExecuteDisbursement releases the funds once quorum is met. The invocation's
// tx hash is recorded as the execution hash.
func (c *Contract) ExecuteDisbursement(ctx context.Context, inv Invocation, disbursementID uint64) (ExecuteResult, *Receipt, error) {
	return invoke(ctx, c.rt, OpExecuteDisbursement, inv, func(e *Env) (ExecuteResult, error) {
		d, err := e.loadDisbursement(disbursementID)
		if err != nil {
			return ExecuteResult{}, err
		}
		camp, err := e.loadCampaign(d.CampaignID)
		if err != nil {
			return ExecuteResult{}, err
		}
		if err := e.requireAuth(camp.Owner); err != nil {
			return ExecuteResult{}, err
		}
		switch d.Status {
		case DisbursementExecuted:
			return ExecuteResult{}, reject(CodeAlreadyExecuted, "disbursement %d already executed", disbursementID)
		case DisbursementRejected:
			return ExecuteResult{}, reject(CodeNotPending, "disbursement %d is rejected", disbursementID)
		}
		quorum, err := e.loadQuorum()
		if err != nil {
			return ExecuteResult{}, err
		}
		if len(d.Approvers) < int(quorum) {
			return ExecuteResult{}, reject(CodeQuorumNotMet,
				"disbursement %d has %d of %d required approvals", disbursementID, len(d.Approvers), quorum)
		}
		if d.Amount > camp.Raised {
			return ExecuteResult{}, reject(CodeInsufficientAvailable,
				"amount %d exceeds available %d", d.Amount, camp.Raised)
		}

		camp.Raised = addAmount(camp.Raised, -d.Amount)
		camp.Disbursed = addAmount(camp.Disbursed, d.Amount)
		d.Status = DisbursementExecuted
		d.ExecutedAt = e.Now()
		d.ExecTxHash = e.txHash

		if err := e.storeObject(campaignKey(camp.ID), camp); err != nil {
			return ExecuteResult{}, err
		}
		if err := e.storeObject(disbursementKey(disbursementID), d); err != nil {
			return ExecuteResult{}, err
		}
		e.emit("ex|id:%d|c:%d|to:%s|amt:%d", disbursementID, camp.ID, d.Recipient, d.Amount)
		return ExecuteResult{Disbursement: *d, Campaign: *camp}, nil
	})
}

// RejectDisbursement terminally rejects a pending disbursement. The caller
// must be the admin or the campaign owner.
func (c *Contract) RejectDisbursement(ctx context.Context, inv Invocation, disbursementID uint64, caller string) (DisbursementRecord, *Receipt, error) {
	return invoke(ctx, c.rt, OpRejectDisbursement, inv, func(e *Env) (DisbursementRecord, error) {
		if err := e.requireAuth(caller); err != nil {
			return DisbursementRecord{}, err
		}
		d, err := e.loadDisbursement(disbursementID)
		if err != nil {
			return DisbursementRecord{}, err
		}
		camp, err := e.loadCampaign(d.CampaignID)
		if err != nil {
			return DisbursementRecord{}, err
		}
		admin, _, err := e.loadAdmin()
		if err != nil {
			return DisbursementRecord{}, err
		}
		if caller != camp.Owner && (admin == "" || caller != admin) {
			return DisbursementRecord{}, reject(CodeUnauthorized, "only the admin or campaign owner may reject")
		}
		switch d.Status {
		case DisbursementExecuted:
			return DisbursementRecord{}, reject(CodeAlreadyExecuted, "disbursement %d already executed", disbursementID)
		case DisbursementRejected:
			return DisbursementRecord{}, reject(CodeNotPending, "disbursement %d is rejected", disbursementID)
		}
		d.Status = DisbursementRejected
		if err := e.storeObject(disbursementKey(disbursementID), d); err != nil {
			return DisbursementRecord{}, err
		}
		e.emit("rj|id:%d|by:%s", disbursementID, caller)
		return *d, nil
	})
}
