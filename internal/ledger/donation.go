package ledger

import "context"

// Donate appends a donation and increments raised. The campaign moves to
// completed on the first donation that brings raised to the goal.
func (c *Contract) Donate(ctx context.Context, inv Invocation, campaignID uint64, donor string, amount int64) (DonateResult, *Receipt, error) {
	return invoke(ctx, c.rt, OpDonate, inv, func(e *Env) (DonateResult, error) {
		if err := e.requireAuth(donor); err != nil {
			return DonateResult{}, err
		}
		if amount <= 0 {
			return DonateResult{}, reject(CodeNonPositiveAmount, "amount must be positive")
		}
		camp, err := e.loadCampaign(campaignID)
		if err != nil {
			return DonateResult{}, err
		}
		if camp.Status != CampaignActive {
			return DonateResult{}, reject(CodeNotActive, "campaign %d is not active", campaignID)
		}
		if e.Now() > camp.Deadline {
			return DonateResult{}, reject(CodeDeadlinePassed, "campaign %d deadline has passed", campaignID)
		}

		camp.Raised = addAmount(camp.Raised, amount)
		camp.Donated = addAmount(camp.Donated, amount)
		camp.DonationCount++
		if camp.DonationCount == 0 {
			panic(overflowPanic{what: "donation count"})
		}
		if _, err := e.nextID(instanceKey(kTotalDonations)); err != nil {
			return DonateResult{}, err
		}

		don := DonationRecord{
			CampaignID: campaignID,
			Seq:        camp.DonationCount,
			Donor:      donor,
			Amount:     amount,
			Timestamp:  e.Now(),
			TxHash:     e.txHash,
		}
		if err := e.storeObject(donationKey(campaignID, don.Seq), don); err != nil {
			return DonateResult{}, err
		}

		e.emit("dn|c:%d|by:%s|amt:%d", campaignID, donor, amount)
		if camp.Raised >= camp.Goal {
			camp.Status = CampaignCompleted
			e.emit("gr|c:%d|raised:%d", campaignID, camp.Raised)
		}
		if err := e.storeObject(campaignKey(campaignID), camp); err != nil {
			return DonateResult{}, err
		}
		return DonateResult{Donation: don, Campaign: *camp}, nil
	})
}
