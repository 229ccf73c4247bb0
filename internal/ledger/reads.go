package ledger

import "context"

func (c *Contract) GetCampaign(ctx context.Context, id uint64) (CampaignRecord, error) {
	return view(ctx, c.rt, func(e *Env) (CampaignRecord, error) {
		camp, err := e.loadCampaign(id)
		if err != nil {
			return CampaignRecord{}, err
		}
		return *camp, nil
	})
}

// GetDonations returns the campaign's donations in sequence order.
func (c *Contract) GetDonations(ctx context.Context, campaignID uint64) ([]DonationRecord, error) {
	return view(ctx, c.rt, func(e *Env) ([]DonationRecord, error) {
		camp, err := e.loadCampaign(campaignID)
		if err != nil {
			return nil, err
		}
		out := make([]DonationRecord, 0, camp.DonationCount)
		for seq := uint64(1); seq <= camp.DonationCount; seq++ {
			var d DonationRecord
			if _, err := e.loadObject(donationKey(campaignID, seq), &d); err != nil {
				return nil, err
			}
			out = append(out, d)
		}
		return out, nil
	})
}

func (c *Contract) GetDisbursement(ctx context.Context, id uint64) (DisbursementRecord, error) {
	return view(ctx, c.rt, func(e *Env) (DisbursementRecord, error) {
		d, err := e.loadDisbursement(id)
		if err != nil {
			return DisbursementRecord{}, err
		}
		return *d, nil
	})
}

// GetDisbursements returns the campaign's disbursements in proposal order.
func (c *Contract) GetDisbursements(ctx context.Context, campaignID uint64) ([]DisbursementRecord, error) {
	return view(ctx, c.rt, func(e *Env) ([]DisbursementRecord, error) {
		if _, err := e.loadCampaign(campaignID); err != nil {
			return nil, err
		}
		var ids []uint64
		if _, err := e.loadObject(campaignDisbursementsKey(campaignID), &ids); err != nil {
			return nil, err
		}
		out := make([]DisbursementRecord, 0, len(ids))
		for _, id := range ids {
			d, err := e.loadDisbursement(id)
			if err != nil {
				return nil, err
			}
			out = append(out, *d)
		}
		return out, nil
	})
}

func (c *Contract) GetCampaignsCount(ctx context.Context) (uint64, error) {
	return view(ctx, c.rt, func(e *Env) (uint64, error) {
		return e.getCount(instanceKey(kCampaignCount))
	})
}

func (c *Contract) GetTotalDonationsCount(ctx context.Context) (uint64, error) {
	return view(ctx, c.rt, func(e *Env) (uint64, error) {
		return e.getCount(instanceKey(kTotalDonations))
	})
}

// GetAdmin returns the admin principal, or NotInitialized.
func (c *Contract) GetAdmin(ctx context.Context) (string, error) {
	return view(ctx, c.rt, func(e *Env) (string, error) {
		admin, ok, err := e.loadAdmin()
		if err != nil {
			return "", err
		}
		if !ok {
			return "", reject(CodeNotInitialized, "contract not initialized")
		}
		return admin, nil
	})
}

func (c *Contract) GetQuorum(ctx context.Context) (uint32, error) {
	return view(ctx, c.rt, func(e *Env) (uint32, error) {
		return e.loadQuorum()
	})
}

func (c *Contract) IsGoalReached(ctx context.Context, campaignID uint64) (bool, error) {
	camp, err := c.GetCampaign(ctx, campaignID)
	if err != nil {
		return false, err
	}
	return camp.Donated >= camp.Goal, nil
}

// GetRemainingAmount returns goal minus total donated, floored at zero.
// Executed disbursements do not reopen the goal.
func (c *Contract) GetRemainingAmount(ctx context.Context, campaignID uint64) (int64, error) {
	camp, err := c.GetCampaign(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	return max(camp.Goal-camp.Donated, 0), nil
}
