package ledger

import (
	"context"
	"strings"
)

// CreateCampaign registers a campaign owned by org and returns its record.
func (c *Contract) CreateCampaign(ctx context.Context, inv Invocation, org, name string, goal, deadline int64) (CampaignRecord, *Receipt, error) {
	return invoke(ctx, c.rt, OpCreateCampaign, inv, func(e *Env) (CampaignRecord, error) {
		if err := e.requireAuth(org); err != nil {
			return CampaignRecord{}, err
		}
		if strings.TrimSpace(name) == "" {
			return CampaignRecord{}, reject(CodeInvalidArgument, "campaign name is required")
		}
		if goal <= 0 {
			return CampaignRecord{}, reject(CodeInvalidGoal, "goal must be positive")
		}
		if deadline <= e.Now() {
			return CampaignRecord{}, reject(CodeInvalidDeadline, "deadline must be in the future")
		}

		id, err := e.nextID(instanceKey(kCampaignCount))
		if err != nil {
			return CampaignRecord{}, err
		}
		rec := CampaignRecord{
			ID:        id,
			Owner:     org,
			Name:      name,
			Goal:      goal,
			Deadline:  deadline,
			Status:    CampaignActive,
			CreatedAt: e.Now(),
		}
		if err := e.storeObject(campaignKey(id), rec); err != nil {
			return CampaignRecord{}, err
		}
		e.emit("cc|id:%d|by:%s|goal:%d", id, org, goal)
		return rec, nil
	})
}

// CloseCampaign stops donations and proposals. Raised is kept.
func (c *Contract) CloseCampaign(ctx context.Context, inv Invocation, campaignID uint64) (CampaignRecord, *Receipt, error) {
	return invoke(ctx, c.rt, OpCloseCampaign, inv, func(e *Env) (CampaignRecord, error) {
		camp, err := e.loadCampaign(campaignID)
		if err != nil {
			return CampaignRecord{}, err
		}
		if err := e.requireAuth(camp.Owner); err != nil {
			return CampaignRecord{}, err
		}
		if camp.Status == CampaignClosed {
			return CampaignRecord{}, reject(CodeAlreadyClosed, "campaign %d already closed", campaignID)
		}
		camp.Status = CampaignClosed
		if err := e.storeObject(campaignKey(campaignID), camp); err != nil {
			return CampaignRecord{}, err
		}
		e.emit("cl|c:%d|by:%s", campaignID, camp.Owner)
		return *camp, nil
	})
}
