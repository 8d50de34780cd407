package services

import "event-reward-system/models"

// Three-way diff for the condition and reward sets on event update: submitted
// entries without an id are inserts, entries whose id matches a stored row
// are updates only when a field actually changed, and stored rows absent from
// the submission are deletes. A submitted id that matches nothing is treated
// as an insert rather than silently dropped.

type rewardDiff struct {
	inserts []RewardInput
	updates []models.Reward
	deletes []string
}

func diffRewards(before []models.Reward, submitted []RewardInput) rewardDiff {
	var d rewardDiff

	existing := make(map[string]models.Reward, len(before))
	for _, r := range before {
		existing[r.ID] = r
	}

	seen := make(map[string]bool, len(submitted))
	for _, in := range submitted {
		cur, ok := existing[in.ID]
		if in.ID == "" || !ok {
			d.inserts = append(d.inserts, in)
			continue
		}
		seen[in.ID] = true
		if cur.ItemID != in.ItemID || cur.Amount != in.Amount {
			cur.ItemID = in.ItemID
			cur.Amount = in.Amount
			d.updates = append(d.updates, cur)
		}
	}

	for _, r := range before {
		if !seen[r.ID] {
			d.deletes = append(d.deletes, r.ID)
		}
	}
	return d
}

type conditionDiff struct {
	inserts []ConditionInput
	updates []models.Condition
	deletes []string
}

func diffConditions(before []models.Condition, submitted []ConditionInput) conditionDiff {
	var d conditionDiff

	existing := make(map[string]models.Condition, len(before))
	for _, c := range before {
		existing[c.ID] = c
	}

	seen := make(map[string]bool, len(submitted))
	for _, in := range submitted {
		cur, ok := existing[in.ID]
		if in.ID == "" || !ok {
			d.inserts = append(d.inserts, in)
			continue
		}
		seen[in.ID] = true
		if cur.Type != in.Type || !strPtrEqual(cur.TargetID, in.TargetID) || !intPtrEqual(cur.Quantity, in.Quantity) {
			cur.Type = in.Type
			cur.TargetID = in.TargetID
			cur.Quantity = in.Quantity
			d.updates = append(d.updates, cur)
		}
	}

	for _, c := range before {
		if !seen[c.ID] {
			d.deletes = append(d.deletes, c.ID)
		}
	}
	return d
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
