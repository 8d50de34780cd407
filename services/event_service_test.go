package services

import (
	"testing"
	"time"

	"event-reward-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicPayload(itemID string) *EventPayload {
	start, end := openEventWindow()
	return &EventPayload{
		Event: EventInput{
			Title:     "Launch Week",
			StartDate: start,
			EndDate:   end,
			Status:    true,
		},
		Conditions: []ConditionInput{
			{Type: models.ConditionAttend, Quantity: intPtr(3)},
			{Type: models.ConditionItem, TargetID: strPtr(itemID), Quantity: intPtr(2)},
		},
		Rewards: []RewardInput{
			{ItemID: itemID, Amount: 5},
		},
	}
}

func TestCreateEvent_PersistsAggregate(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "red potion")

	id := env.createEvent(t, basicPayload(item.ID))

	var event models.Event
	require.NoError(t, env.db.First(&event, "id = ?", id).Error)
	assert.Equal(t, "Launch Week", event.Title)
	assert.Equal(t, "launch-week", event.Slug)

	var conditions int64
	require.NoError(t, env.db.Model(&models.Condition{}).Where("event_id = ?", id).Count(&conditions).Error)
	assert.EqualValues(t, 2, conditions)

	var rewards int64
	require.NoError(t, env.db.Model(&models.Reward{}).Where("event_id = ?", id).Count(&rewards).Error)
	assert.EqualValues(t, 1, rewards)
}

func TestCreateEvent_ValidationAbortsBeforeWrites(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "red potion")

	// Window inverted.
	p := basicPayload(item.ID)
	p.Event.StartDate, p.Event.EndDate = p.Event.EndDate, p.Event.StartDate
	_, err := env.events.Create(p)
	requireStatus(t, err, fiber.StatusBadRequest)

	// Item condition target does not exist.
	p = basicPayload(item.ID)
	p.Conditions[1].TargetID = strPtr("22222222-2222-2222-2222-222222222222")
	_, err = env.events.Create(p)
	requireStatus(t, err, fiber.StatusNotFound)

	// Reward amount must be positive.
	p = basicPayload(item.ID)
	p.Rewards[0].Amount = 0
	_, err = env.events.Create(p)
	requireStatus(t, err, fiber.StatusBadRequest)

	// Group reference must resolve.
	p = basicPayload(item.ID)
	p.Event.GroupID = strPtr("22222222-2222-2222-2222-222222222222")
	_, err = env.events.Create(p)
	requireStatus(t, err, fiber.StatusNotFound)

	// Nothing was written by any failed attempt.
	var events int64
	require.NoError(t, env.db.Model(&models.Event{}).Count(&events).Error)
	assert.EqualValues(t, 0, events)
}

func TestGetEvent_VisibilityRules(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "red potion")

	missing := "22222222-2222-2222-2222-222222222222"
	_, err := env.events.Get(missing, models.RoleAdmin)
	requireStatus(t, err, fiber.StatusNotFound)

	// Inactive event: hidden from users as a 404, visible to admins.
	p := basicPayload(item.ID)
	p.Event.Status = false
	inactive := env.createEvent(t, p)

	_, err = env.events.Get(inactive, models.RoleUser)
	requireStatus(t, err, fiber.StatusNotFound)
	_, err = env.events.Get(inactive, models.RoleAdmin)
	require.NoError(t, err)

	// Out-of-window event: same treatment, even for operators.
	p = basicPayload(item.ID)
	p.Event.StartDate = time.Now().Add(24 * time.Hour)
	p.Event.EndDate = time.Now().Add(48 * time.Hour)
	upcoming := env.createEvent(t, p)

	_, err = env.events.Get(upcoming, models.RoleUser)
	requireStatus(t, err, fiber.StatusNotFound)
	_, err = env.events.Get(upcoming, models.RoleOperator)
	requireStatus(t, err, fiber.StatusNotFound)
}

func TestGetEvent_ResolvesReferences(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "red potion")
	group, err := env.groups.Create("summer")
	require.NoError(t, err)

	p := basicPayload(item.ID)
	p.Event.GroupID = &group.ID
	id := env.createEvent(t, p)

	detail, err := env.events.Get(id, models.RoleUser)
	require.NoError(t, err)

	require.NotNil(t, detail.Group)
	assert.Equal(t, "summer", detail.Group.Name)

	require.Len(t, detail.Rewards, 1)
	require.NotNil(t, detail.Rewards[0].Item)
	assert.Equal(t, "red potion", detail.Rewards[0].Item.Name)

	require.Len(t, detail.Conditions, 2)
	for _, cond := range detail.Conditions {
		if cond.Type == models.ConditionItem {
			require.NotNil(t, cond.Item)
			assert.Equal(t, item.ID, cond.Item.ID)
		} else {
			assert.Nil(t, cond.Item)
		}
	}
}

func TestListEvents_Visibility(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "red potion")

	visible := env.createEvent(t, basicPayload(item.ID))

	p := basicPayload(item.ID)
	p.Event.Status = false
	env.createEvent(t, p)

	p = basicPayload(item.ID)
	p.Event.StartDate = time.Now().Add(24 * time.Hour)
	p.Event.EndDate = time.Now().Add(48 * time.Hour)
	env.createEvent(t, p)

	userView, err := env.events.List(models.RoleUser)
	require.NoError(t, err)
	require.Len(t, userView, 1)
	assert.Equal(t, visible, userView[0].ID)

	adminView, err := env.events.List(models.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, adminView, 3)
}

func TestUpdateEvent_ThreeWayDiff(t *testing.T) {
	env := newTestEnv(t)
	potion := env.createItem(t, "red potion")
	elixir := env.createItem(t, "elixir")

	id := env.createEvent(t, basicPayload(potion.ID))

	var before []models.Reward
	require.NoError(t, env.db.Where("event_id = ?", id).Find(&before).Error)
	require.Len(t, before, 1)
	keptRewardID := before[0].ID

	var beforeConds []models.Condition
	require.NoError(t, env.db.Where("event_id = ?", id).Find(&beforeConds).Error)
	require.Len(t, beforeConds, 2)
	var attendCondID, itemCondID string
	for _, c := range beforeConds {
		if c.Type == models.ConditionAttend {
			attendCondID = c.ID
		} else {
			itemCondID = c.ID
		}
	}

	start, end := openEventWindow()
	update := &EventPayload{
		Event: EventInput{
			Title:     "Launch Week Extended",
			StartDate: start,
			EndDate:   end.Add(24 * time.Hour),
			Status:    true,
		},
		Conditions: []ConditionInput{
			// Resubmitted unchanged: must not be rewritten or re-created.
			{ID: attendCondID, Type: models.ConditionAttend, Quantity: intPtr(3)},
			// itemCondID omitted: delete.
		},
		Rewards: []RewardInput{
			// Same id, new amount: update in place.
			{ID: keptRewardID, ItemID: potion.ID, Amount: 9},
			// No id: insert.
			{ItemID: elixir.ID, Amount: 1},
		},
	}
	require.NoError(t, env.events.Update(id, update))

	var event models.Event
	require.NoError(t, env.db.First(&event, "id = ?", id).Error)
	assert.Equal(t, "Launch Week Extended", event.Title)
	assert.Equal(t, "launch-week-extended", event.Slug)

	var rewards []models.Reward
	require.NoError(t, env.db.Where("event_id = ?", id).Order("created_at ASC").Find(&rewards).Error)
	require.Len(t, rewards, 2)

	byID := map[string]models.Reward{}
	for _, r := range rewards {
		byID[r.ID] = r
	}
	kept, ok := byID[keptRewardID]
	require.True(t, ok, "updated reward must keep its id")
	assert.Equal(t, 9, kept.Amount)

	var conditions []models.Condition
	require.NoError(t, env.db.Where("event_id = ?", id).Find(&conditions).Error)
	require.Len(t, conditions, 1)
	assert.Equal(t, attendCondID, conditions[0].ID)
	assert.Equal(t, models.ConditionAttend, conditions[0].Type)
	_ = itemCondID
}

func TestUpdateEvent_MissingEventIs404(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "red potion")

	err := env.events.Update("22222222-2222-2222-2222-222222222222", basicPayload(item.ID))
	requireStatus(t, err, fiber.StatusNotFound)
}

func TestDeleteEvent_Cascades(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "red potion")
	id := env.createEvent(t, basicPayload(item.ID))

	require.NoError(t, env.events.Delete(id))

	var events, conditions, rewards int64
	require.NoError(t, env.db.Model(&models.Event{}).Where("id = ?", id).Count(&events).Error)
	require.NoError(t, env.db.Model(&models.Condition{}).Where("event_id = ?", id).Count(&conditions).Error)
	require.NoError(t, env.db.Model(&models.Reward{}).Where("event_id = ?", id).Count(&rewards).Error)
	assert.Zero(t, events)
	assert.Zero(t, conditions)
	assert.Zero(t, rewards)

	err := env.events.Delete(id)
	requireStatus(t, err, fiber.StatusNotFound)
}

func TestDiffRewards_NoopSkipsWrite(t *testing.T) {
	before := []models.Reward{
		{ID: "r1", ItemID: "i1", Amount: 5},
		{ID: "r2", ItemID: "i2", Amount: 1},
	}
	submitted := []RewardInput{
		{ID: "r1", ItemID: "i1", Amount: 5}, // unchanged
		{ID: "r2", ItemID: "i2", Amount: 3}, // amount changed
		{ItemID: "i3", Amount: 7},           // new
	}

	d := diffRewards(before, submitted)
	assert.Len(t, d.inserts, 1)
	require.Len(t, d.updates, 1)
	assert.Equal(t, "r2", d.updates[0].ID)
	assert.Equal(t, 3, d.updates[0].Amount)
	assert.Empty(t, d.deletes)
}

func TestDiffConditions_DeleteAndPointerFields(t *testing.T) {
	target := "i1"
	before := []models.Condition{
		{ID: "c1", Type: models.ConditionAttend, Quantity: intPtr(3)},
		{ID: "c2", Type: models.ConditionItem, TargetID: &target, Quantity: intPtr(2)},
	}
	submitted := []ConditionInput{
		{ID: "c1", Type: models.ConditionAttend, Quantity: intPtr(3)}, // unchanged
		// c2 omitted: delete
	}

	d := diffConditions(before, submitted)
	assert.Empty(t, d.inserts)
	assert.Empty(t, d.updates)
	require.Len(t, d.deletes, 1)
	assert.Equal(t, "c2", d.deletes[0])
}
