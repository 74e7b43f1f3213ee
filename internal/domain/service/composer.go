package service

import "scout/internal/domain/entity"

// MessageComposer renders notification content for matched events.
// The matching core treats the result as opaque.
type MessageComposer interface {
	ComposeSpawn(event *entity.SpawnEvent, name, area string) *entity.Message
	ComposePvP(event *entity.SpawnEvent, ranking entity.PvPRanking, name, area string) *entity.Message
	ComposeRaid(event *entity.RaidEvent, name, area string) *entity.Message
	ComposeQuest(event *entity.QuestEvent, area string) *entity.Message
	ComposeInvasion(event *entity.InvasionEvent, grunt, area string) *entity.Message
	ComposeLure(event *entity.LureEvent, area string) *entity.Message
}
