// Package compose provides the default plain-text message composer.
// Rich embeds, icon styles and localization belong to an external composer;
// this one renders enough for direct and SMS delivery.
package compose

import (
	"fmt"
	"strings"

	"scout/internal/domain/entity"
	"scout/internal/domain/service"
)

type composer struct{}

// New creates the default message composer.
func New() service.MessageComposer {
	return &composer{}
}

func mapURL(loc entity.Location) string {
	return fmt.Sprintf("https://maps.google.com/maps?q=%.6f,%.6f", loc.Latitude, loc.Longitude)
}

func withArea(title, area string) string {
	if area == "" {
		return title
	}

	return fmt.Sprintf("%s (%s)", title, area)
}

func (c *composer) ComposeSpawn(event *entity.SpawnEvent, name, area string) *entity.Message {
	body := fmt.Sprintf("**%s** %.1f%% IV, L%d CP%d %d/%d/%d",
		name, event.IV, event.Level, event.CP, event.Attack, event.Defense, event.Stamina)
	if event.Gender != "" && event.Gender != entity.GenderAny {
		body = fmt.Sprintf("%s, %s", body, event.Gender)
	}

	return &entity.Message{
		Title:  withArea(name, area),
		Body:   body,
		MapURL: mapURL(event.Location),
	}
}

func (c *composer) ComposePvP(event *entity.SpawnEvent, ranking entity.PvPRanking, name, area string) *entity.Message {
	body := fmt.Sprintf("**%s** rank %d (%.1f%%) CP%d in %s league",
		name, ranking.Rank, ranking.Percent, ranking.CP, ranking.League)

	return &entity.Message{
		Title:  withArea(name, area),
		Body:   body,
		MapURL: mapURL(event.Location),
	}
}

func (c *composer) ComposeRaid(event *entity.RaidEvent, name, area string) *entity.Message {
	title := fmt.Sprintf("Raid: %s", name)
	body := fmt.Sprintf("**%s** level %d raid", name, event.Level)
	if event.GymName != "" {
		body = fmt.Sprintf("%s at %s", body, event.GymName)
	}

	return &entity.Message{
		Title:  withArea(title, area),
		Body:   body,
		MapURL: mapURL(event.Location),
	}
}

func (c *composer) ComposeQuest(event *entity.QuestEvent, area string) *entity.Message {
	return &entity.Message{
		Title:  withArea("Field Research", area),
		Body:   fmt.Sprintf("**%s** rewards %s", event.Task, event.Reward),
		MapURL: mapURL(event.Location),
	}
}

func (c *composer) ComposeInvasion(event *entity.InvasionEvent, grunt, area string) *entity.Message {
	stop := event.PokestopName
	if stop == "" {
		stop = "a pokestop"
	}

	return &entity.Message{
		Title:  withArea("Invasion", area),
		Body:   fmt.Sprintf("**%s** has taken over %s", grunt, stop),
		MapURL: mapURL(event.Location),
	}
}

func (c *composer) ComposeLure(event *entity.LureEvent, area string) *entity.Message {
	stop := event.PokestopName
	if stop == "" {
		stop = "a pokestop"
	}
	lure := strings.ToLower(event.LureType)

	return &entity.Message{
		Title:  withArea("Lure", area),
		Body:   fmt.Sprintf("A %s lure is active at %s", lure, stop),
		MapURL: mapURL(event.Location),
	}
}
