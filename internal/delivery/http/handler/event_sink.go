// Package handler contains the echo handlers for the ingest surface.
package handler

import (
	"context"
	"encoding/json"

	"scout/internal/domain/entity"
	"scout/internal/errors"
	"scout/internal/processor"
)

// ErrUnknownKind marks payloads whose event kind has no processor. The push
// endpoint acks these instead of triggering redelivery.
var ErrUnknownKind = errors.New("unknown event kind")

// EventSink routes a raw ingested payload to the processing pipeline.
type EventSink interface {
	Dispatch(ctx context.Context, kind string, payload []byte) error
}

type processorSink struct {
	processor *processor.Processor
}

// NewProcessorSink creates an EventSink backed by the event processor.
func NewProcessorSink(p *processor.Processor) EventSink {
	return &processorSink{processor: p}
}

// KnownKind reports whether the ingest surface accepts the event kind.
func KnownKind(kind string) bool {
	switch entity.EventKind(kind) {
	case entity.KindPokemon, entity.KindPvP, entity.KindRaid,
		entity.KindQuest, entity.KindInvasion, entity.KindLure:
		return true
	default:
		return false
	}
}

// Dispatch unmarshals the payload for its kind and runs the matching pass.
// A spawn carrying league rankings also runs the PvP pass.
func (s *processorSink) Dispatch(ctx context.Context, kind string, payload []byte) error {
	switch entity.EventKind(kind) {
	case entity.KindPokemon:
		event, err := decode[entity.SpawnEvent](payload)
		if err != nil {
			return err
		}
		if err := s.processor.ProcessSpawn(ctx, event); err != nil {
			return err
		}
		if len(event.Rankings) > 0 {
			return s.processor.ProcessPvP(ctx, event)
		}

		return nil
	case entity.KindPvP:
		event, err := decode[entity.SpawnEvent](payload)
		if err != nil {
			return err
		}

		return s.processor.ProcessPvP(ctx, event)
	case entity.KindRaid:
		event, err := decode[entity.RaidEvent](payload)
		if err != nil {
			return err
		}

		return s.processor.ProcessRaid(ctx, event)
	case entity.KindQuest:
		event, err := decode[entity.QuestEvent](payload)
		if err != nil {
			return err
		}

		return s.processor.ProcessQuest(ctx, event)
	case entity.KindInvasion:
		event, err := decode[entity.InvasionEvent](payload)
		if err != nil {
			return err
		}

		return s.processor.ProcessInvasion(ctx, event)
	case entity.KindLure:
		event, err := decode[entity.LureEvent](payload)
		if err != nil {
			return err
		}

		return s.processor.ProcessLure(ctx, event)
	default:
		return errors.Wrapf(ErrUnknownKind, "kind %q", kind)
	}
}

func decode[T any](payload []byte) (*T, error) {
	event := new(T)
	if err := json.Unmarshal(payload, event); err != nil {
		return nil, errors.Wrap(err, "decode event payload")
	}

	return event, nil
}
