// Package subscribers contains ready-made event bus subscribers.
package subscribers

import (
	"github.com/rs/zerolog"

	"github.com/territorial-rl/territorial/internal/game/events"
)

// LoggerSubscriber writes every game event to a structured log.
type LoggerSubscriber struct {
	id     string
	logger zerolog.Logger
}

// NewLoggerSubscriber creates a subscriber that logs all event types.
func NewLoggerSubscriber(logger zerolog.Logger) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:     "event_logger",
		logger: logger.With().Str("component", "event_logger").Logger(),
	}
}

func (s *LoggerSubscriber) ID() string { return s.id }

func (s *LoggerSubscriber) InterestedIn(string) bool { return true }

func (s *LoggerSubscriber) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case *events.TerritoryCapturedEvent:
		s.logger.Info().
			Str("game_id", e.GameID()).
			Int("x", e.X).Int("y", e.Y).
			Int("attacker", e.AttackerID).
			Int("defender", e.DefenderID).
			Int("force", e.Force).
			Stringer("razed", e.BuildingRazed).
			Msg("Territory captured")
	case *events.AttackRepelledEvent:
		s.logger.Debug().
			Str("game_id", e.GameID()).
			Int("x", e.X).Int("y", e.Y).
			Int("attacker", e.AttackerID).
			Int("force", e.Force).
			Int("defender_losses", e.DefenderLosses).
			Msg("Attack repelled")
	case *events.BuildingConstructedEvent:
		s.logger.Info().
			Str("game_id", e.GameID()).
			Int("x", e.X).Int("y", e.Y).
			Int("player", e.PlayerID).
			Stringer("kind", e.Kind).
			Int("cost", e.Cost).
			Msg("Building constructed")
	case *events.GrowthAppliedEvent:
		s.logger.Debug().
			Str("game_id", e.GameID()).
			Int("player", e.PlayerID).
			Int("day", e.Day).
			Int("troops", e.Troops).
			Int("gold", e.Gold).
			Msg("Growth applied")
	case *events.ResourceBoomStartedEvent:
		s.logger.Info().
			Str("game_id", e.GameID()).
			Int("day", e.Day).
			Int("duration_days", e.DurationDays).
			Msg("Resource boom started")
	case *events.ResourceBoomEndedEvent:
		s.logger.Info().
			Str("game_id", e.GameID()).
			Int("day", e.Day).
			Msg("Resource boom ended")
	case *events.PlayerEliminatedEvent:
		s.logger.Info().
			Str("game_id", e.GameID()).
			Int("player", e.PlayerID).
			Int("tick", e.Tick).
			Msg("Player eliminated")
	case *events.GameOverEvent:
		s.logger.Info().
			Str("game_id", e.GameID()).
			Int("winner", e.WinnerID).
			Int("tick", e.Tick).
			Msg("Game over")
	default:
		s.logger.Debug().
			Str("event_type", event.Type()).
			Str("game_id", event.GameID()).
			Msg("Event")
	}
}
