package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"manpower/internal/application"
	"manpower/internal/config"
	"manpower/internal/domain/roster"
	"manpower/internal/ports/output"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
	logger  *zap.Logger
}

// NewBot creates a Bot and wires ports: output adapters -> application (use cases) -> handler.
func NewBot(
	cfg *config.Config,
	logger *zap.Logger,
	repo output.EventRepository,
	notifier output.ChangeNotifier,
	translator output.Translator,
) (*Bot, error) {
	rosterUC := application.NewRosterService(repo, notifier, logger, cfg.DefaultTargetCount)
	attendanceUC := application.NewAttendanceService(repo, notifier, logger, roster.Policy{
		UniformRequiresCheckIn: cfg.UniformRequiresCheckIn,
	})

	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	bot := &Bot{
		session: s,
		config:  cfg,
		handler: NewHandler(rosterUC, attendanceUC, translator, logger),
		logger:  logger,
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == commandName {
			b.handler.HandleCommand(s, i)
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		if i.ApplicationCommandData().Name == commandName {
			b.handler.HandleAutocomplete(s, i)
		}
	case discordgo.InteractionModalSubmit:
		b.handler.HandleModalSubmit(s, i)
	}
}

// Start opens the session, registers the command and blocks until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	// Set before the session opens so no handler goroutine sees the default.
	b.handler.baseCtx = ctx
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	cmd := commandDefinition()
	if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
		b.logger.Warn("register command failed", zap.String("command", cmd.Name), zap.Error(err))
	}

	b.logger.Info("bot online", zap.String("user", b.session.State.User.Username), zap.String("guild_id", b.config.GuildID))
	<-ctx.Done()
	b.logger.Info("bot shutting down")
	return nil
}
