package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vacancy-bot/internal/bot/middleware"
	"vacancy-bot/internal/catalog"
	"vacancy-bot/internal/chat"
	"vacancy-bot/internal/config"
	"vacancy-bot/internal/dialog"
	"vacancy-bot/internal/files"
	"vacancy-bot/internal/notify"
	"vacancy-bot/internal/storage/postgres"
	"vacancy-bot/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Bot represents Telegram bot
type Bot struct {
	bot    *tele.Bot
	router *dialog.Router
	config *config.Config
	logger *zap.Logger
}

func New(
	cfg *config.Config,
	store *postgres.Store,
	cache *redis.Cache,
	states *dialog.Manager,
	fileStore *files.Store,
	email notify.EmailSender,
	logger *zap.Logger,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	msgr := NewMessenger(b, logger)
	downloader := NewDownloader(b, fileStore, logger)

	cat := catalog.New(store, msgr, logger)
	notifier := notify.NewDispatcher(store, msgr, email, logger)
	candidates := dialog.NewCandidateEngine(store, states, msgr, downloader, notifier, logger)
	admins := dialog.NewAdminEngine(store, states, msgr, downloader, logger)
	router := dialog.NewRouter(store, states, candidates, admins, cat, msgr, logger)

	bot := &Bot{
		bot:    b,
		router: router,
		config: cfg,
		logger: logger,
	}

	bot.setupMiddleware(cache)

	bot.registerHandlers()

	logger.Info("bot initialized successfully")

	return bot, nil
}

func (b *Bot) setupMiddleware(cache *redis.Cache) {
	b.bot.Use(middleware.Recovery(b.logger))

	b.bot.Use(middleware.Logger(b.logger))

	b.bot.Use(middleware.RateLimit(cache, b.logger))
}

// registerHandlers funnels every update kind into the dialog router.
// Slash commands are not registered individually so that unknown ones
// still arrive through OnText and get a reply.
func (b *Bot) registerHandlers() {
	b.bot.Handle(tele.OnText, b.handleUpdate)
	b.bot.Handle(tele.OnPhoto, b.handleUpdate)
	b.bot.Handle(tele.OnDocument, b.handleUpdate)
	b.bot.Handle(tele.OnCallback, b.handleUpdate)

	b.logger.Info("handlers registered")
}

func (b *Bot) handleUpdate(c tele.Context) error {
	ev, ok := toEvent(c)
	if !ok {
		return nil
	}

	if cb := c.Callback(); cb != nil {
		// stop the client spinner before any handling
		_ = c.Respond()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	b.router.Route(ctx, ev)
	return nil
}

func toEvent(c tele.Context) (chat.Event, bool) {
	sender := c.Sender()
	chatRef := c.Chat()
	if sender == nil || chatRef == nil {
		return chat.Event{}, false
	}

	ev := chat.Event{
		UserID:   sender.ID,
		ChatID:   chatRef.ID,
		Username: sender.Username,
	}

	if cb := c.Callback(); cb != nil {
		ev.Callback = strings.TrimSpace(cb.Data)
		return ev, true
	}

	msg := c.Message()
	if msg == nil {
		return chat.Event{}, false
	}

	ev.Text = msg.Text

	if msg.Photo != nil {
		ev.Photo = &chat.Attachment{
			FileID: msg.Photo.FileID,
			Name:   "photo.jpg",
		}
		ev.Text = msg.Caption
	}

	if msg.Document != nil {
		name := msg.Document.FileName
		if name == "" {
			name = "document"
		}
		ev.Document = &chat.Attachment{
			FileID: msg.Document.FileID,
			Name:   name,
		}
		ev.Text = msg.Caption
	}

	return ev, true
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting bot...")

	go b.bot.Start()

	<-ctx.Done()

	b.logger.Info("stopping bot...")
	b.bot.Stop()

	return nil
}

func (b *Bot) Stop() {
	b.bot.Stop()
	b.logger.Info("bot stopped")
}
