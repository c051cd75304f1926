package dialog

import (
	"context"
	"strings"

	"vacancy-bot/internal/catalog"
	"vacancy-bot/internal/chat"

	"go.uber.org/zap"
)

// Router classifies every inbound event as a command, a free-text dialog
// continuation or an inline choice, and dispatches it to exactly one
// delegate. Any delegate error is caught here: the event counts as handled
// and a bad update never blocks the stream.
type Router struct {
	store      Store
	states     *Manager
	candidates *CandidateEngine
	admins     *AdminEngine
	catalog    *catalog.Service
	msgr       chat.Messenger
	logger     *zap.Logger
}

func NewRouter(store Store, states *Manager, candidates *CandidateEngine, admins *AdminEngine, cat *catalog.Service, msgr chat.Messenger, logger *zap.Logger) *Router {
	return &Router{
		store:      store,
		states:     states,
		candidates: candidates,
		admins:     admins,
		catalog:    cat,
		msgr:       msgr,
		logger:     logger,
	}
}

// Route handles one inbound event. It never fails: delegate errors are
// logged and swallowed, so the transport does not retry the update.
func (r *Router) Route(ctx context.Context, ev chat.Event) {
	var err error

	switch {
	case ev.Callback != "":
		err = r.routeCallback(ctx, ev)
	case strings.HasPrefix(strings.TrimSpace(ev.Text), "/"):
		err = r.routeCommand(ctx, ev)
	default:
		err = r.routeMessage(ctx, ev)
	}

	if err != nil {
		r.logger.Error("event handling failed",
			zap.Int64("user_id", ev.UserID),
			zap.Int64("chat_id", ev.ChatID),
			zap.Error(err),
		)
	}
}

// isAdmin re-checks the allow-list on every command and callback. A gateway
// failure is logged and treated as "not an admin".
func (r *Router) isAdmin(ctx context.Context, userID int64) bool {
	ok, err := r.store.IsAdmin(ctx, userID)
	if err != nil {
		r.logger.Error("admin lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return false
	}
	return ok
}

func (r *Router) routeCommand(ctx context.Context, ev chat.Event) error {
	cmd, _, _ := strings.Cut(strings.TrimSpace(ev.Text), " ")
	// commands may arrive addressed as /cmd@botname in group chats
	cmd, _, _ = strings.Cut(cmd, "@")

	switch cmd {
	case "/start":
		return r.showStart(ctx, ev)
	case "/help":
		return r.showHelp(ctx, ev)
	case "/addvacancy":
		return r.adminCommand(ctx, ev, r.admins.StartAdd)
	case "/editvacancy":
		return r.adminCommand(ctx, ev, r.admins.PromptEdit)
	case "/deletevacancy":
		return r.adminCommand(ctx, ev, r.admins.PromptDelete)
	case "/viewcandidates":
		return r.adminCommand(ctx, ev, r.admins.PromptViewCandidates)
	default:
		return r.msgr.SendText(ctx, ev.ChatID, "Невідома команда.", nil)
	}
}

func (r *Router) adminCommand(ctx context.Context, ev chat.Event, h func(context.Context, chat.Event) error) error {
	if !r.isAdmin(ctx, ev.UserID) {
		return r.msgr.SendText(ctx, ev.ChatID, "У вас немає прав адміністратора.", nil)
	}
	return h(ctx, ev)
}

func (r *Router) showStart(ctx context.Context, ev chat.Event) error {
	menu := candidateMenu()
	if r.isAdmin(ctx, ev.UserID) {
		menu = adminMenu()
	}

	if err := r.msgr.SendText(ctx, ev.ChatID, "Вітаємо! Оберіть дію:", menu); err != nil {
		return err
	}

	return r.catalog.ShowList(ctx, ev.ChatID)
}

func (r *Router) showHelp(ctx context.Context, ev chat.Event) error {
	help := candidateHelp
	if r.isAdmin(ctx, ev.UserID) {
		help = adminHelp
	}
	return r.msgr.SendText(ctx, ev.ChatID, help, nil)
}

// routeMessage dispatches free text and attachments: an active dialog wins,
// then menu labels; anything else is deliberately ignored.
func (r *Router) routeMessage(ctx context.Context, ev chat.Event) error {
	if st, ok := r.states.Get(ev.UserID); ok {
		switch st.Role {
		case RoleAdmin:
			return r.admins.HandleInput(ctx, ev, st)
		default:
			return r.candidates.HandleInput(ctx, ev, st)
		}
	}

	switch strings.TrimSpace(ev.Text) {
	case labelViewVacancies:
		return r.catalog.ShowList(ctx, ev.ChatID)
	case labelHelp:
		return r.showHelp(ctx, ev)
	case labelAddVacancy:
		return r.adminCommand(ctx, ev, r.admins.StartAdd)
	case labelEditVacancy:
		return r.adminCommand(ctx, ev, r.admins.PromptEdit)
	case labelDeleteVacancy:
		return r.adminCommand(ctx, ev, r.admins.PromptDelete)
	case labelViewCandidates:
		return r.adminCommand(ctx, ev, r.admins.PromptViewCandidates)
	}

	// stray text with no active dialog: intentional no-op
	r.logger.Debug("message ignored", zap.Int64("user_id", ev.UserID))
	return nil
}

func (r *Router) routeCallback(ctx context.Context, ev chat.Event) error {
	action, vacancyID, ok := chat.ParseToken(ev.Callback)
	if !ok {
		r.logger.Debug("unrecognized callback token",
			zap.Int64("user_id", ev.UserID),
			zap.String("token", ev.Callback),
		)
		return nil
	}

	switch action {
	case chat.ActionBackToMenu:
		menu := candidateMenu()
		if r.isAdmin(ctx, ev.UserID) {
			menu = adminMenu()
		}
		return r.msgr.SendText(ctx, ev.ChatID, "Головне меню", menu)
	case chat.ActionBackToCatalog:
		return r.catalog.ShowList(ctx, ev.ChatID)
	}

	// admin role takes precedence for every remaining token
	if r.isAdmin(ctx, ev.UserID) {
		return r.admins.HandleCallback(ctx, ev, action, vacancyID)
	}

	switch action {
	case chat.ActionVacancyDetails:
		return r.catalog.ShowDetails(ctx, ev.ChatID, vacancyID)
	case chat.ActionApply:
		return r.candidates.Start(ctx, ev, vacancyID)
	default:
		return nil
	}
}
