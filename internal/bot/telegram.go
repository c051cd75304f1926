package bot

import (
	"context"
	"fmt"
	"path/filepath"

	"vacancy-bot/internal/chat"
	"vacancy-bot/internal/files"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Messenger adapts a telebot instance to the chat.Messenger contract.
type Messenger struct {
	bot    *tele.Bot
	logger *zap.Logger
}

func NewMessenger(b *tele.Bot, logger *zap.Logger) *Messenger {
	return &Messenger{bot: b, logger: logger}
}

func (m *Messenger) SendText(ctx context.Context, chatID int64, text string, kb *chat.Keyboard) error {
	_, err := m.bot.Send(tele.ChatID(chatID), text, sendOptions(kb)...)
	if err != nil {
		return fmt.Errorf("send text: %w", err)
	}
	return nil
}

func (m *Messenger) SendHTML(ctx context.Context, chatID int64, text string, kb *chat.Keyboard) error {
	opts := append(sendOptions(kb), tele.ModeHTML)
	_, err := m.bot.Send(tele.ChatID(chatID), text, opts...)
	if err != nil {
		return fmt.Errorf("send html: %w", err)
	}
	return nil
}

func (m *Messenger) SendPhoto(ctx context.Context, chatID int64, path, caption string, kb *chat.Keyboard) error {
	photo := &tele.Photo{
		File:    tele.FromDisk(path),
		Caption: caption,
	}
	_, err := m.bot.Send(tele.ChatID(chatID), photo, append(sendOptions(kb), tele.ModeHTML)...)
	if err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

func (m *Messenger) SendDocument(ctx context.Context, chatID int64, path, caption string) error {
	doc := &tele.Document{
		File:     tele.FromDisk(path),
		FileName: filepath.Base(path),
		Caption:  caption,
	}
	_, err := m.bot.Send(tele.ChatID(chatID), doc)
	if err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

func sendOptions(kb *chat.Keyboard) []interface{} {
	if kb == nil {
		return nil
	}

	markup := &tele.ReplyMarkup{}

	if len(kb.Inline) > 0 {
		for _, row := range kb.Inline {
			var btns []tele.InlineButton
			for _, b := range row {
				btns = append(btns, tele.InlineButton{
					Text: b.Label,
					Data: b.Token,
				})
			}
			markup.InlineKeyboard = append(markup.InlineKeyboard, btns)
		}
	}

	if len(kb.Reply) > 0 {
		markup.ResizeKeyboard = true
		for _, row := range kb.Reply {
			var btns []tele.ReplyButton
			for _, label := range row {
				btns = append(btns, tele.ReplyButton{Text: label})
			}
			markup.ReplyKeyboard = append(markup.ReplyKeyboard, btns)
		}
	}

	return []interface{}{markup}
}

// Downloader fetches Telegram files and stores them through the local
// file store. Implements chat.Files.
type Downloader struct {
	bot    *tele.Bot
	store  *files.Store
	logger *zap.Logger
}

func NewDownloader(b *tele.Bot, store *files.Store, logger *zap.Logger) *Downloader {
	return &Downloader{bot: b, store: store, logger: logger}
}

func (d *Downloader) Save(ctx context.Context, fileID, name string) (string, error) {
	rc, err := d.bot.File(&tele.File{FileID: fileID})
	if err != nil {
		d.logger.Error("failed to download file",
			zap.String("file_id", fileID),
			zap.Error(err),
		)
		return "", fmt.Errorf("download file: %w", err)
	}
	defer rc.Close()

	path, err := d.store.Write(name, rc)
	if err != nil {
		return "", err
	}

	d.logger.Info("file saved",
		zap.String("file_id", fileID),
		zap.String("path", path),
	)

	return path, nil
}
