package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/apex/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "asbestos-screen/internal/application"
	"asbestos-screen/internal/container"
	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/theme"
)

const (
	msgStart = `👋 Hi! I help with a preliminary asbestos risk screening.

📸 Send a photo of the material and I will estimate the risk, suggest certified inspection centers and prepare a PDF report.

📋 Commands:
/check - start a new check
/report - get the PDF report
/history - recent checks
/help - help
/cancel - cancel the current check`

	msgHelp = `ℹ️ How it works:

1️⃣ Send a clear photo of the material
2️⃣ Get the risk level: 🟢 safe, 🟡 uncertain, 🔴 danger
3️⃣ For uncertain results, describe the sample and add close-up photos
4️⃣ For danger, share your location to find inspection centers
5️⃣ Send /report to receive the PDF

💡 Tips:
• Shoot in good light
• Keep the material in focus
• Avoid glare and shadows

⚠️ This is not a substitute for a laboratory test.`

	msgAwaitingPhoto   = "📸 Send a photo of the material you want to check."
	msgCancelled       = "❌ Check cancelled. Send /check to start again."
	msgUnknownCommand  = "❓ Unknown command. Use /help."
	msgProcessing      = "⏳ Analyzing the photo..."
	msgProcessingError = "⚠️ Could not analyze the photo. Please try again later."
	msgPoorPhoto       = "📷 The photo is not clear enough (%s). Please take another one."

	msgDetailPhotoPrompt = "📸 Now send 1-5 close-up photos of the material. Send /done when finished."
	msgDetailPhotoAdded  = "✅ Photo %d/%d received. Send more or /done."
	msgLocationPrompt    = "📍 Share your location to find certified inspection centers nearby, or send /skip."
	msgLocationButton    = "📍 Share location"
	msgReportHint        = "📄 Send /report to get the PDF report."
	msgNoAssessment      = "ℹ️ There is no result yet. Send /check to start."
	msgNotConfigured     = "⚠️ The analysis service is not configured."
	msgSendPhoto         = "📸 Please send a photo of the material."

	msgDetailsPrompt = `📝 The result is uncertain. Please describe the sample in one message:
location; WxHxD unit; notes

Example: Basement ceiling; 30x20x1 cm; crumbly edges`
)

// Сколько последних проверок показывать в /history
const historyLimit = 5

// Bot представляет Telegram-бота
type Bot struct {
	api   *tgbotapi.BotAPI
	app   *container.Container
	theme theme.Theme
	http  *http.Client
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.WithField("account", api.Self.UserName).Info("authorized on telegram")

	return &Bot{
		api:   api,
		app:   c,
		theme: c.Theme,
		http:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.app.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.WithError(err).Error("get user")
		return
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg, user)
	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, msg, user)
	case msg.Location != nil:
		b.handleLocation(ctx, msg, user)
	case user.State == entity.StateAwaitingDetails && msg.Text != "":
		b.handleDetails(ctx, msg, user)
	default:
		b.sendMessage(msg.Chat.ID, msgSendPhoto)
	}
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	chatID := msg.Chat.ID
	screening := b.app.ScreeningService

	switch msg.Command() {
	case "start":
		if _, err := screening.Cancel(ctx, user.ID, chatID); err != nil {
			log.WithError(err).Error("reset user")
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "check":
		if _, err := screening.Begin(ctx, user.ID, chatID); err != nil {
			log.WithError(err).Error("begin check")
		}
		b.sendMessage(chatID, msgAwaitingPhoto)

	case "done":
		if user.State != entity.StateAwaitingDetailPhoto {
			b.sendMessage(chatID, msgUnknownCommand)
			return
		}
		b.sendMessage(chatID, msgProcessing)
		updated, err := screening.Refine(ctx, user.ID, chatID)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		b.sendResult(chatID, updated)

	case "skip":
		if user.State != entity.StateAwaitingLocation {
			b.sendMessage(chatID, msgUnknownCommand)
			return
		}
		b.sendFacilities(ctx, chatID, user, nil)

	case "report":
		b.sendReport(ctx, chatID, user)

	case "history":
		list, err := screening.History(ctx, user.ID, historyLimit)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		b.sendMessage(chatID, FormatHistory(b.theme, list, time.Local))

	case "cancel":
		if _, err := screening.Cancel(ctx, user.ID, chatID); err != nil {
			log.WithError(err).Error("cancel check")
		}
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	chatID := msg.Chat.ID

	// Берём файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	data, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		log.WithError(err).Error("download photo")
		b.sendMessage(chatID, msgProcessingError)
		return
	}
	img := entity.AnalyzedImage{Name: "photo-" + photo.FileUniqueID + ".jpg", Data: data}

	if user.State == entity.StateAwaitingDetailPhoto {
		n, err := b.app.ScreeningService.AddDetailPhoto(ctx, user.ID, chatID, img)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		b.sendMessage(chatID, fmt.Sprintf(msgDetailPhotoAdded, n, entity.MaxDetailImages))
		return
	}

	if user.State != entity.StateAwaitingPhoto {
		if _, err := b.app.ScreeningService.Begin(ctx, user.ID, chatID); err != nil {
			log.WithError(err).Error("begin check")
			return
		}
	}

	b.sendMessage(chatID, msgProcessing)
	updated, err := b.app.ScreeningService.SubmitPhoto(ctx, user.ID, chatID, img)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.sendResult(chatID, updated)
}

// handleDetails принимает описание образца
func (b *Bot) handleDetails(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	info, err := ParseDetails(msg.Text)
	if err != nil {
		b.sendMessage(msg.Chat.ID, msgDetailsPrompt)
		return
	}
	if _, err := b.app.ScreeningService.SubmitDetails(ctx, user.ID, msg.Chat.ID, info); err != nil {
		b.replyError(msg.Chat.ID, err)
		return
	}
	b.sendMessage(msg.Chat.ID, msgDetailPhotoPrompt)
}

// handleLocation ищет центры рядом с присланной точкой
func (b *Bot) handleLocation(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	origin := &entity.Coordinates{Lat: msg.Location.Latitude, Lng: msg.Location.Longitude}
	b.sendFacilities(ctx, msg.Chat.ID, user, origin)
}

func (b *Bot) sendFacilities(ctx context.Context, chatID int64, user *entity.User, origin *entity.Coordinates) {
	list, err := b.app.ScreeningService.FindFacilities(ctx, user.ID, chatID, origin, b.app.FacilityLimit)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	reply := tgbotapi.NewMessage(chatID, FormatFacilities(list)+"\n\n"+msgReportHint)
	reply.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	b.send(reply)
}

// sendResult показывает результат и подсказку следующего шага
func (b *Bot) sendResult(chatID int64, user *entity.User) {
	b.sendMessage(chatID, FormatResult(b.theme, user.Session.Assessment))

	switch user.State {
	case entity.StateAwaitingDetails:
		b.sendMessage(chatID, msgDetailsPrompt)
	case entity.StateAwaitingLocation:
		prompt := tgbotapi.NewMessage(chatID, msgLocationPrompt)
		keyboard := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation(msgLocationButton),
		))
		keyboard.OneTimeKeyboard = true
		prompt.ReplyMarkup = keyboard
		b.send(prompt)
	default:
		b.sendMessage(chatID, msgReportHint)
	}
}

// sendReport собирает PDF и отправляет его документом
func (b *Bot) sendReport(ctx context.Context, chatID int64, user *entity.User) {
	report, err := b.app.ScreeningService.BuildReport(ctx, user.ID, chatID)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: report.FileName, Bytes: report.Content})
	doc.Caption = fmt.Sprintf("📄 Asbestos screening report, %d page(s)", report.PageCount)
	b.send(doc)
}

// replyError переводит ошибку сервиса в сообщение пользователю
func (b *Bot) replyError(chatID int64, err error) {
	var verrs entity.ValidationErrors
	switch {
	case errors.Is(err, entity.ErrPoorPhoto):
		b.sendMessage(chatID, fmt.Sprintf(msgPoorPhoto, err))
	case errors.Is(err, app.ErrNoAssessment):
		b.sendMessage(chatID, msgNoAssessment)
	case errors.Is(err, app.ErrAnalyzerNotConfigured):
		b.sendMessage(chatID, msgNotConfigured)
	case errors.Is(err, app.ErrTooManyPhotos), errors.Is(err, app.ErrNoDetails):
		b.sendMessage(chatID, "⚠️ "+err.Error())
	case errors.As(err, &verrs):
		b.sendMessage(chatID, "⚠️ "+verrs.Error())
	default:
		log.WithError(err).WithField("chat_id", chatID).Error("request failed")
		b.sendMessage(chatID, msgProcessingError)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.WithError(err).Error("send message")
	}
}
