package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu            UserState = "main_menu"             // В главном меню
	StateAwaitingPhoto       UserState = "awaiting_photo"        // Ожидание фото материала
	StateProcessing          UserState = "processing"            // Обработка изображения
	StateAwaitingDetails     UserState = "awaiting_details"      // Ожидание размеров и места
	StateAwaitingDetailPhoto UserState = "awaiting_detail_photo" // Ожидание уточняющих фото
	StateAwaitingLocation    UserState = "awaiting_location"     // Ожидание геопозиции для поиска центров
)

// User представляет пользователя бота
type User struct {
	ID      int64     // Telegram User ID
	ChatID  int64     // Telegram Chat ID
	State   UserState // Текущее состояние пользователя
	Session *Session  // Текущая проверка
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:      userID,
		ChatID:  chatID,
		State:   StateMainMenu,
		Session: NewSession(),
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// ResetSession начинает новую проверку
func (u *User) ResetSession() {
	if u.Session == nil {
		u.Session = NewSession()
		return
	}
	u.Session.Reset()
}
