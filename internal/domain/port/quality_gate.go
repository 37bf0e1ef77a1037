package port

import "context"

// PhotoQualityGate интерфейс проверки качества фото перед анализом
type PhotoQualityGate interface {
	// Check возвращает ошибку, обёрнутую в entity.ErrPoorPhoto, если фото непригодно
	Check(ctx context.Context, imageData []byte) error
}
