package entity

import "time"

// Report готовый PDF-отчёт
type Report struct {
	FileName      string
	Content       []byte
	PageCount     int
	CreatedAt     time.Time
	SkippedImages []int // индексы фото, которые не удалось встроить
}
