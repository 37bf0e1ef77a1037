package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/go-sql-driver/mysql"

	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/domain/port"
)

const createAssessmentsTable = `CREATE TABLE IF NOT EXISTS assessments (
	id VARCHAR(64) NOT NULL PRIMARY KEY,
	user_id BIGINT NOT NULL,
	status VARCHAR(16) NOT NULL,
	confidence INT NOT NULL,
	message TEXT NOT NULL,
	features JSON NOT NULL,
	recommendations JSON NOT NULL,
	created_at DATETIME NOT NULL,
	INDEX user_created_idx (user_id, created_at)
)`

// MySQLAssessmentRepository история проверок в MySQL
type MySQLAssessmentRepository struct {
	db *sql.DB
}

// OpenMySQL подключается к базе по DSN. parseTime включается принудительно.
func OpenMySQL(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.WithField("addr", cfg.Addr).WithField("db", cfg.DBName).Info("connected to mysql")
	return db, nil
}

// NewMySQLAssessmentRepository оборачивает готовое подключение
func NewMySQLAssessmentRepository(db *sql.DB) *MySQLAssessmentRepository {
	return &MySQLAssessmentRepository{db: db}
}

// Migrate создаёт таблицу, если её нет
func (r *MySQLAssessmentRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAssessmentsTable); err != nil {
		return fmt.Errorf("create assessments table: %w", err)
	}
	return nil
}

// Save сохраняет или обновляет результат
func (r *MySQLAssessmentRepository) Save(ctx context.Context, userID int64, a *entity.RiskAssessment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	features, err := json.Marshal(nonNil(a.DetectedFeatures))
	if err != nil {
		return err
	}
	recs, err := json.Marshal(nonNil(a.Recommendations))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO assessments (id, user_id, status, confidence, message, features, recommendations, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE status = VALUES(status), confidence = VALUES(confidence), message = VALUES(message),
		features = VALUES(features), recommendations = VALUES(recommendations)`,
		a.ID, userID, string(a.Status), a.Confidence, a.Message, string(features), string(recs), a.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("save assessment %s: %w", a.ID, err)
	}
	return nil
}

// Get возвращает результат по ID
func (r *MySQLAssessmentRepository) Get(ctx context.Context, id string) (*entity.RiskAssessment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, status, confidence, message, features, recommendations, created_at FROM assessments WHERE id = ?`, id)

	a, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment %s: %w", id, err)
	}
	return a, nil
}

// ListByUser возвращает результаты пользователя, новые первыми
func (r *MySQLAssessmentRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]entity.RiskAssessment, error) {
	query := `SELECT id, status, confidence, message, features, recommendations, created_at FROM assessments
		WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	list := make([]entity.RiskAssessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

// Delete удаляет результат
func (r *MySQLAssessmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete assessment %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssessment(s scanner) (*entity.RiskAssessment, error) {
	var (
		a              entity.RiskAssessment
		status         string
		features, recs []byte
	)
	if err := s.Scan(&a.ID, &status, &a.Confidence, &a.Message, &features, &recs, &a.Timestamp); err != nil {
		return nil, err
	}
	a.Status = entity.RiskStatus(status)
	if err := json.Unmarshal(features, &a.DetectedFeatures); err != nil {
		return nil, fmt.Errorf("decode features: %w", err)
	}
	if err := json.Unmarshal(recs, &a.Recommendations); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	return &a, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// Проверка реализации интерфейса
var _ port.AssessmentRepository = (*MySQLAssessmentRepository)(nil)
