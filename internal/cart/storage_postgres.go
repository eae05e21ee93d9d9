package cart

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresStorage keeps slots in the cart_slots table.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (p *PostgresStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := p.db.QueryRowContext(ctx, `
	SELECT payload
	FROM cart_slots
	WHERE slot_key = $1
	`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (p *PostgresStorage) Save(ctx context.Context, key string, data []byte) error {
	_, err := p.db.ExecContext(ctx, `
	INSERT INTO cart_slots (slot_key, payload, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (slot_key)
	DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`, key, data)
	return err
}
