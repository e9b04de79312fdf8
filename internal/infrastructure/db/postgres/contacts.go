package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinic-api/internal/core/domain"
)

// ContactRepository persists emergency contacts.
type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.EmergencyContact) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO emergency_contacts (name, relationship, phone, email)
		VALUES ($1, nullif($2, ''), $3, nullif($4, ''))
		RETURNING id`,
		contact.Name, contact.Relationship, contact.Phone, contact.Email,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert emergency contact: %w", err)
	}
	return id, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact *domain.EmergencyContact) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE emergency_contacts
		SET name = $1, relationship = nullif($2, ''), phone = $3, email = nullif($4, '')
		WHERE id = $5`,
		contact.Name, contact.Relationship, contact.Phone, contact.Email, contact.ID,
	)
	if err != nil {
		return fmt.Errorf("update emergency contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM emergency_contacts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete emergency contact: %w", err)
	}
	return nil
}
