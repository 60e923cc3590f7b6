package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación del puerto ProfileRepository sobre PostgreSQL
// (tabla users: una fila de perfil por cuenta de auth, mismo ID).
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador de persistencia para perfiles.
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

const profileColumns = `id, email, name, role, password_hash, created_at, updated_at`

// Create inserta la fila de perfil. El ID viene asignado por el proveedor de auth.
func (r *ProfileRepo) Create(profile *entity.Profile) error {
	query := `
		INSERT INTO users (id, email, name, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		profile.ID, profile.Email, profile.Name, profile.Role,
		profile.PasswordHash, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByID obtiene el perfil por ID de cuenta.
func (r *ProfileRepo) GetByID(id string) (*entity.Profile, error) {
	return r.getBy(`id = $1`, id)
}

// GetByEmail obtiene el perfil por email (resolución de identidad al iniciar sesión).
func (r *ProfileRepo) GetByEmail(email string) (*entity.Profile, error) {
	return r.getBy(`email = $1`, email)
}

func (r *ProfileRepo) getBy(where string, arg any) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM users WHERE ` + where
	var p entity.Profile
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Email, &p.Name, &p.Role, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Update actualiza nombre, rol y hash de contraseña del perfil.
func (r *ProfileRepo) Update(profile *entity.Profile) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET name = $2, role = $3, password_hash = $4, updated_at = $5 WHERE id = $1`,
		profile.ID, profile.Name, profile.Role, profile.PasswordHash, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
