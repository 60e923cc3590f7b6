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

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

// ReviewRepo implementación del puerto ReviewRepository sobre PostgreSQL.
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador de persistencia para reseñas.
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

// Create persiste una reseña. El par (user_id, product_id) es único.
func (r *ReviewRepo) Create(review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, product_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		review.ID, review.UserID, review.ProductID, review.Rating,
		review.Comment, review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// GetByID obtiene una reseña por ID.
func (r *ReviewRepo) GetByID(id string) (*entity.Review, error) {
	return r.getBy(`r.id = $1`, id)
}

// GetByUserAndProduct obtiene la reseña del usuario sobre un producto, si existe.
func (r *ReviewRepo) GetByUserAndProduct(userID, productID string) (*entity.Review, error) {
	return r.getBy(`r.user_id = $1 AND r.product_id = $2`, userID, productID)
}

func (r *ReviewRepo) getBy(where string, args ...any) (*entity.Review, error) {
	query := `
		SELECT r.id, r.user_id, r.product_id, r.rating, r.comment, COALESCE(u.email, ''), r.created_at, r.updated_at
		FROM reviews r LEFT JOIN users u ON u.id = r.user_id
		WHERE ` + where
	var rv entity.Review
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating, &rv.Comment,
		&rv.UserEmail, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &rv, nil
}

// ListByProduct devuelve las reseñas de un producto con el email del autor, más reciente primero.
func (r *ReviewRepo) ListByProduct(productID string) ([]*entity.Review, error) {
	query := `
		SELECT r.id, r.user_id, r.product_id, r.rating, r.comment, COALESCE(u.email, ''), r.created_at, r.updated_at
		FROM reviews r LEFT JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1 ORDER BY r.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	var list []*entity.Review
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating, &rv.Comment,
			&rv.UserEmail, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, &rv)
	}
	return list, rows.Err()
}

// RatingsByProduct devuelve solo los ratings del producto, para los agregados.
func (r *ReviewRepo) RatingsByProduct(productID string) ([]int, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT rating FROM reviews WHERE product_id = $1`, productID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()
	var ratings []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, n)
	}
	return ratings, rows.Err()
}

// Update actualiza rating y comentario de una reseña.
func (r *ReviewRepo) Update(review *entity.Review) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE reviews SET rating = $2, comment = $3, updated_at = $4 WHERE id = $1`,
		review.ID, review.Rating, review.Comment, review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

// Delete elimina una reseña por ID.
func (r *ReviewRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}
