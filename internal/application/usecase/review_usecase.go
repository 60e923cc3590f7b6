package usecase

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ReviewUseCase casos de uso de reseñas: solo puede reseñar quien compró el
// producto, y una sola vez por producto.
type ReviewUseCase struct {
	reviews repository.ReviewRepository
	orders  repository.OrderRepository
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(reviews repository.ReviewRepository, orders repository.OrderRepository) *ReviewUseCase {
	return &ReviewUseCase{reviews: reviews, orders: orders}
}

// Create crea la reseña del usuario sobre un producto comprado.
func (uc *ReviewUseCase) Create(userID string, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.E(domain.KindValidation, "rating debe estar entre 1 y 5")
	}
	purchased, err := uc.orders.UserPurchasedProduct(userID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, domain.E(domain.KindForbidden, "solo se puede reseñar un producto comprado")
	}
	existing, err := uc.reviews.GetByUserAndProduct(userID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.E(domain.KindDuplicate, "ya existe una reseña tuya para este producto")
	}
	now := time.Now()
	r := &entity.Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.reviews.Create(r); err != nil {
		return nil, err
	}
	return toReviewResponse(r), nil
}

// ListByProduct devuelve las reseñas de un producto, más reciente primero.
func (uc *ReviewUseCase) ListByProduct(productID string) ([]dto.ReviewResponse, error) {
	list, err := uc.reviews.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReviewResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReviewResponse(r))
	}
	return items, nil
}

// Stats calcula los agregados: promedio redondeado a un decimal, total y
// distribución por estrella. Sin reseñas todo queda en cero.
func (uc *ReviewUseCase) Stats(productID string) (*dto.ReviewStatsResponse, error) {
	ratings, err := uc.reviews.RatingsByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := &dto.ReviewStatsResponse{
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(ratings) == 0 {
		return out, nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r
		if r >= 1 && r <= 5 {
			out.Distribution[r]++
		}
	}
	out.TotalReviews = len(ratings)
	out.AverageRating = math.Round(float64(sum)/float64(len(ratings))*10) / 10
	return out, nil
}

// CanReview indica si el usuario puede reseñar: compró el producto y todavía no lo reseñó.
func (uc *ReviewUseCase) CanReview(userID, productID string) (bool, error) {
	purchased, err := uc.orders.UserPurchasedProduct(userID, productID)
	if err != nil {
		return false, err
	}
	if !purchased {
		return false, nil
	}
	existing, err := uc.reviews.GetByUserAndProduct(userID, productID)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

// Update edita la reseña propia.
func (uc *ReviewUseCase) Update(userID, reviewID string, in dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.E(domain.KindValidation, "rating debe estar entre 1 y 5")
	}
	r, err := uc.reviews.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	if r.UserID != userID {
		return nil, domain.E(domain.KindForbidden, "solo se puede editar la reseña propia")
	}
	r.Rating = in.Rating
	r.Comment = strings.TrimSpace(in.Comment)
	r.UpdatedAt = time.Now()
	if err := uc.reviews.Update(r); err != nil {
		return nil, err
	}
	return toReviewResponse(r), nil
}

// Delete elimina una reseña: el autor siempre puede, un admin también.
func (uc *ReviewUseCase) Delete(userID, role, reviewID string) error {
	r, err := uc.reviews.GetByID(reviewID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if r.UserID != userID && role != entity.RoleAdmin {
		return domain.E(domain.KindForbidden, "solo el autor o un admin pueden eliminar la reseña")
	}
	return uc.reviews.Delete(reviewID)
}

func toReviewResponse(r *entity.Review) *dto.ReviewResponse {
	if r == nil {
		return nil
	}
	email := r.UserEmail
	if email == "" {
		email = "Anonymous"
	}
	return &dto.ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		UserEmail: email,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
