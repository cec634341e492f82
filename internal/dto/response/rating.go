package response

import (
	"time"

	"service-marketplace/internal/data/entity"
)

type RatingResponse struct {
	ID            string     `json:"id"`
	BookingID     string     `json:"booking_id"`
	ClientName    string     `json:"client_name"`
	Score         int        `json:"score"`
	Comment       *string    `json:"comment,omitempty"`
	Anonymous     bool       `json:"anonymous"`
	ProviderReply *string    `json:"provider_reply,omitempty"`
	RepliedAt     *time.Time `json:"replied_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ProviderStatsResponse struct {
	ProviderID   string      `json:"provider_id"`
	AverageScore float64     `json:"average_score"`
	TotalRatings int         `json:"total_ratings"`
	ScoreBuckets map[int]int `json:"score_buckets"`
}

// RatingToResponse hides the client name when the rating is anonymous.
func RatingToResponse(rating *entity.Rating, clientName string) RatingResponse {
	name := clientName
	if rating.Anonymous {
		name = "Anonymous"
	}

	return RatingResponse{
		ID:            rating.ID.String(),
		BookingID:     rating.BookingID.String(),
		ClientName:    name,
		Score:         rating.Score,
		Comment:       rating.Comment,
		Anonymous:     rating.Anonymous,
		ProviderReply: rating.ProviderReply,
		RepliedAt:     rating.RepliedAt,
		CreatedAt:     rating.CreatedAt,
	}
}
