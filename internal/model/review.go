package model

import "time"

const (
	MinRating = 0
	MaxRating = 5
)

type Review struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movieId"`
	Username  string    `json:"username"`
	Review    string    `json:"review"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReviewListData struct {
	Reviews []Review `json:"reviews"`
}
