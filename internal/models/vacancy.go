package models

import "time"

type Vacancy struct {
	ID           int64     `db:"id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	Requirements string    `db:"requirements"`
	ImagePath    *string   `db:"image_path"`
	CreatedAt    time.Time `db:"created_at"`
}
