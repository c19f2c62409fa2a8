package domain

import "time"

// Project is a portfolio project shown on the landing page.
type Project struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Github       string    `json:"github"`
	Demo         string    `json:"demo"`
	Technologies string    `json:"technologies"`
	CreatedAt    time.Time `json:"created_at"`
}

// Certificate is a course or certification entry.
// Date is a display string and is not parsed.
type Certificate struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Institution string    `json:"institution"`
	Date        string    `json:"date"`
	Image       string    `json:"image"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
}

// Fields holds column values keyed by column name. On create it carries the
// submitted form; on update only the changed columns.
type Fields map[string]string

// Upload is an image submitted alongside a create request.
type Upload struct {
	Filename string
	Size     int64
	Data     []byte
}
