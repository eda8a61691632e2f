package store

import (
	"database/sql"
	"time"
)

// Translatable is a unit of translatable text referenced by archive entities.
// It carries no text itself; translations are stored per language in the
// short/long translation tables.
type Translatable struct {
	ID        int64
	CreatedAt time.Time
}

// Translation is one stored (translatable, language, text) row. Short and long
// rows share this shape; which table a row lives in is a storage detail.
type Translation struct {
	ID             int64
	TranslatableID int64
	Language       string
	Translation    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Player is a person or an organization which regularly makes public statements.
type Player struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Role is an official function or position a player had at a certain point in time.
// Its name is a translatable reference.
type Role struct {
	ID        int64
	NameID    int64
	CreatedAt time.Time
}

// Engagement records that a player held a role during a certain time period.
type Engagement struct {
	ID        int64
	PlayerID  int64
	RoleID    int64
	StartDate time.Time
	EndDate   sql.NullTime
}

// Medium delivers information to the public.
type Medium struct {
	ID        int64
	Name      string
	Slug      string
	URL       string
	CreatedAt time.Time
}

// Topic is an event or being in the world which is talked about in public.
// Headline and description are translatable references.
type Topic struct {
	ID            int64
	HeadlineID    int64
	DescriptionID int64
	CreatedAt     time.Time
}

// Statement is a sequence of sentences produced by a player at a certain point
// in time. Content is a translatable reference; Language is the language the
// statement was originally made in.
type Statement struct {
	ID        int64
	PlayerID  int64
	Language  string
	ContentID int64
	StatedOn  time.Time
	StatedAt  sql.NullString // HH:MM, optional
	Latitude  sql.NullFloat64
	Longitude sql.NullFloat64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Publication is the appearance of a statement in a medium.
type Publication struct {
	ID          int64
	StatementID int64
	MediumID    int64
	PublishedOn time.Time
	PublishedAt sql.NullString
	URL         string
	CreatedAt   time.Time
}

// Event is a system event log entry.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}
