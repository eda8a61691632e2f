package store

import (
	"context"
	"database/sql"
	"time"
)

// CreatePlayerParams holds the values for a new player.
type CreatePlayerParams struct {
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePlayer inserts a new player.
func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO players (name, slug, created_at, updated_at) VALUES (?, ?, ?, ?)
		 RETURNING id, name, slug, created_at, updated_at`,
		arg.Name, arg.Slug, arg.CreatedAt, arg.UpdatedAt,
	)
	var p Player
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GetPlayerByID fetches a player by id.
func (q *Queries) GetPlayerByID(ctx context.Context, id int64) (Player, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM players WHERE id = ?`, id)
	var p Player
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GetPlayerBySlug fetches a player by slug.
func (q *Queries) GetPlayerBySlug(ctx context.Context, slug string) (Player, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM players WHERE slug = ?`, slug)
	var p Player
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListPlayers returns all players ordered by name.
func (q *Queries) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM players ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// DeletePlayer removes a player. Engagements, statements and publications
// cascade; orphaned translatables are left for the sweep.
func (q *Queries) DeletePlayer(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	return err
}

// CreateRole inserts a new role pointing at its translatable name.
func (q *Queries) CreateRole(ctx context.Context, nameID int64, now time.Time) (Role, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO roles (name_id, created_at) VALUES (?, ?) RETURNING id, name_id, created_at`,
		nameID, now,
	)
	var r Role
	err := row.Scan(&r.ID, &r.NameID, &r.CreatedAt)
	return r, err
}

// GetRoleByID fetches a role by id.
func (q *Queries) GetRoleByID(ctx context.Context, id int64) (Role, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, name_id, created_at FROM roles WHERE id = ?`, id)
	var r Role
	err := row.Scan(&r.ID, &r.NameID, &r.CreatedAt)
	return r, err
}

// DeleteRole removes a role; its engagements cascade.
func (q *Queries) DeleteRole(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id)
	return err
}

// CreateEngagementParams holds the values for a new engagement.
type CreateEngagementParams struct {
	PlayerID  int64
	RoleID    int64
	StartDate time.Time
	EndDate   sql.NullTime
}

// CreateEngagement inserts a new engagement.
func (q *Queries) CreateEngagement(ctx context.Context, arg CreateEngagementParams) (Engagement, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO engagements (player_id, role_id, start_date, end_date) VALUES (?, ?, ?, ?)
		 RETURNING id, player_id, role_id, start_date, end_date`,
		arg.PlayerID, arg.RoleID, arg.StartDate, arg.EndDate,
	)
	var e Engagement
	err := row.Scan(&e.ID, &e.PlayerID, &e.RoleID, &e.StartDate, &e.EndDate)
	return e, err
}

// ListEngagementsByPlayer returns a player's engagements ordered by start date.
func (q *Queries) ListEngagementsByPlayer(ctx context.Context, playerID int64) ([]Engagement, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, player_id, role_id, start_date, end_date FROM engagements
		 WHERE player_id = ? ORDER BY start_date`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var engagements []Engagement
	for rows.Next() {
		var e Engagement
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.RoleID, &e.StartDate, &e.EndDate); err != nil {
			return nil, err
		}
		engagements = append(engagements, e)
	}
	return engagements, rows.Err()
}

// CreateMediumParams holds the values for a new medium.
type CreateMediumParams struct {
	Name      string
	Slug      string
	URL       string
	CreatedAt time.Time
}

// CreateMedium inserts a new medium.
func (q *Queries) CreateMedium(ctx context.Context, arg CreateMediumParams) (Medium, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO media (name, slug, url, created_at) VALUES (?, ?, ?, ?)
		 RETURNING id, name, slug, url, created_at`,
		arg.Name, arg.Slug, arg.URL, arg.CreatedAt,
	)
	var m Medium
	err := row.Scan(&m.ID, &m.Name, &m.Slug, &m.URL, &m.CreatedAt)
	return m, err
}

// GetMediumByID fetches a medium by id.
func (q *Queries) GetMediumByID(ctx context.Context, id int64) (Medium, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, name, slug, url, created_at FROM media WHERE id = ?`, id)
	var m Medium
	err := row.Scan(&m.ID, &m.Name, &m.Slug, &m.URL, &m.CreatedAt)
	return m, err
}

// CreateTopicParams holds the translatable references for a new topic.
type CreateTopicParams struct {
	HeadlineID    int64
	DescriptionID int64
	CreatedAt     time.Time
}

// CreateTopic inserts a new topic.
func (q *Queries) CreateTopic(ctx context.Context, arg CreateTopicParams) (Topic, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO topics (headline_id, description_id, created_at) VALUES (?, ?, ?)
		 RETURNING id, headline_id, description_id, created_at`,
		arg.HeadlineID, arg.DescriptionID, arg.CreatedAt,
	)
	var t Topic
	err := row.Scan(&t.ID, &t.HeadlineID, &t.DescriptionID, &t.CreatedAt)
	return t, err
}

// GetTopicByID fetches a topic by id.
func (q *Queries) GetTopicByID(ctx context.Context, id int64) (Topic, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, headline_id, description_id, created_at FROM topics WHERE id = ?`, id)
	var t Topic
	err := row.Scan(&t.ID, &t.HeadlineID, &t.DescriptionID, &t.CreatedAt)
	return t, err
}

// DeleteTopic removes a topic; statement links cascade.
func (q *Queries) DeleteTopic(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id)
	return err
}

// CreateStatementParams holds the values for a new statement.
type CreateStatementParams struct {
	PlayerID  int64
	Language  string
	ContentID int64
	StatedOn  time.Time
	StatedAt  sql.NullString
	Latitude  sql.NullFloat64
	Longitude sql.NullFloat64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateStatement inserts a new statement.
func (q *Queries) CreateStatement(ctx context.Context, arg CreateStatementParams) (Statement, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO statements (player_id, language, content_id, stated_on, stated_at, latitude, longitude, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id, player_id, language, content_id, stated_on, stated_at, latitude, longitude, created_at, updated_at`,
		arg.PlayerID, arg.Language, arg.ContentID, arg.StatedOn, arg.StatedAt,
		arg.Latitude, arg.Longitude, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanStatement(row)
}

// GetStatementByID fetches a statement by id.
func (q *Queries) GetStatementByID(ctx context.Context, id int64) (Statement, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, player_id, language, content_id, stated_on, stated_at, latitude, longitude, created_at, updated_at
		 FROM statements WHERE id = ?`, id)
	return scanStatement(row)
}

// TouchStatement bumps a statement's updated_at after a content edit.
func (q *Queries) TouchStatement(ctx context.Context, id int64, now time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE statements SET updated_at = ? WHERE id = ?`, now, id)
	return err
}

// DeleteStatement removes a statement; topic links, references and
// publications cascade.
func (q *Queries) DeleteStatement(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM statements WHERE id = ?`, id)
	return err
}

// ListStatementsByPlayer returns a player's statements, newest first.
func (q *Queries) ListStatementsByPlayer(ctx context.Context, playerID int64) ([]Statement, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, player_id, language, content_id, stated_on, stated_at, latitude, longitude, created_at, updated_at
		 FROM statements WHERE player_id = ? ORDER BY stated_on DESC, id DESC`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statements []Statement
	for rows.Next() {
		var s Statement
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.Language, &s.ContentID, &s.StatedOn,
			&s.StatedAt, &s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		statements = append(statements, s)
	}
	return statements, rows.Err()
}

func scanStatement(row *sql.Row) (Statement, error) {
	var s Statement
	err := row.Scan(&s.ID, &s.PlayerID, &s.Language, &s.ContentID, &s.StatedOn,
		&s.StatedAt, &s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// AddStatementTopic links a statement to a topic it touches.
func (q *Queries) AddStatementTopic(ctx context.Context, statementID, topicID int64) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO statement_topics (statement_id, topic_id) VALUES (?, ?)`,
		statementID, topicID)
	return err
}

// ListStatementTopics returns the topic ids a statement touches.
func (q *Queries) ListStatementTopics(ctx context.Context, statementID int64) ([]int64, error) {
	return q.listIDs(ctx,
		`SELECT topic_id FROM statement_topics WHERE statement_id = ? ORDER BY topic_id`,
		statementID)
}

// AddStatementReference links a statement to another statement it references
// (answer, question, criticism, etc.).
func (q *Queries) AddStatementReference(ctx context.Context, statementID, referencedID int64) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO statement_references (statement_id, referenced_id) VALUES (?, ?)`,
		statementID, referencedID)
	return err
}

// ListStatementReferences returns the ids of statements a statement references.
func (q *Queries) ListStatementReferences(ctx context.Context, statementID int64) ([]int64, error) {
	return q.listIDs(ctx,
		`SELECT referenced_id FROM statement_references WHERE statement_id = ? ORDER BY referenced_id`,
		statementID)
}

func (q *Queries) listIDs(ctx context.Context, query string, arg int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreatePublicationParams holds the values for a new publication.
type CreatePublicationParams struct {
	StatementID int64
	MediumID    int64
	PublishedOn time.Time
	PublishedAt sql.NullString
	URL         string
	CreatedAt   time.Time
}

// CreatePublication inserts a new publication.
func (q *Queries) CreatePublication(ctx context.Context, arg CreatePublicationParams) (Publication, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO publications (statement_id, medium_id, published_on, published_at, url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING id, statement_id, medium_id, published_on, published_at, url, created_at`,
		arg.StatementID, arg.MediumID, arg.PublishedOn, arg.PublishedAt, arg.URL, arg.CreatedAt,
	)
	var p Publication
	err := row.Scan(&p.ID, &p.StatementID, &p.MediumID, &p.PublishedOn, &p.PublishedAt, &p.URL, &p.CreatedAt)
	return p, err
}

// ListPublicationsByStatement returns the publications documenting a statement.
func (q *Queries) ListPublicationsByStatement(ctx context.Context, statementID int64) ([]Publication, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, statement_id, medium_id, published_on, published_at, url, created_at
		 FROM publications WHERE statement_id = ? ORDER BY published_on`, statementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pubs []Publication
	for rows.Next() {
		var p Publication
		if err := rows.Scan(&p.ID, &p.StatementID, &p.MediumID, &p.PublishedOn,
			&p.PublishedAt, &p.URL, &p.CreatedAt); err != nil {
			return nil, err
		}
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}
