package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IshaanVijayPuniya/Camel-Care/internal/models"
)

// Result caps. Browse pages stay small; the API allows a larger export.
const (
	BrowseListingLimit = 30
	APIListingLimit    = 200
	BrowseEventLimit   = 10
	InboxLimit         = 20
)

// PostgresStore handles all marketplace persistence.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the five tables if they don't exist. Listings,
// messages and events restrict user deletion (no cascade); profiles
// follow their user.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			username      VARCHAR(80)  UNIQUE NOT NULL,
			email         VARCHAR(200) UNIQUE NOT NULL,
			password_hash VARCHAR(300) NOT NULL,
			role          VARCHAR(50)  NOT NULL,
			created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS profiles (
			id        BIGSERIAL PRIMARY KEY,
			user_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			full_name VARCHAR(200) NOT NULL DEFAULT '',
			phone     VARCHAR(50)  NOT NULL DEFAULT '',
			location  VARCHAR(200) NOT NULL DEFAULT '',
			bio       TEXT         NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS listings (
			id          BIGSERIAL PRIMARY KEY,
			title       VARCHAR(200) NOT NULL,
			description TEXT         NOT NULL DEFAULT '',
			owner_id    BIGINT NOT NULL REFERENCES users(id),
			category    VARCHAR(80)  NOT NULL DEFAULT '',
			price       NUMERIC,
			quantity    VARCHAR(80)  NOT NULL DEFAULT '',
			location    VARCHAR(200) NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS messages (
			id          BIGSERIAL PRIMARY KEY,
			sender_id   BIGINT NOT NULL REFERENCES users(id),
			receiver_id BIGINT NOT NULL REFERENCES users(id),
			subject     VARCHAR(200) NOT NULL,
			body        TEXT         NOT NULL,
			created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS events (
			id           BIGSERIAL PRIMARY KEY,
			title        VARCHAR(200) NOT NULL,
			description  TEXT         NOT NULL DEFAULT '',
			date         DATE         NOT NULL,
			organizer_id BIGINT NOT NULL REFERENCES users(id),
			created_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ── Users ────────────────────────────────────────────────

func (s *PostgresStore) CreateUser(ctx context.Context, username, email, passwordHash string, role models.Role) (*models.User, error) {
	u := models.User{Username: username, Email: email, PasswordHash: passwordHash, Role: role}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		username, email, passwordHash, role,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

const userColumns = `id, username, email, password_hash, role, created_at`

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// UsernameOrEmailTaken reports whether either value is already used.
// The unique constraints remain the real guard; this only drives the
// friendly conflict message on the register form.
func (s *PostgresStore) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	var taken bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`,
		username, email,
	).Scan(&taken)
	return taken, err
}

func (s *PostgresStore) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

// ── Profiles ─────────────────────────────────────────────

func (s *PostgresStore) CreateProfile(ctx context.Context, p *models.Profile) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id, full_name, phone, location, bio)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		p.UserID, p.FullName, p.Phone, p.Location, p.Bio,
	).Scan(&p.ID)
}

func (s *PostgresStore) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	var p models.Profile
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, full_name, phone, location, bio
		 FROM profiles WHERE user_id = $1`, userID,
	).Scan(&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.Location, &p.Bio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ── Listings ─────────────────────────────────────────────

func (s *PostgresStore) CreateListing(ctx context.Context, l *models.Listing) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO listings (title, description, owner_id, category, price, quantity, location)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		l.Title, l.Description, l.OwnerID, l.Category, l.Price, l.Quantity, l.Location,
	).Scan(&l.ID, &l.CreatedAt)
}

const listingColumns = `l.id, l.title, l.description, l.owner_id, u.username,
	l.category, l.price, l.quantity, l.location, l.created_at`

func scanListings(rows pgx.Rows) ([]models.Listing, error) {
	defer rows.Close()
	listings := []models.Listing{}
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.OwnerID, &l.OwnerUsername,
			&l.Category, &l.Price, &l.Quantity, &l.Location, &l.CreatedAt); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// ListListings returns listings newest first, optionally filtered by a
// case-insensitive substring over title or description (q) and an exact
// category match.
func (s *PostgresStore) ListListings(ctx context.Context, q, category string, limit int) ([]models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings l JOIN users u ON u.id = l.owner_id`
	var conds []string
	var args []any
	if q != "" {
		args = append(args, "%"+q+"%")
		conds = append(conds, fmt.Sprintf("(l.title ILIKE $%d OR l.description ILIKE $%d)", len(args), len(args)))
	}
	if category != "" {
		args = append(args, category)
		conds = append(conds, fmt.Sprintf("l.category = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY l.created_at DESC LIMIT $%d", len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanListings(rows)
}

func (s *PostgresStore) ListListingsByOwner(ctx context.Context, ownerID int64) ([]models.Listing, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+listingColumns+` FROM listings l JOIN users u ON u.id = l.owner_id
		 WHERE l.owner_id = $1 ORDER BY l.created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	return scanListings(rows)
}

func (s *PostgresStore) GetListingByID(ctx context.Context, id int64) (*models.Listing, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+listingColumns+` FROM listings l JOIN users u ON u.id = l.owner_id
		 WHERE l.id = $1`, id)
	if err != nil {
		return nil, err
	}
	listings, err := scanListings(rows)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, ErrNotFound
	}
	return &listings[0], nil
}

// ── Messages ─────────────────────────────────────────────

func (s *PostgresStore) CreateMessage(ctx context.Context, m *models.Message) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO messages (sender_id, receiver_id, subject, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		m.SenderID, m.ReceiverID, m.Subject, m.Body,
	).Scan(&m.ID, &m.CreatedAt)
}

// ListMessagesByReceiver returns the receiver's inbox, newest first.
func (s *PostgresStore) ListMessagesByReceiver(ctx context.Context, receiverID int64, limit int) ([]models.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT m.id, m.sender_id, u.username, m.receiver_id, m.subject, m.body, m.created_at
		 FROM messages m JOIN users u ON u.id = m.sender_id
		 WHERE m.receiver_id = $1
		 ORDER BY m.created_at DESC LIMIT $2`, receiverID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	msgs := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.SenderUsername, &m.ReceiverID,
			&m.Subject, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// ── Events ───────────────────────────────────────────────

func (s *PostgresStore) CreateEvent(ctx context.Context, e *models.Event) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO events (title, description, date, organizer_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.Title, e.Description, e.Date, e.OrganizerID,
	).Scan(&e.ID, &e.CreatedAt)
}

const eventColumns = `id, title, description, date, organizer_id, created_at`

func scanEvents(rows pgx.Rows) ([]models.Event, error) {
	defer rows.Close()
	events := []models.Event{}
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.OrganizerID, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ListEvents returns events soonest first.
func (s *PostgresStore) ListEvents(ctx context.Context, limit int) ([]models.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY date ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (s *PostgresStore) ListEventsByOrganizer(ctx context.Context, organizerID int64) ([]models.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE organizer_id = $1 ORDER BY date ASC`, organizerID)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}
