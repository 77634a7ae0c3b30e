package outlet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

var ErrOutletNotFound = errors.New("outlet not found")

// Outlet is one row of outlet knowledge. Area rows (Petaling Jaya, Kuala
// Lumpur) carry only a description; concrete outlets carry hours too.
type Outlet struct {
	bun.BaseModel `bun:"table:outlets,alias:o"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Name        string `bun:"name,notnull,unique"`
	OpeningTime string `bun:"opening_time"`
	ClosingTime string `bun:"closing_time"`
	Description string `bun:"description,notnull"`
}

// Area reports whether the row describes an area rather than one outlet.
func (o *Outlet) Area() bool {
	return o.OpeningTime == "" && o.ClosingTime == ""
}

// Store resolves a canonical outlet or area name to its record.
type Store interface {
	Find(ctx context.Context, name string) (*Outlet, error)
}

// Defaults returns the built-in dataset. The Postgres store seeds it on
// first start; the static store serves it directly.
func Defaults() []Outlet {
	return []Outlet{
		{Name: "SS2", OpeningTime: "9:00 AM", ClosingTime: "10:00 PM", Description: "a bustling spot in Petaling Jaya with good vibes"},
		{Name: "SS15", OpeningTime: "8:00 AM", ClosingTime: "9:00 PM", Description: "a lively student hangout spot"},
		{Name: "Damansara", OpeningTime: "7:00 AM", ClosingTime: "11:00 PM", Description: "a cozy spot for early birds in Damansara"},
		{Name: "Petaling Jaya", Description: "several great outlets like SS2, SS15, and Damansara"},
		{Name: "Kuala Lumpur", Description: "several great outlets like our flagship KLCC branch (details not available yet!)"},
	}
}

// StaticStore serves the built-in dataset from memory. It backs the tool in
// tests and in deployments without a database.
type StaticStore struct {
	byName map[string]Outlet
}

func NewStaticStore() *StaticStore {
	s := &StaticStore{byName: make(map[string]Outlet)}
	for _, o := range Defaults() {
		s.byName[strings.ToLower(o.Name)] = o
	}
	return s
}

func (s *StaticStore) Find(_ context.Context, name string) (*Outlet, error) {
	o, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, ErrOutletNotFound
	}
	found := o
	return &found, nil
}

// PostgresStore serves outlet rows from Postgres through bun. Call Init
// once before first use.
type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &PostgresStore{db: db}, nil
}

// Init creates the outlets table when missing and seeds the default rows
// without overwriting operator edits.
func (s *PostgresStore) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*Outlet)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create outlets table: %w", err)
	}
	outlets := Defaults()
	if _, err := s.db.NewInsert().Model(&outlets).On("CONFLICT (name) DO NOTHING").Exec(ctx); err != nil {
		return fmt.Errorf("seed outlets: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, name string) (*Outlet, error) {
	found := new(Outlet)
	err := s.db.NewSelect().Model(found).Where("lower(o.name) = lower(?)", name).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOutletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query outlet: %w", err)
	}
	return found, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
