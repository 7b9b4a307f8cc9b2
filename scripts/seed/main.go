package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/payroll-admin-api/pkg/config"
	"github.com/noah-isme/payroll-admin-api/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
    id            UUID PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    full_name     TEXT NOT NULL,
    role          TEXT NOT NULL,
    position      TEXT,
    active        BOOLEAN NOT NULL DEFAULT TRUE,
    last_login    TIMESTAMPTZ,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS payroll_configurations (
    id               UUID PRIMARY KEY,
    kind             TEXT NOT NULL,
    name             TEXT NOT NULL,
    status           TEXT NOT NULL DEFAULT 'DRAFT',
    attributes       JSONB NOT NULL DEFAULT '{}',
    created_by       UUID NOT NULL,
    approved_by      UUID,
    approved_at      TIMESTAMPTZ,
    rejection_reason TEXT,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS payroll_configurations_kind_name
    ON payroll_configurations (kind, LOWER(name));
CREATE INDEX IF NOT EXISTS payroll_configurations_kind_status
    ON payroll_configurations (kind, status);

CREATE TABLE IF NOT EXISTS company_settings (
    id          INT PRIMARY KEY,
    pay_date    INT NOT NULL,
    time_zone   TEXT NOT NULL,
    currency    TEXT NOT NULL,
    status      TEXT NOT NULL DEFAULT 'DRAFT',
    updated_by  UUID,
    approved_by UUID,
    approved_at TIMESTAMPTZ,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS audit_logs (
    id          UUID PRIMARY KEY,
    employee_id UUID,
    action      TEXT NOT NULL,
    resource    TEXT NOT NULL,
    resource_id TEXT,
    old_values  JSONB,
    new_values  JSONB,
    ip_address  TEXT,
    user_agent  TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS audit_logs_resource
    ON audit_logs (resource, resource_id);
`

type seedEmployee struct {
	email    string
	fullName string
	role     string
	password string
}

var seedEmployees = []seedEmployee{
	{email: "admin@example.com", fullName: "System Administrator", role: "ADMIN", password: "admin-changeme"},
	{email: "hr@example.com", fullName: "HR Manager", role: "HR_MANAGER", password: "hr-changeme"},
}

func main() {
	var withSchema bool
	flag.BoolVar(&withSchema, "schema", true, "create tables before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if withSchema {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			log.Fatalf("failed to apply schema: %v", err)
		}
		log.Println("schema applied")
	}

	for _, emp := range seedEmployees {
		if err := upsertEmployee(ctx, db, emp); err != nil {
			log.Fatalf("failed to seed %s: %v", emp.email, err)
		}
		log.Printf("seeded %s (%s)", emp.email, emp.role)
	}
}

func upsertEmployee(ctx context.Context, db *sqlx.DB, emp seedEmployee) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(emp.password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO employees (id, email, full_name, role, password_hash, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (email) DO UPDATE
		SET full_name = EXCLUDED.full_name, role = EXCLUDED.role, updated_at = NOW()`,
		uuid.NewString(), emp.email, emp.fullName, emp.role, string(hash))
	return err
}
