package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with the given role and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.Role) uuid.UUID {
	t.Helper()

	id := uuid.New()
	suffix := uniqueSuffix()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, role) VALUES ($1, $2, $3, $4)`,
		id, "user-"+suffix+"@example.com", "User "+suffix, string(role),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return id
}

// Student is a seeded student profile.
type Student struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// SeedStudent creates a STUDENT user and its profile.
func SeedStudent(t *testing.T, pool *pgxpool.Pool) Student {
	t.Helper()

	s := Student{ID: uuid.New(), UserID: SeedUser(t, pool, domain.RoleStudent)}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO students (id, user_id, full_name) VALUES ($1, $2, $3)`,
		s.ID, s.UserID, "Student "+uniqueSuffix(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedStudent: %v", err)
	}
	return s
}

// Company is a seeded company profile.
type Company struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// SeedCompany creates a COMPANY user and its profile with zeroed counters.
func SeedCompany(t *testing.T, pool *pgxpool.Pool) Company {
	t.Helper()

	c := Company{ID: uuid.New(), UserID: SeedUser(t, pool, domain.RoleCompany)}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO companies (id, user_id, name) VALUES ($1, $2, $3)`,
		c.ID, c.UserID, "Company "+uniqueSuffix(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCompany: %v", err)
	}
	return c
}

// SeedJob creates a job posting with the given status ("OPEN", "CLOSED", "DRAFT").
func SeedJob(t *testing.T, pool *pgxpool.Pool, companyID uuid.UUID, status string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO jobs (id, company_id, title, status) VALUES ($1, $2, $3, $4)`,
		id, companyID, "Job "+uniqueSuffix(), status,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedJob: %v", err)
	}
	return id
}

// SeedJobViews inserts n anonymous views of a job from distinct addresses.
// Counters are not touched.
func SeedJobViews(t *testing.T, pool *pgxpool.Pool, jobID uuid.UUID, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		_, err := pool.Exec(context.Background(),
			`INSERT INTO job_views (job_id, ip_address) VALUES ($1, $2)`,
			jobID, "10.0.0."+uniqueSuffix(),
		)
		if err != nil {
			t.Fatalf("testhelper: SeedJobViews: %v", err)
		}
	}
}

// SeedJobView inserts one view with an explicit viewer and address.
func SeedJobView(t *testing.T, pool *pgxpool.Pool, jobID uuid.UUID, viewerID *uuid.UUID, ip string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO job_views (job_id, viewer_id, ip_address) VALUES ($1, $2, $3)`,
		jobID, viewerID, ip,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedJobView: %v", err)
	}
}

// SeedApplication creates an application with the given status. Counters are not touched.
func SeedApplication(t *testing.T, pool *pgxpool.Pool, jobID, studentID uuid.UUID, status string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO applications (id, job_id, student_id, status) VALUES ($1, $2, $3, $4)`,
		id, jobID, studentID, status,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedApplication: %v", err)
	}
	return id
}

// SeedFollower makes a student follow a company. Counters are not touched.
func SeedFollower(t *testing.T, pool *pgxpool.Pool, companyID, studentID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO company_followers (company_id, student_id) VALUES ($1, $2)`,
		companyID, studentID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFollower: %v", err)
	}
}

// ReadInt reads a single integer column of one row, e.g.
// ReadInt(t, pool, `SELECT view_count FROM jobs WHERE id = $1`, id).
func ReadInt(t *testing.T, pool *pgxpool.Pool, query string, args ...any) int64 {
	t.Helper()

	var n int64
	if err := pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("testhelper: ReadInt: %v", err)
	}
	return n
}
