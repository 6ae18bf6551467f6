package postgres

import (
	"time"

	"github.com/mcoot/memorymatch-go/internal/model"
)

// Row types mirror the table layout; conversion keeps the domain model free
// of db tags.

type userRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	Company   string    `db:"company"`
	CreatedAt time.Time `db:"created_at"`
}

func userFromModel(u *model.User) userRow {
	return userRow{
		ID:        string(u.ID),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Company:   u.Company,
		CreatedAt: u.CreatedAt,
	}
}

func (r userRow) toModel() *model.User {
	return &model.User{
		ID:        model.UserID(r.ID),
		Name:      r.Name,
		Email:     r.Email,
		Role:      r.Role,
		Company:   r.Company,
		CreatedAt: r.CreatedAt,
	}
}

type credentialRow struct {
	UserID         string    `db:"user_id"`
	Email          string    `db:"email"`
	AccessCodeHash string    `db:"access_code_hash"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func credentialFromModel(c *model.Credential) credentialRow {
	return credentialRow{
		UserID:         string(c.UserID),
		Email:          c.Email,
		AccessCodeHash: c.AccessCodeHash,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (r credentialRow) toModel() *model.Credential {
	return &model.Credential{
		UserID:         model.UserID(r.UserID),
		Email:          r.Email,
		AccessCodeHash: r.AccessCodeHash,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type scoreRow struct {
	UserID    string    `db:"user_id"`
	Time      *float64  `db:"play_time"`
	Points    int       `db:"points"`
	Completed bool      `db:"completed"`
	Attempts  int       `db:"attempts"`
	UpdatedAt time.Time `db:"updated_at"`
}

func scoreFromModel(s *model.Score) scoreRow {
	return scoreRow{
		UserID:    string(s.UserID),
		Time:      s.Time,
		Points:    s.Points,
		Completed: s.Completed,
		Attempts:  s.Attempts,
		UpdatedAt: s.UpdatedAt,
	}
}

func (r scoreRow) toModel() *model.Score {
	return &model.Score{
		UserID:    model.UserID(r.UserID),
		Time:      r.Time,
		Points:    r.Points,
		Completed: r.Completed,
		Attempts:  r.Attempts,
		UpdatedAt: r.UpdatedAt,
	}
}
