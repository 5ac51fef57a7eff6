package postgres

import (
	"context"
	"time"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
)

type memberRepository struct {
	db DBTX
}

func NewMemberRepository(db DBTX) repository.MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, full_name, is_child, responsible_id, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, ''), COALESCE(heard_about, ''), COALESCE(role, ''), diet, COALESCE(observations, ''), created_on, updated_on`

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (full_name, is_child, responsible_id, phone, email, address, heard_about, role, diet, observations, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12) RETURNING id`
	now := time.Now().Format("2006-01-02")
	m.CreatedOn = now
	m.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		m.FullName, m.IsChild, m.ResponsibleID, m.Phone, m.Email, m.Address,
		m.HeardAbout, string(m.Role), m.Diet, m.Observations, m.CreatedOn, m.UpdatedOn,
	).Scan(&m.ID)
}

func (r *memberRepository) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	return scanMemberFrom(r.db.QueryRowContext(ctx, query, id))
}

func (r *memberRepository) Update(ctx context.Context, m *domain.Member) error {
	query := `UPDATE members SET full_name=$1, is_child=$2, responsible_id=$3, phone=$4, email=$5, address=$6, heard_about=$7, role=NULLIF($8, ''), diet=$9, observations=$10, updated_on=$11 WHERE id=$12`
	m.UpdatedOn = time.Now().Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query,
		m.FullName, m.IsChild, m.ResponsibleID, m.Phone, m.Email, m.Address,
		m.HeardAbout, string(m.Role), m.Diet, m.Observations, m.UpdatedOn, m.ID)
	return err
}

func (r *memberRepository) UpdateRole(ctx context.Context, id int32, role domain.Role) error {
	query := `UPDATE members SET role=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, string(role), time.Now().Format("2006-01-02"), id)
	return err
}

func (r *memberRepository) List(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY full_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMemberFrom(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (r *memberRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM members`).Scan(&count)
	return count, err
}

func (r *memberRepository) CountByRole(ctx context.Context) (map[domain.Role]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, count(*) FROM members WHERE role IS NOT NULL GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Role]int32)
	for rows.Next() {
		var role string
		var count int32
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		counts[domain.Role(role)] = count
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMemberFrom(s rowScanner) (*domain.Member, error) {
	m := &domain.Member{}
	var role string
	var createdOn, updatedOn time.Time
	err := s.Scan(&m.ID, &m.FullName, &m.IsChild, &m.ResponsibleID, &m.Phone, &m.Email,
		&m.Address, &m.HeardAbout, &role, &m.Diet, &m.Observations, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	m.Role = domain.Role(role)
	m.CreatedOn = createdOn.Format("2006-01-02")
	m.UpdatedOn = updatedOn.Format("2006-01-02")
	return m, nil
}
