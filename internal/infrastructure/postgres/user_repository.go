package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y rellena su id.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO usuario (nombre, email, passwd, rol, activo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, user.Role, user.Active).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return classify("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por id; nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int) (*entity.User, error) {
	return r.getOne(ctx, `SELECT id, nombre, email, passwd, rol, activo FROM usuario WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email; nil si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT id, nombre, email, passwd, rol, activo FROM usuario WHERE email = $1`, email)
}

// Update persiste nombre, email, password, rol y estado.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE usuario SET nombre = $2, email = $3, passwd = $4, rol = $5, activo = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return classify("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List usuarios filtrados por nombre/email y estado.
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	where := squirrel.And{}
	if f.Search != "" {
		where = append(where, squirrel.Or{
			squirrel.ILike{"nombre": likePattern(f.Search)},
			squirrel.ILike{"email": likePattern(f.Search)},
		})
	}
	if f.Active != nil {
		where = append(where, squirrel.Eq{"activo": *f.Active})
	}

	total, err := countRows(ctx, r.q, psql.Select("COUNT(*)").From("usuario").Where(where), "count users")
	if err != nil {
		return nil, 0, err
	}

	b := psql.Select("id", "nombre", "email", "passwd", "rol", "activo").From("usuario").Where(where).OrderBy("id")
	sql, args, err := paginate(b, f.Page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list users: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, classify("list users", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, classify("scan user", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify("list users", err)
	}
	return list, total, nil
}

func (r *UserRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM usuario WHERE id = $1`, id)
	if err != nil {
		return classify("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) HasMovements(ctx context.Context, id int) (bool, error) {
	return exists(ctx, r.q, "movimientos de usuario", `SELECT 1 FROM movimientos WHERE id_usuario = $1`, id)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get user", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Active); err != nil {
		return nil, err
	}
	return &u, nil
}
