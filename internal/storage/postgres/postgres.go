package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/oceandash/ocean-api/internal/domain/models"
	"github.com/oceandash/ocean-api/internal/storage"
)

type Storage struct {
	db *sql.DB
}

func New(dbUrl string) (*Storage, error) {
	db, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return nil, fmt.Errorf("database connection error %s", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect database error %s", err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Stop() error {
	return s.db.Close()
}

func (s *Storage) SaveUser(ctx context.Context, usuario string, passHash []byte) (int, error) {
	const op = "storage.postgres.SaveUser"

	var id int
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO users (usuario, password_hash) VALUES ($1, $2) RETURNING id",
		usuario, string(passHash),
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, storage.ErrUserExists
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, usuario string) (*models.User, error) {
	const op = "storage.postgres.GetUserByUsername"

	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, usuario, password_hash, created_at FROM users WHERE usuario = $1",
		usuario,
	).Scan(&user.ID, &user.Usuario, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.postgres.GetUserByID"

	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, usuario, password_hash, created_at FROM users WHERE id = $1",
		id,
	).Scan(&user.ID, &user.Usuario, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (s *Storage) SaveTask(ctx context.Context, task *models.Task) (int, error) {
	const op = "storage.postgres.SaveTask"

	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO tasks (titulo, descricao, status, usuario_id)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		task.Titulo, task.Descricao, task.Status, task.UsuarioID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) ListTasks(ctx context.Context, userID int) ([]models.Task, error) {
	const op = "storage.postgres.ListTasks"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, titulo, descricao, status, data_criacao, usuario_id
		 FROM tasks WHERE usuario_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Titulo, &t.Descricao, &t.Status, &t.DataCriacao, &t.UsuarioID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tasks, nil
}

func (s *Storage) GetTask(ctx context.Context, id, userID int) (*models.Task, error) {
	const op = "storage.postgres.GetTask"

	var t models.Task
	err := s.db.QueryRowContext(ctx,
		`SELECT id, titulo, descricao, status, data_criacao, usuario_id
		 FROM tasks WHERE id = $1 AND usuario_id = $2`,
		id, userID,
	).Scan(&t.ID, &t.Titulo, &t.Descricao, &t.Status, &t.DataCriacao, &t.UsuarioID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &t, nil
}

func (s *Storage) UpdateTask(ctx context.Context, task *models.Task) error {
	const op = "storage.postgres.UpdateTask"

	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET titulo = $1, descricao = $2, status = $3
		 WHERE id = $4 AND usuario_id = $5`,
		task.Titulo, task.Descricao, task.Status, task.ID, task.UsuarioID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return affectedOrNotFound(res, op)
}

func (s *Storage) DeleteTask(ctx context.Context, id, userID int) error {
	const op = "storage.postgres.DeleteTask"

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = $1 AND usuario_id = $2",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return affectedOrNotFound(res, op)
}

func (s *Storage) SaveGoal(ctx context.Context, goal *models.Goal) (int, error) {
	const op = "storage.postgres.SaveGoal"

	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO goals (titulo, descricao, data_inicial, data_final, usuario_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		goal.Titulo, goal.Descricao, goal.DataInicial, goal.DataFinal, goal.UsuarioID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) ListGoals(ctx context.Context, userID int) ([]models.Goal, error) {
	const op = "storage.postgres.ListGoals"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, titulo, descricao, data_inicial, data_final, usuario_id
		 FROM goals WHERE usuario_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.Titulo, &g.Descricao, &g.DataInicial, &g.DataFinal, &g.UsuarioID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return goals, nil
}

func (s *Storage) GetGoal(ctx context.Context, id, userID int) (*models.Goal, error) {
	const op = "storage.postgres.GetGoal"

	var g models.Goal
	err := s.db.QueryRowContext(ctx,
		`SELECT id, titulo, descricao, data_inicial, data_final, usuario_id
		 FROM goals WHERE id = $1 AND usuario_id = $2`,
		id, userID,
	).Scan(&g.ID, &g.Titulo, &g.Descricao, &g.DataInicial, &g.DataFinal, &g.UsuarioID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &g, nil
}

func (s *Storage) UpdateGoal(ctx context.Context, goal *models.Goal) error {
	const op = "storage.postgres.UpdateGoal"

	res, err := s.db.ExecContext(ctx,
		`UPDATE goals SET titulo = $1, descricao = $2, data_inicial = $3, data_final = $4
		 WHERE id = $5 AND usuario_id = $6`,
		goal.Titulo, goal.Descricao, goal.DataInicial, goal.DataFinal, goal.ID, goal.UsuarioID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return affectedOrNotFound(res, op)
}

func (s *Storage) DeleteGoal(ctx context.Context, id, userID int) error {
	const op = "storage.postgres.DeleteGoal"

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM goals WHERE id = $1 AND usuario_id = $2",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return affectedOrNotFound(res, op)
}

func (s *Storage) SaveFinance(ctx context.Context, entry *models.FinanceEntry) (int, error) {
	const op = "storage.postgres.SaveFinance"

	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO finances (tipo, valor, categoria, data, descricao, usuario_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		entry.Tipo, entry.Valor, entry.Categoria, entry.Data, entry.Descricao, entry.UsuarioID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) ListFinances(ctx context.Context, userID int) ([]models.FinanceEntry, error) {
	const op = "storage.postgres.ListFinances"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tipo, valor, categoria, data, descricao, usuario_id
		 FROM finances WHERE usuario_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []models.FinanceEntry
	for rows.Next() {
		var f models.FinanceEntry
		if err := rows.Scan(&f.ID, &f.Tipo, &f.Valor, &f.Categoria, &f.Data, &f.Descricao, &f.UsuarioID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		entries = append(entries, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}

func (s *Storage) GetFinance(ctx context.Context, id, userID int) (*models.FinanceEntry, error) {
	const op = "storage.postgres.GetFinance"

	var f models.FinanceEntry
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tipo, valor, categoria, data, descricao, usuario_id
		 FROM finances WHERE id = $1 AND usuario_id = $2`,
		id, userID,
	).Scan(&f.ID, &f.Tipo, &f.Valor, &f.Categoria, &f.Data, &f.Descricao, &f.UsuarioID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &f, nil
}

func (s *Storage) UpdateFinance(ctx context.Context, entry *models.FinanceEntry) error {
	const op = "storage.postgres.UpdateFinance"

	res, err := s.db.ExecContext(ctx,
		`UPDATE finances SET tipo = $1, valor = $2, categoria = $3, data = $4, descricao = $5
		 WHERE id = $6 AND usuario_id = $7`,
		entry.Tipo, entry.Valor, entry.Categoria, entry.Data, entry.Descricao, entry.ID, entry.UsuarioID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return affectedOrNotFound(res, op)
}

func (s *Storage) DeleteFinance(ctx context.Context, id, userID int) error {
	const op = "storage.postgres.DeleteFinance"

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM finances WHERE id = $1 AND usuario_id = $2",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return affectedOrNotFound(res, op)
}

// affectedOrNotFound maps a zero-row mutation to ErrNotFound so that a
// row owned by another user is indistinguishable from a missing one.
func affectedOrNotFound(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
