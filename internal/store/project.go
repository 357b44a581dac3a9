package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Simplici0/costquote/internal/model"
)

var projectColumns = []string{"id", "name", "currency", "inputs_json", "breakdown_json", "created_at", "updated_at"}

// CreateProject inserts a new project.
func (s *Store) CreateProject(ctx context.Context, p *model.Project) error {
	inputsJSON, breakdownJSON, err := encodeProject(p)
	if err != nil {
		return err
	}

	_, err = s.exec(ctx, s.sb.
		Insert("projects").
		Columns(projectColumns...).
		Values(p.ID.String(), p.Name, p.Currency, inputsJSON, breakdownJSON, FormatTime(p.CreatedAt), FormatTime(p.UpdatedAt)))
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// ProjectByID loads one project.
func (s *Store) ProjectByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	row, err := s.queryRow(ctx, s.sb.
		Select(projectColumns...).
		From("projects").
		Where(sq.Eq{"id": id.String()}))
	if err != nil {
		return nil, err
	}

	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

// ListProjects returns all projects, most recently updated first.
func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.query(ctx, s.sb.
		Select(projectColumns...).
		From("projects").
		OrderBy("updated_at DESC", "id DESC"))
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// UpdateProject overwrites a project's inputs and breakdown.
func (s *Store) UpdateProject(ctx context.Context, p *model.Project) error {
	inputsJSON, breakdownJSON, err := encodeProject(p)
	if err != nil {
		return err
	}

	res, err := s.exec(ctx, s.sb.
		Update("projects").
		Set("name", p.Name).
		Set("currency", p.Currency).
		Set("inputs_json", inputsJSON).
		Set("breakdown_json", breakdownJSON).
		Set("updated_at", FormatTime(p.UpdatedAt)).
		Where(sq.Eq{"id": p.ID.String()}))
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if !ok {
		return fmt.Errorf("project %s: %w", p.ID, model.ErrNotFound)
	}
	return nil
}

// DeleteProject removes a project. Quote snapshots taken from it are kept.
func (s *Store) DeleteProject(ctx context.Context, id uuid.UUID) error {
	res, err := s.exec(ctx, s.sb.Delete("projects").Where(sq.Eq{"id": id.String()}))
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if !ok {
		return fmt.Errorf("project %s: %w", id, model.ErrNotFound)
	}
	return nil
}

func encodeProject(p *model.Project) (string, string, error) {
	inputsJSON, err := marshalJSON(p.Inputs)
	if err != nil {
		return "", "", fmt.Errorf("encode project inputs: %w", err)
	}
	breakdownJSON, err := marshalJSON(p.Breakdown)
	if err != nil {
		return "", "", fmt.Errorf("encode project breakdown: %w", err)
	}
	return inputsJSON, breakdownJSON, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*model.Project, error) {
	var (
		p                         model.Project
		id                        string
		inputsJSON, breakdownJSON string
		createdAt, updatedAt      string
	)
	if err := row.Scan(&id, &p.Name, &p.Currency, &inputsJSON, &breakdownJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse project id: %w", err)
	}
	if err := json.Unmarshal([]byte(inputsJSON), &p.Inputs); err != nil {
		return nil, fmt.Errorf("decode project inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(breakdownJSON), &p.Breakdown); err != nil {
		return nil, fmt.Errorf("decode project breakdown: %w", err)
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
