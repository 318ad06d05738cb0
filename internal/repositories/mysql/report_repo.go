// repositories/mysql/report_repo.go
// Persistence for generated reports. The analysis document is stored as a
// JSON column next to the report metadata.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"circuitsense/internal/services"
	"circuitsense/internal/util"
)

type ReportRepo struct{ DB *sql.DB }

// Assumed schema:
//   relatorio(id VARCHAR(36) PRIMARY KEY, nome_arquivo VARCHAR(255),
//             cliente VARCHAR(255), unidade VARCHAR(255),
//             inicio_report VARCHAR(32), fim_report VARCHAR(32),
//             payload JSON, created_at DATETIME)

func (r *ReportRepo) Insert(ctx context.Context, rep *services.Report) error {
	payload, err := json.Marshal(rep.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	const q = `
		INSERT INTO relatorio
			(id, nome_arquivo, cliente, unidade, inicio_report, fim_report, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.DB.ExecContext(ctx, q,
		rep.ID, rep.FileName, rep.Cliente, rep.Unidade,
		rep.InicioReport, rep.FimReport, payload, rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepo) GetByID(ctx context.Context, id string) (*services.Report, error) {
	const q = `
		SELECT id, nome_arquivo, cliente, unidade, inicio_report, fim_report, payload, created_at
		FROM relatorio WHERE id = ?`

	var rep services.Report
	var payload []byte
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&rep.ID, &rep.FileName, &rep.Cliente, &rep.Unidade,
		&rep.InicioReport, &rep.FimReport, &payload, &rep.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, util.NotFound("report " + id)
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	if err := json.Unmarshal(payload, &rep.Payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &rep, nil
}

func (r *ReportRepo) List(ctx context.Context, limit int) ([]services.Report, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}

	const q = `
		SELECT id, nome_arquivo, cliente, unidade, inicio_report, fim_report, created_at
		FROM relatorio
		ORDER BY created_at DESC LIMIT ?`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []services.Report
	for rows.Next() {
		var rep services.Report
		if err := rows.Scan(
			&rep.ID, &rep.FileName, &rep.Cliente, &rep.Unidade,
			&rep.InicioReport, &rep.FimReport, &rep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *ReportRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM relatorio WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return util.NotFound("report " + id)
	}
	return nil
}
