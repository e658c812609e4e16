// Package repository provides PostgreSQL persistence for catalog entities:
// rutas, personal, tipos de servicio and estados de servicio.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pepee912/GasLPNew/platform/apperr"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const statusColumns = `id, document_id, nombre, tipo, activo`

// GetStatusByID retrieves a service status by numeric identity.
func (r *Repo) GetStatusByID(ctx context.Context, id int64) (ServiceStatus, error) {
	query := `SELECT ` + statusColumns + ` FROM estados_servicio WHERE id = $1`

	var st ServiceStatus
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&st.ID, &st.DocumentID, &st.Name, &st.Kind, &st.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ServiceStatus{}, apperr.NotFound("estado de servicio not found")
		}
		return ServiceStatus{}, fmt.Errorf("get status by id: %w", err)
	}
	return st, nil
}

// GetStatusByKey retrieves a service status by its opaque document key.
func (r *Repo) GetStatusByKey(ctx context.Context, key string) (ServiceStatus, error) {
	query := `SELECT ` + statusColumns + ` FROM estados_servicio WHERE document_id = $1`

	var st ServiceStatus
	err := r.pool.QueryRow(ctx, query, key).Scan(
		&st.ID, &st.DocumentID, &st.Name, &st.Kind, &st.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ServiceStatus{}, apperr.NotFound("estado de servicio not found")
		}
		return ServiceStatus{}, fmt.Errorf("get status by key: %w", err)
	}
	return st, nil
}

// GetActiveStatusByKind retrieves the active status record of the given
// kind, used to resolve default statuses on service creation.
func (r *Repo) GetActiveStatusByKind(ctx context.Context, kind string) (ServiceStatus, error) {
	query := `SELECT ` + statusColumns + `
		FROM estados_servicio
		WHERE tipo = $1 AND activo = true
		ORDER BY id ASC
		LIMIT 1`

	var st ServiceStatus
	err := r.pool.QueryRow(ctx, query, kind).Scan(
		&st.ID, &st.DocumentID, &st.Name, &st.Kind, &st.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ServiceStatus{}, apperr.NotFound("no active estado de servicio of kind " + kind)
		}
		return ServiceStatus{}, fmt.Errorf("get status by kind: %w", err)
	}
	return st, nil
}

// ListStatuses retrieves all statuses, optionally only active ones.
func (r *Repo) ListStatuses(ctx context.Context, activeOnly bool) ([]ServiceStatus, error) {
	query := `SELECT ` + statusColumns + ` FROM estados_servicio`
	if activeOnly {
		query += ` WHERE activo = true`
	}
	query += ` ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	var out []ServiceStatus
	for rows.Next() {
		var st ServiceStatus
		if err := rows.Scan(&st.ID, &st.DocumentID, &st.Name, &st.Kind, &st.Active); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// CreateStatus creates a new service status of the given kind.
func (r *Repo) CreateStatus(ctx context.Context, name, kind string) (ServiceStatus, error) {
	query := `
		INSERT INTO estados_servicio (document_id, nombre, tipo)
		VALUES ($1, $2, $3)
		RETURNING ` + statusColumns

	var st ServiceStatus
	err := r.pool.QueryRow(ctx, query, uuid.NewString(), name, kind).Scan(
		&st.ID, &st.DocumentID, &st.Name, &st.Kind, &st.Active,
	)
	if err != nil {
		return ServiceStatus{}, fmt.Errorf("create status: %w", err)
	}
	return st, nil
}

// SetStatusActive toggles availability of a status for new assignment.
// Historical service references remain valid either way.
func (r *Repo) SetStatusActive(ctx context.Context, ref Ref, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE estados_servicio SET activo = $1, updated_at = now() WHERE `+refClause(ref, 2),
		active, refArg(ref),
	)
	if err != nil {
		return fmt.Errorf("set status active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("estado de servicio not found")
	}
	return nil
}

const typeColumns = `id, document_id, nombre, activo`

// GetTypeByRef retrieves a service type by numeric id or document key.
func (r *Repo) GetTypeByRef(ctx context.Context, ref Ref) (ServiceType, error) {
	query := `SELECT ` + typeColumns + ` FROM tipos_servicio WHERE ` + refClause(ref, 1)

	var t ServiceType
	err := r.pool.QueryRow(ctx, query, refArg(ref)).Scan(
		&t.ID, &t.DocumentID, &t.Name, &t.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ServiceType{}, apperr.NotFound("tipo de servicio not found")
		}
		return ServiceType{}, fmt.Errorf("get type: %w", err)
	}
	return t, nil
}

// ListTypes retrieves all service types, optionally only active ones.
func (r *Repo) ListTypes(ctx context.Context, activeOnly bool) ([]ServiceType, error) {
	query := `SELECT ` + typeColumns + ` FROM tipos_servicio`
	if activeOnly {
		query += ` WHERE activo = true`
	}
	query += ` ORDER BY nombre ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}
	defer rows.Close()

	var out []ServiceType
	for rows.Next() {
		var t ServiceType
		if err := rows.Scan(&t.ID, &t.DocumentID, &t.Name, &t.Active); err != nil {
			return nil, fmt.Errorf("scan type: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateType creates a new service type.
func (r *Repo) CreateType(ctx context.Context, name string) (ServiceType, error) {
	query := `
		INSERT INTO tipos_servicio (document_id, nombre)
		VALUES ($1, $2)
		RETURNING ` + typeColumns

	var t ServiceType
	err := r.pool.QueryRow(ctx, query, uuid.NewString(), name).Scan(
		&t.ID, &t.DocumentID, &t.Name, &t.Active,
	)
	if err != nil {
		return ServiceType{}, fmt.Errorf("create type: %w", err)
	}
	return t, nil
}

// SetTypeActive toggles the active flag of a service type.
func (r *Repo) SetTypeActive(ctx context.Context, ref Ref, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tipos_servicio SET activo = $1, updated_at = now() WHERE `+refClause(ref, 2),
		active, refArg(ref),
	)
	if err != nil {
		return fmt.Errorf("set type active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("tipo de servicio not found")
	}
	return nil
}

const routeColumns = `id, document_id, nombre, activo, created_at, updated_at`

func scanRoute(row pgx.Row) (Route, error) {
	var rt Route
	var createdAt, updatedAt time.Time
	err := row.Scan(&rt.ID, &rt.DocumentID, &rt.Name, &rt.Active, &createdAt, &updatedAt)
	if err != nil {
		return Route{}, err
	}
	rt.CreatedAt = createdAt.Format(time.RFC3339)
	rt.UpdatedAt = updatedAt.Format(time.RFC3339)
	return rt, nil
}

// GetRouteByRef retrieves a route by numeric id or document key.
func (r *Repo) GetRouteByRef(ctx context.Context, ref Ref) (Route, error) {
	query := `SELECT ` + routeColumns + ` FROM rutas WHERE ` + refClause(ref, 1)

	rt, err := scanRoute(r.pool.QueryRow(ctx, query, refArg(ref)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Route{}, apperr.NotFound("ruta not found")
		}
		return Route{}, fmt.Errorf("get route: %w", err)
	}
	return rt, nil
}

// ListRoutes retrieves all routes, optionally only active ones.
func (r *Repo) ListRoutes(ctx context.Context, activeOnly bool) ([]Route, error) {
	query := `SELECT ` + routeColumns + ` FROM rutas`
	if activeOnly {
		query += ` WHERE activo = true`
	}
	query += ` ORDER BY nombre ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	var out []Route
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// CreateRoute creates a new route. Route names are not unique.
func (r *Repo) CreateRoute(ctx context.Context, name string) (Route, error) {
	query := `
		INSERT INTO rutas (document_id, nombre)
		VALUES ($1, $2)
		RETURNING ` + routeColumns

	rt, err := scanRoute(r.pool.QueryRow(ctx, query, uuid.NewString(), name))
	if err != nil {
		return Route{}, fmt.Errorf("create route: %w", err)
	}
	return rt, nil
}

// RenameRoute updates the route name.
func (r *Repo) RenameRoute(ctx context.Context, ref Ref, name string) (Route, error) {
	query := `
		UPDATE rutas SET nombre = $1, updated_at = now()
		WHERE ` + refClause(ref, 2) + `
		RETURNING ` + routeColumns

	rt, err := scanRoute(r.pool.QueryRow(ctx, query, name, refArg(ref)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Route{}, apperr.NotFound("ruta not found")
		}
		return Route{}, fmt.Errorf("rename route: %w", err)
	}
	return rt, nil
}

// SetRouteActive toggles the soft lifecycle flag of a route.
func (r *Repo) SetRouteActive(ctx context.Context, ref Ref, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE rutas SET activo = $1, updated_at = now() WHERE `+refClause(ref, 2),
		active, refArg(ref),
	)
	if err != nil {
		return fmt.Errorf("set route active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("ruta not found")
	}
	return nil
}

// AssignPersonnel links a user account to a route. A user holds at most
// one personnel row; re-assignment moves them to the new route.
func (r *Repo) AssignPersonnel(ctx context.Context, userID uuid.UUID, routeRef Ref) (Personnel, error) {
	route, err := r.GetRouteByRef(ctx, routeRef)
	if err != nil {
		return Personnel{}, err
	}

	query := `
		INSERT INTO personal (document_id, user_id, ruta_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET ruta_id = EXCLUDED.ruta_id, activo = true, updated_at = now()
		RETURNING id, document_id, user_id, ruta_id, activo`

	var p Personnel
	err = r.pool.QueryRow(ctx, query, uuid.NewString(), userID, route.ID).Scan(
		&p.ID, &p.DocumentID, &p.UserID, &p.RouteID, &p.Active,
	)
	if err != nil {
		return Personnel{}, fmt.Errorf("assign personnel: %w", err)
	}
	p.RouteName = route.Name
	return p, nil
}

// ListPersonnelByRoute retrieves the personnel assigned to a route.
func (r *Repo) ListPersonnelByRoute(ctx context.Context, routeRef Ref) ([]Personnel, error) {
	route, err := r.GetRouteByRef(ctx, routeRef)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT p.id, p.document_id, p.user_id, p.ruta_id, p.activo
		FROM personal p
		WHERE p.ruta_id = $1
		ORDER BY p.id ASC`

	rows, err := r.pool.Query(ctx, query, route.ID)
	if err != nil {
		return nil, fmt.Errorf("list personnel: %w", err)
	}
	defer rows.Close()

	var out []Personnel
	for rows.Next() {
		var p Personnel
		if err := rows.Scan(&p.ID, &p.DocumentID, &p.UserID, &p.RouteID, &p.Active); err != nil {
			return nil, fmt.Errorf("scan personnel: %w", err)
		}
		p.RouteName = route.Name
		out = append(out, p)
	}
	return out, rows.Err()
}

// RemovePersonnel deletes a personnel assignment.
func (r *Repo) RemovePersonnel(ctx context.Context, ref Ref) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM personal WHERE `+refClause(ref, 1), refArg(ref))
	if err != nil {
		return fmt.Errorf("remove personnel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("personal not found")
	}
	return nil
}

func refClause(ref Ref, arg int) string {
	if ref.ByKey() {
		return fmt.Sprintf("document_id = $%d", arg)
	}
	return fmt.Sprintf("id = $%d", arg)
}

func refArg(ref Ref) interface{} {
	if ref.ByKey() {
		return ref.Key
	}
	return ref.ID
}
