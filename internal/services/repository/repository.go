// Package repository provides PostgreSQL persistence for servicios with
// their joined relations. Visibility scoping arrives fully resolved in
// ListParams; no role logic lives here.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pepee912/GasLPNew/platform/apperr"
)

const serviceNotFoundMessage = "servicio not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new services repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const serviceSelect = `
	SELECT
		s.id, s.document_id, s.fecha_programado, s.observacion, s.nota_operador,
		s.fecha_surtido, s.fecha_cancelado, s.created_at, s.updated_at,
		c.id, c.document_id, c.nombre, c.apellidos, c.telefono,
		d.id, d.document_id, d.calle, d.numero, d.colonia, d.codigo_postal, d.referencia,
		ts.id, ts.document_id, ts.nombre,
		r.id, r.document_id, r.nombre,
		es.id, es.document_id, es.nombre, es.tipo
	FROM servicios s
	JOIN clientes c ON c.id = s.cliente_id
	JOIN domicilios d ON d.id = s.domicilio_id
	JOIN tipos_servicio ts ON ts.id = s.tipo_servicio_id
	LEFT JOIN rutas r ON r.id = s.ruta_id
	JOIN estados_servicio es ON es.id = s.estado_servicio_id`

func scanService(row pgx.Row) (Service, error) {
	var s Service
	var rutaID *int64
	var rutaDoc, rutaName *string

	err := row.Scan(
		&s.ID, &s.DocumentID, &s.FechaProgramado, &s.Observacion, &s.NotaOperador,
		&s.FechaSurtido, &s.FechaCancelado, &s.CreatedAt, &s.UpdatedAt,
		&s.Cliente.ID, &s.Cliente.DocumentID, &s.Cliente.Nombre, &s.Cliente.Apellidos, &s.Cliente.Telefono,
		&s.Domicilio.ID, &s.Domicilio.DocumentID, &s.Domicilio.Calle, &s.Domicilio.Numero,
		&s.Domicilio.Colonia, &s.Domicilio.CodigoPostal, &s.Domicilio.Referencia,
		&s.Tipo.ID, &s.Tipo.DocumentID, &s.Tipo.Nombre,
		&rutaID, &rutaDoc, &rutaName,
		&s.Estado.ID, &s.Estado.DocumentID, &s.Estado.Nombre, &s.Estado.Kind,
	)
	if err != nil {
		return Service{}, err
	}
	if rutaID != nil {
		s.Ruta = &LookupInfo{ID: *rutaID, DocumentID: *rutaDoc, Nombre: *rutaName}
	}
	return s, nil
}

// GetByRef retrieves a service by numeric id or document key.
func (r *Repo) GetByRef(ctx context.Context, ref Ref) (Service, error) {
	clause := "s.id = $1"
	arg := interface{}(ref.ID)
	if ref.ByKey() {
		clause = "s.document_id = $1"
		arg = ref.Key
	}

	s, err := scanService(r.pool.QueryRow(ctx, serviceSelect+" WHERE "+clause, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Service{}, apperr.NotFound(serviceNotFoundMessage)
		}
		return Service{}, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

// OwnedByOperador reports whether the service sits on a route the user
// is assigned to.
func (r *Repo) OwnedByOperador(ctx context.Context, serviceID int64, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM servicios s
			JOIN personal p ON p.ruta_id = s.ruta_id
			WHERE s.id = $1 AND p.user_id = $2)`

	var owned bool
	if err := r.pool.QueryRow(ctx, query, serviceID, userID).Scan(&owned); err != nil {
		return false, fmt.Errorf("check service ownership: %w", err)
	}
	return owned, nil
}

const listFilter = `
	WHERE ($1::boolean IS FALSE OR (
			s.ruta_id IN (SELECT ruta_id FROM personal WHERE user_id = $2)
			AND es.tipo = ANY($3)
		))
		AND ($4::text IS NULL OR r.document_id = $4)
		AND ($5::text IS NULL OR es.tipo = $5)
		AND ($6::bigint IS NULL OR s.tipo_servicio_id = $6)
		AND ($7::text IS NULL OR ts.document_id = $7)
		AND ($8::timestamptz IS NULL OR s.fecha_programado >= $8)
		AND ($9::timestamptz IS NULL OR s.fecha_programado < $9)`

// List retrieves services matching the resolved scope.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Service, int, error) {
	var operadorID interface{}
	var allowedKinds interface{}
	if params.Restricted {
		operadorID = params.OperadorUserID
		allowedKinds = params.AllowedKinds
	}

	var routeKey, kind, typeKey interface{}
	var typeID interface{}
	if params.RouteKey != "" {
		routeKey = params.RouteKey
	}
	if params.Kind != "" {
		kind = params.Kind
	}
	if params.TypeRef.ByKey() {
		typeKey = params.TypeRef.Key
	} else if params.TypeRef.ID != 0 {
		typeID = params.TypeRef.ID
	}

	args := []interface{}{
		params.Restricted, operadorID, allowedKinds,
		routeKey, kind, typeID, typeKey,
		params.From, params.To,
	}

	countQuery := `
		SELECT COUNT(*)
		FROM servicios s
		JOIN tipos_servicio ts ON ts.id = s.tipo_servicio_id
		LEFT JOIN rutas r ON r.id = s.ruta_id
		JOIN estados_servicio es ON es.id = s.estado_servicio_id` + listFilter

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count services: %w", err)
	}

	order := " ORDER BY s.fecha_programado ASC, s.id ASC"
	if params.SortDesc {
		order = " ORDER BY s.fecha_programado DESC, s.id DESC"
	}

	query := serviceSelect + listFilter + order + " LIMIT $10 OFFSET $11"
	rows, err := r.pool.Query(ctx, query, append(args, params.Limit, params.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan service: %w", err)
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// Create inserts a new service and returns it with joined relations.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Service, error) {
	query := `
		INSERT INTO servicios (
			document_id, cliente_id, domicilio_id, tipo_servicio_id, ruta_id,
			estado_servicio_id, fecha_programado, observacion, nota_operador,
			fecha_surtido, fecha_cancelado
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		uuid.NewString(), params.ClienteID, params.DomicilioID, params.TipoID, params.RutaID,
		params.EstadoID, params.FechaProgramado, params.Observacion, params.NotaOperador,
		params.FechaSurtido, params.FechaCancelado,
	).Scan(&id)
	if err != nil {
		return Service{}, fmt.Errorf("create service: %w", err)
	}
	return r.GetByRef(ctx, RefByID(id))
}

// Update applies a partial service update in a single statement so the
// status and its date side effects land atomically.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Service, error) {
	query := `
		UPDATE servicios SET
			cliente_id = COALESCE($1, cliente_id),
			domicilio_id = COALESCE($2, domicilio_id),
			tipo_servicio_id = COALESCE($3, tipo_servicio_id),
			ruta_id = CASE WHEN $4::boolean THEN NULL ELSE COALESCE($5, ruta_id) END,
			estado_servicio_id = COALESCE($6, estado_servicio_id),
			fecha_programado = COALESCE($7, fecha_programado),
			observacion = COALESCE($8, observacion),
			nota_operador = CASE WHEN $9::boolean THEN NULL ELSE COALESCE($10, nota_operador) END,
			fecha_surtido = CASE WHEN $11::boolean THEN NULL ELSE COALESCE($12, fecha_surtido) END,
			fecha_cancelado = CASE WHEN $13::boolean THEN NULL ELSE COALESCE($14, fecha_cancelado) END,
			updated_at = now()
		WHERE id = $15`

	tag, err := r.pool.Exec(ctx, query,
		params.ClienteID, params.DomicilioID, params.TipoID,
		params.ClearRuta, params.RutaID, params.EstadoID,
		params.FechaProgramado, params.Observacion,
		params.ClearNota, params.NotaOperador,
		params.ClearSurtido, params.FechaSurtido,
		params.ClearCancelado, params.FechaCancelado,
		params.ID,
	)
	if err != nil {
		return Service{}, fmt.Errorf("update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Service{}, apperr.NotFound(serviceNotFoundMessage)
	}
	return r.GetByRef(ctx, RefByID(params.ID))
}
