// Package repository provides PostgreSQL persistence for clientes and
// their domicilios.
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

const clientNotFoundMessage = "cliente not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new clients repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const clientColumns = `id, document_id, nombre, apellidos, telefono, activo, created_at, updated_at`

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	var createdAt, updatedAt time.Time
	err := row.Scan(&c.ID, &c.DocumentID, &c.Name, &c.Surname, &c.Phone, &c.Active, &createdAt, &updatedAt)
	if err != nil {
		return Client{}, err
	}
	c.CreatedAt = createdAt.Format(time.RFC3339)
	c.UpdatedAt = updatedAt.Format(time.RFC3339)
	return c, nil
}

// GetByRef retrieves a client by numeric id or document key.
func (r *Repo) GetByRef(ctx context.Context, ref Ref) (Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE ` + refClause(ref, 1)

	c, err := scanClient(r.pool.QueryRow(ctx, query, refArg(ref)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMessage)
		}
		return Client{}, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// FindByPhone retrieves a client by exact normalized phone match.
func (r *Repo) FindByPhone(ctx context.Context, phone string) (Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE telefono = $1`

	c, err := scanClient(r.pool.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMessage)
		}
		return Client{}, fmt.Errorf("find client by phone: %w", err)
	}
	return c, nil
}

// PhoneInUse reports whether another client already holds the phone.
// excludeID removes the record being updated from the match set.
func (r *Repo) PhoneInUse(ctx context.Context, phone string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM clientes WHERE telefono = $1 AND id <> $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, phone, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check phone in use: %w", err)
	}
	return exists, nil
}

// List retrieves clients with optional search and pagination.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Client, int, error) {
	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}

	countQuery := `
		SELECT COUNT(*)
		FROM clientes
		WHERE ($1::text IS NULL OR nombre ILIKE $1 OR apellidos ILIKE $1 OR telefono LIKE $1)
			AND ($2::boolean IS NULL OR activo = $2)`

	var activeParam interface{}
	if params.ActiveOnly {
		activeParam = true
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, searchParam, activeParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	query := `
		SELECT ` + clientColumns + `
		FROM clientes
		WHERE ($1::text IS NULL OR nombre ILIKE $1 OR apellidos ILIKE $1 OR telefono LIKE $1)
			AND ($2::boolean IS NULL OR activo = $2)
		ORDER BY apellidos ASC, nombre ASC
		LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, searchParam, activeParam, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// Create inserts a new client.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Client, error) {
	query := `
		INSERT INTO clientes (document_id, nombre, apellidos, telefono, activo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + clientColumns

	c, err := scanClient(r.pool.QueryRow(ctx, query,
		uuid.NewString(), params.Name, params.Surname, params.Phone, params.Active,
	))
	if err != nil {
		return Client{}, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

// Update applies a partial client update in a single statement.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Client, error) {
	query := `
		UPDATE clientes SET
			nombre = COALESCE($1, nombre),
			apellidos = COALESCE($2, apellidos),
			telefono = COALESCE($3, telefono),
			activo = COALESCE($4, activo),
			updated_at = now()
		WHERE ` + refClause(params.Ref, 5) + `
		RETURNING ` + clientColumns

	c, err := scanClient(r.pool.QueryRow(ctx, query,
		params.Name, params.Surname, params.Phone, params.Active, refArg(params.Ref),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMessage)
		}
		return Client{}, fmt.Errorf("update client: %w", err)
	}
	return c, nil
}

// SetActive flips the client's soft lifecycle flag.
func (r *Repo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE clientes SET activo = $1, updated_at = now() WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return fmt.Errorf("set client active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(clientNotFoundMessage)
	}
	return nil
}

const addressColumns = `id, document_id, cliente_id, calle, numero, colonia, codigo_postal, referencia, activo`

func scanAddress(row pgx.Row) (Address, error) {
	var a Address
	err := row.Scan(&a.ID, &a.DocumentID, &a.ClientID, &a.Street, &a.Number, &a.Colonia, &a.PostalCode, &a.Reference, &a.Active)
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

// ListAddresses retrieves every address owned by a client.
func (r *Repo) ListAddresses(ctx context.Context, clientID int64) ([]Address, error) {
	query := `SELECT ` + addressColumns + ` FROM domicilios WHERE cliente_id = $1 ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetAddressByRef retrieves an address by numeric id or document key.
func (r *Repo) GetAddressByRef(ctx context.Context, ref Ref) (Address, error) {
	query := `SELECT ` + addressColumns + ` FROM domicilios WHERE ` + refClause(ref, 1)

	a, err := scanAddress(r.pool.QueryRow(ctx, query, refArg(ref)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Address{}, apperr.NotFound("domicilio not found")
		}
		return Address{}, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

// CreateAddress inserts a new address for a client.
func (r *Repo) CreateAddress(ctx context.Context, params CreateAddressParams) (Address, error) {
	query := `
		INSERT INTO domicilios (document_id, cliente_id, calle, numero, colonia, codigo_postal, referencia, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + addressColumns

	a, err := scanAddress(r.pool.QueryRow(ctx, query,
		uuid.NewString(), params.ClientID, params.Street, params.Number,
		params.Colonia, params.PostalCode, params.Reference, params.Active,
	))
	if err != nil {
		return Address{}, fmt.Errorf("create address: %w", err)
	}
	return a, nil
}

// SetAddressesActive cascades the client's lifecycle flag over the full
// current address set. Re-running the cascade is idempotent.
func (r *Repo) SetAddressesActive(ctx context.Context, clientID int64, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE domicilios SET activo = $1, updated_at = now() WHERE cliente_id = $2`,
		active, clientID,
	)
	if err != nil {
		return fmt.Errorf("set addresses active: %w", err)
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
