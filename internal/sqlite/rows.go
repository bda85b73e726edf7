package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/realty/pkg/types"
)

// ErrRowMissing is returned by Update and Delete when the mirrored row does
// not exist, which means the database and the in-memory store disagree.
var ErrRowMissing = errors.New("mirrored row missing")

const (
	insertAgentSQL = `INSERT INTO Agents (ID, FirstName, LastName, Phone, Email, StartDate, EndDate)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	updateAgentSQL = `UPDATE Agents SET FirstName = ?, LastName = ?, Phone = ?, Email = ?,
		StartDate = ?, EndDate = ? WHERE ID = ?`
	selectAgentsSQL = `SELECT ID, FirstName, LastName, Phone, Email, StartDate, EndDate
		FROM Agents ORDER BY ID`

	insertClientSQL = `INSERT INTO Clients (ID, FirstName, LastName, Phone, Email, IsMarried, Budget, BudgetType)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	updateClientSQL = `UPDATE Clients SET FirstName = ?, LastName = ?, Phone = ?, Email = ?,
		IsMarried = ?, Budget = ?, BudgetType = ? WHERE ID = ?`
	selectClientsSQL = `SELECT ID, FirstName, LastName, Phone, Email, IsMarried, Budget, BudgetType
		FROM Clients ORDER BY ID`

	insertPropertySQL = `INSERT INTO Properties (ID, SizeSqm, Price, Type, Bedrooms, Bathrooms, Place, Available, ListingType)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updatePropertySQL = `UPDATE Properties SET SizeSqm = ?, Price = ?, Type = ?, Bedrooms = ?,
		Bathrooms = ?, Place = ?, Available = ?, ListingType = ? WHERE ID = ?`
	selectPropertiesSQL = `SELECT ID, SizeSqm, Price, Type, Bedrooms, Bathrooms, Place, Available, ListingType
		FROM Properties ORDER BY ID`

	insertContractSQL = `INSERT INTO Contracts (ID, PropertyId, ClientId, AgentId, Price, StartDate, EndDate, ContractType, IsActive)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updateContractSQL = `UPDATE Contracts SET PropertyId = ?, ClientId = ?, AgentId = ?, Price = ?,
		StartDate = ?, EndDate = ?, ContractType = ?, IsActive = ? WHERE ID = ?`
	selectContractsSQL = `SELECT ID, PropertyId, ClientId, AgentId, Price, StartDate, EndDate, ContractType, IsActive
		FROM Contracts ORDER BY ID`

	selectSequenceSQL = `SELECT name, seq FROM sqlite_sequence
		WHERE name IN ('Agents', 'Clients', 'Properties', 'Contracts')`
)

// Insert writes a new row carrying the record's store-assigned id.
func (b *Backend) Insert(ctx context.Context, e types.Entity) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return err
	}

	switch r := e.(type) {
	case types.Agent:
		_, err = db.ExecContext(ctx, insertAgentSQL,
			r.ID, r.FirstName, r.LastName, r.Phone, r.Email,
			r.StartDate.String(), r.EndDate.String())
	case types.Client:
		_, err = db.ExecContext(ctx, insertClientSQL,
			r.ID, r.FirstName, r.LastName, r.Phone, r.Email,
			boolToInt(r.IsMarried), r.Budget, r.BudgetType)
	case types.Property:
		_, err = db.ExecContext(ctx, insertPropertySQL,
			r.ID, r.SizeSqm, r.Price, r.PropertyType, r.Bedrooms, r.Bathrooms,
			r.Place, boolToInt(r.Available), r.ListingType)
	case types.Contract:
		_, err = db.ExecContext(ctx, insertContractSQL,
			r.ID, r.PropertyID, r.ClientID, r.AgentID, r.Price,
			r.StartDate.String(), r.EndDate.String(), r.ContractType, boolToInt(r.IsActive))
	default:
		return fmt.Errorf("inserting %T: unsupported record", e)
	}
	if err != nil {
		return fmt.Errorf("inserting %s %d: %w", e.EntityKind(), e.EntityID(), err)
	}
	return nil
}

// Update replaces every column of the row with the record's id.
// Returns ErrRowMissing if no row has that id.
func (b *Backend) Update(ctx context.Context, e types.Entity) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return err
	}

	var res sql.Result
	switch r := e.(type) {
	case types.Agent:
		res, err = db.ExecContext(ctx, updateAgentSQL,
			r.FirstName, r.LastName, r.Phone, r.Email,
			r.StartDate.String(), r.EndDate.String(), r.ID)
	case types.Client:
		res, err = db.ExecContext(ctx, updateClientSQL,
			r.FirstName, r.LastName, r.Phone, r.Email,
			boolToInt(r.IsMarried), r.Budget, r.BudgetType, r.ID)
	case types.Property:
		res, err = db.ExecContext(ctx, updatePropertySQL,
			r.SizeSqm, r.Price, r.PropertyType, r.Bedrooms, r.Bathrooms,
			r.Place, boolToInt(r.Available), r.ListingType, r.ID)
	case types.Contract:
		res, err = db.ExecContext(ctx, updateContractSQL,
			r.PropertyID, r.ClientID, r.AgentID, r.Price,
			r.StartDate.String(), r.EndDate.String(), r.ContractType, boolToInt(r.IsActive), r.ID)
	default:
		return fmt.Errorf("updating %T: unsupported record", e)
	}
	if err != nil {
		return fmt.Errorf("updating %s %d: %w", e.EntityKind(), e.EntityID(), err)
	}
	return requireRow(res, e.EntityKind(), e.EntityID())
}

// Delete removes the row with id from the kind's table.
// Returns ErrRowMissing if no row has that id.
func (b *Backend) Delete(ctx context.Context, kind types.Kind, id int) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return err
	}

	table := kind.Table()
	if table == "" {
		return fmt.Errorf("deleting %s %d: unknown kind", kind, id)
	}
	// table comes from a fixed set, never from input.
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE ID = ?", id)
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", kind, id, err)
	}
	return requireRow(res, kind, id)
}

// Load reads every row in id order plus the per-table id high-water marks.
func (b *Backend) Load(ctx context.Context) (types.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snap := types.Snapshot{NextIDs: make(map[types.Kind]int)}
	db, err := b.conn()
	if err != nil {
		return snap, err
	}

	if snap.Agents, err = loadAgents(ctx, db); err != nil {
		return snap, err
	}
	if snap.Clients, err = loadClients(ctx, db); err != nil {
		return snap, err
	}
	if snap.Properties, err = loadProperties(ctx, db); err != nil {
		return snap, err
	}
	if snap.Contracts, err = loadContracts(ctx, db); err != nil {
		return snap, err
	}
	if err := loadSequences(ctx, db, snap.NextIDs); err != nil {
		return snap, err
	}

	b.log.DebugContext(ctx, "sqlite snapshot loaded",
		"agents", len(snap.Agents),
		"clients", len(snap.Clients),
		"properties", len(snap.Properties),
		"contracts", len(snap.Contracts))
	return snap, nil
}

func loadAgents(ctx context.Context, db *sql.DB) ([]types.Agent, error) {
	rows, err := db.QueryContext(ctx, selectAgentsSQL)
	if err != nil {
		return nil, fmt.Errorf("querying agents: %w", err)
	}
	defer rows.Close()

	var out []types.Agent
	for rows.Next() {
		var a types.Agent
		var start, end string
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Phone, &a.Email, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning agent: %w", err)
		}
		if a.StartDate, err = types.ParseDateOrEmpty(start); err != nil {
			return nil, fmt.Errorf("agent %d start date: %w", a.ID, err)
		}
		if a.EndDate, err = types.ParseDateOrEmpty(end); err != nil {
			return nil, fmt.Errorf("agent %d end date: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func loadClients(ctx context.Context, db *sql.DB) ([]types.Client, error) {
	rows, err := db.QueryContext(ctx, selectClientsSQL)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	defer rows.Close()

	var out []types.Client
	for rows.Next() {
		var c types.Client
		var married int
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email,
			&married, &c.Budget, &c.BudgetType); err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		c.IsMarried = married != 0
		out = append(out, c)
	}
	return out, rows.Err()
}

func loadProperties(ctx context.Context, db *sql.DB) ([]types.Property, error) {
	rows, err := db.QueryContext(ctx, selectPropertiesSQL)
	if err != nil {
		return nil, fmt.Errorf("querying properties: %w", err)
	}
	defer rows.Close()

	var out []types.Property
	for rows.Next() {
		var p types.Property
		var available int
		if err := rows.Scan(&p.ID, &p.SizeSqm, &p.Price, &p.PropertyType, &p.Bedrooms,
			&p.Bathrooms, &p.Place, &available, &p.ListingType); err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		p.Available = available != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

func loadContracts(ctx context.Context, db *sql.DB) ([]types.Contract, error) {
	rows, err := db.QueryContext(ctx, selectContractsSQL)
	if err != nil {
		return nil, fmt.Errorf("querying contracts: %w", err)
	}
	defer rows.Close()

	var out []types.Contract
	for rows.Next() {
		var c types.Contract
		var start, end string
		var active int
		if err := rows.Scan(&c.ID, &c.PropertyID, &c.ClientID, &c.AgentID, &c.Price,
			&start, &end, &c.ContractType, &active); err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}
		if c.StartDate, err = types.ParseDateOrEmpty(start); err != nil {
			return nil, fmt.Errorf("contract %d start date: %w", c.ID, err)
		}
		if c.EndDate, err = types.ParseDateOrEmpty(end); err != nil {
			return nil, fmt.Errorf("contract %d end date: %w", c.ID, err)
		}
		c.IsActive = active != 0
		out = append(out, c)
	}
	return out, rows.Err()
}

// loadSequences fills next with the highest id each table has ever issued.
// sqlite_sequence also tracks goose's version table, hence the filter.
func loadSequences(ctx context.Context, db *sql.DB, next map[types.Kind]int) error {
	kindByTable := make(map[string]types.Kind, len(types.Kinds))
	for _, k := range types.Kinds {
		kindByTable[k.Table()] = k
	}

	rows, err := db.QueryContext(ctx, selectSequenceSQL)
	if err != nil {
		return fmt.Errorf("querying sqlite_sequence: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var seq int
		if err := rows.Scan(&name, &seq); err != nil {
			return fmt.Errorf("scanning sqlite_sequence: %w", err)
		}
		if k, ok := kindByTable[name]; ok {
			next[k] = seq
		}
	}
	return rows.Err()
}

func requireRow(res sql.Result, kind types.Kind, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrRowMissing)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
