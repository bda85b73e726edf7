// Package crm ties the entity store to a persistence mirror. Every
// operation runs against the in-memory store first; only when that succeeds
// is the matching write sent to the mirror. A mirror failure does not undo
// the in-memory change and is reported as *MirrorError.
package crm

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mesh-intelligence/realty/internal/store"
	"github.com/mesh-intelligence/realty/pkg/types"
)

// MirrorError reports a mirrored write that failed after the in-memory
// operation had already succeeded.
type MirrorError struct {
	Op   string
	Kind types.Kind
	ID   int
	Err  error
}

func (e *MirrorError) Error() string {
	return fmt.Sprintf("mirroring %s of %s %d: %v", e.Op, e.Kind, e.ID, e.Err)
}

func (e *MirrorError) Unwrap() error { return e.Err }

// Service is the entry point used by the CLI.
type Service struct {
	store   *store.Store
	factory *store.ContractFactory
	mirror  types.Mirror
	log     *slog.Logger
}

// New returns a Service over s. mirror may be nil, in which case changes stay
// in memory. A nil logger discards output.
func New(s *store.Store, mirror types.Mirror, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		store:   s,
		factory: store.NewContractFactory(s),
		mirror:  mirror,
		log:     logger,
	}
}

// Store returns the underlying entity store.
func (s *Service) Store() *store.Store {
	return s.store
}

// Agents

// AddAgent validates a, stores it, and mirrors the insert. The returned
// agent carries its new id.
func (s *Service) AddAgent(ctx context.Context, a types.Agent) (types.Agent, error) {
	if err := a.Validate(); err != nil {
		return types.Agent{}, err
	}
	a.ID = s.store.AddAgent(a)
	return a, s.mirrorInsert(ctx, a)
}

// RemoveAgent removes the agent with id. It reports false, with no error and
// no mirrored write, when the agent does not exist.
func (s *Service) RemoveAgent(ctx context.Context, id int) (bool, error) {
	if !s.store.RemoveAgent(id) {
		return false, nil
	}
	return true, s.mirrorDelete(ctx, types.KindAgent, id)
}

// Agent returns the agent with id.
func (s *Service) Agent(id int) (types.Agent, error) {
	return s.store.SearchAgentByID(id)
}

// ModifyAgent validates a and replaces the stored agent at a.ID.
func (s *Service) ModifyAgent(ctx context.Context, a types.Agent) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := s.store.ModifyAgent(a); err != nil {
		return err
	}
	return s.mirrorUpdate(ctx, a)
}

// Agents returns every agent in insertion order.
func (s *Service) Agents() []types.Agent {
	return s.store.ListAgents()
}

// Clients

// AddClient validates c, stores it, and mirrors the insert.
func (s *Service) AddClient(ctx context.Context, c types.Client) (types.Client, error) {
	if err := c.Validate(); err != nil {
		return types.Client{}, err
	}
	c.ID = s.store.AddClient(c)
	return c, s.mirrorInsert(ctx, c)
}

// RemoveClient removes the client with id and reports whether it existed.
func (s *Service) RemoveClient(ctx context.Context, id int) (bool, error) {
	if !s.store.RemoveClient(id) {
		return false, nil
	}
	return true, s.mirrorDelete(ctx, types.KindClient, id)
}

// Client returns the client with id.
func (s *Service) Client(id int) (types.Client, error) {
	return s.store.SearchClientByID(id)
}

// ModifyClient validates c and replaces the stored client at c.ID.
func (s *Service) ModifyClient(ctx context.Context, c types.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.store.ModifyClient(c); err != nil {
		return err
	}
	return s.mirrorUpdate(ctx, c)
}

// Clients returns every client in insertion order.
func (s *Service) Clients() []types.Client {
	return s.store.ListClients()
}

// Properties

// AddProperty validates p, stores it, and mirrors the insert.
func (s *Service) AddProperty(ctx context.Context, p types.Property) (types.Property, error) {
	if err := p.Validate(); err != nil {
		return types.Property{}, err
	}
	p.ID = s.store.AddProperty(p)
	return p, s.mirrorInsert(ctx, p)
}

// RemoveProperty removes the property with id and reports whether it existed.
func (s *Service) RemoveProperty(ctx context.Context, id int) (bool, error) {
	if !s.store.RemoveProperty(id) {
		return false, nil
	}
	return true, s.mirrorDelete(ctx, types.KindProperty, id)
}

// Property returns the property with id.
func (s *Service) Property(id int) (types.Property, error) {
	return s.store.SearchPropertyByID(id)
}

// ModifyProperty validates p and replaces the stored property at p.ID.
func (s *Service) ModifyProperty(ctx context.Context, p types.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.store.ModifyProperty(p); err != nil {
		return err
	}
	return s.mirrorUpdate(ctx, p)
}

// Properties returns every property in insertion order.
func (s *Service) Properties() []types.Property {
	return s.store.ListProperties()
}

// Contracts

// AddContract stores c through the path named by mode. Direct validates the
// contract's own fields and stores it without checking references.
// Verified goes through the ContractFactory and fails with
// *types.EntityNotFoundError if the property, client, or agent is missing.
func (s *Service) AddContract(ctx context.Context, mode types.CreationMode, c types.Contract) (types.Contract, error) {
	var err error
	switch mode {
	case types.CreationDirect:
		c.Normalize()
		if err = c.Validate(); err != nil {
			return types.Contract{}, err
		}
		c.ID = s.store.AddContract(c)
	case types.CreationVerified:
		c, err = s.factory.CreateContract(store.ContractDraft{
			PropertyID:   c.PropertyID,
			ClientID:     c.ClientID,
			AgentID:      c.AgentID,
			Price:        c.Price,
			StartDate:    c.StartDate,
			EndDate:      c.EndDate,
			ContractType: c.ContractType,
			IsActive:     c.IsActive,
		})
		if err != nil {
			return types.Contract{}, err
		}
	default:
		return types.Contract{}, fmt.Errorf("unknown creation mode %q", mode)
	}

	s.log.Info("contract created", "id", c.ID, "mode", string(mode), "type", c.ContractType)
	return c, s.mirrorInsert(ctx, c)
}

// CreateContract is the verified path: AddContract with CreationVerified.
func (s *Service) CreateContract(ctx context.Context, d store.ContractDraft) (types.Contract, error) {
	return s.AddContract(ctx, types.CreationVerified, types.Contract{
		PropertyID:   d.PropertyID,
		ClientID:     d.ClientID,
		AgentID:      d.AgentID,
		Price:        d.Price,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		ContractType: d.ContractType,
		IsActive:     d.IsActive,
	})
}

// RemoveContract removes the contract with id and reports whether it existed.
func (s *Service) RemoveContract(ctx context.Context, id int) (bool, error) {
	if !s.store.RemoveContract(id) {
		return false, nil
	}
	return true, s.mirrorDelete(ctx, types.KindContract, id)
}

// Contract returns the contract with id.
func (s *Service) Contract(id int) (types.Contract, error) {
	return s.store.SearchContractByID(id)
}

// ModifyContract validates c and replaces the stored contract at c.ID.
func (s *Service) ModifyContract(ctx context.Context, c types.Contract) error {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.store.ModifyContract(c); err != nil {
		return err
	}
	return s.mirrorUpdate(ctx, c)
}

// Contracts returns every contract in insertion order.
func (s *Service) Contracts() []types.Contract {
	return s.store.ListContracts()
}

// Mirroring

func (s *Service) mirrorInsert(ctx context.Context, e types.Entity) error {
	if s.mirror == nil {
		return nil
	}
	return s.mirrored(ctx, "insert", e.EntityKind(), e.EntityID(), func() error {
		return s.mirror.Insert(ctx, e)
	})
}

func (s *Service) mirrorUpdate(ctx context.Context, e types.Entity) error {
	if s.mirror == nil {
		return nil
	}
	return s.mirrored(ctx, "update", e.EntityKind(), e.EntityID(), func() error {
		return s.mirror.Update(ctx, e)
	})
}

func (s *Service) mirrorDelete(ctx context.Context, kind types.Kind, id int) error {
	if s.mirror == nil {
		return nil
	}
	return s.mirrored(ctx, "delete", kind, id, func() error {
		return s.mirror.Delete(ctx, kind, id)
	})
}

func (s *Service) mirrored(ctx context.Context, op string, kind types.Kind, id int, write func() error) error {
	if err := write(); err != nil {
		s.log.ErrorContext(ctx, "mirrored write failed", "op", op, "kind", string(kind), "id", id, "error", err)
		return &MirrorError{Op: op, Kind: kind, ID: id, Err: err}
	}
	s.log.DebugContext(ctx, "mirrored write", "op", op, "kind", string(kind), "id", id)
	return nil
}
