// Package store implements the in-memory entity store: four independent
// collections (agents, clients, properties, contracts) keyed by per-kind
// auto-incrementing ids, and the contract factory that checks references
// before creating a contract.
//
// Records are copied in and out on every call; a value returned by the
// store never aliases its internal state. The store is safe for concurrent
// use and knows nothing about persistence.
package store

import (
	"github.com/mesh-intelligence/realty/pkg/types"
)

// Store owns the four entity collections.
type Store struct {
	agents     *collection[types.Agent]
	clients    *collection[types.Client]
	properties *collection[types.Property]
	contracts  *collection[types.Contract]
}

// New returns an empty Store. The first id issued for each kind is 1.
func New() *Store {
	return &Store{
		agents:     newCollection[types.Agent](),
		clients:    newCollection[types.Client](),
		properties: newCollection[types.Property](),
		contracts:  newCollection[types.Contract](),
	}
}

// Agents

// AddAgent stores a copy of a under the next agent id and returns the id.
// Any ID already set on a is ignored.
func (s *Store) AddAgent(a types.Agent) int {
	id, _ := s.agents.add(a, func(r *types.Agent, id int) { r.ID = id })
	return id
}

// RemoveAgent deletes the agent with id. It reports whether one existed.
func (s *Store) RemoveAgent(id int) bool {
	return s.agents.remove(id)
}

// SearchAgentByID returns the agent with id, or a NotFoundError matching
// types.ErrAgentNotFound.
func (s *Store) SearchAgentByID(id int) (types.Agent, error) {
	a, ok := s.agents.get(id)
	if !ok {
		return types.Agent{}, types.NewNotFoundError(types.KindAgent, id)
	}
	return a, nil
}

// ModifyAgent replaces the stored agent at a.ID.
func (s *Store) ModifyAgent(a types.Agent) error {
	if !s.agents.replace(a.ID, a) {
		return types.NewNotFoundError(types.KindAgent, a.ID)
	}
	return nil
}

// ListAgents returns all agents in insertion order.
func (s *Store) ListAgents() []types.Agent {
	return s.agents.list()
}

// Clients

// AddClient stores a copy of c under the next client id and returns the id.
func (s *Store) AddClient(c types.Client) int {
	id, _ := s.clients.add(c, func(r *types.Client, id int) { r.ID = id })
	return id
}

// RemoveClient deletes the client with id. It reports whether one existed.
func (s *Store) RemoveClient(id int) bool {
	return s.clients.remove(id)
}

// SearchClientByID returns the client with id, or a NotFoundError matching
// types.ErrClientNotFound.
func (s *Store) SearchClientByID(id int) (types.Client, error) {
	c, ok := s.clients.get(id)
	if !ok {
		return types.Client{}, types.NewNotFoundError(types.KindClient, id)
	}
	return c, nil
}

// ModifyClient replaces the stored client at c.ID.
func (s *Store) ModifyClient(c types.Client) error {
	if !s.clients.replace(c.ID, c) {
		return types.NewNotFoundError(types.KindClient, c.ID)
	}
	return nil
}

// ListClients returns all clients in insertion order.
func (s *Store) ListClients() []types.Client {
	return s.clients.list()
}

// Properties

// AddProperty stores a copy of p under the next property id and returns the id.
func (s *Store) AddProperty(p types.Property) int {
	id, _ := s.properties.add(p, func(r *types.Property, id int) { r.ID = id })
	return id
}

// RemoveProperty deletes the property with id. It reports whether one existed.
func (s *Store) RemoveProperty(id int) bool {
	return s.properties.remove(id)
}

// SearchPropertyByID returns the property with id, or a NotFoundError
// matching types.ErrPropertyNotFound.
func (s *Store) SearchPropertyByID(id int) (types.Property, error) {
	p, ok := s.properties.get(id)
	if !ok {
		return types.Property{}, types.NewNotFoundError(types.KindProperty, id)
	}
	return p, nil
}

// ModifyProperty replaces the stored property at p.ID.
func (s *Store) ModifyProperty(p types.Property) error {
	if !s.properties.replace(p.ID, p) {
		return types.NewNotFoundError(types.KindProperty, p.ID)
	}
	return nil
}

// ListProperties returns all properties in insertion order.
func (s *Store) ListProperties() []types.Property {
	return s.properties.list()
}

// Contracts

// AddContract stores a copy of c under the next contract id and returns the
// id. This is the direct path: the property, client, and agent ids are not
// checked. The sale invariant is applied to the stored copy.
func (s *Store) AddContract(c types.Contract) int {
	id, _ := s.contracts.add(c, func(r *types.Contract, id int) {
		r.ID = id
		r.Normalize()
	})
	return id
}

// RemoveContract deletes the contract with id. It reports whether one existed.
func (s *Store) RemoveContract(id int) bool {
	return s.contracts.remove(id)
}

// SearchContractByID returns the contract with id, or a NotFoundError
// matching types.ErrContractNotFound.
func (s *Store) SearchContractByID(id int) (types.Contract, error) {
	c, ok := s.contracts.get(id)
	if !ok {
		return types.Contract{}, types.NewNotFoundError(types.KindContract, id)
	}
	return c, nil
}

// ModifyContract replaces the stored contract at c.ID, applying the sale
// invariant.
func (s *Store) ModifyContract(c types.Contract) error {
	c.Normalize()
	if !s.contracts.replace(c.ID, c) {
		return types.NewNotFoundError(types.KindContract, c.ID)
	}
	return nil
}

// ListContracts returns all contracts in insertion order.
func (s *Store) ListContracts() []types.Contract {
	return s.contracts.list()
}

// Whole-store operations

// Restore loads a persisted snapshot. Records keep their ids, and each
// counter is raised to the snapshot's high-water mark so ids issued before
// a deletion are not handed out again.
func (s *Store) Restore(snap types.Snapshot) {
	for _, a := range snap.Agents {
		s.agents.restore(a.ID, a)
	}
	for _, c := range snap.Clients {
		s.clients.restore(c.ID, c)
	}
	for _, p := range snap.Properties {
		s.properties.restore(p.ID, p)
	}
	for _, c := range snap.Contracts {
		c.Normalize()
		s.contracts.restore(c.ID, c)
	}
	s.agents.bump(snap.NextIDs[types.KindAgent])
	s.clients.bump(snap.NextIDs[types.KindClient])
	s.properties.bump(snap.NextIDs[types.KindProperty])
	s.contracts.bump(snap.NextIDs[types.KindContract])
}

// Snapshot copies every collection and the per-kind high-water marks.
func (s *Store) Snapshot() types.Snapshot {
	return types.Snapshot{
		Agents:     s.agents.list(),
		Clients:    s.clients.list(),
		Properties: s.properties.list(),
		Contracts:  s.contracts.list(),
		NextIDs: map[types.Kind]int{
			types.KindAgent:    s.agents.highWater(),
			types.KindClient:   s.clients.highWater(),
			types.KindProperty: s.properties.highWater(),
			types.KindContract: s.contracts.highWater(),
		},
	}
}

// Counts returns the number of records held per kind.
func (s *Store) Counts() map[types.Kind]int {
	return map[types.Kind]int{
		types.KindAgent:    s.agents.count(),
		types.KindClient:   s.clients.count(),
		types.KindProperty: s.properties.count(),
		types.KindContract: s.contracts.count(),
	}
}
