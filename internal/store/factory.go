package store

import (
	"errors"

	"github.com/mesh-intelligence/realty/pkg/types"
)

// ContractDraft carries the caller's values for a verified contract.
type ContractDraft struct {
	PropertyID   int
	ClientID     int
	AgentID      int
	Price        float64
	StartDate    types.Date
	EndDate      types.Date
	ContractType string
	IsActive     bool
}

// ContractFactory creates contracts only from records that exist. It is the
// one creation path that checks references; Store.AddContract does not.
type ContractFactory struct {
	store *Store
}

// NewContractFactory returns a factory backed by s.
func NewContractFactory(s *Store) *ContractFactory {
	return &ContractFactory{store: s}
}

// CreateContract resolves the property, client, and agent (in that order),
// builds the contract through its setters, and adds it to the store. A
// missing reference fails with *types.EntityNotFoundError and nothing is
// stored.
func (f *ContractFactory) CreateContract(d ContractDraft) (types.Contract, error) {
	if _, err := f.store.SearchPropertyByID(d.PropertyID); err != nil {
		return types.Contract{}, referenceError(err, types.KindProperty, d.PropertyID)
	}
	if _, err := f.store.SearchClientByID(d.ClientID); err != nil {
		return types.Contract{}, referenceError(err, types.KindClient, d.ClientID)
	}
	if _, err := f.store.SearchAgentByID(d.AgentID); err != nil {
		return types.Contract{}, referenceError(err, types.KindAgent, d.AgentID)
	}

	c := types.Contract{
		PropertyID: d.PropertyID,
		ClientID:   d.ClientID,
		AgentID:    d.AgentID,
		Price:      d.Price,
	}
	if err := c.SetContractType(d.ContractType); err != nil {
		return types.Contract{}, err
	}
	if err := c.SetDates(d.StartDate, d.EndDate); err != nil {
		return types.Contract{}, err
	}
	c.SetIsActive(d.IsActive)

	c.ID = f.store.AddContract(c)
	return c, nil
}

func referenceError(err error, kind types.Kind, id int) error {
	if errors.Is(err, types.ErrNotFound) {
		return &types.EntityNotFoundError{Kind: kind, ID: id}
	}
	return err
}
