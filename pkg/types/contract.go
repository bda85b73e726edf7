package types

// Contract binds a property, a client, and an agent. A sale contract has no
// end date and is always active; Normalize enforces this.
type Contract struct {
	ID           int     `json:"id"`
	PropertyID   int     `json:"property_id"`
	ClientID     int     `json:"client_id"`
	AgentID      int     `json:"agent_id"`
	Price        float64 `json:"price"`
	StartDate    Date    `json:"start_date"`
	EndDate      Date    `json:"end_date"`
	ContractType string  `json:"contract_type"`
	IsActive     bool    `json:"is_active"`
}

// EntityKind implements Entity.
func (c Contract) EntityKind() Kind { return KindContract }

// EntityID implements Entity.
func (c Contract) EntityID() int { return c.ID }

// IsSale reports whether c is a sale contract.
func (c Contract) IsSale() bool {
	return c.ContractType == ContractTypeSale
}

// SetContractType sets sale or rent. Setting sale clears the end date and
// activates the contract.
func (c *Contract) SetContractType(contractType string) error {
	if !IsValidContractType(contractType) {
		return &ValidationError{Field: "contract type", Reason: ReasonNotInSet}
	}
	c.ContractType = contractType
	c.Normalize()
	return nil
}

// SetDates sets the contract period. start must be concrete and not after
// end. On a sale contract the end date is ignored.
func (c *Contract) SetDates(start, end Date) error {
	if c.IsSale() {
		end = EmptyDate()
	}
	if err := checkPeriod(start, end); err != nil {
		return err
	}
	c.StartDate = start
	c.EndDate = end
	return nil
}

// SetIsActive sets the active flag. Sale contracts stay active.
func (c *Contract) SetIsActive(active bool) {
	c.IsActive = active
	c.Normalize()
}

// Normalize applies the sale invariant: a sale has an Empty end date and is
// active.
func (c *Contract) Normalize() {
	if c.IsSale() {
		c.EndDate = EmptyDate()
		c.IsActive = true
	}
}

// Validate checks the contract type and period of c.
func (c Contract) Validate() error {
	probe := Contract{}
	if err := probe.SetContractType(c.ContractType); err != nil {
		return err
	}
	return probe.SetDates(c.StartDate, c.EndDate)
}
