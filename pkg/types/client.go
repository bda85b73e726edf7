package types

import "math"

// Client is a buyer or tenant working with the brokerage.
type Client struct {
	ID         int     `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	IsMarried  bool    `json:"is_married"`
	Budget     float64 `json:"budget"`
	BudgetType string  `json:"budget_type"`
}

// EntityKind implements Entity.
func (c Client) EntityKind() Kind { return KindClient }

// EntityID implements Entity.
func (c Client) EntityID() int { return c.ID }

// SetFirstName sets the first name. Returns a ValidationError if the name is
// empty or contains digits.
func (c *Client) SetFirstName(name string) error {
	if err := CheckName("first name", name); err != nil {
		return err
	}
	c.FirstName = name
	return nil
}

// SetLastName sets the last name.
func (c *Client) SetLastName(name string) error {
	if err := CheckName("last name", name); err != nil {
		return err
	}
	c.LastName = name
	return nil
}

// SetPhone sets the phone number; it must be exactly eight digits.
func (c *Client) SetPhone(phone string) error {
	if !IsValidPhone(phone) {
		return &ValidationError{Field: "phone", Reason: ReasonInvalid}
	}
	c.Phone = phone
	return nil
}

// SetEmail sets the email address.
func (c *Client) SetEmail(email string) error {
	if !LooseEmailHeuristic(email) {
		return &ValidationError{Field: "email", Reason: ReasonInvalid}
	}
	c.Email = email
	return nil
}

// SetBudget sets the budget, which must not be negative.
func (c *Client) SetBudget(budget float64) error {
	if math.IsNaN(budget) || math.IsInf(budget, 0) {
		return &ValidationError{Field: "budget", Reason: ReasonNotFinite}
	}
	if budget < 0 {
		return &ValidationError{Field: "budget", Reason: ReasonNegative}
	}
	c.Budget = budget
	return nil
}

// SetBudgetType sets the budget type: rent or buy.
func (c *Client) SetBudgetType(budgetType string) error {
	if !IsValidBudgetType(budgetType) {
		return &ValidationError{Field: "budget type", Reason: ReasonNotInSet}
	}
	c.BudgetType = budgetType
	return nil
}

// Validate checks every field of c.
func (c Client) Validate() error {
	var probe Client
	checks := []error{
		probe.SetFirstName(c.FirstName),
		probe.SetLastName(c.LastName),
		probe.SetPhone(c.Phone),
		probe.SetEmail(c.Email),
		probe.SetBudget(c.Budget),
		probe.SetBudgetType(c.BudgetType),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}
