package types

// Agent is a brokerage employee. EndDate is Empty while employment is open.
type Agent struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
}

// EntityKind implements Entity.
func (a Agent) EntityKind() Kind { return KindAgent }

// EntityID implements Entity.
func (a Agent) EntityID() int { return a.ID }

// SetFirstName sets the first name. Returns a ValidationError if the name is
// empty or contains digits.
func (a *Agent) SetFirstName(name string) error {
	if err := CheckName("first name", name); err != nil {
		return err
	}
	a.FirstName = name
	return nil
}

// SetLastName sets the last name with the same rules as SetFirstName.
func (a *Agent) SetLastName(name string) error {
	if err := CheckName("last name", name); err != nil {
		return err
	}
	a.LastName = name
	return nil
}

// SetPhone sets the phone number; it must be exactly eight digits.
func (a *Agent) SetPhone(phone string) error {
	if !IsValidPhone(phone) {
		return &ValidationError{Field: "phone", Reason: ReasonInvalid}
	}
	a.Phone = phone
	return nil
}

// SetEmail sets the email address, checked with LooseEmailHeuristic.
func (a *Agent) SetEmail(email string) error {
	if !LooseEmailHeuristic(email) {
		return &ValidationError{Field: "email", Reason: ReasonInvalid}
	}
	a.Email = email
	return nil
}

// SetDates sets the employment period. start must be concrete and must not
// fall after end; an Empty end is open-ended.
func (a *Agent) SetDates(start, end Date) error {
	if err := checkPeriod(start, end); err != nil {
		return err
	}
	a.StartDate = start
	a.EndDate = end
	return nil
}

// Validate checks every field of a, as the setters would.
func (a Agent) Validate() error {
	var probe Agent
	if err := probe.SetFirstName(a.FirstName); err != nil {
		return err
	}
	if err := probe.SetLastName(a.LastName); err != nil {
		return err
	}
	if err := probe.SetPhone(a.Phone); err != nil {
		return err
	}
	if err := probe.SetEmail(a.Email); err != nil {
		return err
	}
	return probe.SetDates(a.StartDate, a.EndDate)
}

// checkPeriod is shared by agents and contracts.
func checkPeriod(start, end Date) error {
	if start.IsEmpty() {
		return &ValidationError{Field: "start date", Reason: ReasonDateRequired}
	}
	if !start.LessOrEqual(end) {
		return &ValidationError{Field: "start date", Reason: ReasonDateOrder}
	}
	return nil
}
