package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/realty/internal/crm"
	"github.com/mesh-intelligence/realty/pkg/types"
)

var clientView = kindView[types.Client]{
	kind:   types.KindClient,
	plural: "clients",
	header: []string{"ID", "FIRST NAME", "LAST NAME", "PHONE", "EMAIL", "MARRIED", "BUDGET", "BUDGET TYPE"},
	row: func(c types.Client) []string {
		return []string{strconv.Itoa(c.ID), c.FirstName, c.LastName, c.Phone, c.Email,
			yesNo(c.IsMarried), formatFloat(c.Budget), c.BudgetType}
	},
	get:    (*crm.Service).Client,
	list:   (*crm.Service).Clients,
	remove: (*crm.Service).RemoveClient,
}

type clientForm struct {
	firstName  string
	lastName   string
	phone      string
	email      string
	married    bool
	budget     float64
	budgetType string
}

func (f *clientForm) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.firstName, "first-name", "", "first name (no digits)")
	fs.StringVar(&f.lastName, "last-name", "", "last name (no digits)")
	fs.StringVar(&f.phone, "phone", "", "phone number (8 digits)")
	fs.StringVar(&f.email, "email", "", "email address")
	fs.BoolVar(&f.married, "married", false, "client is married")
	fs.Float64Var(&f.budget, "budget", 0, "budget, >= 0")
	fs.StringVar(&f.budgetType, "budget-type", "", "rent or buy")
}

func (f *clientForm) apply(fs *pflag.FlagSet, c *types.Client) error {
	if fs.Changed("first-name") {
		if err := c.SetFirstName(f.firstName); err != nil {
			return err
		}
	}
	if fs.Changed("last-name") {
		if err := c.SetLastName(f.lastName); err != nil {
			return err
		}
	}
	if fs.Changed("phone") {
		if err := c.SetPhone(f.phone); err != nil {
			return err
		}
	}
	if fs.Changed("email") {
		if err := c.SetEmail(f.email); err != nil {
			return err
		}
	}
	if fs.Changed("married") {
		c.IsMarried = f.married
	}
	if fs.Changed("budget") {
		if err := c.SetBudget(f.budget); err != nil {
			return err
		}
	}
	if fs.Changed("budget-type") {
		if err := c.SetBudgetType(f.budgetType); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) newClientCmd() *cobra.Command {
	return newKindCmd("client", "Manage clients",
		a.newClientAddCmd(),
		newGetCmd(a, clientView),
		a.newClientUpdateCmd(),
		newRemoveCmd(a, clientView),
		newListCmd(a, clientView),
	)
}

func (a *app) newClientAddCmd() *cobra.Command {
	var form clientForm
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		Example: `  realty client add --first-name Omar --last-name Khalil --phone 03123456 \
    --email omar@mail.com --budget 1500 --budget-type rent`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "first-name", "last-name", "phone", "email", "budget-type"); err != nil {
				return err
			}
			var rec types.Client
			if err := form.apply(cmd.Flags(), &rec); err != nil {
				return err
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			rec, err = svc.AddClient(cmd.Context(), rec)
			if err != nil {
				return err
			}
			return printSaved(a, cmd.OutOrStdout(), "Created", rec)
		},
	}
	form.bind(cmd.Flags())
	return cmd
}

func (a *app) newClientUpdateCmd() *cobra.Command {
	var form clientForm
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a client",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := svc.Client(id)
			if err != nil {
				return err
			}
			if err := form.apply(cmd.Flags(), &rec); err != nil {
				return err
			}
			if err := svc.ModifyClient(cmd.Context(), rec); err != nil {
				return err
			}
			return printSaved(a, cmd.OutOrStdout(), "Updated", rec)
		},
	}
	form.bind(cmd.Flags())
	return cmd
}
