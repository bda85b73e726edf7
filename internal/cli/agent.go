package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/realty/internal/crm"
	"github.com/mesh-intelligence/realty/pkg/types"
)

var agentView = kindView[types.Agent]{
	kind:   types.KindAgent,
	plural: "agents",
	header: []string{"ID", "FIRST NAME", "LAST NAME", "PHONE", "EMAIL", "START", "END"},
	row: func(a types.Agent) []string {
		return []string{strconv.Itoa(a.ID), a.FirstName, a.LastName, a.Phone, a.Email,
			formatDate(a.StartDate), formatDate(a.EndDate)}
	},
	get:    (*crm.Service).Agent,
	list:   (*crm.Service).Agents,
	remove: (*crm.Service).RemoveAgent,
}

// agentForm holds the field flags shared by agent add and update.
type agentForm struct {
	firstName string
	lastName  string
	phone     string
	email     string
	startDate string
	endDate   string
}

func (f *agentForm) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.firstName, "first-name", "", "first name (no digits)")
	fs.StringVar(&f.lastName, "last-name", "", "last name (no digits)")
	fs.StringVar(&f.phone, "phone", "", "phone number (8 digits)")
	fs.StringVar(&f.email, "email", "", "email address")
	fs.StringVar(&f.startDate, "start-date", "", "employment start, YYYY-MM-DD")
	fs.StringVar(&f.endDate, "end-date", "", "employment end, YYYY-MM-DD or \"empty\"")
}

// apply copies the flags that were set onto a through its setters.
func (f *agentForm) apply(fs *pflag.FlagSet, a *types.Agent) error {
	if fs.Changed("first-name") {
		if err := a.SetFirstName(f.firstName); err != nil {
			return err
		}
	}
	if fs.Changed("last-name") {
		if err := a.SetLastName(f.lastName); err != nil {
			return err
		}
	}
	if fs.Changed("phone") {
		if err := a.SetPhone(f.phone); err != nil {
			return err
		}
	}
	if fs.Changed("email") {
		if err := a.SetEmail(f.email); err != nil {
			return err
		}
	}
	if fs.Changed("start-date") || fs.Changed("end-date") {
		start, end, err := periodFlags(fs, f.startDate, f.endDate, a.StartDate, a.EndDate)
		if err != nil {
			return err
		}
		if err := a.SetDates(start, end); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) newAgentCmd() *cobra.Command {
	return newKindCmd("agent", "Manage agents",
		a.newAgentAddCmd(),
		newGetCmd(a, agentView),
		a.newAgentUpdateCmd(),
		newRemoveCmd(a, agentView),
		newListCmd(a, agentView),
	)
}

func (a *app) newAgentAddCmd() *cobra.Command {
	var form agentForm
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an agent",
		Example: `  realty agent add --first-name Rana --last-name Haddad --phone 71123456 \
    --email rana@realty.lb --start-date 2015-03-01`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "first-name", "last-name", "phone", "email", "start-date"); err != nil {
				return err
			}
			var rec types.Agent
			if err := form.apply(cmd.Flags(), &rec); err != nil {
				return err
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			rec, err = svc.AddAgent(cmd.Context(), rec)
			if err != nil {
				return err
			}
			return printSaved(a, cmd.OutOrStdout(), "Created", rec)
		},
	}
	form.bind(cmd.Flags())
	return cmd
}

func (a *app) newAgentUpdateCmd() *cobra.Command {
	var form agentForm
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an agent",
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
			rec, err := svc.Agent(id)
			if err != nil {
				return err
			}
			if err := form.apply(cmd.Flags(), &rec); err != nil {
				return err
			}
			if err := svc.ModifyAgent(cmd.Context(), rec); err != nil {
				return err
			}
			return printSaved(a, cmd.OutOrStdout(), "Updated", rec)
		},
	}
	form.bind(cmd.Flags())
	return cmd
}
