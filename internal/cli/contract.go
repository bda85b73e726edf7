package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/realty/internal/crm"
	"github.com/mesh-intelligence/realty/internal/store"
	"github.com/mesh-intelligence/realty/pkg/types"
)

var contractView = kindView[types.Contract]{
	kind:   types.KindContract,
	plural: "contracts",
	header: []string{"ID", "TYPE", "PROPERTY", "CLIENT", "AGENT", "PRICE", "START", "END", "ACTIVE"},
	row: func(c types.Contract) []string {
		return []string{strconv.Itoa(c.ID), c.ContractType,
			strconv.Itoa(c.PropertyID), strconv.Itoa(c.ClientID), strconv.Itoa(c.AgentID),
			formatFloat(c.Price), formatDate(c.StartDate), formatDate(c.EndDate), yesNo(c.IsActive)}
	},
	get:    (*crm.Service).Contract,
	list:   (*crm.Service).Contracts,
	remove: (*crm.Service).RemoveContract,
}

type contractForm struct {
	propertyID   int
	clientID     int
	agentID      int
	price        float64
	startDate    string
	endDate      string
	contractType string
	active       bool
}

func (f *contractForm) bind(fs *pflag.FlagSet) {
	fs.IntVar(&f.propertyID, "property-id", 0, "id of the property")
	fs.IntVar(&f.clientID, "client-id", 0, "id of the client")
	fs.IntVar(&f.agentID, "agent-id", 0, "id of the agent")
	fs.Float64Var(&f.price, "price", 0, "agreed price")
	fs.StringVar(&f.startDate, "start-date", "", "start, YYYY-MM-DD")
	fs.StringVar(&f.endDate, "end-date", "", "end, YYYY-MM-DD or \"empty\" (ignored for sale)")
	fs.StringVar(&f.contractType, "type", "", "sale or rent")
	fs.BoolVar(&f.active, "active", true, "contract is active (sale contracts always are)")
}

// apply sets the type first so that the sale rules govern the dates and the
// active flag that follow.
func (f *contractForm) apply(fs *pflag.FlagSet, c *types.Contract) error {
	if fs.Changed("type") {
		if err := c.SetContractType(f.contractType); err != nil {
			return err
		}
	}
	if fs.Changed("property-id") {
		c.PropertyID = f.propertyID
	}
	if fs.Changed("client-id") {
		c.ClientID = f.clientID
	}
	if fs.Changed("agent-id") {
		c.AgentID = f.agentID
	}
	if fs.Changed("price") {
		c.Price = f.price
	}
	if fs.Changed("start-date") || fs.Changed("end-date") {
		start, end, err := periodFlags(fs, f.startDate, f.endDate, c.StartDate, c.EndDate)
		if err != nil {
			return err
		}
		if err := c.SetDates(start, end); err != nil {
			return err
		}
	}
	if fs.Changed("active") {
		c.SetIsActive(f.active)
	}
	return nil
}

var contractRequired = []string{"type", "property-id", "client-id", "agent-id", "price", "start-date"}

func (a *app) newContractCmd() *cobra.Command {
	return newKindCmd("contract", "Manage contracts",
		a.newContractAddCmd(),
		a.newContractCreateCmd(),
		newGetCmd(a, contractView),
		a.newContractUpdateCmd(),
		newRemoveCmd(a, contractView),
		newListCmd(a, contractView),
	)
}

func (a *app) newContractAddCmd() *cobra.Command {
	var form contractForm
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contract without checking its references",
		Long: "Add stores the contract as given. The property, client, and agent ids\n" +
			"are not checked; use \"contract create\" for that.",
		Example: `  realty contract add --type rent --property-id 1 --client-id 1 --agent-id 1 \
    --price 900 --start-date 2022-01-01 --end-date 2022-12-01`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, contractRequired...); err != nil {
				return err
			}
			rec := types.Contract{IsActive: true}
			if err := form.apply(cmd.Flags(), &rec); err != nil {
				return err
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			rec, err = svc.AddContract(cmd.Context(), types.CreationDirect, rec)
			if err != nil {
				return err
			}
			return printSaved(a, cmd.OutOrStdout(), "Created", rec)
		},
	}
	form.bind(cmd.Flags())
	return cmd
}

func (a *app) newContractCreateCmd() *cobra.Command {
	var form contractForm
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contract after checking its references",
		Long: "Create checks that the property, client, and agent exist, in that order,\n" +
			"and fails without storing anything when one is missing.",
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, contractRequired...); err != nil {
				return err
			}
			start, end, err := periodFlags(cmd.Flags(), form.startDate, form.endDate, types.EmptyDate(), types.EmptyDate())
			if err != nil {
				return err
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := svc.CreateContract(cmd.Context(), store.ContractDraft{
				PropertyID:   form.propertyID,
				ClientID:     form.clientID,
				AgentID:      form.agentID,
				Price:        form.price,
				StartDate:    start,
				EndDate:      end,
				ContractType: form.contractType,
				IsActive:     form.active,
			})
			if err != nil {
				return err
			}
			return printSaved(a, cmd.OutOrStdout(), "Created", rec)
		},
	}
	form.bind(cmd.Flags())
	return cmd
}

func (a *app) newContractUpdateCmd() *cobra.Command {
	var form contractForm
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a contract",
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
			rec, err := svc.Contract(id)
			if err != nil {
				return err
			}
			if err := form.apply(cmd.Flags(), &rec); err != nil {
				return err
			}
			if err := svc.ModifyContract(cmd.Context(), rec); err != nil {
				return err
			}
			rec.Normalize()
			return printSaved(a, cmd.OutOrStdout(), "Updated", rec)
		},
	}
	form.bind(cmd.Flags())
	return cmd
}
