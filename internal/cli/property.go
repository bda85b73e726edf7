package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/realty/internal/crm"
	"github.com/mesh-intelligence/realty/pkg/types"
)

var propertyView = kindView[types.Property]{
	kind:   types.KindProperty,
	plural: "properties",
	header: []string{"ID", "TYPE", "LISTING", "SIZE", "PRICE", "BEDROOMS", "BATHROOMS", "PLACE", "AVAILABLE"},
	row: func(p types.Property) []string {
		return []string{strconv.Itoa(p.ID), p.PropertyType, p.ListingType,
			formatFloat(p.SizeSqm), formatFloat(p.Price),
			strconv.Itoa(p.Bedrooms), strconv.Itoa(p.Bathrooms), p.Place, yesNo(p.Available)}
	},
	get:    (*crm.Service).Property,
	list:   (*crm.Service).Properties,
	remove: (*crm.Service).RemoveProperty,
}

type propertyForm struct {
	size         float64
	price        float64
	propertyType string
	bedrooms     int
	bathrooms    int
	place        string
	available    bool
	listingType  string
}

func (f *propertyForm) bind(fs *pflag.FlagSet) {
	fs.Float64Var(&f.size, "size", 0, "size in square meters, > 0")
	fs.Float64Var(&f.price, "price", 0, "asking price, > 0")
	fs.StringVar(&f.propertyType, "type", "", "land, house, or apartment")
	fs.IntVar(&f.bedrooms, "bedrooms", 0, "bedroom count (ignored for land)")
	fs.IntVar(&f.bathrooms, "bathrooms", 0, "bathroom count (ignored for land)")
	fs.StringVar(&f.place, "place", "", "location (no digits)")
	fs.BoolVar(&f.available, "available", false, "property is on the market")
	fs.StringVar(&f.listingType, "listing", "", "sale or rent")
}

// apply sets the type before the room counts so that land keeps zero rooms.
func (f *propertyForm) apply(fs *pflag.FlagSet, p *types.Property) error {
	if fs.Changed("type") {
		if err := p.SetPropertyType(f.propertyType); err != nil {
			return err
		}
	}
	if fs.Changed("size") {
		if err := p.SetSizeSqm(f.size); err != nil {
			return err
		}
	}
	if fs.Changed("price") {
		if err := p.SetPrice(f.price); err != nil {
			return err
		}
	}
	if fs.Changed("bedrooms") {
		if err := p.SetBedrooms(f.bedrooms); err != nil {
			return err
		}
	}
	if fs.Changed("bathrooms") {
		if err := p.SetBathrooms(f.bathrooms); err != nil {
			return err
		}
	}
	if fs.Changed("place") {
		if err := p.SetPlace(f.place); err != nil {
			return err
		}
	}
	if fs.Changed("available") {
		p.SetAvailability(f.available)
	}
	if fs.Changed("listing") {
		if err := p.SetListingType(f.listingType); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) newPropertyCmd() *cobra.Command {
	return newKindCmd("property", "Manage properties",
		a.newPropertyAddCmd(),
		newGetCmd(a, propertyView),
		a.newPropertyUpdateCmd(),
		newRemoveCmd(a, propertyView),
		newListCmd(a, propertyView),
	)
}

func (a *app) newPropertyAddCmd() *cobra.Command {
	var form propertyForm
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a property",
		Example: `  realty property add --type apartment --listing sale --size 80 --price 100000 \
    --bedrooms 2 --bathrooms 1 --place Hamra --available`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "type", "listing", "size", "price", "place"); err != nil {
				return err
			}
			var rec types.Property
			if err := form.apply(cmd.Flags(), &rec); err != nil {
				return err
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			rec, err = svc.AddProperty(cmd.Context(), rec)
			if err != nil {
				return err
			}
			return printSaved(a, cmd.OutOrStdout(), "Created", rec)
		},
	}
	form.bind(cmd.Flags())
	return cmd
}

func (a *app) newPropertyUpdateCmd() *cobra.Command {
	var form propertyForm
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a property",
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
			rec, err := svc.Property(id)
			if err != nil {
				return err
			}
			if err := form.apply(cmd.Flags(), &rec); err != nil {
				return err
			}
			if err := svc.ModifyProperty(cmd.Context(), rec); err != nil {
				return err
			}
			return printSaved(a, cmd.OutOrStdout(), "Updated", rec)
		},
	}
	form.bind(cmd.Flags())
	return cmd
}
