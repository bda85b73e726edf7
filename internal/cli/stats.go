package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/realty/pkg/types"
)

// storeStats summarizes the record store.
type storeStats struct {
	Agents              int                `json:"agents"`
	Clients             int                `json:"clients"`
	Properties          int                `json:"properties"`
	Contracts           int                `json:"contracts"`
	AvailableProperties int                `json:"available_properties"`
	ActiveContracts     int                `json:"active_contracts"`
	NextIDs             map[types.Kind]int `json:"next_ids"`
}

func (a *app) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}

			counts := svc.Store().Counts()
			st := storeStats{
				Agents:     counts[types.KindAgent],
				Clients:    counts[types.KindClient],
				Properties: counts[types.KindProperty],
				Contracts:  counts[types.KindContract],
				NextIDs:    make(map[types.Kind]int, len(types.Kinds)),
			}
			for _, p := range svc.Properties() {
				if p.Available {
					st.AvailableProperties++
				}
			}
			for _, c := range svc.Contracts() {
				if c.IsActive {
					st.ActiveContracts++
				}
			}
			for k, n := range svc.Store().Snapshot().NextIDs {
				st.NextIDs[k] = n + 1
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), st)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "KIND\tCOUNT\tNEXT ID\n")
			fmt.Fprintf(tw, "agents\t%d\t%d\n", st.Agents, st.NextIDs[types.KindAgent])
			fmt.Fprintf(tw, "clients\t%d\t%d\n", st.Clients, st.NextIDs[types.KindClient])
			fmt.Fprintf(tw, "properties\t%d\t%d\n", st.Properties, st.NextIDs[types.KindProperty])
			fmt.Fprintf(tw, "contracts\t%d\t%d\n", st.Contracts, st.NextIDs[types.KindContract])
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "available properties: %d\nactive contracts: %d\n",
				st.AvailableProperties, st.ActiveContracts)
			return nil
		},
	}
}
