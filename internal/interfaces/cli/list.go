package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lite-lake/infra-bamctl/internal/application/usecase"
	"github.com/lite-lake/infra-bamctl/internal/domain/entity"
	"github.com/lite-lake/infra-bamctl/internal/domain/service"
)

var (
	listZone    string
	listCIDR    string
	listNetwork string
	listTypes   []string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List DNS records, reverse mappings or a network",
	Long:  "List records in a zone (--zone), reverse mappings for an address or range (--cidr), or a network object by exact range (--network).",
	Run: func(cmd *cobra.Command, args []string) {
		runList()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listZone, "zone", "", "DNS zone (e.g. example.com)")
	listCmd.Flags().StringVar(&listCIDR, "cidr", "", "IP address or CIDR for reverse mappings")
	listCmd.Flags().StringVar(&listNetwork, "network", "", "Network CIDR for network details (exact range lookup)")
	listCmd.Flags().StringArrayVarP(&listTypes, "type", "t", nil, "Record type filter, repeatable (A, AAAA, CNAME, MX, NS, TXT)")

	listCmd.MarkFlagsMutuallyExclusive("zone", "cidr", "network")
	listCmd.MarkFlagsOneRequired("zone", "cidr", "network")
}

func parseTypeFlags(values []string) []entity.RecordType {
	var types []entity.RecordType
	for _, v := range values {
		rt, err := entity.ParseRecordType(v)
		if err != nil {
			fail(err)
		}
		types = append(types, rt)
	}
	return types
}

func runList() {
	if len(listTypes) > 0 && listZone == "" {
		fail(fmt.Errorf("--type can only be used with --zone"))
	}
	types := parseTypeFlags(listTypes)

	err := withSession(func(ctx context.Context, s *usecase.Session) error {
		switch {
		case listCIDR != "":
			rows, err := s.DNS().ListReverse(ctx, listCIDR, 0)
			if err != nil {
				return err
			}
			renderReverse(os.Stdout, rows)

		case listNetwork != "":
			canonical, err := service.CanonicalCIDR(listNetwork)
			if err != nil {
				return err
			}
			net, err := s.Networks().Get(ctx, canonical)
			if err != nil {
				return err
			}
			if net == nil {
				fmt.Printf("No network found for %s\n", canonical)
				return nil
			}
			renderNetwork(os.Stdout, net)

		default:
			records, err := s.DNS().ListZone(ctx, listZone, types)
			if err != nil {
				return err
			}
			renderZoneRecords(os.Stdout, records)
		}
		return nil
	})
	if err != nil {
		fail(err)
	}
}
