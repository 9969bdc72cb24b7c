package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lite-lake/infra-bamctl/internal/application/usecase"
	"github.com/lite-lake/infra-bamctl/internal/domain/entity"
)

var (
	addZone        string
	addNetwork     string
	addName        string
	addType        string
	addData        string
	addTTL         int
	addWithReverse triStateBool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a DNS record or network object",
	Long:  "Create a record in a zone (--zone with --name/--type/--data) or a network object under a configured parent block (--network).",
	Run: func(cmd *cobra.Command, args []string) {
		runAdd()
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addZone, "zone", "", "DNS zone for record creation")
	addCmd.Flags().StringVar(&addNetwork, "network", "", "Network CIDR to create")
	addCmd.Flags().StringVar(&addName, "name", "", "Owner name (FQDN or relative to zone)")
	addCmd.Flags().StringVarP(&addType, "type", "t", "", "Record type (A, AAAA, CNAME, MX, NS, TXT)")
	addCmd.Flags().StringVar(&addData, "data", "", "Record data / IP address")
	addCmd.Flags().IntVar(&addTTL, "ttl", 3600, "Record TTL in seconds")
	addCmd.Flags().Var(&addWithReverse, "with-reverse", "For A/AAAA: maintain the reverse mapping (default true)")
	addCmd.Flags().Lookup("with-reverse").NoOptDefVal = "true"

	addCmd.MarkFlagsMutuallyExclusive("zone", "network")
	addCmd.MarkFlagsOneRequired("zone", "network")
}

func runAdd() {
	err := withSession(func(ctx context.Context, s *usecase.Session) error {
		if addNetwork != "" {
			res, err := s.Networks().Create(ctx, addNetwork, true)
			if err != nil {
				return err
			}
			if res.Status == entity.CreateNetworkExists {
				fmt.Println(WarningStyle.Render(
					fmt.Sprintf("Network %s already exists with ID %d", res.Network.Range, res.Network.ID)))
			} else {
				fmt.Println(SuccessStyle.Render(
					fmt.Sprintf("Created %s %s with ID %d (block ID %d)", res.Network.Type, res.Network.Range, res.Network.ID, res.BlockID)))
			}
			return nil
		}

		if addName == "" || addType == "" || addData == "" {
			return fmt.Errorf("add --zone requires --name, --type and --data")
		}
		rt, err := entity.ParseRecordType(addType)
		if err != nil {
			return err
		}

		id, err := s.DNS().Add(ctx, addZone, entity.NewRecordInput{
			Name:        addName,
			Type:        rt,
			Data:        addData,
			TTL:         addTTL,
			WithReverse: rt.IsAddress() && addWithReverse.OrDefault(true),
		})
		if err != nil {
			return err
		}
		fmt.Println(SuccessStyle.Render(fmt.Sprintf("Created %s %s with ID %d", rt, addName, id)))
		return nil
	})
	if err != nil {
		fail(err)
	}
}
