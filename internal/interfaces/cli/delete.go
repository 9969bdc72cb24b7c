package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lite-lake/infra-bamctl/internal/application/usecase"
	"github.com/lite-lake/infra-bamctl/internal/domain/entity"
	"github.com/lite-lake/infra-bamctl/internal/domain/service"
)

var (
	deleteID      int64
	deleteNetwork string
	deleteZone    string
	deleteName    string
	deleteType    string
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a DNS record or network object",
	Long:  "Delete a record by id (--id), a network by exact range (--network), or a record by zone and owner name (--zone with --name).",
	Run: func(cmd *cobra.Command, args []string) {
		runDelete()
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().Int64Var(&deleteID, "id", 0, "Resource record ID to delete")
	deleteCmd.Flags().StringVar(&deleteNetwork, "network", "", "Network CIDR to delete (exact range lookup)")
	deleteCmd.Flags().StringVar(&deleteZone, "zone", "", "DNS zone for delete-by-name")
	deleteCmd.Flags().StringVar(&deleteName, "name", "", "Owner name for delete-by-name")
	deleteCmd.Flags().StringVarP(&deleteType, "type", "t", "", "Record type filter (A, AAAA, CNAME, MX, NS, TXT)")

	deleteCmd.MarkFlagsMutuallyExclusive("id", "network", "zone")
	deleteCmd.MarkFlagsOneRequired("id", "network", "zone")
}

func runDelete() {
	err := withSession(func(ctx context.Context, s *usecase.Session) error {
		switch {
		case deleteNetwork != "":
			canonical, err := service.CanonicalCIDR(deleteNetwork)
			if err != nil {
				return err
			}
			deleted, err := s.Networks().Delete(ctx, canonical, true)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Printf("Network %s not found.\n", canonical)
				return nil
			}
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("Deleted network %s", canonical)))

		case deleteID != 0:
			if err := s.DNS().DeleteByID(ctx, deleteID); err != nil {
				return err
			}
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("Deleted record ID %d", deleteID)))

		default:
			if deleteName == "" {
				return fmt.Errorf("delete by name requires --zone and --name")
			}
			var rt entity.RecordType
			if deleteType != "" {
				var err error
				rt, err = entity.ParseRecordType(deleteType)
				if err != nil {
					return err
				}
			}
			id, err := s.DNS().DeleteByName(ctx, deleteZone, deleteName, rt)
			if err != nil {
				return err
			}
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("Deleted record ID %d", id)))
		}
		return nil
	})
	if err != nil {
		fail(err)
	}
}
