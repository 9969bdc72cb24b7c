package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lite-lake/infra-bamctl/internal/application/usecase"
	"github.com/lite-lake/infra-bamctl/internal/domain/entity"
)

var (
	updateID          int64
	updateZone        string
	updateName        string
	updateType        string
	updateTTL         int
	updateData        string
	updateWithReverse triStateBool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update an existing DNS record",
	Long:  "Partially update a record by id (--id, preferred) or by zone and owner name (--zone with --name); resolution by name must match exactly one record.",
	Run: func(cmd *cobra.Command, args []string) {
		runUpdate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().Int64Var(&updateID, "id", 0, "Record ID to update (preferred)")
	updateCmd.Flags().StringVar(&updateZone, "zone", "", "DNS zone (required when updating by name)")
	updateCmd.Flags().StringVar(&updateName, "name", "", "Owner name (FQDN or relative to zone)")
	updateCmd.Flags().StringVarP(&updateType, "type", "t", "", "Record type hint (A, AAAA, CNAME, MX, NS, TXT)")
	updateCmd.Flags().IntVar(&updateTTL, "ttl", 0, "New TTL in seconds")
	updateCmd.Flags().StringVar(&updateData, "data", "", "New record data / IP address")
	updateCmd.Flags().Var(&updateWithReverse, "with-reverse", "For A/AAAA: set the reverse-mapping flag")
	updateCmd.Flags().Lookup("with-reverse").NoOptDefVal = "true"

	updateCmd.MarkFlagsMutuallyExclusive("id", "zone")
}

func runUpdate(cmd *cobra.Command) {
	err := withSession(func(ctx context.Context, s *usecase.Session) error {
		var rt entity.RecordType
		if updateType != "" {
			var err error
			rt, err = entity.ParseRecordType(updateType)
			if err != nil {
				return err
			}
		}

		upd := entity.RecordUpdate{
			TypeHint:    rt,
			WithReverse: updateWithReverse.Ptr(),
		}
		if cmd.Flags().Changed("ttl") {
			ttl := updateTTL
			upd.TTL = &ttl
		}
		if cmd.Flags().Changed("data") {
			data := updateData
			upd.Data = &data
		}

		id := updateID
		if id == 0 {
			if updateZone == "" || updateName == "" {
				return fmt.Errorf("update requires --id or both --zone and --name")
			}
			var err error
			id, err = s.DNS().ResolveRecordID(ctx, updateZone, updateName, rt)
			if err != nil {
				return err
			}
		}

		if err := s.DNS().Update(ctx, id, upd); err != nil {
			return err
		}
		fmt.Println(SuccessStyle.Render(fmt.Sprintf("Updated record ID %d", id)))
		return nil
	})
	if err != nil {
		fail(err)
	}
}
