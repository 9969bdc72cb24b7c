package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/lite-lake/infra-bamctl/internal/domain/entity"
)

func ttlString(ttl *int) string {
	if ttl == nil {
		return "-"
	}
	return strconv.Itoa(*ttl)
}

func renderZoneRecords(w io.Writer, records []entity.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, MutedStyle.Render("No records found."))
		return
	}
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, HeaderStyle.Render("ID\tTYPE\tTTL\tNAME\tDATA"))
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Type, ttlString(r.TTL), r.Name, r.Data)
	}
	tw.Flush()
}

func renderReverse(w io.Writer, rows []entity.ReverseMapping) {
	if len(rows) == 0 {
		fmt.Fprintln(w, MutedStyle.Render("No reverse records found."))
		return
	}
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, HeaderStyle.Render("IP\tPTR-NAME\tTTL\tID"))
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.IP, r.PTR, ttlString(r.TTL), r.ID)
	}
	tw.Flush()
}

func renderNetwork(w io.Writer, net *entity.Network) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, HeaderStyle.Render("ID\tTYPE\tRANGE\tNAME\tGATEWAY\tVIEW\tASSIGNED\tUNASSIGNED\tTOTAL"))
	assigned, unassigned, total := "-", "-", "-"
	if net.Usage != nil {
		assigned = strconv.Itoa(net.Usage.Assigned)
		unassigned = strconv.Itoa(net.Usage.Unassigned)
		total = strconv.Itoa(net.Usage.Total)
	}
	fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		net.ID, net.Type, net.Range, net.Name, net.Gateway, net.View, assigned, unassigned, total)
	tw.Flush()
}
