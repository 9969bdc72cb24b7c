package usecase

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/lite-lake/infra-bamctl/internal/domain"
	"github.com/lite-lake/infra-bamctl/internal/domain/entity"
	"github.com/lite-lake/infra-bamctl/internal/domain/service"
	"github.com/lite-lake/infra-bamctl/internal/infrastructure/bluecat"
)

// DefaultReverseScanLimit caps how many host addresses a reverse listing
// may expand a CIDR into.
const DefaultReverseScanLimit = 4096

// DNS is the resource-record accessor for one zone/view scope.
type DNS struct {
	s *Session
}

func (d *DNS) resolveZone(ctx context.Context, zone string) (bluecat.Zone, error) {
	view, err := d.s.view(ctx)
	if err != nil {
		return bluecat.Zone{}, err
	}
	z, err := d.s.client.ResolveZone(ctx, view.ID, zone)
	if err != nil {
		return bluecat.Zone{}, domain.WrapOp("resolve zone", err)
	}
	return z, nil
}

// ListZone enumerates the records of a zone, optionally filtered to a
// subset of record types. Host records are expanded into one row per
// linked address.
func (d *DNS) ListZone(ctx context.Context, zone string, types []entity.RecordType) ([]entity.Record, error) {
	z, err := d.resolveZone(ctx, zone)
	if err != nil {
		return nil, err
	}
	return d.listZoneRecords(ctx, z, types, true)
}

func wantedTypes(types []entity.RecordType) map[entity.RecordType]bool {
	wanted := make(map[entity.RecordType]bool)
	if len(types) == 0 {
		for _, name := range entity.RecordTypeNames() {
			wanted[entity.RecordType(name)] = true
		}
		return wanted
	}
	for _, t := range types {
		wanted[t] = true
	}
	return wanted
}

func (d *DNS) listZoneRecords(ctx context.Context, z bluecat.Zone, types []entity.RecordType, expandAddresses bool) ([]entity.Record, error) {
	wanted := wantedTypes(types)

	rows, err := d.s.client.ListZoneRecords(ctx, z.ID)
	if err != nil {
		return nil, err
	}

	var records []entity.Record
	for _, row := range rows {
		name := row.AbsoluteName
		if name == "" {
			name = row.Name
		}

		if row.Type == "HostRecord" {
			if !expandAddresses {
				// Placeholder row so name matching can see host records
				// without one address fetch per record.
				if wanted[entity.RecordTypeA] || wanted[entity.RecordTypeAAAA] {
					records = append(records, entity.Record{ID: row.ID, Type: entity.RecordTypeA, Name: name, TTL: row.TTL})
				}
				continue
			}
			addrs, err := d.s.client.ListRecordAddresses(ctx, row.ID)
			if err != nil {
				return nil, err
			}
			for _, addr := range addrs {
				var rt entity.RecordType
				switch addr.Type {
				case "IPv4Address":
					rt = entity.RecordTypeA
				case "IPv6Address":
					rt = entity.RecordTypeAAAA
				default:
					continue
				}
				if !wanted[rt] {
					continue
				}
				records = append(records, entity.Record{ID: row.ID, Type: rt, Name: name, TTL: row.TTL, Data: addr.Address})
			}
			continue
		}

		recType := strings.ToUpper(row.RecordType)
		if recType == "" {
			recType = strings.ToUpper(row.Type)
		}
		if !wanted[entity.RecordType(recType)] {
			continue
		}
		records = append(records, entity.Record{ID: row.ID, Type: entity.RecordType(recType), Name: name, TTL: row.TTL, Data: row.Rdata})
	}
	return records, nil
}

// Add creates one record in a zone. Address types become host records with
// the reverse-mapping flag as requested; the flag is meaningless for other
// types and forced off there.
func (d *DNS) Add(ctx context.Context, zone string, in entity.NewRecordInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	z, err := d.resolveZone(ctx, zone)
	if err != nil {
		return 0, err
	}
	zoneAbs := z.AbsoluteName
	if zoneAbs == "" {
		zoneAbs = z.Name
	}

	fqdn, label, err := service.NormalizeOwnerInZone(in.Name, zoneAbs)
	if err != nil {
		return 0, err
	}

	if in.Type.IsAddress() {
		ip, err := netip.ParseAddr(in.Data)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", domain.ErrInvalidIP, in.Data)
		}
		return d.s.client.CreateHostRecord(ctx, z.ID, label, fqdn, ip, in.TTL, in.WithReverse)
	}
	return d.s.client.CreateGenericRecord(ctx, z.ID, label, fqdn, string(in.Type), in.Data, in.TTL)
}

// ResolveRecordID resolves a record by owner name within a zone, requiring
// exactly one match. rrType narrows the search; empty matches any type.
func (d *DNS) ResolveRecordID(ctx context.Context, zone, name string, rrType entity.RecordType) (int64, error) {
	z, err := d.resolveZone(ctx, zone)
	if err != nil {
		return 0, err
	}
	zoneAbs := z.AbsoluteName
	if zoneAbs == "" {
		zoneAbs = z.Name
	}

	fqdn, _, err := service.NormalizeOwnerInZone(name, zoneAbs)
	if err != nil {
		return 0, err
	}
	target := service.FoldFQDN(fqdn)

	records, err := d.listZoneRecords(ctx, z, nil, false)
	if err != nil {
		return 0, err
	}

	var matches []entity.Record
	for _, r := range records {
		if service.FoldFQDN(r.Name) != target {
			continue
		}
		if rrType != "" && !typeMatches(r.Type, rrType) {
			continue
		}
		matches = append(matches, r)
	}

	if len(matches) == 0 {
		return 0, fmt.Errorf("%w: record %q in zone %q", domain.ErrNotFound, name, zoneAbs)
	}
	if len(matches) > 1 {
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = fmt.Sprintf("%d", m.ID)
		}
		return 0, fmt.Errorf("%w: %d records named %q in zone %q (ids %s)",
			domain.ErrAmbiguous, len(matches), name, zoneAbs, strings.Join(ids, ", "))
	}
	return matches[0].ID, nil
}

// typeMatches accepts a host-record placeholder row (reported as A) when
// either address type was asked for.
func typeMatches(got, want entity.RecordType) bool {
	if got == entity.RecordTypeA && want.IsAddress() {
		return true
	}
	return got == want
}

func (d *DNS) DeleteByID(ctx context.Context, recordID int64) error {
	return d.s.client.DeleteResourceRecord(ctx, recordID)
}

// DeleteByName deletes the single record matching zone+name(+type) and
// returns its id. Ambiguity is an error, never a silent pick.
func (d *DNS) DeleteByName(ctx context.Context, zone, name string, rrType entity.RecordType) (int64, error) {
	id, err := d.ResolveRecordID(ctx, zone, name, rrType)
	if err != nil {
		return 0, err
	}
	if err := d.s.client.DeleteResourceRecord(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}

// Update applies a partial update by record id: fetch the record as stored,
// apply the changed fields, write it back.
func (d *DNS) Update(ctx context.Context, recordID int64, upd entity.RecordUpdate) error {
	if upd.Empty() {
		return fmt.Errorf("%w: nothing to update", domain.ErrEmptyValue)
	}

	rec, err := d.s.client.GetResourceRecordRaw(ctx, recordID)
	if err != nil {
		return err
	}
	delete(rec, "_links")
	delete(rec, "_embedded")

	if upd.TTL != nil {
		rec["ttl"] = *upd.TTL
	}

	recType, _ := rec["type"].(string)
	if recType == "HostRecord" {
		if upd.Data != nil {
			ip, err := netip.ParseAddr(*upd.Data)
			if err != nil {
				return fmt.Errorf("%w: %q", domain.ErrInvalidIP, *upd.Data)
			}
			addrType := "IPv6Address"
			if ip.Is4() {
				addrType = "IPv4Address"
			}
			rec["addresses"] = []map[string]string{{"type": addrType, "address": ip.String()}}
		}
		if upd.WithReverse != nil {
			rec["reverseRecord"] = *upd.WithReverse
		}
	} else if upd.Data != nil {
		rrType := string(upd.TypeHint)
		if rrType == "" {
			rrType, _ = rec["recordType"].(string)
		}
		if rrType == "" {
			if t := strings.ToUpper(recType); strings.HasSuffix(t, "RECORD") {
				rrType = strings.TrimSuffix(t, "RECORD")
			}
		}
		if rrType == "" {
			return fmt.Errorf("%w: cannot determine record type for record %d", domain.ErrInvalidType, recordID)
		}
		rec["recordType"] = strings.ToUpper(rrType)
		rec["rdata"] = *upd.Data
	}

	return d.s.client.PutResourceRecord(ctx, recordID, rec)
}

// ListReverse collects the reverse mappings for one address or a CIDR,
// refusing to expand ranges beyond maxHosts addresses.
func (d *DNS) ListReverse(ctx context.Context, cidr string, maxHosts int) ([]entity.ReverseMapping, error) {
	if maxHosts <= 0 {
		maxHosts = DefaultReverseScanLimit
	}

	addrs, err := expandHosts(cidr, maxHosts)
	if err != nil {
		return nil, err
	}

	var out []entity.ReverseMapping
	for _, ip := range addrs {
		addr, err := d.s.client.FindAddressByIP(ctx, d.s.configRef.Name, ip.String())
		if err != nil {
			return nil, err
		}
		if addr == nil {
			continue
		}
		rows, err := d.s.client.ListAddressRecords(ctx, addr.ID)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			target, ok := reverseTarget(row)
			if !ok {
				continue
			}
			shown := addr.Address
			if shown == "" {
				shown = ip.String()
			}
			out = append(out, entity.ReverseMapping{IP: shown, PTR: target, ID: row.ID, TTL: row.TTL})
		}
	}
	return out, nil
}

// reverseTarget extracts the pointed-at name from a PTR record or a
// reverse-flagged host record.
func reverseTarget(row bluecat.RecordRow) (string, bool) {
	if strings.EqualFold(row.RecordType, "PTR") {
		for _, cand := range []string{row.Rdata, row.AbsoluteName, row.Name} {
			if cand != "" {
				return cand, true
			}
		}
		return "", false
	}
	if strings.EqualFold(row.Type, "HostRecord") && row.ReverseRecord {
		for _, cand := range []string{row.AbsoluteName, row.Name, row.Rdata} {
			if cand != "" {
				return cand, true
			}
		}
	}
	return "", false
}

// expandHosts turns an address or CIDR into the host addresses to scan.
// IPv4 network and broadcast addresses are skipped below /31, and the
// IPv6 subnet-router anycast address below /127.
func expandHosts(cidr string, maxHosts int) ([]netip.Addr, error) {
	if !strings.Contains(cidr, "/") {
		addr, err := netip.ParseAddr(strings.TrimSpace(cidr))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidIP, cidr)
		}
		return []netip.Addr{addr}, nil
	}

	prefix, err := service.ParsePrefix(cidr)
	if err != nil {
		return nil, err
	}

	hostBits := prefix.Addr().BitLen() - prefix.Bits()
	if hostBits > 30 {
		return nil, fmt.Errorf("network %s is too large to scan (limit %d hosts)", prefix, maxHosts)
	}
	count := 1 << hostBits
	skipFirst := hostBits >= 2
	if skipFirst {
		count--
		if prefix.Addr().Is4() {
			count--
		}
	}
	if count > maxHosts {
		return nil, fmt.Errorf("network %s would expand to %d host addresses (limit %d)", prefix, count, maxHosts)
	}

	var addrs []netip.Addr
	addr := prefix.Addr()
	if skipFirst {
		addr = addr.Next()
	}
	for prefix.Contains(addr) && len(addrs) < count {
		addrs = append(addrs, addr)
		addr = addr.Next()
	}
	return addrs, nil
}
