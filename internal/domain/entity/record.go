package entity

import (
	"fmt"
	"strings"

	"github.com/lite-lake/infra-bamctl/internal/domain"
)

type RecordType string

const (
	RecordTypeA     RecordType = "A"
	RecordTypeAAAA  RecordType = "AAAA"
	RecordTypeCNAME RecordType = "CNAME"
	RecordTypeMX    RecordType = "MX"
	RecordTypeNS    RecordType = "NS"
	RecordTypeTXT   RecordType = "TXT"
)

var validRecordTypes = map[RecordType]bool{
	RecordTypeA:     true,
	RecordTypeAAAA:  true,
	RecordTypeCNAME: true,
	RecordTypeMX:    true,
	RecordTypeNS:    true,
	RecordTypeTXT:   true,
}

func ParseRecordType(s string) (RecordType, error) {
	rt := RecordType(strings.ToUpper(strings.TrimSpace(s)))
	if !validRecordTypes[rt] {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidType, s)
	}
	return rt, nil
}

// IsAddress reports whether the type carries an IP address and therefore
// may have a reverse mapping.
func (t RecordType) IsAddress() bool {
	return t == RecordTypeA || t == RecordTypeAAAA
}

func RecordTypeNames() []string {
	return []string{"A", "AAAA", "CNAME", "MX", "NS", "TXT"}
}

// Record is one resource record row as the remote platform reports it.
// Name is the absolute owner name; Data is the record value (IP for
// address types, rdata otherwise). TTL may be absent on the platform side.
type Record struct {
	ID   int64
	Type RecordType
	Name string
	TTL  *int
	Data string
}

// NewRecordInput is the caller-supplied shape for record creation.
type NewRecordInput struct {
	Name        string
	Type        RecordType
	Data        string
	TTL         int
	WithReverse bool
}

func (r *NewRecordInput) Validate() error {
	if !validRecordTypes[r.Type] {
		return fmt.Errorf("%w: %s", domain.ErrInvalidType, r.Type)
	}
	if r.Name == "" {
		return domain.RequiredField("name")
	}
	if r.Data == "" {
		return domain.RequiredField("data")
	}
	if r.TTL < 0 {
		return fmt.Errorf("%w: ttl must be non-negative", domain.ErrInvalidTTL)
	}
	return nil
}

// RecordUpdate is a partial update. Nil fields are left unchanged on the
// remote record.
type RecordUpdate struct {
	TTL         *int
	Data        *string
	TypeHint    RecordType
	WithReverse *bool
}

func (u *RecordUpdate) Empty() bool {
	return u.TTL == nil && u.Data == nil && u.WithReverse == nil
}

// ReverseMapping is one address-to-name row collected from the platform's
// PTR records and reverse-flagged host records.
type ReverseMapping struct {
	IP  string
	PTR string
	ID  int64
	TTL *int
}
