package domain

import "strings"

const (
	RoleAdmin     = "admin"
	RolePuskesmas = "puskesmas"
)

// Scope is what the requesting user is allowed to see.
type Scope struct {
	Role     string
	District string
}

func ScopeFromClaims(c *Claims) Scope {
	if c == nil {
		return Scope{}
	}
	return Scope{Role: c.Role, District: c.District}
}

// AllowsAddress is the single visibility rule for region-restricted users: a
// puskesmas sees addresses whose kecamatan contains its district name, case
// insensitive. A puskesmas without a district sees nothing.
func (s Scope) AllowsAddress(addr *Address) bool {
	if strings.EqualFold(s.Role, RoleAdmin) {
		return true
	}
	if !strings.EqualFold(s.Role, RolePuskesmas) {
		return false
	}
	district := strings.ToLower(strings.TrimSpace(s.District))
	if district == "" || addr == nil {
		return false
	}
	return strings.Contains(strings.ToLower(addr.CityDistrict), district)
}

func (s Scope) AllowsRecord(rec *ChildRecord) bool {
	if strings.EqualFold(s.Role, RoleAdmin) {
		return true
	}
	return s.AllowsAddress(rec.Alamat)
}

// Narrow returns the scope restricted to district when the user may choose
// one. Puskesmas users keep their own district.
func (s Scope) Narrow(district string) Scope {
	district = strings.TrimSpace(district)
	if district == "" || !strings.EqualFold(s.Role, RoleAdmin) {
		return s
	}
	return Scope{Role: RolePuskesmas, District: district}
}

func FilterRecords(scope Scope, records []ChildRecord) []ChildRecord {
	out := make([]ChildRecord, 0, len(records))
	for i := range records {
		if scope.AllowsRecord(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

func FilterAddresses(scope Scope, addrs []Address) []Address {
	out := make([]Address, 0, len(addrs))
	for i := range addrs {
		if scope.AllowsAddress(&addrs[i]) {
			out = append(out, addrs[i])
		}
	}
	return out
}
