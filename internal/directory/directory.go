// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

// Package directory holds the immutable citizen registry and
// per-citizen service usage history.
//
// The directory is the privacy boundary for citizen names: raw names
// enter at construction and never leave. Every Citizen value returned
// by a lookup carries the masked display token instead.
package directory

import (
	"sort"
	"strings"
)

// Masking tokens for citizen names. A recorded name becomes
// MaskedName, a blank one becomes MissingName.
const (
	MaskedName  = "####"
	MissingName = "--"
)

// Record is one raw row of the citizen master table, as read from the
// reference data. RawName is consumed during construction and not
// retained in query results.
type Record struct {
	ID         string
	RawName    string
	Phone      string
	Gender     string
	Caste      string
	Religion   string
	Age        int
	DistrictID int
}

// Citizen is the public view of a registered citizen. Name holds the
// masked token, never the recorded name.
type Citizen struct {
	ID         string `json:"citizen_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Gender     string `json:"gender"`
	Caste      string `json:"caste"`
	Religion   string `json:"religion"`
	Age        int    `json:"age"`
	DistrictID int    `json:"district_id"`
}

// UsageRow is one raw availment row: a citizen used a service some
// number of times.
type UsageRow struct {
	CitizenID string
	ServiceID int
	Count     int
}

// ServiceUsage is one aggregated entry of a citizen's usage history.
type ServiceUsage struct {
	ServiceID   int    `json:"service_id"`
	ServiceName string `json:"service_name"`
	Count       int    `json:"count"`
}

// NameResolver resolves service ids for usage summaries. Satisfied by
// *catalog.Catalog.
type NameResolver interface {
	ResolveName(serviceID int) (string, bool)
	IsExcluded(serviceID int) bool
}

// Directory is the read-only citizen registry. Build once with New;
// all lookups are safe for concurrent use.
type Directory struct {
	byID    map[string]Citizen
	byPhone map[string][]string
	usage   map[string][]UsageRow

	resolver NameResolver
}

// New builds a Directory from raw citizen rows and usage rows. Names
// are masked here; duplicate citizen ids keep the first row. Usage
// rows for unknown citizens are kept out by the loader, which owns
// integrity checking.
func New(records []Record, usage []UsageRow, resolver NameResolver) *Directory {
	d := &Directory{
		byID:     make(map[string]Citizen, len(records)),
		byPhone:  make(map[string][]string),
		usage:    make(map[string][]UsageRow),
		resolver: resolver,
	}

	for _, rec := range records {
		if _, dup := d.byID[rec.ID]; dup {
			continue
		}
		phone := strings.TrimSpace(rec.Phone)
		d.byID[rec.ID] = Citizen{
			ID:         rec.ID,
			Name:       maskName(rec.RawName),
			Phone:      phone,
			Gender:     rec.Gender,
			Caste:      rec.Caste,
			Religion:   rec.Religion,
			Age:        rec.Age,
			DistrictID: rec.DistrictID,
		}
		if phone != "" {
			d.byPhone[phone] = append(d.byPhone[phone], rec.ID)
		}
	}

	// Aggregate usage counts per (citizen, service).
	type usageKey struct {
		citizenID string
		serviceID int
	}
	totals := make(map[usageKey]int, len(usage))
	for _, row := range usage {
		if _, known := d.byID[row.CitizenID]; !known {
			continue
		}
		totals[usageKey{row.CitizenID, row.ServiceID}] += row.Count
	}
	for key, count := range totals {
		d.usage[key.citizenID] = append(d.usage[key.citizenID], UsageRow{
			CitizenID: key.citizenID,
			ServiceID: key.serviceID,
			Count:     count,
		})
	}
	for _, rows := range d.usage {
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Count != rows[j].Count {
				return rows[i].Count > rows[j].Count
			}
			return rows[i].ServiceID < rows[j].ServiceID
		})
	}

	// Keep phone fan-out deterministic.
	for _, ids := range d.byPhone {
		sort.Strings(ids)
	}

	return d
}

// FindByPhone returns every citizen registered under the phone number.
// The input is trimmed of surrounding whitespace and matched exactly.
// No match is benign: the result is empty, never an error.
func (d *Directory) FindByPhone(phone string) []Citizen {
	ids := d.byPhone[strings.TrimSpace(phone)]
	out := make([]Citizen, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.byID[id])
	}
	return out
}

// FindByID returns the citizen with the given id.
func (d *Directory) FindByID(citizenID string) (Citizen, bool) {
	c, ok := d.byID[citizenID]
	return c, ok
}

// Len returns the number of registered citizens.
func (d *Directory) Len() int {
	return len(d.byID)
}

// UsageHistory summarizes the citizen's availed services, most used
// first with service id as the tiebreak. Life-event record services
// (birth/death) and ids missing from the catalog are dropped. Unknown
// citizens get an empty history.
func (d *Directory) UsageHistory(citizenID string) []ServiceUsage {
	rows := d.usage[citizenID]
	out := make([]ServiceUsage, 0, len(rows))
	for _, row := range rows {
		name, ok := d.resolver.ResolveName(row.ServiceID)
		if !ok || d.resolver.IsExcluded(row.ServiceID) {
			continue
		}
		out = append(out, ServiceUsage{
			ServiceID:   row.ServiceID,
			ServiceName: name,
			Count:       row.Count,
		})
	}
	return out
}

// maskName replaces a recorded name with its display token.
func maskName(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return MissingName
	}
	return MaskedName
}
