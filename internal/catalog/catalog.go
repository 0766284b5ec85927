// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

// Package catalog holds the immutable registry of government services
// and districts. Both tables are built once at startup and are safe
// for lock-free concurrent reads afterwards.
package catalog

import (
	"sort"
	"strings"
)

// Service is one government service in the master table.
type Service struct {
	ID     int    `json:"service_id"`
	Name   string `json:"service_name"`
	Domain string `json:"domain,omitempty"`
}

// District is one administrative district.
type District struct {
	ID   int    `json:"district_id"`
	Name string `json:"district_name"`
}

// Catalog is the read-only service and district registry. The zero
// value is not usable; build one with New.
type Catalog struct {
	services  map[int]Service
	districts map[int]District

	// ordered views, sorted by id, shared by every caller.
	orderedServices  []Service
	orderedDistricts []District

	// excluded and casteTargeted are precomputed from service names so
	// the filter checks on the hot path are single map lookups.
	excluded      map[int]bool
	casteTargeted map[int]bool
}

// New builds a Catalog from the raw master tables. Duplicate ids keep
// the first occurrence.
func New(services []Service, districts []District) *Catalog {
	c := &Catalog{
		services:      make(map[int]Service, len(services)),
		districts:     make(map[int]District, len(districts)),
		excluded:      make(map[int]bool),
		casteTargeted: make(map[int]bool),
	}

	for _, svc := range services {
		if _, dup := c.services[svc.ID]; dup {
			continue
		}
		c.services[svc.ID] = svc
		if isExcludedName(svc.Name) || isExcludedName(svc.Domain) {
			c.excluded[svc.ID] = true
		}
		if isCasteTargetedName(svc.Name) {
			c.casteTargeted[svc.ID] = true
		}
	}
	for _, d := range districts {
		if _, dup := c.districts[d.ID]; dup {
			continue
		}
		c.districts[d.ID] = d
	}

	c.orderedServices = make([]Service, 0, len(c.services))
	for _, svc := range c.services {
		c.orderedServices = append(c.orderedServices, svc)
	}
	sort.Slice(c.orderedServices, func(i, j int) bool {
		return c.orderedServices[i].ID < c.orderedServices[j].ID
	})

	c.orderedDistricts = make([]District, 0, len(c.districts))
	for _, d := range c.districts {
		c.orderedDistricts = append(c.orderedDistricts, d)
	}
	sort.Slice(c.orderedDistricts, func(i, j int) bool {
		return c.orderedDistricts[i].ID < c.orderedDistricts[j].ID
	})

	return c
}

// ResolveName maps a service id to its display name. The second return
// is false for ids absent from the master table.
func (c *Catalog) ResolveName(serviceID int) (string, bool) {
	svc, ok := c.services[serviceID]
	if !ok {
		return "", false
	}
	return svc.Name, true
}

// Service returns the full service record for an id.
func (c *Catalog) Service(serviceID int) (Service, bool) {
	svc, ok := c.services[serviceID]
	return svc, ok
}

// District returns the district record for an id.
func (c *Catalog) District(districtID int) (District, bool) {
	d, ok := c.districts[districtID]
	return d, ok
}

// IsExcluded reports whether the service belongs to a life-event
// record category (birth and death registrations) that is never
// recommended.
func (c *Catalog) IsExcluded(serviceID int) bool {
	return c.excluded[serviceID]
}

// IsCasteTargeted reports whether the service is restricted to
// reserved-caste applicants.
func (c *Catalog) IsCasteTargeted(serviceID int) bool {
	return c.casteTargeted[serviceID]
}

// Services returns all services ordered by id. Callers must not
// modify the returned slice.
func (c *Catalog) Services() []Service {
	return c.orderedServices
}

// Districts returns all districts ordered by id. Callers must not
// modify the returned slice.
func (c *Catalog) Districts() []District {
	return c.orderedDistricts
}

// Len returns the number of services in the catalog.
func (c *Catalog) Len() int {
	return len(c.services)
}

func isExcludedName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "birth") || strings.Contains(lower, "death")
}

func isCasteTargetedName(name string) bool {
	return strings.Contains(strings.ToLower(name), "caste")
}
