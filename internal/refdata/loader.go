// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

// Package refdata loads the reference data artifacts at startup: five
// tabular CSV files plus one gob-encoded cluster artifact. Loading
// happens exactly once; everything the loader produces is immutable
// afterwards.
//
// The loader owns integrity checking. Rows referencing service or
// citizen ids missing from their master tables are dropped, each
// offending id is logged once per table, and the drop is counted in
// the load-warning metrics. A missing or unreadable artifact is fatal.
package refdata

import (
	"context"
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sevasetu/sevasetu/internal/catalog"
	"github.com/sevasetu/sevasetu/internal/config"
	"github.com/sevasetu/sevasetu/internal/directory"
	"github.com/sevasetu/sevasetu/internal/metrics"
	"github.com/sevasetu/sevasetu/internal/recommend"
)

// ClusterArtifact is the gob payload of the precomputed demographic
// clustering: signature key to cluster id, cluster id to ranked
// service ids.
type ClusterArtifact struct {
	Assignments map[string]int
	Rankings    map[int][]int
}

// Bundle holds everything the loader produces, ready to wire into the
// engine.
type Bundle struct {
	Catalog   *catalog.Catalog
	Directory *directory.Directory

	DistrictRankings   map[int][]int
	ClusterAssignments map[string]int
	ClusterRankings    map[int][]int
	Similarity         map[int][]recommend.Neighbor
}

// Loader reads the reference artifacts described by a DataConfig.
type Loader struct {
	cfg    config.DataConfig
	logger zerolog.Logger

	// warned dedupes integrity warnings per table and id.
	warned map[string]bool
}

// NewLoader builds a loader over the configured artifact paths.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLoader(cfg config.DataConfig, logger zerolog.Logger) *Loader {
	return &Loader{
		cfg:    cfg,
		logger: logger.With().Str("component", "refdata").Logger(),
		warned: make(map[string]bool),
	}
}

// Load reads all artifacts in dependency order: services and districts
// first, then citizens, usage, clusters and similarity, validating
// every foreign service id against the catalog as it goes.
func (l *Loader) Load(ctx context.Context) (*Bundle, error) {
	services, err := l.loadServices()
	if err != nil {
		return nil, err
	}

	districts, districtRankings, err := l.loadDistricts()
	if err != nil {
		return nil, err
	}

	cat := catalog.New(services, districts)
	metrics.SetTableRows("services", cat.Len())
	metrics.SetTableRows("districts", len(districts))

	// Rankings can only be validated once the catalog exists.
	for districtID, ranked := range districtRankings {
		districtRankings[districtID] = l.validServiceIDs("districts", ranked, cat)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("reference load cancelled: %w", err)
	}

	citizens, err := l.loadCitizens()
	if err != nil {
		return nil, err
	}

	usage, err := l.loadUsage(citizens, cat)
	if err != nil {
		return nil, err
	}

	dir := directory.New(citizens, usage, cat)
	metrics.SetTableRows("citizens", dir.Len())
	metrics.SetTableRows("usage", len(usage))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("reference load cancelled: %w", err)
	}

	artifact, err := l.loadClusterArtifact(cat)
	if err != nil {
		return nil, err
	}
	metrics.SetTableRows("clusters", len(artifact.Rankings))

	similarity, err := l.loadSimilarity(cat)
	if err != nil {
		return nil, err
	}
	metrics.SetTableRows("similarity", len(similarity))

	l.logger.Info().
		Int("services", cat.Len()).
		Int("districts", len(districts)).
		Int("citizens", dir.Len()).
		Int("clusters", len(artifact.Rankings)).
		Int("similarity_anchors", len(similarity)).
		Msg("reference data loaded")

	return &Bundle{
		Catalog:            cat,
		Directory:          dir,
		DistrictRankings:   districtRankings,
		ClusterAssignments: artifact.Assignments,
		ClusterRankings:    artifact.Rankings,
		Similarity:         similarity,
	}, nil
}

// loadServices reads services.csv: service_id,service_name,domain.
func (l *Loader) loadServices() ([]catalog.Service, error) {
	var services []catalog.Service
	err := l.readCSV(l.cfg.ServicesFile, 3, func(row []string) error {
		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			l.warnRow("services", row[0], "service id not numeric")
			return nil
		}
		services = append(services, catalog.Service{
			ID:     id,
			Name:   strings.TrimSpace(row[1]),
			Domain: strings.TrimSpace(row[2]),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	return services, nil
}

// loadDistricts reads the district ranking table in long format:
// district_id,district_name,rank,service_id. Rows arrive rank-ordered
// per district; the loader preserves file order.
func (l *Loader) loadDistricts() ([]catalog.District, map[int][]int, error) {
	var districts []catalog.District
	seen := make(map[int]bool)
	rankings := make(map[int][]int)

	err := l.readCSV(l.cfg.DistrictsFile, 4, func(row []string) error {
		districtID, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			l.warnRow("districts", row[0], "district id not numeric")
			return nil
		}
		serviceID, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			l.warnRow("districts", row[3], "service id not numeric")
			return nil
		}
		if !seen[districtID] {
			seen[districtID] = true
			districts = append(districts, catalog.District{
				ID:   districtID,
				Name: strings.TrimSpace(row[1]),
			})
		}
		rankings[districtID] = append(rankings[districtID], serviceID)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load districts: %w", err)
	}
	return districts, rankings, nil
}

// loadCitizens reads citizens.csv:
// citizen_id,citizen_name,phone,gender,caste,religion,age,district_id.
func (l *Loader) loadCitizens() ([]directory.Record, error) {
	var records []directory.Record
	err := l.readCSV(l.cfg.CitizensFile, 8, func(row []string) error {
		citizenID := strings.TrimSpace(row[0])
		if citizenID == "" {
			l.warnRow("citizens", "(blank)", "citizen id empty")
			return nil
		}
		age, err := strconv.Atoi(strings.TrimSpace(row[6]))
		if err != nil || age < 0 {
			l.warnRow("citizens", citizenID, "age invalid")
			return nil
		}
		districtID, err := strconv.Atoi(strings.TrimSpace(row[7]))
		if err != nil {
			l.warnRow("citizens", citizenID, "district id not numeric")
			return nil
		}
		records = append(records, directory.Record{
			ID:         citizenID,
			RawName:    row[1],
			Phone:      row[2],
			Gender:     strings.TrimSpace(row[3]),
			Caste:      strings.TrimSpace(row[4]),
			Religion:   strings.TrimSpace(row[5]),
			Age:        age,
			DistrictID: districtID,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load citizens: %w", err)
	}
	return records, nil
}

// loadUsage reads service_usage.csv: citizen_id,service_id,count.
// Rows pointing at unknown citizens or services are dropped with a
// warning.
func (l *Loader) loadUsage(citizens []directory.Record, cat *catalog.Catalog) ([]directory.UsageRow, error) {
	known := make(map[string]bool, len(citizens))
	for _, c := range citizens {
		known[c.ID] = true
	}

	var rows []directory.UsageRow
	err := l.readCSV(l.cfg.UsageFile, 3, func(row []string) error {
		citizenID := strings.TrimSpace(row[0])
		serviceID, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			l.warnRow("usage", row[1], "service id not numeric")
			return nil
		}
		count, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil || count < 1 {
			l.warnRow("usage", citizenID, "count invalid")
			return nil
		}
		if !known[citizenID] {
			l.warnRow("usage", citizenID, "citizen not in directory")
			return nil
		}
		if _, ok := cat.ResolveName(serviceID); !ok {
			l.warnRow("usage", strconv.Itoa(serviceID), "service not in catalog")
			return nil
		}
		rows = append(rows, directory.UsageRow{
			CitizenID: citizenID,
			ServiceID: serviceID,
			Count:     count,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load usage: %w", err)
	}
	return rows, nil
}

// loadClusterArtifact decodes the gob cluster artifact and validates
// every ranked service id against the catalog.
func (l *Loader) loadClusterArtifact(cat *catalog.Catalog) (*ClusterArtifact, error) {
	path := l.resolve(l.cfg.ClusterFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cluster artifact %s: %w", path, err)
	}
	defer f.Close()

	artifact := &ClusterArtifact{}
	if err := gob.NewDecoder(f).Decode(artifact); err != nil {
		return nil, fmt.Errorf("failed to decode cluster artifact %s: %w", path, err)
	}
	if artifact.Assignments == nil {
		artifact.Assignments = make(map[string]int)
	}
	if artifact.Rankings == nil {
		artifact.Rankings = make(map[int][]int)
	}

	for cluster, ranked := range artifact.Rankings {
		artifact.Rankings[cluster] = l.validServiceIDs("clusters", ranked, cat)
	}
	return artifact, nil
}

// loadSimilarity reads similarity.csv: service_id,neighbor_id,score.
// Anchors and neighbors must resolve in the catalog.
func (l *Loader) loadSimilarity(cat *catalog.Catalog) (map[int][]recommend.Neighbor, error) {
	similarity := make(map[int][]recommend.Neighbor)
	err := l.readCSV(l.cfg.SimilarityFile, 3, func(row []string) error {
		anchorID, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			l.warnRow("similarity", row[0], "anchor id not numeric")
			return nil
		}
		neighborID, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			l.warnRow("similarity", row[1], "neighbor id not numeric")
			return nil
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			l.warnRow("similarity", row[2], "score not numeric")
			return nil
		}
		if _, ok := cat.ResolveName(anchorID); !ok {
			l.warnRow("similarity", strconv.Itoa(anchorID), "anchor not in catalog")
			return nil
		}
		if _, ok := cat.ResolveName(neighborID); !ok {
			l.warnRow("similarity", strconv.Itoa(neighborID), "neighbor not in catalog")
			return nil
		}
		similarity[anchorID] = append(similarity[anchorID], recommend.Neighbor{
			ServiceID: neighborID,
			Score:     score,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load similarity: %w", err)
	}
	return similarity, nil
}

// validServiceIDs filters a ranked id list down to ids the catalog
// resolves, warning once per dropped id.
func (l *Loader) validServiceIDs(table string, ranked []int, cat *catalog.Catalog) []int {
	valid := ranked[:0]
	for _, serviceID := range ranked {
		if _, ok := cat.ResolveName(serviceID); !ok {
			l.warnRow(table, strconv.Itoa(serviceID), "service not in catalog")
			continue
		}
		valid = append(valid, serviceID)
	}
	return valid
}

// warnRow logs one integrity warning, deduped per table and offending
// id, and bumps the per-table warning counter.
func (l *Loader) warnRow(table, id, reason string) {
	key := table + "|" + id + "|" + reason
	if l.warned[key] {
		return
	}
	l.warned[key] = true
	metrics.RecordLoadWarning(table)
	l.logger.Warn().
		Str("table", table).
		Str("id", id).
		Str("reason", reason).
		Msg("reference row dropped")
}

// readCSV streams a CSV artifact row by row, skipping the header.
// Rows with the wrong column count are dropped with a warning instead
// of aborting the load.
func (l *Loader) readCSV(name string, columns int, handle func(row []string) error) error {
	path := l.resolve(name)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if header {
			header = false
			continue
		}
		if len(row) != columns {
			l.warnRow(filepath.Base(path), strings.Join(row, ","), "wrong column count")
			continue
		}
		if err := handle(row); err != nil {
			return err
		}
	}
}

// resolve joins a relative artifact path onto the data directory.
func (l *Loader) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(l.cfg.Dir, name)
}
