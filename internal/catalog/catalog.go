// Package catalog loads and queries the static career-role dataset.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jonathan/career-mentor/internal/schemas"
	"github.com/jonathan/career-mentor/internal/skills"
	"github.com/jonathan/career-mentor/internal/types"
)

// Catalog is a read-only snapshot of career records in file order.
type Catalog struct {
	path    string
	records []types.CareerRecord
}

// Load reads, validates and parses the dataset at path.
// Any problem is reported as a *DataError; an empty catalog is never returned.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &DataError{Reason: "catalog path is empty"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &DataError{Path: path, Reason: "file not found", Cause: err}
		}
		return nil, &DataError{Path: path, Reason: "failed to read file", Cause: err}
	}

	c, err := parse(path, data)
	if err != nil {
		return nil, err
	}

	if dups := c.Duplicates(); len(dups) > 0 {
		slog.Warn("career catalog has duplicate roles; first entry wins",
			slog.String("path", path),
			slog.Any("roles", dups),
		)
	}
	return c, nil
}

// Parse builds a Catalog from in-memory JSON with the same rules as Load.
func Parse(data []byte) (*Catalog, error) {
	return parse("", data)
}

// New builds a Catalog directly from records, normalizing their skills.
func New(records []types.CareerRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, &DataError{Reason: "catalog contains no records"}
	}
	return &Catalog{records: normalizeRecords(records)}, nil
}

func parse(path string, data []byte) (*Catalog, error) {
	if err := schemas.Validate(schemas.CareerCatalog, data); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &DataError{Path: path, Reason: "dataset does not match schema", Cause: err}
		}
		return nil, &DataError{Path: path, Reason: "failed to validate dataset", Cause: err}
	}

	var records []types.CareerRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &DataError{Path: path, Reason: "failed to parse JSON", Cause: err}
	}
	if len(records) == 0 {
		return nil, &DataError{Path: path, Reason: "catalog contains no records"}
	}

	return &Catalog{path: path, records: normalizeRecords(records)}, nil
}

func normalizeRecords(in []types.CareerRecord) []types.CareerRecord {
	out := make([]types.CareerRecord, len(in))
	for i, r := range in {
		r.Role = strings.TrimSpace(r.Role)
		r.Skills = skills.NormalizeList(r.Skills)
		out[i] = r
	}
	return out
}

// Path returns the file the catalog was loaded from, if any.
func (c *Catalog) Path() string {
	return c.path
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Records returns a copy of the records in file order.
func (c *Catalog) Records() []types.CareerRecord {
	out := make([]types.CareerRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Lookup finds a role by case-insensitive exact name. The first match in file order wins.
func (c *Catalog) Lookup(role string) (types.CareerRecord, bool) {
	want := strings.TrimSpace(role)
	for _, r := range c.records {
		if strings.EqualFold(r.Role, want) {
			return r, true
		}
	}
	return types.CareerRecord{}, false
}

// RequiredSkills returns the skills and resources bundle for a role.
func (c *Catalog) RequiredSkills(role string) (types.RoleRequirements, error) {
	rec, ok := c.Lookup(role)
	if !ok {
		return types.RoleRequirements{}, fmt.Errorf("%w: %q", ErrRoleNotFound, role)
	}
	required := make([]string, len(rec.Skills))
	copy(required, rec.Skills)
	return types.RoleRequirements{
		Role:      rec.Role,
		Skills:    required,
		Resources: rec.Resources(),
	}, nil
}

// Duplicates lists roles that appear more than once (case-insensitively), in first-seen order.
func (c *Catalog) Duplicates() []string {
	counts := make(map[string]int)
	var order []string
	for _, r := range c.records {
		key := strings.ToLower(r.Role)
		if counts[key] == 0 {
			order = append(order, r.Role)
		}
		counts[key]++
	}
	var dups []string
	for _, role := range order {
		if counts[strings.ToLower(role)] > 1 {
			dups = append(dups, role)
		}
	}
	return dups
}
