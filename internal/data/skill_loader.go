package data

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/arenafx/internal/game/skill"
)

//go:embed skills.yaml
var builtinSkills []byte

// SkillTable: глобальный реестр skill definitions по skill ID.
// Загружается через LoadSkills() при старте.
var SkillTable map[int32]skill.Def

// GetSkillDef returns the definition for skillID.
func GetSkillDef(skillID int32) (skill.Def, bool) {
	if SkillTable == nil {
		return skill.Def{}, false
	}
	def, ok := SkillTable[skillID]
	return def, ok
}

// SkillIDs returns every loaded skill ID in ascending order.
func SkillIDs() []int32 {
	ids := make([]int32, 0, len(SkillTable))
	for id := range SkillTable {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// LoadSkills builds SkillTable from the embedded catalog.
func LoadSkills() error {
	defs, err := ParseSkills(builtinSkills)
	if err != nil {
		return fmt.Errorf("loading builtin skills: %w", err)
	}
	setSkillTable(defs)
	slog.Info("loaded skills", "skills", len(SkillTable), "source", "builtin")
	return nil
}

// LoadSkillsFile builds SkillTable from a catalog file, replacing the
// builtin one.
func LoadSkillsFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading skill catalog %s: %w", path, err)
	}
	defs, err := ParseSkills(raw)
	if err != nil {
		return fmt.Errorf("loading skill catalog %s: %w", path, err)
	}
	setSkillTable(defs)
	slog.Info("loaded skills", "skills", len(SkillTable), "source", path)
	return nil
}

// ParseSkills decodes and validates a YAML skill catalog.
func ParseSkills(raw []byte) ([]skill.Def, error) {
	var cat skillCatalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("parsing skill catalog: %w", err)
	}

	seen := make(map[int32]struct{}, len(cat.Skills))
	defs := make([]skill.Def, 0, len(cat.Skills))
	for _, y := range cat.Skills {
		if _, dup := seen[y.ID]; dup {
			return nil, fmt.Errorf("duplicate skill id %d", y.ID)
		}
		seen[y.ID] = struct{}{}

		def, err := y.toDef()
		if err != nil {
			return nil, err
		}
		if err := def.Validate(); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func setSkillTable(defs []skill.Def) {
	SkillTable = make(map[int32]skill.Def, len(defs))
	for _, def := range defs {
		SkillTable[def.ID] = def
	}
}
