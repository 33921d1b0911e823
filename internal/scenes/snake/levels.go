package snake

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml
var levelsYAML []byte

// Level is one stage of the campaign.
type Level struct {
	Name           string   `yaml:"name"`
	TargetFood     int      `yaml:"target_food"`
	MoveEveryTicks int      `yaml:"move_every_ticks"`
	Layout         []string `yaml:"layout"`
}

type levelFile struct {
	Levels []Level `yaml:"levels"`
}

var levels = mustParseLevels(levelsYAML)

// ParseLevels decodes and checks a level file.
func ParseLevels(data []byte) ([]Level, error) {
	var f levelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("snake: parse levels: %w", err)
	}
	if len(f.Levels) == 0 {
		return nil, errors.New("snake: no levels defined")
	}
	for i, l := range f.Levels {
		switch {
		case len(l.Layout) < 3:
			return nil, fmt.Errorf("snake: level %d (%s): layout needs at least 3 rows", i+1, l.Name)
		case l.TargetFood <= 0:
			return nil, fmt.Errorf("snake: level %d (%s): target_food must be positive", i+1, l.Name)
		case l.MoveEveryTicks <= 0:
			return nil, fmt.Errorf("snake: level %d (%s): move_every_ticks must be positive", i+1, l.Name)
		}
	}
	return f.Levels, nil
}

func mustParseLevels(data []byte) []Level {
	ls, err := ParseLevels(data)
	if err != nil {
		panic(err)
	}
	return ls
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(levels)
}

// GetLevel returns the level at index, or nil when out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(levels) {
		return nil
	}
	return &levels[index]
}
